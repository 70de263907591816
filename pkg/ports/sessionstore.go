package ports

import "github.com/user/autovlog/pkg/render"

// SessionStore is the on-disk representation of an incremental render
// session: metadata, per-segment elementary streams, the last-frame
// cache, and the transition rotation cursor. Metadata is rewritten
// atomically (temp-file-plus-rename) after every mutating call.
type SessionStore interface {
	// Create allocates a new session directory and writes its initial
	// metadata in status "initialized".
	Create(sessionID, templateName string) (render.SessionMetadata, error)

	// Load reads the current metadata for a session.
	Load(sessionID string) (render.SessionMetadata, error)

	// AppendSegment records a newly rendered segment, advances
	// TotalFrames, and sets status to "rendering".
	AppendSegment(sessionID string, seg render.Segment) (render.SessionMetadata, error)

	// BeginAppend reserves the right to append the next segment for a
	// session, for the full duration of the render that follows, per
	// spec.md §5's "serialized append" requirement: a second BeginAppend
	// for the same session while the first is still in flight returns
	// render.ErrSessionConflict. The caller must call EndAppend exactly
	// once, success or failure, to release the reservation.
	BeginAppend(sessionID string) error

	// EndAppend releases a reservation taken by BeginAppend.
	EndAppend(sessionID string)

	// SetStatus transitions a session's status field in place.
	SetStatus(sessionID string, status render.SessionStatus) error

	// SetOutputPath records the finalized output file location and
	// marks the session completed.
	SetOutputPath(sessionID, path string) error

	// NextTransitionIndex returns the transition index to use for the
	// append about to happen and advances the stored cursor
	// (current+1) mod total, per spec.md §3's invariant.
	NextTransitionIndex(sessionID string, total int) (int, error)

	// SegmentPath returns the path a segment's elementary stream is
	// (or will be) stored at.
	SegmentPath(sessionID string, index int) string

	// SegmentPaths lists all recorded segment file paths in order.
	SegmentPaths(sessionID string) ([]string, error)

	// SaveLastFrame persists the final composited frame of the most
	// recently appended segment so the next append's transition has a
	// "from" texture across process invocations.
	SaveLastFrame(sessionID string, frame render.Frame) error

	// LoadLastFrame reads back the persisted last frame.
	LoadLastFrame(sessionID string) (render.Frame, error)

	// Directory returns the session's root directory on disk.
	Directory(sessionID string) string

	// Cleanup removes intermediate session files (segments,
	// last_frame.rgb) while keeping metadata.json and the final output.
	Cleanup(sessionID string) error

	// ListSessions scans the on-disk session root and returns every
	// session id found, so a multi-worker deployment can rebuild its
	// registry from disk instead of in-memory state.
	ListSessions() ([]string, error)
}
