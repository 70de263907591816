// Package sessionstore implements ports.SessionStore as a directory
// tree under a configurable root, grounded on
// original_source/src/session_manager.py's SessionManager: one
// directory per session, a metadata.json rewritten atomically on every
// mutation, a segments/ subdirectory of elementary streams, and a
// last_frame.rgb cache. Session ids are generated with
// github.com/google/uuid rather than Python's uuid4, and metadata
// writes go through ports.FileSystem.WriteFileAtomic instead of a bare
// path.write_text, so a reader never observes a half-written file.
package sessionstore

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/user/autovlog/pkg/ports"
	"github.com/user/autovlog/pkg/render"
)

// Store implements ports.SessionStore rooted at a directory on disk.
type Store struct {
	fs   ports.FileSystem
	root string

	mu      sync.Mutex
	pending map[string]bool // session ids with an append in flight
}

// New creates a Store rooted at root. It does not touch the disk; root
// is created by the first Create, which makes the session's directory
// with MkdirAll.
func New(fs ports.FileSystem, root string) *Store {
	return &Store{fs: fs, root: root, pending: make(map[string]bool)}
}

func (s *Store) dir(sessionID string) string {
	return filepath.Join(s.root, sessionID)
}

func (s *Store) metadataPath(sessionID string) string {
	return filepath.Join(s.dir(sessionID), "metadata.json")
}

func (s *Store) lastFramePath(sessionID string) string {
	return filepath.Join(s.dir(sessionID), "last_frame.rgb")
}

// Create implements ports.SessionStore. The caller normally supplies
// sessionID (session.Controller.Init generates it with uuid.NewString);
// an empty id gets a fresh uuid here. Create rejects an id collision.
func (s *Store) Create(sessionID, templateName string) (render.SessionMetadata, error) {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	exists, err := s.fs.Exists(s.metadataPath(sessionID))
	if err != nil {
		return render.SessionMetadata{}, render.NewSessionError("sessionstore.Create", err)
	}
	if exists {
		return render.SessionMetadata{}, render.NewSessionError("sessionstore.Create", render.ErrSessionAlreadyExists)
	}

	if err := s.fs.MkdirAll(filepath.Join(s.dir(sessionID), "segments")); err != nil {
		return render.SessionMetadata{}, render.NewSessionError("sessionstore.Create", err)
	}

	meta := render.SessionMetadata{
		SessionID:     sessionID,
		TemplateName:  templateName,
		Status:        render.StatusInitialized,
		CreatedAtUnix: time.Now().Unix(),
	}
	if err := s.save(meta); err != nil {
		return render.SessionMetadata{}, err
	}
	return meta, nil
}

// Load implements ports.SessionStore.
func (s *Store) Load(sessionID string) (render.SessionMetadata, error) {
	raw, err := s.fs.ReadFile(s.metadataPath(sessionID))
	if err != nil {
		return render.SessionMetadata{}, render.NewSessionError("sessionstore.Load", render.ErrSessionNotFound)
	}

	var meta render.SessionMetadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		return render.SessionMetadata{}, render.NewSessionError("sessionstore.Load", err)
	}
	return meta, nil
}

func (s *Store) save(meta render.SessionMetadata) error {
	raw, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return render.NewSessionError("sessionstore.save", err)
	}
	if err := s.fs.WriteFileAtomic(s.metadataPath(meta.SessionID), raw); err != nil {
		return render.NewSessionError("sessionstore.save", err)
	}
	return nil
}

// BeginAppend implements ports.SessionStore, serializing concurrent
// appends for the same session: a second BeginAppend arriving while
// one is still in flight gets ErrSessionConflict rather than letting
// both callers read the same lastFrame/transition cursor and race to
// write the same segment file, per spec.md §5's "serialized append"
// requirement. The reservation spans the caller's entire render, not
// just the metadata write at the end of it, so the caller must hold it
// from before its first Load through its final AppendSegment call.
func (s *Store) BeginAppend(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending[sessionID] {
		return render.NewSessionError("sessionstore.BeginAppend", render.ErrSessionConflict)
	}
	s.pending[sessionID] = true
	return nil
}

// EndAppend implements ports.SessionStore, releasing a reservation
// taken by BeginAppend.
func (s *Store) EndAppend(sessionID string) {
	s.mu.Lock()
	delete(s.pending, sessionID)
	s.mu.Unlock()
}

// AppendSegment implements ports.SessionStore. Callers that render a
// new segment must hold a BeginAppend reservation for the duration of
// that render; AppendSegment itself only performs the final metadata
// write.
func (s *Store) AppendSegment(sessionID string, seg render.Segment) (render.SessionMetadata, error) {
	meta, err := s.Load(sessionID)
	if err != nil {
		return render.SessionMetadata{}, err
	}
	if meta.Status == render.StatusCompleted {
		return render.SessionMetadata{}, render.NewSessionError("sessionstore.AppendSegment", render.ErrSessionCompleted)
	}

	seg.Index = len(meta.Segments)
	meta.Segments = append(meta.Segments, seg)
	meta.TotalFrames += seg.Frames
	meta.Status = render.StatusRendering

	if err := s.save(meta); err != nil {
		return render.SessionMetadata{}, err
	}
	return meta, nil
}

// SetStatus implements ports.SessionStore.
func (s *Store) SetStatus(sessionID string, status render.SessionStatus) error {
	meta, err := s.Load(sessionID)
	if err != nil {
		return err
	}
	meta.Status = status
	return s.save(meta)
}

// SetOutputPath implements ports.SessionStore.
func (s *Store) SetOutputPath(sessionID, path string) error {
	meta, err := s.Load(sessionID)
	if err != nil {
		return err
	}
	meta.OutputPath = path
	meta.Status = render.StatusCompleted
	return s.save(meta)
}

// NextTransitionIndex implements ports.SessionStore: it returns the
// index to use now and persists (current+1) mod total for the call
// after, mirroring get_next_transition_index's read-then-advance step.
func (s *Store) NextTransitionIndex(sessionID string, total int) (int, error) {
	if total <= 0 {
		return 0, render.NewSessionError("sessionstore.NextTransitionIndex", render.ErrNoTransitions)
	}

	meta, err := s.Load(sessionID)
	if err != nil {
		return 0, err
	}
	current := meta.CurrentTransitionIndex
	meta.CurrentTransitionIndex = (current + 1) % total
	if err := s.save(meta); err != nil {
		return 0, err
	}
	return current, nil
}

// SegmentPath implements ports.SessionStore.
func (s *Store) SegmentPath(sessionID string, index int) string {
	return filepath.Join(s.dir(sessionID), "segments", fmt.Sprintf("segment_%d.h264", index))
}

// SegmentPaths implements ports.SessionStore.
func (s *Store) SegmentPaths(sessionID string) ([]string, error) {
	meta, err := s.Load(sessionID)
	if err != nil {
		return nil, err
	}
	paths := make([]string, len(meta.Segments))
	for _, seg := range meta.Segments {
		paths[seg.Index] = s.SegmentPath(sessionID, seg.Index)
	}
	return paths, nil
}

// SaveLastFrame implements ports.SessionStore.
func (s *Store) SaveLastFrame(sessionID string, frame render.Frame) error {
	header := fmt.Sprintf("%d %d\n", frame.Width, frame.Height)
	buf := append([]byte(header), frame.Pix...)
	if err := s.fs.WriteFile(s.lastFramePath(sessionID), buf); err != nil {
		return render.NewSessionError("sessionstore.SaveLastFrame", err)
	}
	return nil
}

// LoadLastFrame implements ports.SessionStore.
func (s *Store) LoadLastFrame(sessionID string) (render.Frame, error) {
	raw, err := s.fs.ReadFile(s.lastFramePath(sessionID))
	if err != nil {
		return render.Frame{}, render.NewSessionError("sessionstore.LoadLastFrame", err)
	}

	var width, height, consumed int
	if _, err := fmt.Sscanf(string(raw), "%d %d\n", &width, &height); err != nil {
		return render.Frame{}, render.NewSessionError("sessionstore.LoadLastFrame", err)
	}
	for i, b := range raw {
		if b == '\n' {
			consumed = i + 1
			break
		}
	}
	pix := make([]byte, len(raw)-consumed)
	copy(pix, raw[consumed:])
	return render.Frame{Width: width, Height: height, Pix: pix}, nil
}

// Directory implements ports.SessionStore.
func (s *Store) Directory(sessionID string) string {
	return s.dir(sessionID)
}

// Cleanup implements ports.SessionStore: it removes segments/ and the
// last-frame cache while keeping metadata.json and the output file,
// matching session_manager.py's cleanup_session(keep_final_video=True).
func (s *Store) Cleanup(sessionID string) error {
	segmentsDir := filepath.Join(s.dir(sessionID), "segments")
	names, err := s.fs.ReadDir(segmentsDir)
	if err == nil {
		for _, name := range names {
			s.fs.Remove(filepath.Join(segmentsDir, name))
		}
		s.fs.Remove(segmentsDir)
	}

	exists, err := s.fs.Exists(s.lastFramePath(sessionID))
	if err == nil && exists {
		s.fs.Remove(s.lastFramePath(sessionID))
	}
	return nil
}

// ListSessions implements ports.SessionStore by scanning the root
// directory for subdirectories, so a deployment with multiple workers
// can rebuild its session registry from disk rather than memory.
func (s *Store) ListSessions() ([]string, error) {
	names, err := s.fs.ReadDir(s.root)
	if err != nil {
		return nil, render.NewSessionError("sessionstore.ListSessions", err)
	}
	return names, nil
}

var _ ports.SessionStore = (*Store)(nil)
