package ports

import "github.com/user/autovlog/pkg/render"

// FrameSource produces a lazy sequence of canonical RGB frames for one
// input (a still image or a video clip), terminating at a configured
// frame count and padding by repeating the last good frame once the
// upstream decoder is exhausted.
type FrameSource interface {
	// Pull returns the next frame. It never fails once the first
	// successful pull has completed; EOF is converted to last-frame
	// padding internally.
	Pull() (render.Frame, error)

	// FramesRemaining reports how many more frames Pull will produce
	// before the source is exhausted.
	FramesRemaining() int

	// Close releases any child process or file handle the source owns.
	Close() error
}
