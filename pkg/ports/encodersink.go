package ports

import "github.com/user/autovlog/pkg/render"

// EncoderSink is an H.264 encoder process fed raw RGB24 frames on
// stdin; the ffmpeg adapter encodes in software with libx264 and uses
// no hardware encoder. Write is synchronous and blocks when the
// encoder's input pipe is full. Close waits for the encoder to drain
// and returns the path of the Annex-B elementary stream it produced,
// in one-shot and session renders alike.
type EncoderSink interface {
	// Write sends one frame (exactly Width*Height*3 bytes) to the
	// encoder. It is an EncodeError if the encoder accepts fewer bytes
	// than written or has already exited.
	Write(frame render.Frame) error

	// Close signals end of input, waits for the encoder process to
	// exit, and returns the output file path.
	Close() (string, error)

	// Abort kills the encoder process immediately without waiting for
	// a clean exit, used by cancellation.
	Abort() error
}
