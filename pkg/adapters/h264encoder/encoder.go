// Package h264encoder implements ports.EncoderSink by piping raw RGB24
// frames into an ffmpeg subprocess and collecting its Annex-B H.264
// elementary stream output, grounded on original_source/src/video.py's
// create_encoder. The original targets h264_nvenc; this adapter targets
// libx264 instead so the same code path runs on every platform the
// rendering run might land on, with rc-lookahead disabled and the
// fastest preset to keep per-segment encode latency low, per spec.md
// §4.5.
package h264encoder

import (
	"bufio"
	"fmt"
	"io"
	"os/exec"
	"strconv"

	"github.com/user/autovlog/pkg/ports"
	"github.com/user/autovlog/pkg/render"
)

const bitrate = "15M"

// Sink implements ports.EncoderSink over an ffmpeg child process.
type Sink struct {
	path       string
	ffmpegPath string

	cmd    *exec.Cmd
	stdin  io.WriteCloser
	writer *bufio.Writer

	aborted bool
	closed  bool
}

// New starts an ffmpeg encoder process that will write an Annex-B H.264
// elementary stream to outputPath as RGB24 frames of (width, height) at
// fps are written to it.
func New(ffmpegPath, outputPath string, width, height int, fps float64) (*Sink, error) {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}

	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pix_fmt", "rgb24",
		"-s", fmt.Sprintf("%dx%d", width, height),
		"-r", strconv.FormatFloat(fps, 'f', -1, 64),
		"-i", "pipe:0",
		"-an",
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-preset", "ultrafast",
		"-b:v", bitrate,
		"-maxrate", bitrate,
		"-bufsize", bitrate,
		"-x264-params", "rc-lookahead=0:nal-hrd=cbr",
		"-f", "h264",
		outputPath,
	}

	cmd := exec.Command(ffmpegPath, args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, render.NewEncodeError("h264encoder.New: StdinPipe", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, render.NewEncodeError("h264encoder.New: Start", err)
	}

	return &Sink{
		path:       outputPath,
		ffmpegPath: ffmpegPath,
		cmd:        cmd,
		stdin:      stdin,
		writer:     bufio.NewWriterSize(stdin, render.Size(width, height)),
	}, nil
}

// Write implements ports.EncoderSink.
func (s *Sink) Write(frame render.Frame) error {
	if s.closed {
		return render.NewEncodeError("h264encoder.Write", fmt.Errorf("write after close"))
	}
	if _, err := s.writer.Write(frame.Pix); err != nil {
		return render.NewEncodeError("h264encoder.Write", err)
	}
	return nil
}

// Close implements ports.EncoderSink: it flushes, closes stdin and
// waits for ffmpeg to finish muxing the elementary stream to disk.
func (s *Sink) Close() (string, error) {
	if s.closed {
		return s.path, nil
	}
	s.closed = true

	if err := s.writer.Flush(); err != nil {
		s.stdin.Close()
		s.cmd.Wait()
		return "", render.NewEncodeError("h264encoder.Close: flush", err)
	}
	if err := s.stdin.Close(); err != nil {
		return "", render.NewEncodeError("h264encoder.Close: stdin close", err)
	}
	if err := s.cmd.Wait(); err != nil {
		return "", render.NewEncodeError("h264encoder.Close: ffmpeg exit", err)
	}
	return s.path, nil
}

// Abort implements ports.EncoderSink: it kills ffmpeg without waiting
// for a clean mux, used when a render run fails partway through a
// segment and the partial output must not be mistaken for a real one.
func (s *Sink) Abort() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.aborted = true
	s.stdin.Close()
	if s.cmd.Process != nil {
		s.cmd.Process.Kill()
	}
	s.cmd.Wait()
	return nil
}

var _ ports.EncoderSink = (*Sink)(nil)
