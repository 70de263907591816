// Package videosource provides a ports.FrameSource backed by an ffmpeg
// child process that normalizes an input video to raw RGB24 frames at
// the canonical output dimensions and frame rate.
package videosource

import (
	"bufio"
	"fmt"
	"io"
	"os/exec"

	"github.com/user/autovlog/pkg/ports"
	"github.com/user/autovlog/pkg/render"
)

// Source implements ports.FrameSource for a video clip, normalizing
// presentation timestamps to zero, scaling to (width, height), and
// resampling to fps, exactly as spec.md §4.1 describes.
type Source struct {
	path       string
	width      int
	height     int
	frameSize  int
	terminal   int
	frameCount int
	lastFrame  []byte
	eof        bool
	cmd        *exec.Cmd
	stdout     io.ReadCloser
	reader     *bufio.Reader
	ffmpegPath string
}

// New spawns the normalization process and performs the mandatory
// first-frame preload so the downstream pipeline never sees a black
// frame while the decoder starts.
func New(ffmpegPath, path string, width, height int, fps float64, terminalFrames int) (*Source, error) {
	s := &Source{
		path:       path,
		width:      width,
		height:     height,
		frameSize:  render.Size(width, height),
		terminal:   terminalFrames,
		ffmpegPath: ffmpegPath,
	}

	args := []string{
		"-y",
		"-i", path,
		"-vf", fmt.Sprintf("setpts=PTS-STARTPTS,scale=%d:%d,fps=%f", width, height, fps),
		"-f", "rawvideo",
		"-pix_fmt", "rgb24",
		"pipe:1",
	}

	cmd := exec.Command(ffmpegPath, args...)
	cmd.Stderr = nil

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, render.NewDecodeError("videosource.New", err)
	}
	s.stdout = stdout
	s.reader = bufio.NewReaderSize(stdout, s.frameSize)
	s.cmd = cmd

	if err := cmd.Start(); err != nil {
		return nil, render.NewDecodeError("videosource.New", err)
	}

	if err := s.preloadFirstFrame(); err != nil {
		_ = s.Close()
		return nil, render.NewDecodeError("videosource.New: first-frame preload", err)
	}

	return s, nil
}

func (s *Source) preloadFirstFrame() error {
	buf := make([]byte, s.frameSize)
	n, err := io.ReadFull(s.reader, buf)
	if n < s.frameSize {
		return fmt.Errorf("decoder produced no frames before EOF: %w", err)
	}
	s.lastFrame = buf
	return nil
}

// Pull returns the next frame. See ports.FrameSource.
func (s *Source) Pull() (render.Frame, error) {
	if s.frameCount >= s.terminal {
		return render.Frame{}, fmt.Errorf("videosource: pulled past terminal frame count")
	}

	// The first pull returns the preloaded frame.
	if s.frameCount == 0 {
		s.frameCount++
		return render.Frame{Width: s.width, Height: s.height, Pix: s.lastFrame}, nil
	}

	if !s.eof {
		buf := make([]byte, s.frameSize)
		n, err := io.ReadFull(s.reader, buf)
		if n == s.frameSize {
			s.lastFrame = buf
		} else {
			s.eof = true
			_ = err
		}
	}

	s.frameCount++
	return render.Frame{Width: s.width, Height: s.height, Pix: s.lastFrame}, nil
}

// FramesRemaining reports how many more frames Pull will produce.
func (s *Source) FramesRemaining() int {
	return s.terminal - s.frameCount
}

// Close releases the ffmpeg child process.
func (s *Source) Close() error {
	if s.stdout != nil {
		_ = s.stdout.Close()
	}
	if s.cmd != nil && s.cmd.Process != nil {
		_ = s.cmd.Wait()
	}
	return nil
}

var _ ports.FrameSource = (*Source)(nil)
