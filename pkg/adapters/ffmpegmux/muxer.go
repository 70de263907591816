// Package ffmpegmux implements ports.Muxer by shelling out to ffmpeg
// twice, grounded on original_source/src/incremental_renderer.py's
// finalize(): a concat-demuxer stream copy to join segments without
// re-encoding, then a second pass that loops or truncates a background
// track against the video's length.
package ffmpegmux

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/user/autovlog/pkg/ports"
	"github.com/user/autovlog/pkg/render"
)

// Muxer implements ports.Muxer over an ffmpeg binary on PATH.
type Muxer struct {
	ffmpegPath string
}

// New creates a Muxer. An empty ffmpegPath resolves to "ffmpeg" on PATH.
func New(ffmpegPath string) *Muxer {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	return &Muxer{ffmpegPath: ffmpegPath}
}

// Concat implements ports.Muxer: it writes a concat-demuxer manifest
// alongside outputPath and runs a stream-copy join, exactly as
// finalize()'s first ffmpeg invocation does.
func (m *Muxer) Concat(segmentPaths []string, outputPath string) error {
	if len(segmentPaths) == 0 {
		return render.NewMuxError("ffmpegmux.Concat", render.ErrEmptySession)
	}

	manifestPath := filepath.Join(filepath.Dir(outputPath), "concat.txt")
	var b strings.Builder
	for _, p := range segmentPaths {
		fmt.Fprintf(&b, "file '%s'\n", p)
	}
	if err := os.WriteFile(manifestPath, []byte(b.String()), 0644); err != nil {
		return render.NewMuxError("ffmpegmux.Concat: write manifest", err)
	}
	defer os.Remove(manifestPath)

	cmd := exec.Command(m.ffmpegPath,
		"-y",
		"-f", "concat",
		"-safe", "0",
		"-i", manifestPath,
		"-c:v", "copy",
		"-movflags", "+faststart",
		outputPath,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return render.NewMuxError("ffmpegmux.Concat", fmt.Errorf("%w: %s", err, out))
	}
	return nil
}

// MuxAudio implements ports.Muxer: the BGM track is looped indefinitely
// and truncated to the video's duration via -shortest, matching
// finalize()'s BGM pass.
func (m *Muxer) MuxAudio(videoPath, audioPath, outputPath string) error {
	cmd := exec.Command(m.ffmpegPath,
		"-y",
		"-i", videoPath,
		"-stream_loop", "-1",
		"-i", audioPath,
		"-c:v", "copy",
		"-c:a", "aac",
		"-ar", "44100",
		"-ac", "2",
		"-b:a", "192k",
		"-shortest",
		"-movflags", "+faststart",
		outputPath,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return render.NewMuxError("ffmpegmux.MuxAudio", fmt.Errorf("%w: %s", err, out))
	}
	return nil
}

var _ ports.Muxer = (*Muxer)(nil)
