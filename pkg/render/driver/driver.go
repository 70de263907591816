// Package driver implements RenderDriver: the frame-by-frame schedule
// that turns one image or video segment into a sequence of composited
// frames pushed through an EncoderSink, grounded on
// original_source/src/incremental_renderer.py's render_init/render_append
// loops. One Driver renders exactly one render run's segments in order;
// it holds no segment-spanning state beyond the last composited frame
// callers thread back in for the next segment's transition.
package driver

import (
	"strconv"
	"strings"
	"time"

	"github.com/user/autovlog/pkg/adapters/imagesource"
	"github.com/user/autovlog/pkg/adapters/videosource"
	"github.com/user/autovlog/pkg/ports"
	"github.com/user/autovlog/pkg/render"
)

// Driver renders individual segments against a shared Compositor and
// SubtitleRasterizer, sized to one fixed output resolution/frame rate.
type Driver struct {
	compositor ports.Compositor
	subtitle   ports.SubtitleRasterizer

	width, height int
	fps           float64
	ffmpegPath    string
}

// New creates a Driver. ffmpegPath is passed through to videosource; an
// empty string resolves to "ffmpeg" on PATH.
func New(compositor ports.Compositor, subtitle ports.SubtitleRasterizer, width, height int, fps float64, ffmpegPath string) *Driver {
	return &Driver{compositor: compositor, subtitle: subtitle, width: width, height: height, fps: fps, ffmpegPath: ffmpegPath}
}

// RenderImageSegment renders the cover-image phase: the still image,
// optionally inset at pos, held for counts.ImageFrames frames with a
// typewriter-revealed subtitle over its first subtitleFrames frames.
// It returns the final composited frame for the next segment's
// transition "from" texture.
func (d *Driver) RenderImageSegment(imagePath string, pos render.ImagePosition, counts render.FrameCounts, tmpl render.Template, encoder ports.EncoderSink) (render.Frame, error) {
	src, err := imagesource.New(imagePath, d.width, d.height, pos, counts.ImageFrames)
	if err != nil {
		return render.Frame{}, err
	}
	defer src.Close()

	// Revealed per rune, not per byte: the subtitle template produces
	// CJK text (e.g. "2026年8月6日"), and slicing a Go string by byte
	// index cuts a multi-byte rune in half, handing gg.DrawString
	// invalid UTF-8 mid-reveal.
	fullTextRunes := []rune(resolveSubtitleTemplate(tmpl.SubtitleTemplate))
	typewriterSpeed := tmpl.TypewriterSpeed
	if typewriterSpeed < 1 {
		typewriterSpeed = 1
	}
	subtitleFrames := int(tmpl.SubtitleDuration*d.fps + 0.5)

	var lastFrame render.Frame
	subtitleCleared := false
	for i := 0; i < counts.ImageFrames; i++ {
		if i < subtitleFrames {
			visible := i/typewriterSpeed + 1
			if visible > len(fullTextRunes) {
				visible = len(fullTextRunes)
			}
			rgba, err := d.subtitle.Render(string(fullTextRunes[:visible]), toPortsRGBA(tmpl.TextColor), toPortsRGBA(tmpl.OutlineColor), tmpl.OutlineWidth)
			if err != nil {
				return render.Frame{}, err
			}
			if err := d.compositor.SetSubtitle(rgba); err != nil {
				return render.Frame{}, err
			}
		} else if !subtitleCleared {
			if err := d.compositor.SetSubtitle(make([]byte, d.width*d.height*4)); err != nil {
				return render.Frame{}, err
			}
			subtitleCleared = true
		}

		frame, err := src.Pull()
		if err != nil {
			return render.Frame{}, err
		}
		composited, err := d.compositor.DrawSolo(frame)
		if err != nil {
			return render.Frame{}, err
		}
		if err := encoder.Write(composited); err != nil {
			return render.Frame{}, err
		}
		lastFrame = composited
	}
	return lastFrame, nil
}

// RenderClipSegment renders one appended clip: a cross-fade from the
// previous segment's final frame into the clip for counts.TransFrames
// frames (the "from" texture held fixed, matching
// incremental_renderer.py's render_append), followed by
// counts.SoloFrames plain frames of the clip. It returns the final
// composited frame for the next segment's transition.
func (d *Driver) RenderClipSegment(lastFrame render.Frame, videoPath string, effect render.TransitionEffect, counts render.FrameCounts, encoder ports.EncoderSink) (render.Frame, error) {
	src, err := videosource.New(d.ffmpegPath, videoPath, d.width, d.height, d.fps, counts.VideoFrames)
	if err != nil {
		return render.Frame{}, err
	}
	defer src.Close()

	if err := d.compositor.InstallTransition(effect); err != nil {
		return render.Frame{}, err
	}

	var composited render.Frame
	for j := 0; j < counts.TransFrames; j++ {
		toFrame, err := src.Pull()
		if err != nil {
			return render.Frame{}, err
		}
		progress := float64(j+1) / float64(counts.TransFrames)
		composited, err = d.compositor.DrawTransition(lastFrame, toFrame, effect, progress)
		if err != nil {
			return render.Frame{}, err
		}
		if err := encoder.Write(composited); err != nil {
			return render.Frame{}, err
		}
	}

	for i := 0; i < counts.SoloFrames; i++ {
		frame, err := src.Pull()
		if err != nil {
			return render.Frame{}, err
		}
		composited, err = d.compositor.DrawSolo(frame)
		if err != nil {
			return render.Frame{}, err
		}
		if err := encoder.Write(composited); err != nil {
			return render.Frame{}, err
		}
	}
	return composited, nil
}

func toPortsRGBA(c interface{ RGBA() (r, g, b, a uint32) }) ports.RGBA {
	r, g, b, a := c.RGBA()
	return ports.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}

func resolveSubtitleTemplate(tmpl string) string {
	now := time.Now()
	tmpl = strings.ReplaceAll(tmpl, "{year}", strconv.Itoa(now.Year()))
	tmpl = strings.ReplaceAll(tmpl, "{month}", strconv.Itoa(int(now.Month())))
	tmpl = strings.ReplaceAll(tmpl, "{day}", strconv.Itoa(now.Day()))
	return tmpl
}
