// Package session implements the incremental-session controller:
// Init renders the cover-image segment, Append renders one clip
// segment against the session's stored last frame and rotates the
// template's transition cursor, and Finalize concatenates every
// segment and muxes in the template's background track. Grounded on
// original_source/src/incremental_renderer.py's IncrementalRenderer,
// restructured around the ports the rest of this module defines
// instead of holding a live GL context across calls.
package session

import (
	"fmt"
	"runtime"

	"github.com/google/uuid"

	"github.com/user/autovlog/pkg/adapters/h264encoder"
	"github.com/user/autovlog/pkg/render"
	"github.com/user/autovlog/pkg/render/driver"

	"github.com/user/autovlog/pkg/ports"
)

// Deps bundles the ports a Controller needs. A fresh Compositor (and
// therefore a fresh GL context/OS thread) is created per call via the
// Compositor field, since render runs never share a GL context and a
// session's Init/Append calls may land on different goroutines.
type Deps struct {
	Store      ports.SessionStore
	Templates  ports.TemplateLoader
	Subtitle   func(width, height int, fontPath string, fontSize float64) ports.SubtitleRasterizer
	Compositor func(width, height int) (CompositorCloser, error)
	FFmpegPath string
}

// CompositorCloser is the compositor surface a Controller drives: all
// of ports.Compositor (draws, overlays and Close) together with
// ports.ShaderRegistry's InstallTransition.
type CompositorCloser interface {
	ports.Compositor
	ports.ShaderRegistry
}

// Controller implements the Init/Append/Finalize operations of
// spec.md §4.8 on top of Deps.
type Controller struct {
	deps Deps
}

// New creates a Controller.
func New(deps Deps) *Controller {
	return &Controller{deps: deps}
}

// Init implements ports.SessionStore.Create followed by the cover
// image render, returning the new session id.
func (c *Controller) Init(templateName, imagePath string) (string, error) {
	sessionID := uuid.NewString()

	global, err := c.deps.Templates.LoadGlobal()
	if err != nil {
		return "", err
	}
	dto, err := c.deps.Templates.LoadTemplate(templateName)
	if err != nil {
		return "", err
	}

	if _, err := c.deps.Store.Create(sessionID, templateName); err != nil {
		return "", err
	}

	if err := c.renderImage(sessionID, global, dto, imagePath); err != nil {
		c.deps.Store.SetStatus(sessionID, render.StatusFailed)
		return "", err
	}
	return sessionID, nil
}

// Append implements the clip append operation: it loads the session's
// last composited frame, renders the transition+clip against the next
// rotating transition effect, appends the segment, and caches the new
// last frame.
func (c *Controller) Append(sessionID, videoPath string) (int, error) {
	if err := c.deps.Store.BeginAppend(sessionID); err != nil {
		return 0, err
	}
	defer c.deps.Store.EndAppend(sessionID)

	meta, err := c.deps.Store.Load(sessionID)
	if err != nil {
		return 0, err
	}
	if len(meta.Segments) >= 6 {
		return 0, render.NewInputError("session.Append", render.ErrTooManyClips)
	}

	global, err := c.deps.Templates.LoadGlobal()
	if err != nil {
		return 0, err
	}
	dto, err := c.deps.Templates.LoadTemplate(meta.TemplateName)
	if err != nil {
		return 0, err
	}
	counts := globalConfig(global).Resolve()
	if counts.TransFrames >= counts.VideoFrames {
		return 0, render.NewConfigError("session.Append", render.ErrTransitionExceedsClip)
	}

	lastFrame, err := c.deps.Store.LoadLastFrame(sessionID)
	if err != nil {
		return 0, err
	}

	effects, err := transitionEffects(dto.Transitions)
	if err != nil {
		return 0, err
	}
	idx, err := c.deps.Store.NextTransitionIndex(sessionID, len(effects))
	if err != nil {
		return 0, err
	}
	effect := effects[idx]

	segmentIndex := len(meta.Segments)
	segmentPath := c.deps.Store.SegmentPath(sessionID, segmentIndex)

	newLast, err := c.withRenderRun(global, dto, true, func(d *driver.Driver, encoder ports.EncoderSink) (render.Frame, error) {
		return d.RenderClipSegment(lastFrame, videoPath, effect, counts, encoder)
	}, segmentPath)
	if err != nil {
		c.deps.Store.SetStatus(sessionID, render.StatusFailed)
		return 0, err
	}

	if err := c.deps.Store.SaveLastFrame(sessionID, newLast); err != nil {
		return 0, err
	}
	if _, err := c.deps.Store.AppendSegment(sessionID, render.Segment{
		Frames:         counts.TransFrames + counts.SoloFrames,
		Type:           render.SegmentVideo,
		SourcePath:     videoPath,
		TransitionName: effect.Name,
	}); err != nil {
		return 0, err
	}
	return segmentIndex, nil
}

// Finalize implements ports.Muxer-backed concatenation and BGM mux,
// returning the final output path and marking the session completed.
func (c *Controller) Finalize(muxer ports.Muxer, sessionID, outputPath string) (string, error) {
	meta, err := c.deps.Store.Load(sessionID)
	if err != nil {
		return "", err
	}
	if len(meta.Segments) == 0 {
		return "", render.NewSessionError("session.Finalize", render.ErrEmptySession)
	}

	dto, err := c.deps.Templates.LoadTemplate(meta.TemplateName)
	if err != nil {
		return "", err
	}

	segmentPaths, err := c.deps.Store.SegmentPaths(sessionID)
	if err != nil {
		return "", err
	}
	if outputPath == "" {
		outputPath = fmt.Sprintf("%s/final_%s.mp4", c.deps.Store.Directory(sessionID), sessionID)
	}

	concatPath := outputPath + ".concat.mp4"
	if err := muxer.Concat(segmentPaths, concatPath); err != nil {
		return "", err
	}

	if dto.BGM.Path != "" {
		if err := muxer.MuxAudio(concatPath, dto.BGM.Path, outputPath); err != nil {
			return "", err
		}
	} else {
		outputPath = concatPath
	}

	if err := c.deps.Store.SetOutputPath(sessionID, outputPath); err != nil {
		return "", err
	}
	return outputPath, nil
}

func (c *Controller) renderImage(sessionID string, global ports.GlobalConfigDTO, dto ports.TemplateDTO, imagePath string) error {
	counts := globalConfig(global).Resolve()
	segmentPath := c.deps.Store.SegmentPath(sessionID, 0)

	lastFrame, err := c.withRenderRun(global, dto, false, func(d *driver.Driver, encoder ports.EncoderSink) (render.Frame, error) {
		return d.RenderImageSegment(imagePath, imagePosition(dto), counts, templateFromDTO(dto), encoder)
	}, segmentPath)
	if err != nil {
		return err
	}

	if err := c.deps.Store.SaveLastFrame(sessionID, lastFrame); err != nil {
		return err
	}
	_, err = c.deps.Store.AppendSegment(sessionID, render.Segment{
		Frames:     counts.ImageFrames,
		Type:       render.SegmentImage,
		SourcePath: imagePath,
	})
	return err
}

// withRenderRun owns the one-OS-thread GL context lifecycle for a
// single segment render, per spec.md §5. isVideoSegment selects which
// of the template's two border variants gets uploaded: the image
// border for the cover segment, the video border (falling back to the
// image border when unset) for appended clip segments, matching
// api_renderer.py's use_image_border switch between image_border_tex
// and video_border_tex.
func (c *Controller) withRenderRun(global ports.GlobalConfigDTO, dto ports.TemplateDTO, isVideoSegment bool, render_ func(*driver.Driver, ports.EncoderSink) (render.Frame, error), segmentPath string) (render.Frame, error) {
	type result struct {
		frame render.Frame
		err   error
	}
	done := make(chan result, 1)

	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		compositor, err := c.deps.Compositor(global.Width, global.Height)
		if err != nil {
			done <- result{err: err}
			return
		}
		defer compositor.Close()

		borderPath := dto.Border.Path
		if isVideoSegment {
			borderPath = firstNonEmptyPath(dto.BorderVideo.Path, dto.Border.Path)
		}
		borderRGBA := loadBorderRGBA(borderPath, global.Width, global.Height)
		if err := compositor.SetBorder(borderRGBA); err != nil {
			done <- result{err: err}
			return
		}

		tmpl := templateFromDTO(dto)
		subtitle := c.deps.Subtitle(global.Width, global.Height, tmpl.FontPath, tmpl.FontSize)

		encoder, err := h264encoder.New(c.deps.FFmpegPath, segmentPath, global.Width, global.Height, global.FPS)
		if err != nil {
			done <- result{err: err}
			return
		}

		d := driver.New(compositor, subtitle, global.Width, global.Height, global.FPS, c.deps.FFmpegPath)
		frame, renderErr := render_(d, encoder)
		if renderErr != nil {
			encoder.Abort()
			done <- result{err: renderErr}
			return
		}

		if _, err := encoder.Close(); err != nil {
			done <- result{err: err}
			return
		}
		done <- result{frame: frame}
	}()

	r := <-done
	return r.frame, r.err
}
