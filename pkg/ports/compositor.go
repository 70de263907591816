package ports

import "github.com/user/autovlog/pkg/render"

// Compositor is the single-pass GPU blender: it owns the offscreen
// GpuContext (one FBO matching the output dimensions) and the
// ShaderRegistry (blit program and swappable transition program, each
// with the border/subtitle overlay step folded in), and exposes the two
// draw modes the render schedule needs.
//
// Texture sampler indices and the aspect ratio are set again on every
// draw call, together with progress and the per-frame texture uploads;
// they are not bound once per program.
type Compositor interface {
	ShaderRegistry

	// SetBorder uploads the template's border overlay (RGBA,
	// Width*Height*4 bytes). It is uploaded once per render and reused
	// for every frame.
	SetBorder(rgba []byte) error

	// SetSubtitle uploads the current subtitle overlay (RGBA,
	// Width*Height*4 bytes, fully transparent where no glyph is drawn).
	SetSubtitle(rgba []byte) error

	// DrawSolo composites a single source frame through the blit
	// program plus border/subtitle overlays and reads the result back.
	DrawSolo(from render.Frame) (render.Frame, error)

	// DrawTransition blends from/to through the named transition
	// effect's fragment program at the given progress in [0,1], plus
	// border/subtitle overlays, and reads the result back.
	DrawTransition(from, to render.Frame, effect render.TransitionEffect, progress float64) (render.Frame, error)

	// Close releases the GL context, programs, textures and FBO.
	Close() error
}

// ShaderRegistry loads and links the GPU programs a Compositor uses.
// The transition program is rebuilt whenever the active effect changes
// by splicing the effect's fragment source into a fixed scaffold.
type ShaderRegistry interface {
	// InstallTransition (re)links the transition program for the given
	// effect, skipping any helper the effect source already declares.
	InstallTransition(effect render.TransitionEffect) error
}

// SubtitleRasterizer renders a CPU-side RGBA raster of a subtitle
// string with an outline, memoizing the previous string so repeated
// calls with unchanged text are free.
type SubtitleRasterizer interface {
	// Render returns a Width*Height*4 RGBA buffer, transparent except
	// for the glyph region. Calling Render twice in a row with the same
	// text returns the identical buffer without redrawing.
	Render(text string, color, outlineColor RGBA, outlineWidth int) ([]byte, error)
}

// RGBA is a small color tuple so ports doesn't need to import image/color
// just for this one signature; adapters convert to/from color.RGBA freely.
type RGBA struct {
	R, G, B, A uint8
}
