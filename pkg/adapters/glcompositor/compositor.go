package glcompositor

import (
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/user/autovlog/pkg/ports"
	"github.com/user/autovlog/pkg/render"
)

// Compositor implements ports.Compositor and ports.ShaderRegistry over
// one gpuContext. It is not safe for concurrent use; one render run
// owns exactly one Compositor, per spec.md §5.
type Compositor struct {
	ctx *gpuContext

	blitProgram       uint32
	transitionProgram uint32
	activeEffect      string

	ratio float64
}

// New creates a Compositor with its own offscreen GpuContext sized
// (width, height). Call on the OS thread that will drive the whole
// render run (after runtime.LockOSThread).
func New(width, height int) (*Compositor, error) {
	ctx, err := newGPUContext(width, height)
	if err != nil {
		return nil, err
	}

	blit, err := compileProgram(vertexShaderSrc, blitFragmentSrc)
	if err != nil {
		ctx.Close()
		return nil, err
	}

	c := &Compositor{
		ctx:         ctx,
		blitProgram: blit,
		ratio:       float64(width) / float64(height),
	}
	return c, nil
}

// InstallTransition implements ports.ShaderRegistry: it relinks the
// transition program only when the effect has changed since the last
// call, since re-linking a program per frame would be wasted GPU work.
func (c *Compositor) InstallTransition(effect render.TransitionEffect) error {
	if effect.Name == c.activeEffect && c.transitionProgram != 0 {
		return nil
	}

	prog, err := compileProgram(vertexShaderSrc, buildTransitionFragmentSrc(effect))
	if err != nil {
		return err
	}

	if c.transitionProgram != 0 {
		gl.DeleteProgram(c.transitionProgram)
	}
	c.transitionProgram = prog
	c.activeEffect = effect.Name
	return nil
}

// SetBorder uploads the border overlay texture (RGBA).
func (c *Compositor) SetBorder(rgba []byte) error {
	return c.upload(c.ctx.borderTex, rgba)
}

// SetSubtitle uploads the subtitle overlay texture (RGBA).
func (c *Compositor) SetSubtitle(rgba []byte) error {
	return c.upload(c.ctx.subTex, rgba)
}

func (c *Compositor) upload(tex uint32, rgba []byte) error {
	if len(rgba) != c.ctx.width*c.ctx.height*4 {
		return render.NewGpuError("glcompositor.upload", errWrongBufferSize)
	}
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(c.ctx.width), int32(c.ctx.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba))
	return nil
}

func (c *Compositor) uploadRGB(tex uint32, rgb []byte) error {
	if len(rgb) != c.ctx.width*c.ctx.height*3 {
		return render.NewGpuError("glcompositor.uploadRGB", errWrongBufferSize)
	}
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(c.ctx.width), int32(c.ctx.height), gl.RGB, gl.UNSIGNED_BYTE, gl.Ptr(rgb))
	return nil
}

// DrawSolo implements ports.Compositor.
func (c *Compositor) DrawSolo(from render.Frame) (render.Frame, error) {
	if err := c.uploadRGB(c.ctx.fromTex, from.Pix); err != nil {
		return render.Frame{}, err
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, c.ctx.fbo)
	gl.UseProgram(c.blitProgram)

	c.bindSampler(c.blitProgram, "fromTex", 0, c.ctx.fromTex)
	c.bindSampler(c.blitProgram, "borderTex", 1, c.ctx.borderTex)
	c.bindSampler(c.blitProgram, "subtitleTex", 2, c.ctx.subTex)

	c.drawQuad()

	return render.Frame{Width: c.ctx.width, Height: c.ctx.height, Pix: c.ctx.readFramebuffer()}, nil
}

// DrawTransition implements ports.Compositor.
func (c *Compositor) DrawTransition(from, to render.Frame, effect render.TransitionEffect, progress float64) (render.Frame, error) {
	if err := c.InstallTransition(effect); err != nil {
		return render.Frame{}, err
	}
	if err := c.uploadRGB(c.ctx.fromTex, from.Pix); err != nil {
		return render.Frame{}, err
	}
	if err := c.uploadRGB(c.ctx.toTex, to.Pix); err != nil {
		return render.Frame{}, err
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, c.ctx.fbo)
	gl.UseProgram(c.transitionProgram)

	c.bindSampler(c.transitionProgram, "tex0", 0, c.ctx.fromTex)
	c.bindSampler(c.transitionProgram, "tex1", 1, c.ctx.toTex)
	c.bindSampler(c.transitionProgram, "borderTex", 2, c.ctx.borderTex)
	c.bindSampler(c.transitionProgram, "subtitleTex", 3, c.ctx.subTex)

	if loc := gl.GetUniformLocation(c.transitionProgram, glStr("progress")); loc >= 0 {
		gl.Uniform1f(loc, float32(progress))
	}
	if loc := gl.GetUniformLocation(c.transitionProgram, glStr("ratio")); loc >= 0 {
		gl.Uniform1f(loc, float32(c.ratio))
	}

	c.drawQuad()

	return render.Frame{Width: c.ctx.width, Height: c.ctx.height, Pix: c.ctx.readFramebuffer()}, nil
}

func (c *Compositor) bindSampler(program uint32, name string, unit int32, tex uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, tex)
	if loc := gl.GetUniformLocation(program, glStr(name)); loc >= 0 {
		gl.Uniform1i(loc, unit)
	}
}

func (c *Compositor) drawQuad() {
	gl.BindVertexArray(c.ctx.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
}

// Close releases every program and the underlying GpuContext.
func (c *Compositor) Close() error {
	if c.blitProgram != 0 {
		gl.DeleteProgram(c.blitProgram)
	}
	if c.transitionProgram != 0 {
		gl.DeleteProgram(c.transitionProgram)
	}
	c.ctx.Close()
	return nil
}

func glStr(s string) *uint8 {
	b := append([]byte(s), 0)
	return (*uint8)(unsafe.Pointer(&b[0]))
}

var errWrongBufferSize = gpuErr("buffer size does not match frame dimensions")

type gpuErr string

func (e gpuErr) Error() string { return string(e) }

var (
	_ ports.Compositor     = (*Compositor)(nil)
	_ ports.ShaderRegistry = (*Compositor)(nil)
)
