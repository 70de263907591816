// Package glcompositor implements ports.Compositor, ports.ShaderRegistry
// and the offscreen GpuContext of spec.md §4.2/§4.4 on top of a real
// OpenGL 3.3 core-profile context, using github.com/go-gl/gl and
// github.com/go-gl/glfw for context creation. go-gl is a genuine
// ecosystem dependency already present in the retrieved example pack
// (pulled in transitively by the Fyne desktop stack in
// kikiluvv-slopCannon/go.mod); this package imports it directly rather
// than through a GUI toolkit.
//
// A render run must call runtime.LockOSThread before constructing a
// Compositor: GL contexts are bound to the OS thread that created them,
// and this package never migrates GL calls across goroutines.
package glcompositor

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/user/autovlog/pkg/render"
)

var glfwInitOnce sync.Once
var glfwInitErr error

func ensureGLFWInit() error {
	glfwInitOnce.Do(func() {
		glfwInitErr = glfw.Init()
	})
	return glfwInitErr
}

// gpuContext owns the offscreen rendering surface: a hidden GLFW window
// providing the GL context, one FBO matching the output dimensions, and
// the textures the Compositor draws with.
type gpuContext struct {
	window *glfw.Window

	width, height int

	fbo       uint32
	colorTex  uint32
	fromTex   uint32 // video/image frame A (RGB)
	toTex     uint32 // video/image frame B (RGB), transition target
	borderTex uint32 // border overlay (RGBA)
	subTex    uint32 // subtitle overlay (RGBA)

	vao uint32 // full-screen quad, shared by every program
	vbo uint32
}

func newGPUContext(width, height int) (*gpuContext, error) {
	if err := ensureGLFWInit(); err != nil {
		return nil, render.NewGpuError("glcompositor.newGPUContext: glfw.Init", err)
	}

	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	win, err := glfw.CreateWindow(width, height, "autovlog-offscreen", nil, nil)
	if err != nil {
		return nil, render.NewGpuError("glcompositor.newGPUContext: CreateWindow", err)
	}
	win.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return nil, render.NewGpuError("glcompositor.newGPUContext: gl.Init", err)
	}

	ctx := &gpuContext{window: win, width: width, height: height}
	if err := ctx.setup(); err != nil {
		ctx.Close()
		return nil, err
	}
	return ctx, nil
}

func (c *gpuContext) setup() error {
	gl.GenFramebuffers(1, &c.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, c.fbo)

	c.colorTex = newTexture(c.width, c.height, gl.RGB, nil)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, c.colorTex, 0)

	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		return render.NewGpuError("glcompositor.setup", fmt.Errorf("framebuffer incomplete: 0x%x", status))
	}

	c.fromTex = newTexture(c.width, c.height, gl.RGB, nil)
	c.toTex = newTexture(c.width, c.height, gl.RGB, nil)
	c.borderTex = newTexture(c.width, c.height, gl.RGBA, nil)
	c.subTex = newTexture(c.width, c.height, gl.RGBA, nil)

	// Full-screen quad: position (x,y) + texcoord (u,v) interleaved.
	quad := []float32{
		-1, -1, 0, 1,
		1, -1, 1, 1,
		-1, 1, 0, 0,
		-1, 1, 0, 0,
		1, -1, 1, 1,
		1, 1, 1, 0,
	}
	gl.GenVertexArrays(1, &c.vao)
	gl.GenBuffers(1, &c.vbo)
	gl.BindVertexArray(c.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, c.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quad)*4, gl.Ptr(quad), gl.STATIC_DRAW)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 4*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, 4*4, gl.PtrOffset(2*4))
	gl.EnableVertexAttribArray(1)

	gl.Viewport(0, 0, int32(c.width), int32(c.height))
	gl.Disable(gl.DEPTH_TEST)

	return nil
}

func newTexture(width, height int, format uint32, pix []byte) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	var dataPtr unsafe.Pointer
	if pix != nil {
		dataPtr = gl.Ptr(pix)
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, int32(format), int32(width), int32(height), 0, format, gl.UNSIGNED_BYTE, dataPtr)
	return tex
}

// readFramebuffer reads back the FBO's color attachment as packed RGB.
func (c *gpuContext) readFramebuffer() []byte {
	buf := make([]byte, c.width*c.height*3)
	gl.BindFramebuffer(gl.FRAMEBUFFER, c.fbo)
	gl.ReadPixels(0, 0, int32(c.width), int32(c.height), gl.RGB, gl.UNSIGNED_BYTE, gl.Ptr(buf))
	return buf
}

// Close releases the quad's vertex array and buffer, the textures, the
// FBO and the hidden window. GL programs are released by Compositor.Close.
func (c *gpuContext) Close() {
	if c.vbo != 0 {
		gl.DeleteBuffers(1, &c.vbo)
	}
	if c.vao != 0 {
		gl.DeleteVertexArrays(1, &c.vao)
	}
	textures := []uint32{c.colorTex, c.fromTex, c.toTex, c.borderTex, c.subTex}
	for _, t := range textures {
		if t != 0 {
			gl.DeleteTextures(1, &t)
		}
	}
	if c.fbo != 0 {
		gl.DeleteFramebuffers(1, &c.fbo)
	}
	if c.window != nil {
		c.window.Destroy()
	}
}
