package glcompositor

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/user/autovlog/pkg/render"
)

const vertexShaderSrc = `
#version 330 core
layout (location = 0) in vec2 in_pos;
layout (location = 1) in vec2 in_uv;
out vec2 v_uv;
void main() {
	gl_Position = vec4(in_pos, 0.0, 1.0);
	v_uv = in_uv;
}
`

// overlayCompose is shared by the blit and transition fragment
// programs: it alpha-blends the border texture and then the subtitle
// texture on top of a base color, matching the Compositor's
// clear -> draw base -> blend border -> blend subtitle pipeline.
const overlayCompose = `
uniform sampler2D borderTex;
uniform sampler2D subtitleTex;

vec4 composeOverlays(vec4 base, vec2 uv) {
	vec4 border = texture(borderTex, uv);
	vec3 withBorder = base.rgb * (1.0 - border.a) + border.rgb * border.a;
	vec4 sub = texture(subtitleTex, uv);
	vec3 withSubtitle = withBorder * (1.0 - sub.a) + sub.rgb * sub.a;
	return vec4(withSubtitle, 1.0);
}
`

// blitFragmentSrc draws a single source texture through the border and
// subtitle overlay compose step; used for the solo phase of spec.md §4.6.
const blitFragmentSrc = `
#version 330 core
in vec2 v_uv;
out vec4 f_color;
uniform sampler2D fromTex;
` + overlayCompose + `
void main() {
	f_color = composeOverlays(texture(fromTex, v_uv), v_uv);
}
`

var (
	reGetFrom = regexp.MustCompile(`(?i)\bvec4\s+getFromColor\s*\(`)
	reGetTo   = regexp.MustCompile(`(?i)\bvec4\s+getToColor\s*\(`)
	reRand    = regexp.MustCompile(`(?i)\bfloat\s+rand\s*\(`)
)

// buildTransitionFragmentSrc splices the effect's GLSL body into the
// fixed scaffold that declares the `tex0`/`tex1` (from/to) samplers, `progress`,
// `ratio`, and the getFromColor/getToColor/rand helpers, skipping any
// helper the effect source already defines itself. This mirrors
// original_source/src/shaders.py's create_transition_shader, plus the
// border/subtitle overlay compose step folded into the same pass so
// the Compositor stays single-pass per spec.md §4.4.
func buildTransitionFragmentSrc(effect render.TransitionEffect) string {
	var helpers []string
	if !reGetFrom.MatchString(effect.Source) {
		helpers = append(helpers, "vec4 getFromColor(vec2 uv) { return texture(tex0, uv); }")
	}
	if !reGetTo.MatchString(effect.Source) {
		helpers = append(helpers, "vec4 getToColor(vec2 uv) { return texture(tex1, uv); }")
	}
	if !reRand.MatchString(effect.Source) {
		helpers = append(helpers, "float rand(vec2 co) { return fract(sin(dot(co.xy, vec2(12.9898, 78.233))) * 43758.5453); }")
	}

	return fmt.Sprintf(`
#version 330 core
in vec2 v_uv;
out vec4 f_color;
uniform sampler2D tex0, tex1;
uniform float progress, ratio;
%s
%s
%s
void main() {
	vec4 blended;
	if (progress <= 0.0) blended = texture(tex0, v_uv);
	else if (progress >= 1.0) blended = texture(tex1, v_uv);
	else blended = transition(v_uv);
	f_color = composeOverlays(blended, v_uv);
}
`, overlayCompose, strings.Join(helpers, "\n"), effect.Source)
}

// compileProgram compiles and links a vertex+fragment shader pair.
func compileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vs, err := compileShader(vertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, render.NewGpuError("glcompositor.compileProgram: vertex", err)
	}
	defer gl.DeleteShader(vs)

	fs, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, render.NewGpuError("glcompositor.compileProgram: fragment", err)
	}
	defer gl.DeleteShader(fs)

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vs)
	gl.AttachShader(prog, fs)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return 0, render.NewGpuError("glcompositor.compileProgram: link", fmt.Errorf("%s", log))
	}

	return prog, nil
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src + "\x00")
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile failed: %s\nsource:\n%s", log, src)
	}

	return shader, nil
}
