package glcompositor

import (
	"strings"
	"testing"

	"github.com/user/autovlog/pkg/render"
)

func TestBuildTransitionFragmentSrcInjectsDefaultHelpers(t *testing.T) {
	effect := render.TransitionEffect{Name: "fade", Source: "vec4 transition(vec2 uv) { return mix(getFromColor(uv), getToColor(uv), progress); }"}

	src := buildTransitionFragmentSrc(effect)

	if !strings.Contains(src, "vec4 getFromColor(vec2 uv) { return texture(tex0, uv); }") {
		t.Error("expected a default getFromColor helper to be injected")
	}
	if !strings.Contains(src, "vec4 getToColor(vec2 uv) { return texture(tex1, uv); }") {
		t.Error("expected a default getToColor helper to be injected")
	}
	if !strings.Contains(src, "float rand(vec2 co)") {
		t.Error("expected a default rand helper to be injected")
	}
	if !strings.Contains(src, effect.Source) {
		t.Error("expected the effect's own transition() body to be spliced in verbatim")
	}
}

func TestBuildTransitionFragmentSrcSkipsHelpersTheEffectDefinesItself(t *testing.T) {
	effect := render.TransitionEffect{
		Name: "custom-noise",
		Source: `
vec4 getFromColor(vec2 uv) { return texture(tex0, uv) * 0.5; }
float rand(vec2 co) { return 0.5; }
vec4 transition(vec2 uv) { return getFromColor(uv); }
`,
	}

	src := buildTransitionFragmentSrc(effect)

	if strings.Count(src, "vec4 getFromColor(vec2 uv)") != 1 {
		t.Error("expected the effect's own getFromColor to be used instead of a duplicate default")
	}
	if strings.Count(src, "float rand(vec2 co)") != 1 {
		t.Error("expected the effect's own rand to be used instead of a duplicate default")
	}
	// getToColor isn't defined by the effect, so the default must still
	// be injected.
	if !strings.Contains(src, "vec4 getToColor(vec2 uv) { return texture(tex1, uv); }") {
		t.Error("expected the default getToColor helper to still be injected")
	}
}

func TestBuildTransitionFragmentSrcFoldsInOverlayCompose(t *testing.T) {
	effect := render.TransitionEffect{Name: "wipe", Source: "vec4 transition(vec2 uv) { return texture(tex1, uv); }"}

	src := buildTransitionFragmentSrc(effect)

	if !strings.Contains(src, "composeOverlays(blended, v_uv)") {
		t.Error("expected the border/subtitle overlay compose step to be folded into main()")
	}
	if !strings.Contains(src, "uniform sampler2D tex0, tex1") {
		t.Error("expected the tex0/tex1 sampler declarations")
	}
}
