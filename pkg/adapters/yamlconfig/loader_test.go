package yamlconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/user/autovlog/pkg/ports"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func setupConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	writeFile(t, filepath.Join(dir, "global.yaml"), `
global:
  width: 1080
  height: 1920
  fps: 30
  image_duration: 3
  video_duration: 4
  transition_duration: 1
`)

	writeFile(t, filepath.Join(dir, "assets", "border.png"), "not a real png, just needs to exist")
	writeFile(t, filepath.Join(dir, "assets", "font.ttf"), "not a real font, just needs to exist")
	writeFile(t, filepath.Join(dir, "assets", "fade.glsl"), "vec4 transition(vec2 uv) { return mix(texture(tex0, uv), texture(tex1, uv), progress); }")

	writeFile(t, filepath.Join(dir, "vertical.yaml"), `
name: vertical
description: A vertical template
border:
  path: `+filepath.Join(dir, "assets", "border.png")+`
transitions:
  - `+filepath.Join(dir, "assets", "fade.glsl")+`
font:
  path: `+filepath.Join(dir, "assets", "font.ttf")+`
  size: 48
  color: "#ffffff"
  outline_color: "#000000ff"
  outline_width: 2
`)

	return dir
}

func TestLoaderLoadGlobal(t *testing.T) {
	dir := setupConfigDir(t)
	l := New(dir)

	dto, err := l.LoadGlobal()
	if err != nil {
		t.Fatalf("LoadGlobal failed: %v", err)
	}
	if dto.Width != 1080 || dto.Height != 1920 {
		t.Errorf("dimensions = %dx%d, want 1080x1920", dto.Width, dto.Height)
	}
	if dto.FPS != 30 {
		t.Errorf("fps = %v, want 30", dto.FPS)
	}
}

func TestLoaderLoadGlobalRejectsTransitionAtLeastAsLongAsClip(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "global.yaml"), `
global:
  width: 1080
  height: 1920
  fps: 30
  image_duration: 3
  video_duration: 1
  transition_duration: 1
`)

	l := New(dir)
	if _, err := l.LoadGlobal(); err == nil {
		t.Fatal("expected an error when transition_duration >= video_duration, got nil")
	}
}

func TestLoaderLoadTemplate(t *testing.T) {
	dir := setupConfigDir(t)
	l := New(dir)

	dto, err := l.LoadTemplate("vertical")
	if err != nil {
		t.Fatalf("LoadTemplate failed: %v", err)
	}
	if dto.Name != "vertical" {
		t.Errorf("name = %q, want %q", dto.Name, "vertical")
	}
	if len(dto.Transitions) != 1 {
		t.Fatalf("transitions = %v, want 1 entry", dto.Transitions)
	}
}

func TestLoaderLoadTemplateRejectsMissingAsset(t *testing.T) {
	dir := setupConfigDir(t)
	writeFile(t, filepath.Join(dir, "broken.yaml"), `
name: broken
border:
  path: `+filepath.Join(dir, "assets", "does-not-exist.png")+`
transitions:
  - `+filepath.Join(dir, "assets", "fade.glsl")+`
`)

	l := New(dir)
	if _, err := l.LoadTemplate("broken"); err == nil {
		t.Fatal("expected an error for a missing border asset, got nil")
	}
}

func TestLoaderLoadTemplateRejectsEmptyTransitions(t *testing.T) {
	dir := setupConfigDir(t)
	writeFile(t, filepath.Join(dir, "notransitions.yaml"), `
name: notransitions
`)

	l := New(dir)
	if _, err := l.LoadTemplate("notransitions"); err == nil {
		t.Fatal("expected an error for an empty transition list, got nil")
	}
}

func TestLoaderListTemplatesExcludesGlobal(t *testing.T) {
	dir := setupConfigDir(t)
	l := New(dir)

	summaries, err := l.ListTemplates()
	if err != nil {
		t.Fatalf("ListTemplates failed: %v", err)
	}
	if len(summaries) != 1 || summaries[0].Name != "vertical" {
		t.Fatalf("summaries = %+v, want a single vertical entry", summaries)
	}
}

func TestLoadTransitionsNamesEffectsAfterBasename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wipe.glsl")
	writeFile(t, path, "vec4 transition(vec2 uv) { return texture(tex1, uv); }")

	effects, err := LoadTransitions([]string{path})
	if err != nil {
		t.Fatalf("LoadTransitions failed: %v", err)
	}
	if len(effects) != 1 || effects[0].Name != "wipe" {
		t.Fatalf("effects = %+v, want a single effect named wipe", effects)
	}
}

func TestLoadTransitionsRejectsEmptyList(t *testing.T) {
	if _, err := LoadTransitions(nil); err == nil {
		t.Fatal("expected an error for an empty transition list, got nil")
	}
}

func TestParseColorHex6(t *testing.T) {
	c := ParseColor("#ff0080")
	if c.R != 0xff || c.G != 0x00 || c.B != 0x80 || c.A != 0xff {
		t.Errorf("ParseColor(#ff0080) = %+v", c)
	}
}

func TestParseColorHex8(t *testing.T) {
	c := ParseColor("#ff008040")
	if c.R != 0xff || c.G != 0x00 || c.B != 0x80 || c.A != 0x40 {
		t.Errorf("ParseColor(#ff008040) = %+v", c)
	}
}

func TestParseColorInvalidDefaultsToOpaqueBlack(t *testing.T) {
	c := ParseColor("not-a-color")
	if c.R != 0 || c.G != 0 || c.B != 0 || c.A != 255 {
		t.Errorf("ParseColor(invalid) = %+v, want opaque black", c)
	}
}

func TestToTemplateFallsBackToBorderVideoFromBorder(t *testing.T) {
	var dto ports.TemplateDTO
	dto.Border.Path = "border.png"

	tmpl := ToTemplate(dto)
	if tmpl.BorderVideoImagePath != "border.png" {
		t.Errorf("BorderVideoImagePath = %q, want fallback to border.png", tmpl.BorderVideoImagePath)
	}
}

func TestToGlobalConfigResolvesFrameCounts(t *testing.T) {
	dto := ports.GlobalConfigDTO{
		Width: 1080, Height: 1920, FPS: 30,
		ImageDuration:      3,
		VideoDuration:      4,
		TransitionDuration: 1,
	}
	global := ToGlobalConfig(dto)
	counts := global.Resolve()

	if counts.ImageFrames != 90 {
		t.Errorf("ImageFrames = %d, want 90", counts.ImageFrames)
	}
	if counts.VideoFrames != 120 {
		t.Errorf("VideoFrames = %d, want 120", counts.VideoFrames)
	}
	if counts.TransFrames != 30 {
		t.Errorf("TransFrames = %d, want 30", counts.TransFrames)
	}
	if counts.SoloFrames != counts.VideoFrames-counts.TransFrames {
		t.Errorf("SoloFrames = %d, want %d", counts.SoloFrames, counts.VideoFrames-counts.TransFrames)
	}
}
