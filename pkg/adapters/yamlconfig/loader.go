// Package yamlconfig implements ports.TemplateLoader over a directory
// of YAML files, grounded on the teacher's pkg/config/config.go for the
// yaml.v3/hex-color-parsing conventions and on
// original_source/src/config.py's TemplateConfig for the two-document
// (global + named template) layout and the validation load_transitions
// performs.
package yamlconfig

import (
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/user/autovlog/pkg/ports"
	"github.com/user/autovlog/pkg/render"
)

// Loader implements ports.TemplateLoader rooted at a config directory
// containing one global.yaml and one <name>.yaml per template.
type Loader struct {
	dir string
}

// New creates a Loader rooted at dir.
func New(dir string) *Loader {
	return &Loader{dir: dir}
}

// LoadGlobal implements ports.TemplateLoader.
func (l *Loader) LoadGlobal() (ports.GlobalConfigDTO, error) {
	raw, err := os.ReadFile(filepath.Join(l.dir, "global.yaml"))
	if err != nil {
		return ports.GlobalConfigDTO{}, render.NewConfigError("yamlconfig.LoadGlobal", err)
	}

	var doc struct {
		Global ports.GlobalConfigDTO `yaml:"global"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return ports.GlobalConfigDTO{}, render.NewConfigError("yamlconfig.LoadGlobal: parse", err)
	}
	dto := doc.Global

	counts := ToGlobalConfig(dto).Resolve()
	if counts.TransFrames >= counts.VideoFrames {
		return ports.GlobalConfigDTO{}, render.NewConfigError("yamlconfig.LoadGlobal", render.ErrTransitionExceedsClip)
	}
	return dto, nil
}

// LoadTemplate implements ports.TemplateLoader, validating that every
// referenced asset path exists and that at least one transition is
// configured, matching load_transitions' "no transitions found" error.
func (l *Loader) LoadTemplate(name string) (ports.TemplateDTO, error) {
	raw, err := os.ReadFile(filepath.Join(l.dir, name+".yaml"))
	if err != nil {
		return ports.TemplateDTO{}, render.NewConfigError("yamlconfig.LoadTemplate", err)
	}

	var dto ports.TemplateDTO
	if err := yaml.Unmarshal(raw, &dto); err != nil {
		return ports.TemplateDTO{}, render.NewConfigError("yamlconfig.LoadTemplate: parse", err)
	}
	if dto.Name == "" {
		dto.Name = name
	}

	if len(dto.Transitions) == 0 {
		return ports.TemplateDTO{}, render.NewConfigError("yamlconfig.LoadTemplate", render.ErrNoTransitions)
	}
	for _, asset := range []string{dto.Border.Path, dto.BorderVideo.Path, dto.BGM.Path, dto.Font.Path} {
		if asset == "" {
			continue
		}
		if _, err := os.Stat(asset); err != nil {
			return ports.TemplateDTO{}, render.NewConfigError("yamlconfig.LoadTemplate: missing asset", err)
		}
	}
	for _, t := range dto.Transitions {
		if _, err := os.Stat(t); err != nil {
			return ports.TemplateDTO{}, render.NewConfigError("yamlconfig.LoadTemplate: missing transition", err)
		}
	}

	return dto, nil
}

// ListTemplates implements ports.TemplateLoader by enumerating every
// *.yaml file in the config directory other than global.yaml.
func (l *Loader) ListTemplates() ([]ports.TemplateSummary, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, render.NewConfigError("yamlconfig.ListTemplates", err)
	}

	var summaries []ports.TemplateSummary
	for _, e := range entries {
		if e.IsDir() || e.Name() == "global.yaml" || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		name := strings.TrimSuffix(e.Name(), ".yaml")
		dto, err := l.LoadTemplate(name)
		if err != nil {
			continue
		}
		summaries = append(summaries, ports.TemplateSummary{Name: dto.Name, Description: dto.Description})
	}
	return summaries, nil
}

// LoadTransitions reads the GLSL source of every transition path in
// order, naming each effect after its file's base name without
// extension, matching original_source/src/shaders.py's load_transitions.
func LoadTransitions(paths []string) ([]render.TransitionEffect, error) {
	effects := make([]render.TransitionEffect, 0, len(paths))
	for _, p := range paths {
		src, err := os.ReadFile(p)
		if err != nil {
			return nil, render.NewConfigError("yamlconfig.LoadTransitions", err)
		}
		name := strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
		effects = append(effects, render.TransitionEffect{Name: name, Source: string(src)})
	}
	if len(effects) == 0 {
		return nil, render.NewConfigError("yamlconfig.LoadTransitions", render.ErrNoTransitions)
	}
	return effects, nil
}

// ToTemplate converts a TemplateDTO into the resolved render.Template
// the pipeline works with, parsing its hex color strings the way the
// teacher's config.ParseColor does.
func ToTemplate(dto ports.TemplateDTO) render.Template {
	return render.Template{
		Name:                 dto.Name,
		Description:          dto.Description,
		BorderImagePath:      dto.Border.Path,
		BorderVideoImagePath: firstNonEmpty(dto.BorderVideo.Path, dto.Border.Path),
		BGMPath:              dto.BGM.Path,
		TransitionPaths:      dto.Transitions,
		FontPath:             dto.Font.Path,
		FontSize:             dto.Font.Size,
		TextColor:            ParseColor(dto.Font.Color),
		OutlineColor:         ParseColor(dto.Font.OutlineColor),
		OutlineWidth:         dto.Font.OutlineWidth,
		SubtitleTemplate:     dto.Subtitle.Template,
		TypewriterSpeed:      dto.Subtitle.TypewriterSpeed,
		SubtitleDuration:     dto.Subtitle.Duration,
		ImagePosition: render.ImagePosition{
			X:      dto.ImagePosition.X,
			Y:      dto.ImagePosition.Y,
			Width:  dto.ImagePosition.Width,
			Height: dto.ImagePosition.Height,
		},
	}
}

// ToGlobalConfig converts a GlobalConfigDTO into render.GlobalConfig.
func ToGlobalConfig(dto ports.GlobalConfigDTO) render.GlobalConfig {
	return render.GlobalConfig{
		Width:              dto.Width,
		Height:             dto.Height,
		FPS:                dto.FPS,
		ImageDuration:      dto.ImageDuration,
		VideoDuration:      dto.VideoDuration,
		TransitionDuration: dto.TransitionDuration,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// ParseColor parses a "#rrggbb" or "#rrggbbaa" hex string to color.RGBA,
// defaulting to opaque black, matching the teacher's config.ParseColor.
func ParseColor(hex string) color.RGBA {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{A: 255}
	}

	r, _ := strconv.ParseUint(hex[0:2], 16, 8)
	g, _ := strconv.ParseUint(hex[2:4], 16, 8)
	b, _ := strconv.ParseUint(hex[4:6], 16, 8)
	a := uint64(255)
	if len(hex) == 8 {
		a, _ = strconv.ParseUint(hex[6:8], 16, 8)
	}
	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: uint8(a)}
}

var _ ports.TemplateLoader = (*Loader)(nil)
