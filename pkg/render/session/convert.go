package session

import (
	"github.com/user/autovlog/pkg/adapters/overlay"
	"github.com/user/autovlog/pkg/adapters/yamlconfig"
	"github.com/user/autovlog/pkg/ports"
	"github.com/user/autovlog/pkg/render"
)

func globalConfig(dto ports.GlobalConfigDTO) render.GlobalConfig {
	return yamlconfig.ToGlobalConfig(dto)
}

func templateFromDTO(dto ports.TemplateDTO) render.Template {
	return yamlconfig.ToTemplate(dto)
}

func imagePosition(dto ports.TemplateDTO) render.ImagePosition {
	return render.ImagePosition{
		X:      dto.ImagePosition.X,
		Y:      dto.ImagePosition.Y,
		Width:  dto.ImagePosition.Width,
		Height: dto.ImagePosition.Height,
	}
}

func transitionEffects(paths []string) ([]render.TransitionEffect, error) {
	return yamlconfig.LoadTransitions(paths)
}

func loadBorderRGBA(path string, width, height int) []byte {
	return overlay.LoadRGBA(path, width, height)
}

func firstNonEmptyPath(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
