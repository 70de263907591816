package mocks

import "github.com/user/autovlog/pkg/ports"

// SubtitleRasterizer is a mock implementation of ports.SubtitleRasterizer.
type SubtitleRasterizer struct {
	RenderFunc func(text string, color, outlineColor ports.RGBA, outlineWidth int) ([]byte, error)
}

func (m *SubtitleRasterizer) Render(text string, color, outlineColor ports.RGBA, outlineWidth int) ([]byte, error) {
	if m.RenderFunc != nil {
		return m.RenderFunc(text, color, outlineColor, outlineWidth)
	}
	return nil, nil
}

var _ ports.SubtitleRasterizer = (*SubtitleRasterizer)(nil)
