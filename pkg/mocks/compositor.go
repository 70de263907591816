package mocks

import (
	"github.com/user/autovlog/pkg/ports"
	"github.com/user/autovlog/pkg/render"
)

// Compositor is a mock implementation of ports.Compositor and
// ports.ShaderRegistry.
type Compositor struct {
	SetBorderFunc         func(rgba []byte) error
	SetSubtitleFunc       func(rgba []byte) error
	DrawSoloFunc          func(from render.Frame) (render.Frame, error)
	DrawTransitionFunc    func(from, to render.Frame, effect render.TransitionEffect, progress float64) (render.Frame, error)
	InstallTransitionFunc func(effect render.TransitionEffect) error
	CloseFunc             func() error

	DrawSoloCalls       int
	DrawTransitionCalls int
}

func (m *Compositor) SetBorder(rgba []byte) error {
	if m.SetBorderFunc != nil {
		return m.SetBorderFunc(rgba)
	}
	return nil
}

func (m *Compositor) SetSubtitle(rgba []byte) error {
	if m.SetSubtitleFunc != nil {
		return m.SetSubtitleFunc(rgba)
	}
	return nil
}

func (m *Compositor) DrawSolo(from render.Frame) (render.Frame, error) {
	m.DrawSoloCalls++
	if m.DrawSoloFunc != nil {
		return m.DrawSoloFunc(from)
	}
	return from, nil
}

func (m *Compositor) DrawTransition(from, to render.Frame, effect render.TransitionEffect, progress float64) (render.Frame, error) {
	m.DrawTransitionCalls++
	if m.DrawTransitionFunc != nil {
		return m.DrawTransitionFunc(from, to, effect, progress)
	}
	return to, nil
}

func (m *Compositor) InstallTransition(effect render.TransitionEffect) error {
	if m.InstallTransitionFunc != nil {
		return m.InstallTransitionFunc(effect)
	}
	return nil
}

func (m *Compositor) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

var (
	_ ports.Compositor     = (*Compositor)(nil)
	_ ports.ShaderRegistry = (*Compositor)(nil)
)
