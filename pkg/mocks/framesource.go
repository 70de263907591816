// Package mocks provides hand-rolled fakes for this module's ports
// interfaces, matching the teacher's pkg/mocks: one *Func field per
// method, falling back to an inert default when unset.
package mocks

import "github.com/user/autovlog/pkg/render"

// FrameSource is a mock implementation of ports.FrameSource.
type FrameSource struct {
	PullFunc            func() (render.Frame, error)
	FramesRemainingFunc func() int
	CloseFunc           func() error

	PullCalls int
}

func (m *FrameSource) Pull() (render.Frame, error) {
	m.PullCalls++
	if m.PullFunc != nil {
		return m.PullFunc()
	}
	return render.Frame{}, nil
}

func (m *FrameSource) FramesRemaining() int {
	if m.FramesRemainingFunc != nil {
		return m.FramesRemainingFunc()
	}
	return 0
}

func (m *FrameSource) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}
