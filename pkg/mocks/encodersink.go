package mocks

import (
	"github.com/user/autovlog/pkg/ports"
	"github.com/user/autovlog/pkg/render"
)

// EncoderSink is a mock implementation of ports.EncoderSink.
type EncoderSink struct {
	WriteFunc func(frame render.Frame) error
	CloseFunc func() (string, error)
	AbortFunc func() error

	WrittenFrames []render.Frame
	Aborted       bool
}

func (m *EncoderSink) Write(frame render.Frame) error {
	m.WrittenFrames = append(m.WrittenFrames, frame)
	if m.WriteFunc != nil {
		return m.WriteFunc(frame)
	}
	return nil
}

func (m *EncoderSink) Close() (string, error) {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return "", nil
}

func (m *EncoderSink) Abort() error {
	m.Aborted = true
	if m.AbortFunc != nil {
		return m.AbortFunc()
	}
	return nil
}

var _ ports.EncoderSink = (*EncoderSink)(nil)
