package mocks

import (
	"github.com/user/autovlog/pkg/ports"
	"github.com/user/autovlog/pkg/render"
)

// SessionStore is a mock implementation of ports.SessionStore.
type SessionStore struct {
	CreateFunc              func(sessionID, templateName string) (render.SessionMetadata, error)
	LoadFunc                func(sessionID string) (render.SessionMetadata, error)
	AppendSegmentFunc       func(sessionID string, seg render.Segment) (render.SessionMetadata, error)
	BeginAppendFunc         func(sessionID string) error
	EndAppendFunc           func(sessionID string)
	SetStatusFunc           func(sessionID string, status render.SessionStatus) error
	SetOutputPathFunc       func(sessionID, path string) error
	NextTransitionIndexFunc func(sessionID string, total int) (int, error)
	SegmentPathFunc         func(sessionID string, index int) string
	SegmentPathsFunc        func(sessionID string) ([]string, error)
	SaveLastFrameFunc       func(sessionID string, frame render.Frame) error
	LoadLastFrameFunc       func(sessionID string) (render.Frame, error)
	DirectoryFunc           func(sessionID string) string
	CleanupFunc             func(sessionID string) error
	ListSessionsFunc        func() ([]string, error)
}

func (m *SessionStore) Create(sessionID, templateName string) (render.SessionMetadata, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(sessionID, templateName)
	}
	return render.SessionMetadata{SessionID: sessionID, TemplateName: templateName}, nil
}

func (m *SessionStore) Load(sessionID string) (render.SessionMetadata, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(sessionID)
	}
	return render.SessionMetadata{SessionID: sessionID}, nil
}

func (m *SessionStore) AppendSegment(sessionID string, seg render.Segment) (render.SessionMetadata, error) {
	if m.AppendSegmentFunc != nil {
		return m.AppendSegmentFunc(sessionID, seg)
	}
	return render.SessionMetadata{SessionID: sessionID}, nil
}

func (m *SessionStore) BeginAppend(sessionID string) error {
	if m.BeginAppendFunc != nil {
		return m.BeginAppendFunc(sessionID)
	}
	return nil
}

func (m *SessionStore) EndAppend(sessionID string) {
	if m.EndAppendFunc != nil {
		m.EndAppendFunc(sessionID)
	}
}

func (m *SessionStore) SetStatus(sessionID string, status render.SessionStatus) error {
	if m.SetStatusFunc != nil {
		return m.SetStatusFunc(sessionID, status)
	}
	return nil
}

func (m *SessionStore) SetOutputPath(sessionID, path string) error {
	if m.SetOutputPathFunc != nil {
		return m.SetOutputPathFunc(sessionID, path)
	}
	return nil
}

func (m *SessionStore) NextTransitionIndex(sessionID string, total int) (int, error) {
	if m.NextTransitionIndexFunc != nil {
		return m.NextTransitionIndexFunc(sessionID, total)
	}
	return 0, nil
}

func (m *SessionStore) SegmentPath(sessionID string, index int) string {
	if m.SegmentPathFunc != nil {
		return m.SegmentPathFunc(sessionID, index)
	}
	return ""
}

func (m *SessionStore) SegmentPaths(sessionID string) ([]string, error) {
	if m.SegmentPathsFunc != nil {
		return m.SegmentPathsFunc(sessionID)
	}
	return nil, nil
}

func (m *SessionStore) SaveLastFrame(sessionID string, frame render.Frame) error {
	if m.SaveLastFrameFunc != nil {
		return m.SaveLastFrameFunc(sessionID, frame)
	}
	return nil
}

func (m *SessionStore) LoadLastFrame(sessionID string) (render.Frame, error) {
	if m.LoadLastFrameFunc != nil {
		return m.LoadLastFrameFunc(sessionID)
	}
	return render.Frame{}, nil
}

func (m *SessionStore) Directory(sessionID string) string {
	if m.DirectoryFunc != nil {
		return m.DirectoryFunc(sessionID)
	}
	return ""
}

func (m *SessionStore) Cleanup(sessionID string) error {
	if m.CleanupFunc != nil {
		return m.CleanupFunc(sessionID)
	}
	return nil
}

func (m *SessionStore) ListSessions() ([]string, error) {
	if m.ListSessionsFunc != nil {
		return m.ListSessionsFunc()
	}
	return nil, nil
}

var _ ports.SessionStore = (*SessionStore)(nil)
