package mocks

import "github.com/user/autovlog/pkg/ports"

// Muxer is a mock implementation of ports.Muxer.
type Muxer struct {
	ConcatFunc    func(segmentPaths []string, outputPath string) error
	MuxAudioFunc  func(videoPath, audioPath, outputPath string) error
	ConcatCalls   [][]string
	MuxAudioCalls int
}

func (m *Muxer) Concat(segmentPaths []string, outputPath string) error {
	m.ConcatCalls = append(m.ConcatCalls, segmentPaths)
	if m.ConcatFunc != nil {
		return m.ConcatFunc(segmentPaths, outputPath)
	}
	return nil
}

func (m *Muxer) MuxAudio(videoPath, audioPath, outputPath string) error {
	m.MuxAudioCalls++
	if m.MuxAudioFunc != nil {
		return m.MuxAudioFunc(videoPath, audioPath, outputPath)
	}
	return nil
}

var _ ports.Muxer = (*Muxer)(nil)
