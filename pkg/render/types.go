// Package render defines the data model shared by every stage of the
// video composition pipeline: frames, templates, segments and the
// on-disk session metadata used by incremental rendering.
package render

import "image/color"

// Frame is a packed RGB raster: W*H*3 bytes, row-major, top-left origin.
// A Frame is produced, consumed and discarded within a single pull/push;
// nothing beyond the explicit last-frame cache retains one across
// iterations.
type Frame struct {
	Width  int
	Height int
	Pix    []byte // len == Width*Height*3
}

// Size returns the expected byte length of a Frame with these dimensions.
func Size(width, height int) int {
	return width * height * 3
}

// SegmentType distinguishes the two kinds of segment a session can hold.
type SegmentType string

const (
	SegmentImage SegmentType = "image"
	SegmentVideo SegmentType = "video"
)

// Segment describes one rendered unit of an incremental session: the
// image-phase segment (index 0) or one appended video segment.
type Segment struct {
	Index          int         `json:"index"`
	Frames         int         `json:"frames"`
	Type           SegmentType `json:"type"`
	SourcePath     string      `json:"source_path"`
	TransitionName string      `json:"transition_name,omitempty"`
}

// SessionStatus is the incremental-session state machine's current state.
type SessionStatus string

const (
	StatusInitialized SessionStatus = "initialized"
	StatusRendering   SessionStatus = "rendering"
	StatusCompleted   SessionStatus = "completed"
	StatusFailed      SessionStatus = "failed"
)

// SessionMetadata is the persisted state of one incremental render
// session. CurrentTransitionIndex always equals (number of video
// segments appended) mod len(template.Transitions).
type SessionMetadata struct {
	SessionID              string        `json:"session_id"`
	TemplateName           string        `json:"template_name"`
	Segments               []Segment     `json:"segments"`
	CurrentTransitionIndex int           `json:"current_transition_index"`
	TotalFrames            int           `json:"total_frames"`
	CreatedAtUnix          int64         `json:"created_at_unix"`
	Status                 SessionStatus `json:"status"`
	OutputPath             string        `json:"output_path,omitempty"`
}

// TransitionEffect is one named fragment-shader transition. Source is
// the GLSL body of `vec4 transition(vec2 uv)` plus any helper functions
// the effect author already declared; the shader scaffold detects which
// helpers are already present by pattern-matching Source directly.
type TransitionEffect struct {
	Name   string
	Source string
}

// ImagePosition places the cover image within its border instead of
// filling the frame edge-to-edge; a zero value means full-bleed.
type ImagePosition struct {
	X, Y, Width, Height int
}

// Template is a fully resolved style template: assets, transition
// rotation, and subtitle styling/typing parameters.
type Template struct {
	Name                string
	Description         string
	BorderImagePath      string
	BorderVideoImagePath string // optional, falls back to BorderImagePath
	BGMPath              string
	TransitionPaths      []string // non-empty
	FontPath             string
	FontSize             float64
	TextColor            color.RGBA
	OutlineColor         color.RGBA
	OutlineWidth         int
	SubtitleTemplate     string // placeholders {year} {month} {day}
	TypewriterSpeed      int    // frames per character
	SubtitleDuration     float64 // seconds
	ImagePosition        ImagePosition
}

// GlobalConfig holds the run-wide geometry and timing constants that
// apply to every template.
type GlobalConfig struct {
	Width               int
	Height              int
	FPS                 float64
	ImageDuration       float64 // seconds
	VideoDuration       float64 // seconds
	TransitionDuration  float64 // seconds
}

// FrameCounts derives the schedule's frame counts from a GlobalConfig,
// per spec.md §4.6.
type FrameCounts struct {
	ImageFrames int
	VideoFrames int
	TransFrames int
	SoloFrames  int
}

// Resolve computes rounded frame counts for the configured durations.
func (g GlobalConfig) Resolve() FrameCounts {
	img := int(g.ImageDuration*g.FPS + 0.5)
	vid := int(g.VideoDuration*g.FPS + 0.5)
	trans := int(g.TransitionDuration*g.FPS + 0.5)
	return FrameCounts{
		ImageFrames: img,
		VideoFrames: vid,
		TransFrames: trans,
		SoloFrames:  vid - trans,
	}
}
