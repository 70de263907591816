package ports

// Muxer concatenates an ordered list of elementary H.264 streams via
// stream-copy (no re-encoding) and then attaches a background audio
// track, looping it if shorter than the video or truncating it if
// longer.
type Muxer interface {
	// Concat writes a manifest listing segmentPaths in order and runs
	// a stream-copy concat, producing a video-only file at outputPath.
	Concat(segmentPaths []string, outputPath string) error

	// MuxAudio attaches audioPath to videoPath (looping or truncating
	// as needed) and writes the result to outputPath.
	MuxAudio(videoPath, audioPath, outputPath string) error
}

// TemplateLoader resolves named templates and the global config from
// a configuration directory.
type TemplateLoader interface {
	// LoadGlobal loads the single global geometry/timing config.
	LoadGlobal() (GlobalConfigDTO, error)

	// LoadTemplate resolves a named template, validating that every
	// referenced asset exists and the transition list is non-empty.
	LoadTemplate(name string) (TemplateDTO, error)

	// ListTemplates returns every template's name and description.
	ListTemplates() ([]TemplateSummary, error)
}

// GlobalConfigDTO mirrors the `global:` YAML block of global.yaml.
type GlobalConfigDTO struct {
	Width              int     `yaml:"width"`
	Height             int     `yaml:"height"`
	FPS                float64 `yaml:"fps"`
	ImageDuration      float64 `yaml:"image_duration"`
	VideoDuration      float64 `yaml:"video_duration"`
	TransitionDuration float64 `yaml:"transition_duration"`
}

// TemplateDTO mirrors one template YAML file on disk.
type TemplateDTO struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`

	Border struct {
		Path string `yaml:"path"`
	} `yaml:"border"`
	BorderVideo struct {
		Path string `yaml:"path"`
	} `yaml:"border_video"`
	BGM struct {
		Path string `yaml:"path"`
	} `yaml:"bgm"`
	Transitions []string `yaml:"transitions"`
	Font        struct {
		Path         string  `yaml:"path"`
		Size         float64 `yaml:"size"`
		Color        string  `yaml:"color"`         // "#rrggbb" or "#rrggbbaa"
		OutlineColor string  `yaml:"outline_color"` // "#rrggbb" or "#rrggbbaa"
		OutlineWidth int     `yaml:"outline_width"`
	} `yaml:"font"`
	Subtitle struct {
		Template        string  `yaml:"template"`
		TypewriterSpeed int     `yaml:"typewriter_speed"`
		Duration        float64 `yaml:"duration"`
	} `yaml:"subtitle"`
	ImagePosition struct {
		X, Y, Width, Height int
	} `yaml:"image_position"`
}

// TemplateSummary is the lightweight listing shown by ListTemplates.
type TemplateSummary struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
