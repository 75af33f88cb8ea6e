package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the root of a show file. It names every segment, its window and
// the cover fade windows, so the show's content is data rather than code.
type Config struct {
	Title         string          `yaml:"title"`
	Width         int             `yaml:"width"`
	Height        int             `yaml:"height"`
	FPS           int             `yaml:"fps"`
	Duration      Seconds         `yaml:"duration"`
	Cover         TextureConfig   `yaml:"cover"`
	ParametersDir string          `yaml:"parameters_dir"`
	Segments      []SegmentConfig `yaml:"segments"`
	Fades         []FadeConfig    `yaml:"fades"`
	Logging       LoggingConfig   `yaml:"logging"`
	Export        ExportConfig    `yaml:"export"`
}

// TextureConfig points at an image on disk.
type TextureConfig struct {
	File string `yaml:"file"`
	Flip bool   `yaml:"flip"`
}

// UnmarshalYAML accepts either a bare path or a mapping.
func (t *TextureConfig) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		t.File = value.Value
		return nil
	}
	type plain TextureConfig
	return value.Decode((*plain)(t))
}

// SegmentConfig declares one scheduled segment. Options are decoded by the
// segment kind's factory.
type SegmentConfig struct {
	Kind    string    `yaml:"kind"`
	Name    string    `yaml:"name"`
	Start   Seconds   `yaml:"start"`
	End     Seconds   `yaml:"end"`
	Options yaml.Node `yaml:"options"`
}

// FadeConfig is one linear cover ramp.
type FadeConfig struct {
	Start Seconds `yaml:"start"`
	End   Seconds `yaml:"end"`
	From  float64 `yaml:"from"`
	To    float64 `yaml:"to"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// ExportConfig drives offline rendering of the show.
type ExportConfig struct {
	Output       string `yaml:"output"`
	FramesDir    string `yaml:"frames_dir"`
	AudioPath    string `yaml:"audio"`
	Workers      int    `yaml:"workers"`
	VideoEncoder string `yaml:"video_encoder"`
	Quality      int    `yaml:"quality"`
	ShowStats    bool   `yaml:"show_stats"`
	BuildVersion string `yaml:"-"`
}

// Default returns the built-in two-part show.
func Default() *Config {
	return &Config{
		Title:         "showreel",
		Width:         1280,
		Height:        720,
		FPS:           30,
		Duration:      20,
		Cover:         TextureConfig{File: "data/textures/cover_1.jpg"},
		ParametersDir: "data/parameters",
		Segments: []SegmentConfig{
			{Kind: "slides", Name: "Part01", Start: 0, End: 9},
			{Kind: "scene", Name: "Part02", Start: 9, End: 20},
		},
		Fades: []FadeConfig{
			{Start: 0, End: 1, From: 0, To: 1},
			{Start: 8, End: 9, From: 1, To: 0},
			{Start: 9, End: 10, From: 0, To: 1},
			{Start: 19, End: 20, From: 1, To: 0},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
		Export: ExportConfig{
			Workers:      4,
			VideoEncoder: "libx264",
			Quality:      23,
		},
	}
}

// Load reads a show file on top of the defaults. Segments and fades in the
// file replace the default lists rather than extending them.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading show file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a show file from memory.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	cfg.Segments = nil
	cfg.Fades = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing show file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating show file: %w", err)
	}
	return cfg, nil
}

// Validate checks the show for authoring mistakes. Overlapping segment
// windows are allowed; the timeline resolves them deterministically.
func (c *Config) Validate() error {
	var errs []string

	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, "width and height must be positive")
	}
	if c.FPS <= 0 {
		errs = append(errs, "fps must be positive")
	}
	if c.Duration <= 0 {
		errs = append(errs, "duration must be positive")
	}
	if len(c.Segments) == 0 {
		errs = append(errs, "at least one segment is required")
	}

	names := make(map[string]bool)
	for i, s := range c.Segments {
		if s.Kind == "" {
			errs = append(errs, fmt.Sprintf("segments[%d].kind is required", i))
		}
		if s.Name == "" {
			errs = append(errs, fmt.Sprintf("segments[%d].name is required", i))
		} else if names[s.Name] {
			errs = append(errs, fmt.Sprintf("segments[%d].name %q is not unique", i, s.Name))
		}
		names[s.Name] = true
		unscheduled := s.Start == -1 && s.End == -1
		if !unscheduled && s.Start >= s.End {
			errs = append(errs, fmt.Sprintf("segments[%d] window [%v, %v) is empty", i, s.Start, s.End))
		}
	}

	for i, f := range c.Fades {
		if f.Start >= f.End {
			errs = append(errs, fmt.Sprintf("fades[%d] window [%v, %v) is empty", i, f.Start, f.End))
		}
		if f.From < 0 || f.From > 1 || f.To < 0 || f.To > 1 {
			errs = append(errs, fmt.Sprintf("fades[%d] alpha must be within [0, 1]", i))
		}
	}
	if len(c.Fades) > 0 && c.Fades[0].Start > 0 {
		errs = append(errs, "fades[0] must start at or before 0")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}
	return nil
}

// FrameCount is the number of frames the show spans at its frame rate.
func (c *Config) FrameCount() int {
	return int(float64(c.Duration)*float64(c.FPS) + 0.5)
}
