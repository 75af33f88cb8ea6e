// Package camera moves a 2D view over a page along eased keyframes.
package camera

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Keyframe is a camera target at a local time. Rect is in page fractions
// (0..1) so a path is independent of the resolution the page is rendered at.
type Keyframe struct {
	Time  float64   `yaml:"time"`            // Seconds from segment start
	Focus string    `yaml:"focus,omitempty"` // Label for logs
	Rect  Rectangle `yaml:"rect"`
	Zoom  float64   `yaml:"zoom"` // 1.0 shows the whole page
}

// Rectangle is a normalized region of a page.
type Rectangle struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// Center returns the middle of r.
func (r Rectangle) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// FullView is the whole page.
var FullView = Rectangle{X: 0, Y: 0, W: 1, H: 1}

// Path is a list of keyframes ordered by time.
type Path []Keyframe

// Sorted returns a time-ordered copy.
func (p Path) Sorted() Path {
	out := make(Path, len(p))
	copy(out, p)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Time < out[j].Time
	})
	return out
}

// Validate rejects negative times and zooms below 1.
func (p Path) Validate() error {
	for i, kf := range p {
		if kf.Time < 0 {
			return fmt.Errorf("keyframe %d: negative time %g", i, kf.Time)
		}
		if kf.Zoom < 1 {
			return fmt.Errorf("keyframe %d: zoom %g below 1", i, kf.Zoom)
		}
	}
	return nil
}

// Scale stretches keyframe times so the path spans duration seconds.
func (p Path) Scale(duration float64) Path {
	out := p.Sorted()
	if len(out) == 0 {
		return out
	}
	last := out[len(out)-1].Time
	if last <= 0 || duration <= 0 {
		return out
	}
	k := duration / last
	for i := range out {
		out[i].Time *= k
	}
	return out
}

// DefaultPath opens on the full page, pushes in on its center and returns to
// the full page for the last second.
func DefaultPath(duration, zoom float64) Path {
	if duration <= 2 {
		return Path{{Time: 0, Focus: "full_view", Rect: FullView, Zoom: 1}}
	}
	center := Rectangle{X: 0.25, Y: 0.25, W: 0.5, H: 0.5}
	return Path{
		{Time: 0, Focus: "full_view", Rect: FullView, Zoom: 1},
		{Time: 1, Focus: "full_view", Rect: FullView, Zoom: 1},
		{Time: duration - 1, Focus: "center", Rect: center, Zoom: zoom},
		{Time: duration, Focus: "full_view", Rect: FullView, Zoom: 1},
	}
}

// WritePath writes a path to a YAML file.
func WritePath(p Path, path string) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadPath reads a path from a YAML file.
func ReadPath(path string) (Path, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var p Path
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return p, nil
}
