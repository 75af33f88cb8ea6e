package camera

import (
	"fmt"
	"image"
	"math"

	"github.com/ivlev/showreel/internal/analyzer"
)

// Planner turns detected blocks into a camera path: full page, a stop on
// each block in reading order, full page again.
type Planner struct {
	MinDwell float64 // seconds per block
	MaxDwell float64
	MaxZoom  float64
	Padding  float64 // share of the view a block may fill
}

// NewPlanner returns a planner with default dwell and zoom limits.
func NewPlanner() *Planner {
	return &Planner{
		MinDwell: 1.0,
		MaxDwell: 3.0,
		MaxZoom:  3.0,
		Padding:  0.9,
	}
}

// Plan builds a path for a w x h page shown for duration seconds. Without
// blocks the camera holds the full page.
func (p *Planner) Plan(blocks []analyzer.Block, w, h int, duration float64) Path {
	full := Keyframe{Time: 0, Focus: "full_view", Rect: FullView, Zoom: 1}
	if len(blocks) == 0 || w <= 0 || h <= 0 {
		return Path{full}
	}

	dwell := p.dwell(duration, len(blocks))
	path := Path{full}
	t := 1.0
	for i, b := range blocks {
		path = append(path, Keyframe{
			Time:  t,
			Focus: fmt.Sprintf("region_%d", i+1),
			Rect:  normalize(b.Rect, w, h),
			Zoom:  p.zoom(b.Rect, w, h),
		})
		t += dwell
	}
	full.Time = t
	path = append(path, full)

	if duration > 0 {
		return path.Scale(duration)
	}
	return path
}

// dwell is the time per block after a one second intro and outro.
func (p *Planner) dwell(duration float64, n int) float64 {
	available := duration - 2
	if available <= 0 {
		available = duration
	}
	d := available / float64(n)
	return math.Max(p.MinDwell, math.Min(p.MaxDwell, d))
}

// zoom fits the block into the view, within [1, MaxZoom].
func (p *Planner) zoom(r image.Rectangle, w, h int) float64 {
	if r.Dx() == 0 || r.Dy() == 0 {
		return 1
	}
	z := math.Min(float64(w)*p.Padding/float64(r.Dx()), float64(h)*p.Padding/float64(r.Dy()))
	return math.Max(1, math.Min(p.MaxZoom, z))
}

func normalize(r image.Rectangle, w, h int) Rectangle {
	return Rectangle{
		X: float64(r.Min.X) / float64(w),
		Y: float64(r.Min.Y) / float64(h),
		W: float64(r.Dx()) / float64(w),
		H: float64(r.Dy()) / float64(h),
	}
}
