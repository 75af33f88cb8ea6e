// Package engine drives a show with a clock: offline export at a fixed frame
// rate into a video sink, and real-time headless playback.
package engine

import (
	"image"

	"github.com/ivlev/showreel/internal/show"
)

// Renderer is what the engine drives. *show.Show implements it.
type Renderer interface {
	Render(frame *image.RGBA, t float64) error
	Status() show.Status
}

// FrameTime is the show time of frame index at fps.
func FrameTime(index, fps int) float64 {
	return float64(index) / float64(fps)
}
