package camera

import (
	"image"
	"math"
)

// State is the camera center (page fractions) and zoom at one moment.
type State struct {
	X    float64
	Y    float64
	Zoom float64
}

// Interpolate returns the camera state at t. Keyframes must be time ordered.
// Before the first and after the last keyframe the camera holds.
func Interpolate(keyframes Path, t float64) State {
	if len(keyframes) == 0 {
		return State{X: 0.5, Y: 0.5, Zoom: 1.0}
	}

	first := keyframes[0]
	if t <= first.Time {
		return stateOf(first)
	}
	last := keyframes[len(keyframes)-1]
	if t >= last.Time {
		return stateOf(last)
	}

	var prev, next Keyframe
	for i := 0; i < len(keyframes)-1; i++ {
		if t >= keyframes[i].Time && t < keyframes[i+1].Time {
			prev, next = keyframes[i], keyframes[i+1]
			break
		}
	}

	span := next.Time - prev.Time
	if span <= 0 {
		return stateOf(next)
	}
	k := easeInOutCubic((t - prev.Time) / span)

	a, b := stateOf(prev), stateOf(next)
	return State{
		X:    lerp(a.X, b.X, k),
		Y:    lerp(a.Y, b.Y, k),
		Zoom: lerp(a.Zoom, b.Zoom, k),
	}
}

// View returns the pixel rectangle of a w x h page the camera sees. The view
// keeps the page's aspect, shrinks by Zoom and is pushed back inside the page.
func (s State) View(w, h int) image.Rectangle {
	zoom := s.Zoom
	if zoom < 1 {
		zoom = 1
	}
	vw := float64(w) / zoom
	vh := float64(h) / zoom
	x := s.X*float64(w) - vw/2
	y := s.Y*float64(h) - vh/2
	x = math.Max(0, math.Min(x, float64(w)-vw))
	y = math.Max(0, math.Min(y, float64(h)-vh))
	return image.Rect(int(x), int(y), int(x+vw+0.5), int(y+vh+0.5))
}

func stateOf(kf Keyframe) State {
	x, y := kf.Rect.Center()
	zoom := kf.Zoom
	if zoom == 0 {
		zoom = 1
	}
	return State{X: x, Y: y, Zoom: zoom}
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func easeInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}
