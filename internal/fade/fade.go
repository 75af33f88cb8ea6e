// Package fade drives the full-screen cover layer composited over whatever
// the timeline rendered. Opacity follows linear ramps over authored windows
// and holds the last reached value between and after them, so an author can
// fade to the cover, hold it, and fade back by listing consecutive windows.
package fade

import (
	"fmt"
)

// Window ramps the cover opacity from From to To over [Start, End).
type Window struct {
	Start float64
	End   float64
	From  float64
	To    float64
}

// Fade is an ordered list of windows.
type Fade struct {
	windows []Window
}

// New returns a fade with no windows.
func New() *Fade {
	return &Fade{}
}

// Add appends a window. Evaluation order is registration order.
func (f *Fade) Add(start, end, from, to float64) error {
	if start >= end {
		return fmt.Errorf("%w: [%g, %g)", ErrInvalidWindow, start, end)
	}
	if from < 0 || from > 1 || to < 0 || to > 1 {
		return fmt.Errorf("%w: %g -> %g", ErrInvalidAlpha, from, to)
	}
	f.windows = append(f.windows, Window{Start: start, End: end, From: from, To: to})
	return nil
}

// Windows returns a copy of the registered windows.
func (f *Fade) Windows() []Window {
	out := make([]Window, len(f.windows))
	copy(out, f.windows)
	return out
}

// Evaluate returns the cover opacity at t in [0, 1].
//
// The first window containing t interpolates linearly. Otherwise the value
// holds at the To of the nearest preceding window, the one with the latest
// End not after t. Times before every window are outside the contract; they
// get the From of the first registered window. With no windows the cover is
// fully transparent.
func (f *Fade) Evaluate(t float64) float64 {
	if len(f.windows) == 0 {
		return 0
	}

	for _, w := range f.windows {
		if w.Start <= t && t < w.End {
			return lerp(w.From, w.To, (t-w.Start)/(w.End-w.Start))
		}
	}

	held, found := 0.0, false
	latest := 0.0
	for _, w := range f.windows {
		if w.End <= t && (!found || w.End >= latest) {
			held, latest, found = w.To, w.End, true
		}
	}
	if !found {
		return f.windows[0].From
	}
	return held
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
