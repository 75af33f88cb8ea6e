package fade

import (
	"image"

	"github.com/ivlev/showreel/internal/gfx"
)

// Overlay composites a cover image over rendered frames using a Fade.
type Overlay struct {
	Fade   *Fade
	source image.Image // nil means black
	cover  *image.RGBA
}

// NewOverlay scales cover to the frame size once, up front.
func NewOverlay(f *Fade, cover image.Image, width, height int) *Overlay {
	o := &Overlay{Fade: f, source: cover}
	o.cover = o.scaled(image.Rect(0, 0, width, height))
	return o
}

func (o *Overlay) scaled(r image.Rectangle) *image.RGBA {
	if o.source == nil {
		img := image.NewRGBA(r)
		gfx.Clear(img, gfx.Black)
		return img
	}
	if rgba, ok := o.source.(*image.RGBA); ok && rgba.Rect == r {
		return rgba
	}
	return gfx.ResizeTo(o.source, r)
}

// Render blends the cover over frame at the opacity for time t and returns
// the opacity used. A frame whose bounds differ from the cover's gets the
// cover rescaled to match; the rescaled cover is kept for later frames.
func (o *Overlay) Render(frame *image.RGBA, t float64) float64 {
	alpha := o.Fade.Evaluate(t)
	if frame.Rect != o.cover.Rect {
		o.cover = o.scaled(frame.Rect)
	}
	gfx.Blend(frame, o.cover, alpha)
	return alpha
}
