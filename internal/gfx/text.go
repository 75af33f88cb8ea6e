package gfx

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// LineHeight is the advance between text lines.
const LineHeight = 16

// Text draws s with its baseline at (x, y) in the fixed 7x13 face.
func Text(frame *image.RGBA, x, y int, s string, c color.RGBA) {
	d := &font.Drawer{
		Dst:  frame,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// TextWidth is the advance of s in pixels.
func TextWidth(s string) int {
	return font.MeasureString(basicfont.Face7x13, s).Ceil()
}

// CenteredText draws s horizontally centered on the frame.
func CenteredText(frame *image.RGBA, y int, s string, c color.RGBA) {
	x := frame.Rect.Min.X + (frame.Rect.Dx()-TextWidth(s))/2
	Text(frame, x, y, s, c)
}
