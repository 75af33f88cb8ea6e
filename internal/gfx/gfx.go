// Package gfx is the software draw surface segments render into: clears,
// lines, scaled blits and alpha blending over *image.RGBA frames.
package gfx

import (
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/ivlev/showreel/internal/params"
)

// RGB converts a Color3 parameter in [0,1] to an opaque color.
func RGB(v params.Vec3) color.RGBA {
	return color.RGBA{R: unit(v[0]), G: unit(v[1]), B: unit(v[2]), A: 255}
}

func unit(f float64) uint8 {
	if f <= 0 || math.IsNaN(f) {
		return 0
	}
	if f >= 1 {
		return 255
	}
	return uint8(f*255 + 0.5)
}

// Clear fills the whole frame with c.
func Clear(frame *image.RGBA, c color.RGBA) {
	b := frame.Rect
	if b.Empty() {
		return
	}
	row := frame.Pix[frame.PixOffset(b.Min.X, b.Min.Y):]
	for x := 0; x < b.Dx(); x++ {
		row[x*4+0] = c.R
		row[x*4+1] = c.G
		row[x*4+2] = c.B
		row[x*4+3] = c.A
	}
	first := row[:b.Dx()*4]
	for y := 1; y < b.Dy(); y++ {
		copy(frame.Pix[frame.PixOffset(b.Min.X, b.Min.Y+y):], first)
	}
}

// FillRect fills r clipped to the frame.
func FillRect(frame *image.RGBA, r image.Rectangle, c color.RGBA) {
	r = r.Intersect(frame.Rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			frame.SetRGBA(x, y, c)
		}
	}
}

// Line draws a one pixel line, clipped per pixel.
func Line(frame *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	b := frame.Rect
	for {
		if x0 >= b.Min.X && x0 < b.Max.X && y0 >= b.Min.Y && y0 < b.Max.Y {
			frame.SetRGBA(x0, y0, c)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// Resize scales src to exactly w x h with a Catmull-Rom kernel. Meant for
// one-time work in Init.
func Resize(src image.Image, w, h int) *image.RGBA {
	return ResizeTo(src, image.Rect(0, 0, w, h))
}

// ResizeTo scales src to fill a new image with bounds r.
func ResizeTo(src image.Image, r image.Rectangle) *image.RGBA {
	dst := image.NewRGBA(r)
	xdraw.CatmullRom.Scale(dst, dst.Rect, src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// Fit returns the largest rectangle with src's aspect ratio centered in dst.
func Fit(src, dst image.Rectangle) image.Rectangle {
	sw, sh := float64(src.Dx()), float64(src.Dy())
	if sw == 0 || sh == 0 {
		return image.Rectangle{}
	}
	scale := math.Min(float64(dst.Dx())/sw, float64(dst.Dy())/sh)
	w, h := int(sw*scale), int(sh*scale)
	x := dst.Min.X + (dst.Dx()-w)/2
	y := dst.Min.Y + (dst.Dy()-h)/2
	return image.Rect(x, y, x+w, y+h)
}

// Blit scales the srcRect part of src into dr with bilinear filtering,
// compositing over what is already there.
func Blit(frame *image.RGBA, dr image.Rectangle, src image.Image, srcRect image.Rectangle) {
	xdraw.ApproxBiLinear.Scale(frame, dr, src, srcRect, xdraw.Over, nil)
}

// Blend mixes cover over frame: alpha 0 keeps frame, 1 replaces it. It
// reports false and leaves frame untouched when the bounds differ.
func Blend(frame, cover *image.RGBA, alpha float64) bool {
	if frame.Rect != cover.Rect {
		return false
	}
	if alpha <= 0 {
		return true
	}
	w := frame.Rect.Dx() * 4
	a := uint32(alpha*256 + 0.5)
	if alpha >= 1 {
		a = 256
	}
	inv := 256 - a
	for y := 0; y < frame.Rect.Dy(); y++ {
		dst := frame.Pix[y*frame.Stride : y*frame.Stride+w]
		src := cover.Pix[y*cover.Stride : y*cover.Stride+w]
		if a == 256 {
			copy(dst, src)
			continue
		}
		for i := range dst {
			dst[i] = uint8((uint32(dst[i])*inv + uint32(src[i])*a) >> 8)
		}
	}
	return true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Black is opaque black, the cover used when a show has none.
var Black = color.RGBA{A: 255}
