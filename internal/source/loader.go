package source

import (
	"fmt"
	"image"
	"image/draw"
	"path/filepath"
)

// TextureParams describes an image to load.
type TextureParams struct {
	File string
	Flip bool
}

// Loader resolves asset paths against a root directory and decodes them.
// It is used from segment Init only.
type Loader struct {
	Root string
}

// NewLoader creates a loader rooted at root ("" means the working directory).
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// Resolve joins relative paths onto the root.
func (l *Loader) Resolve(path string) string {
	if l.Root == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(l.Root, path)
}

// LoadTexture decodes an image into an RGBA buffer, flipping rows when asked.
func (l *Loader) LoadTexture(p TextureParams) (*image.RGBA, error) {
	if p.File == "" {
		return nil, fmt.Errorf("texture file is required")
	}
	img, err := decodeFile(l.Resolve(p.File))
	if err != nil {
		return nil, err
	}
	rgba := ToRGBA(img)
	if p.Flip {
		FlipVertical(rgba)
	}
	return rgba, nil
}

// Open opens a paged source relative to the root.
func (l *Loader) Open(path string) (Source, error) {
	return Open(l.Resolve(path))
}

// ToRGBA returns img as a zero-origin *image.RGBA, copying when needed.
func ToRGBA(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if ok && rgba.Stride == bounds.Dx()*4 && rgba.Rect.Min.X == 0 && rgba.Rect.Min.Y == 0 {
		return rgba
	}
	out := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(out, out.Bounds(), img, bounds.Min, draw.Src)
	return out
}

// FlipVertical mirrors img top to bottom in place.
func FlipVertical(img *image.RGBA) {
	h := img.Rect.Dy()
	row := make([]byte, img.Stride)
	for y := 0; y < h/2; y++ {
		top := img.Pix[y*img.Stride : (y+1)*img.Stride]
		bottom := img.Pix[(h-1-y)*img.Stride : (h-y)*img.Stride]
		copy(row, top)
		copy(top, bottom)
		copy(bottom, row)
	}
}
