// Package analyzer finds regions of interest on a page so a camera path can
// visit them.
package analyzer

import (
	"context"
	"image"
)

// Block is a detected region of interest.
type Block struct {
	Rect       image.Rectangle
	Type       string  // "header", "text", "figure"
	Confidence float64 // 0.0-1.0
}

// Detector finds blocks on a page image.
type Detector interface {
	Detect(ctx context.Context, img image.Image) ([]Block, error)
}
