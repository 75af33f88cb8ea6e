package analyzer

import (
	"context"
	"image"
	"image/draw"
	"sort"
)

// ContrastDetector finds blocks by thresholding Sobel gradients, dilating
// the edge mask so nearby glyphs merge, and taking connected components.
type ContrastDetector struct {
	MinBlockArea  int     // pixels²
	EdgeThreshold float64 // gradient magnitude
	DilateRadius  int
	DilatePasses  int
}

// NewContrastDetector creates a detector with defaults tuned for slide pages.
func NewContrastDetector() *ContrastDetector {
	return &ContrastDetector{
		MinBlockArea:  500,
		EdgeThreshold: 30.0,
		DilateRadius:  2,
		DilatePasses:  2,
	}
}

// Detect returns blocks in reading order.
func (d *ContrastDetector) Detect(ctx context.Context, img image.Image) ([]Block, error) {
	gray := toGray(img)
	mask := sobel(gray, d.EdgeThreshold)
	for i := 0; i < d.DilatePasses; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		mask = dilate(mask, d.DilateRadius)
	}

	pageArea := float64(mask.w * mask.h)
	var blocks []Block
	for _, r := range components(mask) {
		area := r.Dx() * r.Dy()
		if area < d.MinBlockArea {
			continue
		}
		blocks = append(blocks, Block{
			Rect:       r.Add(img.Bounds().Min),
			Type:       classify(r, pageArea),
			Confidence: 0.7,
		})
	}
	SortReadingOrder(blocks, 20)
	return blocks, nil
}

// classify guesses a block type from its shape.
func classify(r image.Rectangle, pageArea float64) string {
	aspect := float64(r.Dx()) / float64(max(r.Dy(), 1))
	share := float64(r.Dx()*r.Dy()) / pageArea
	switch {
	case share > 0.15 && aspect < 3:
		return "figure"
	case aspect > 6:
		return "header"
	default:
		return "text"
	}
}

// SortReadingOrder orders blocks top to bottom, then left to right for
// blocks whose tops are within rowTolerance pixels.
func SortReadingOrder(blocks []Block, rowTolerance int) {
	sort.SliceStable(blocks, func(i, j int) bool {
		a, b := blocks[i].Rect.Min, blocks[j].Rect.Min
		if dy := a.Y - b.Y; dy > rowTolerance || dy < -rowTolerance {
			return a.Y < b.Y
		}
		return a.X < b.X
	})
}

type mask struct {
	w, h int
	bits []bool
}

func (m *mask) at(x, y int) bool { return m.bits[y*m.w+x] }

// toGray returns a zero-origin grayscale copy of img.
func toGray(img image.Image) *image.Gray {
	b := img.Bounds()
	if g, ok := img.(*image.Gray); ok && b.Min == (image.Point{}) {
		return g
	}
	g := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(g, g.Rect, img, b.Min, draw.Src)
	return g
}

func sobel(g *image.Gray, threshold float64) *mask {
	w, h := g.Rect.Dx(), g.Rect.Dy()
	m := &mask{w: w, h: h, bits: make([]bool, w*h)}
	px := func(x, y int) float64 { return float64(g.Pix[y*g.Stride+x]) }
	t2 := threshold * threshold

	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			gx := -px(x-1, y-1) + px(x+1, y-1) -
				2*px(x-1, y) + 2*px(x+1, y) -
				px(x-1, y+1) + px(x+1, y+1)
			gy := -px(x-1, y-1) - 2*px(x, y-1) - px(x+1, y-1) +
				px(x-1, y+1) + 2*px(x, y+1) + px(x+1, y+1)
			m.bits[y*w+x] = gx*gx+gy*gy > t2
		}
	}
	return m
}

// dilate grows set pixels by radius in a square neighborhood. It runs as a
// horizontal then a vertical pass, which is equivalent for square kernels.
func dilate(in *mask, radius int) *mask {
	if radius <= 0 {
		return in
	}
	w, h := in.w, in.h
	tmp := make([]bool, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			for k := max(0, x-radius); k <= min(w-1, x+radius); k++ {
				if in.bits[y*w+k] {
					tmp[y*w+x] = true
					break
				}
			}
		}
	}
	out := &mask{w: w, h: h, bits: make([]bool, w*h)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			for k := max(0, y-radius); k <= min(h-1, y+radius); k++ {
				if tmp[k*w+x] {
					out.bits[y*w+x] = true
					break
				}
			}
		}
	}
	return out
}

// components returns the bounding box of each 4-connected set region.
func components(m *mask) []image.Rectangle {
	visited := make([]bool, len(m.bits))
	var rects []image.Rectangle
	var stack []image.Point

	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			if !m.at(x, y) || visited[y*m.w+x] {
				continue
			}
			minX, minY, maxX, maxY := x, y, x, y
			stack = append(stack[:0], image.Point{X: x, Y: y})
			visited[y*m.w+x] = true
			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				minX, maxX = min(minX, p.X), max(maxX, p.X)
				minY, maxY = min(minY, p.Y), max(maxY, p.Y)
				for _, n := range [4]image.Point{{p.X + 1, p.Y}, {p.X - 1, p.Y}, {p.X, p.Y + 1}, {p.X, p.Y - 1}} {
					if n.X < 0 || n.Y < 0 || n.X >= m.w || n.Y >= m.h {
						continue
					}
					i := n.Y*m.w + n.X
					if m.bits[i] && !visited[i] {
						visited[i] = true
						stack = append(stack, n)
					}
				}
			}
			rects = append(rects, image.Rect(minX, minY, maxX+1, maxY+1))
		}
	}
	return rects
}
