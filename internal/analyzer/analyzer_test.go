package analyzer

import (
	"context"
	"image"
	"image/color"
	"testing"
)

func page(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	return img
}

func fill(img *image.Gray, r image.Rectangle, v uint8) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
}

func TestContrastDetector(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 200, 200))
	fill(img, image.Rect(50, 50, 150, 150), 255)

	blocks, err := NewContrastDetector().Detect(context.Background(), img)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if len(blocks) == 0 {
		t.Fatal("Expected at least one block, got none")
	}
	if b := blocks[0].Rect; b.Dx() < 80 || b.Dy() < 80 {
		t.Errorf("Block too small: %v", b)
	}
}

func TestReadingOrder(t *testing.T) {
	img := page(400, 300)
	fill(img, image.Rect(220, 40, 360, 80), 0)  // right column, top
	fill(img, image.Rect(20, 45, 180, 85), 0)   // left column, top
	fill(img, image.Rect(20, 180, 380, 260), 0) // bottom figure

	blocks, err := NewContrastDetector().Detect(context.Background(), img)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if len(blocks) != 3 {
		t.Fatalf("Expected 3 blocks, got %d: %+v", len(blocks), blocks)
	}
	if blocks[0].Rect.Min.X > 30 || blocks[1].Rect.Min.X < 200 || blocks[2].Rect.Min.Y < 170 {
		t.Errorf("Blocks not in reading order: %v %v %v", blocks[0].Rect, blocks[1].Rect, blocks[2].Rect)
	}
}

func TestSmallBlocksIgnored(t *testing.T) {
	img := page(200, 200)
	fill(img, image.Rect(10, 10, 14, 14), 0)

	blocks, _ := NewContrastDetector().Detect(context.Background(), img)
	if len(blocks) != 0 {
		t.Errorf("Expected speck to be ignored, got %+v", blocks)
	}
}

func TestDetectCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewContrastDetector().Detect(ctx, page(50, 50)); err == nil {
		t.Error("Expected cancellation error")
	}
}

func TestDetectorRegistry(t *testing.T) {
	tests := []struct {
		variant string
		wantErr bool
	}{
		{"contrast", false},
		{"", false},
		{"ocr", true},
	}

	for _, tt := range tests {
		t.Run(tt.variant, func(t *testing.T) {
			detector, err := NewDetector(tt.variant)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil || detector == nil {
				t.Errorf("Unexpected result %v, %v", detector, err)
			}
		})
	}
}
