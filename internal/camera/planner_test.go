package camera

import (
	"image"
	"math"
	"testing"

	"github.com/ivlev/showreel/internal/analyzer"
)

func TestPlanVisitsBlocks(t *testing.T) {
	blocks := []analyzer.Block{
		{Rect: image.Rect(0, 0, 500, 100)},
		{Rect: image.Rect(100, 300, 300, 400)},
	}
	path := NewPlanner().Plan(blocks, 1000, 500, 8)

	if len(path) != 4 {
		t.Fatalf("Expected 4 keyframes, got %d", len(path))
	}
	if path[0].Focus != "full_view" || path[3].Focus != "full_view" {
		t.Error("Expected the path to open and close on the full page")
	}
	if math.Abs(path[3].Time-8) > 1e-9 {
		t.Errorf("Expected the path scaled to 8s, got %f", path[3].Time)
	}
	if r := path[1].Rect; r.W != 0.5 || r.H != 0.2 {
		t.Errorf("Expected normalized rect, got %+v", r)
	}
	if math.Abs(path[1].Zoom-1.8) > 1e-9 {
		t.Errorf("Expected zoom 1.8, got %f", path[1].Zoom)
	}
	if path[2].Zoom != 3 {
		t.Errorf("Expected zoom capped at 3, got %f", path[2].Zoom)
	}
	if err := path.Validate(); err != nil {
		t.Errorf("Expected a valid path, got %v", err)
	}
}

func TestPlanWithoutBlocks(t *testing.T) {
	path := NewPlanner().Plan(nil, 100, 100, 5)
	if len(path) != 1 || path[0].Zoom != 1 {
		t.Errorf("Expected a single full view, got %+v", path)
	}
}
