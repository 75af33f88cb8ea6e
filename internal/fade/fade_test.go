package fade

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"
)

func authored(t *testing.T) *Fade {
	t.Helper()
	f := New()
	for _, w := range []Window{
		{0, 1, 0, 1},
		{8, 9, 1, 0},
		{9, 10, 0, 1},
		{19, 20, 1, 0},
	} {
		if err := f.Add(w.Start, w.End, w.From, w.To); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}
	return f
}

func TestEvaluateAuthoredShow(t *testing.T) {
	f := authored(t)

	tests := []struct {
		time float64
		want float64
	}{
		{0, 0},
		{0.5, 0.5},
		{1, 1},
		{4, 1},
		{8, 1},
		{8.5, 0.5},
		{9, 0},
		{9.5, 0.5},
		{15, 1},
		{19.75, 0.25},
		{20, 0},
		{25, 0},
	}

	for _, tt := range tests {
		if got := f.Evaluate(tt.time); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Evaluate(%v) = %f, want %f", tt.time, got, tt.want)
		}
	}
}

func TestEvaluateMonotonicWithinWindow(t *testing.T) {
	f := New()
	f.Add(2, 4, 0.2, 0.8)

	prev := f.Evaluate(2)
	if math.Abs(prev-0.2) > 1e-9 {
		t.Fatalf("Expected start value 0.2, got %f", prev)
	}
	for step := 1; step < 100; step++ {
		v := f.Evaluate(2 + 2*float64(step)/100)
		if v < prev {
			t.Fatalf("Not monotonic at step %d: %f < %f", step, v, prev)
		}
		prev = v
	}
	if got := f.Evaluate(4); math.Abs(got-0.8) > 1e-9 {
		t.Errorf("Expected end value 0.8, got %f", got)
	}
}

func TestHoldAfterLastWindow(t *testing.T) {
	f := New()
	f.Add(0, 1, 0, 0.6)
	if got := f.Evaluate(1000); got != 0.6 {
		t.Errorf("Expected hold at 0.6, got %f", got)
	}
}

func TestHoldUsesNearestPrecedingWindow(t *testing.T) {
	f := New()
	f.Add(5, 6, 0, 1)
	f.Add(0, 1, 1, 0)

	if got := f.Evaluate(3); got != 0 {
		t.Errorf("Expected hold from [0,1), got %f", got)
	}
	if got := f.Evaluate(7); got != 1 {
		t.Errorf("Expected hold from [5,6), got %f", got)
	}
}

func TestFirstContainingWindowWins(t *testing.T) {
	f := New()
	f.Add(0, 10, 0, 0)
	f.Add(0, 10, 1, 1)
	if got := f.Evaluate(5); got != 0 {
		t.Errorf("Expected first registered window, got %f", got)
	}
}

func TestEvaluateEdges(t *testing.T) {
	if got := New().Evaluate(3); got != 0 {
		t.Errorf("Expected transparent without windows, got %f", got)
	}

	f := New()
	f.Add(2, 3, 0.4, 1)
	if got := f.Evaluate(1); got != 0.4 {
		t.Errorf("Expected first From before every window, got %f", got)
	}
}

func TestAddValidation(t *testing.T) {
	f := New()
	if err := f.Add(1, 1, 0, 1); !errors.Is(err, ErrInvalidWindow) {
		t.Errorf("Expected ErrInvalidWindow, got %v", err)
	}
	if err := f.Add(0, 1, 0, 1.5); !errors.Is(err, ErrInvalidAlpha) {
		t.Errorf("Expected ErrInvalidAlpha, got %v", err)
	}
	if len(f.Windows()) != 0 {
		t.Errorf("Rejected windows must not be stored")
	}
}

func TestOverlayRender(t *testing.T) {
	cover := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := range cover.Pix {
		cover.Pix[i] = 200
	}
	o := NewOverlay(authored(t), cover, 4, 4)

	frame := image.NewRGBA(image.Rect(0, 0, 4, 4))
	if alpha := o.Render(frame, 4); alpha != 1 {
		t.Fatalf("Expected full cover at t=4, got %f", alpha)
	}
	if c := frame.RGBAAt(3, 3); c.R < 190 {
		t.Errorf("Expected cover pixels, got %v", c)
	}

	frame = image.NewRGBA(image.Rect(0, 0, 4, 4))
	frame.SetRGBA(0, 0, color.RGBA{10, 20, 30, 255})
	o.Render(frame, 9)
	if c := frame.RGBAAt(0, 0); c != (color.RGBA{10, 20, 30, 255}) {
		t.Errorf("Expected untouched frame at alpha 0, got %v", c)
	}
}

func TestOverlayRescalesForFrameSize(t *testing.T) {
	cover := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := range cover.Pix {
		cover.Pix[i] = 200
	}
	o := NewOverlay(authored(t), cover, 2, 2)

	frame := image.NewRGBA(image.Rect(0, 0, 6, 4))
	o.Render(frame, 4)
	for _, p := range []image.Point{{0, 0}, {5, 3}, {3, 2}} {
		if c := frame.RGBAAt(p.X, p.Y); c.R < 190 {
			t.Errorf("Expected cover at %v, got %v", p, c)
		}
	}
}

func TestOverlayWithoutCover(t *testing.T) {
	o := NewOverlay(authored(t), nil, 2, 2)
	frame := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := range frame.Pix {
		frame.Pix[i] = 255
	}
	o.Render(frame, 4)
	if c := frame.RGBAAt(1, 1); c.R != 0 || c.A != 255 {
		t.Errorf("Expected black cover, got %v", c)
	}
}
