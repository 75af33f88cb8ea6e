package video

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/ivlev/showreel/internal/system"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBuildArgs(t *testing.T) {
	args := BuildArgs(EncoderSettings{
		Width: 1280, Height: 720, FPS: 30,
		Encoder: "libx264", Quality: 23,
		Output: "out.mp4",
	})
	joined := strings.Join(args, " ")

	for _, want := range []string{"-f rawvideo", "-pixel_format rgba", "-video_size 1280x720", "-framerate 30", "-i -", "-crf 23"} {
		if !strings.Contains(joined, want) {
			t.Errorf("Expected %q in %s", want, joined)
		}
	}
	if args[len(args)-1] != "out.mp4" {
		t.Errorf("Expected output last, got %s", args[len(args)-1])
	}
	if strings.Contains(joined, "-shortest") {
		t.Error("Did not expect audio mapping without audio")
	}
}

func TestBuildArgsWithAudio(t *testing.T) {
	joined := strings.Join(BuildArgs(EncoderSettings{Width: 2, Height: 2, FPS: 1, Encoder: "libx264", AudioPath: "a.mp3", Output: "o.mp4"}), " ")
	if !strings.Contains(joined, "-i a.mp3 -map 0:v -map 1:a") || !strings.Contains(joined, "-shortest") {
		t.Errorf("Expected audio mux, got %s", joined)
	}
}

func TestQualityArgs(t *testing.T) {
	tests := []struct {
		encoder string
		quality int
		want    string
	}{
		{"libx264", 23, "-crf 23 -preset medium"},
		{"h264_nvenc", 28, "-cq 28"},
		{"h264_videotoolbox", 75, "-b:v 7500k"},
	}
	for _, tt := range tests {
		if got := strings.Join(QualityArgs(tt.encoder, tt.quality), " "); got != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.encoder, tt.want, got)
		}
	}
}

func TestWriteRawRGBA(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = byte(i)
	}

	var buf bytes.Buffer
	if err := WriteRawRGBA(&buf, img); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 64 {
		t.Errorf("Expected 64 bytes, got %d", buf.Len())
	}

	sub := img.SubImage(image.Rect(1, 1, 3, 3)).(*image.RGBA)
	buf.Reset()
	if err := WriteRawRGBA(&buf, sub); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 16 {
		t.Fatalf("Expected 16 bytes for a 2x2 sub-image, got %d", buf.Len())
	}
	if buf.Bytes()[0] != img.Pix[img.PixOffset(1, 1)] || buf.Bytes()[8] != img.Pix[img.PixOffset(1, 2)] {
		t.Error("Sub-image rows were not repacked")
	}
}

func TestPNGSink(t *testing.T) {
	dir := t.TempDir()
	sink, err := NewPNGSink(context.Background(), dir, 3, system.NewFramePool(), discard())
	if err != nil {
		t.Fatalf("NewPNGSink failed: %v", err)
	}

	frame := image.NewRGBA(image.Rect(0, 0, 8, 4))
	for i := 3; i < len(frame.Pix); i += 4 {
		frame.Pix[i] = 255
	}
	for i := 0; i < 5; i++ {
		frame.Pix[0] = byte(i * 10)
		if err := sink.WriteFrame(context.Background(), i, frame); err != nil {
			t.Fatalf("WriteFrame %d failed: %v", i, err)
		}
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if sink.Written() != 5 {
		t.Errorf("Expected 5 frames written, got %d", sink.Written())
	}

	f, err := os.Open(sink.FramePath(3))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if r, _, _, _ := img.At(0, 0).RGBA(); r>>8 != 30 {
		t.Errorf("Expected frame 3 to keep its own pixels, got %d", r>>8)
	}

	if err := sink.WriteFrame(context.Background(), 5, frame); !errors.Is(err, ErrClosed) {
		t.Errorf("Expected ErrClosed, got %v", err)
	}
}

func TestPNGSinkCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	sink, err := NewPNGSink(ctx, t.TempDir(), 1, nil, discard())
	if err != nil {
		t.Fatal(err)
	}
	cancel()
	frame := image.NewRGBA(image.Rect(0, 0, 2, 2))
	if err := sink.WriteFrame(context.Background(), 0, frame); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	sink.Close()
}
