package video

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"sync"
)

// EncoderSettings selects the ffmpeg output.
type EncoderSettings struct {
	Width     int
	Height    int
	FPS       int
	Encoder   string // libx264, h264_nvenc, h264_videotoolbox
	Quality   int
	AudioPath string // muxed in when set; the shorter stream ends the file
	Output    string
}

// FFmpegSink streams frames to ffmpeg over stdin as rawvideo.
type FFmpegSink struct {
	settings EncoderSettings
	logger   *slog.Logger

	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stderr bytes.Buffer

	mu     sync.Mutex
	closed bool
}

// NewFFmpegSink starts ffmpeg. The process is killed if ctx is cancelled.
func NewFFmpegSink(ctx context.Context, s EncoderSettings, logger *slog.Logger) (*FFmpegSink, error) {
	if s.Encoder == "" {
		s.Encoder = "libx264"
	}
	if logger == nil {
		logger = slog.Default()
	}
	sink := &FFmpegSink{settings: s, logger: logger}

	args := BuildArgs(s)
	sink.cmd = exec.CommandContext(ctx, "ffmpeg", args...)
	sink.cmd.Stderr = &sink.stderr

	stdin, err := sink.cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe error: %w", err)
	}
	sink.stdin = stdin

	logger.Debug("starting ffmpeg", "args", strings.Join(args, " "))
	if err := sink.cmd.Start(); err != nil {
		return nil, fmt.Errorf("ffmpeg start error: %w", err)
	}
	return sink, nil
}

// BuildArgs returns the ffmpeg command line for s.
func BuildArgs(s EncoderSettings) []string {
	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", s.Width, s.Height),
		"-framerate", fmt.Sprintf("%d", s.FPS),
		"-i", "-",
	}
	if s.AudioPath != "" {
		args = append(args, "-i", s.AudioPath, "-map", "0:v", "-map", "1:a", "-c:a", "aac", "-shortest")
	}
	args = append(args, "-pix_fmt", "yuv420p", "-c:v", s.Encoder)
	args = append(args, QualityArgs(s.Encoder, s.Quality)...)
	return append(args, s.Output)
}

// QualityArgs maps one quality knob onto each encoder's rate control.
func QualityArgs(encoder string, quality int) []string {
	switch encoder {
	case "h264_videotoolbox":
		// VideoToolbox ignores -q:v on some builds; quality is kbit/s / 100.
		return []string{"-b:v", fmt.Sprintf("%dk", quality*100)}
	case "h264_nvenc":
		return []string{"-cq", fmt.Sprintf("%d", quality)}
	default:
		return []string{"-crf", fmt.Sprintf("%d", quality), "-preset", "medium"}
	}
}

// WriteFrame writes the frame's pixels to ffmpeg.
func (f *FFmpegSink) WriteFrame(ctx context.Context, index int, frame *image.RGBA) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := WriteRawRGBA(f.stdin, frame); err != nil {
		return fmt.Errorf("write raw error at frame %d: %w\n%s", index, err, f.stderr.String())
	}
	return nil
}

// Close ends the input stream and waits for ffmpeg to finish the file.
func (f *FFmpegSink) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil
	}
	f.closed = true

	f.stdin.Close()
	if err := f.cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg wait error: %w\nLog: %s", err, f.stderr.String())
	}
	f.logger.Info("video written", "file", f.settings.Output)
	return nil
}

// WriteRawRGBA writes tightly packed RGBA rows, repacking when the frame is a
// sub-image.
func WriteRawRGBA(w io.Writer, img *image.RGBA) error {
	b := img.Rect
	if img.Stride == b.Dx()*4 {
		start := img.PixOffset(b.Min.X, b.Min.Y)
		_, err := w.Write(img.Pix[start : start+b.Dx()*b.Dy()*4])
		return err
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		start := img.PixOffset(b.Min.X, y)
		if _, err := w.Write(img.Pix[start : start+b.Dx()*4]); err != nil {
			return err
		}
	}
	return nil
}
