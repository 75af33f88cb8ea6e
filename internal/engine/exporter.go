package engine

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/ivlev/showreel/internal/system"
	"github.com/ivlev/showreel/internal/video"
)

// Exporter renders every frame of a show in order and hands it to a sink.
// Rendering stays on the calling goroutine; sinks may encode concurrently.
type Exporter struct {
	Show   Renderer
	Sink   video.Sink
	Width  int
	Height int
	FPS    int
	Frames int
	Pool   *system.FramePool
	Logger *slog.Logger
	Build  string
	Stats  bool // collect host statistics into the report

	// Progress is called after each frame is handed to the sink.
	Progress func(done, total int)
}

// Report summarizes an export.
type Report struct {
	Build     string
	Frames    int
	Duration  float64 // show seconds
	Total     time.Duration
	Rendering time.Duration
	Encoding  time.Duration
	Host      system.HostStats
}

// FPS is frames produced per wall clock second.
func (r Report) FPS() float64 {
	if r.Total <= 0 {
		return 0
	}
	return float64(r.Frames) / r.Total.Seconds()
}

func (r Report) String() string {
	return fmt.Sprintf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Frames: %d (%.2fs of show)\n"+
			"Total Time: %.2fs\n"+
			"Rendering: %.2fs\n"+
			"Encoding: %.2fs\n"+
			"Effective FPS: %.2f\n"+
			"Host: %s\n"+
			"----------------------------\n",
		r.Build, r.Frames, r.Duration, r.Total.Seconds(), r.Rendering.Seconds(), r.Encoding.Seconds(), r.FPS(), r.Host,
	)
}

// AppendBenchmark adds one line for this run to a log file.
func (r Report) AppendBenchmark(path, input string) error {
	line := fmt.Sprintf("[%s] Build: %s | Input: %s | Frames: %d | Total: %.2fs | Render: %.2fs | Encode: %.2fs | FPS: %.2f\n",
		time.Now().Format("2006-01-02 15:04:05"),
		r.Build,
		filepath.Base(input),
		r.Frames,
		r.Total.Seconds(),
		r.Rendering.Seconds(),
		r.Encoding.Seconds(),
		r.FPS(),
	)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(line); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Run renders frames 0..Frames-1 at t = i/FPS. The sink is always closed; the
// first render, write or close error is returned.
func (e *Exporter) Run(ctx context.Context) (Report, error) {
	if e.FPS <= 0 || e.Frames < 0 || e.Width <= 0 || e.Height <= 0 {
		return Report{}, fmt.Errorf("invalid export geometry %dx%d@%d, %d frames", e.Width, e.Height, e.FPS, e.Frames)
	}
	logger := e.Logger
	if logger == nil {
		logger = slog.Default()
	}
	pool := e.Pool
	if pool == nil {
		pool = system.NewFramePool()
	}

	start := time.Now()
	report := Report{Duration: FrameTime(e.Frames, e.FPS)}
	rect := image.Rect(0, 0, e.Width, e.Height)

	runErr := func() error {
		for i := 0; i < e.Frames; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			frame := pool.Get(rect)

			r0 := time.Now()
			err := e.Show.Render(frame, FrameTime(i, e.FPS))
			report.Rendering += time.Since(r0)
			if err != nil {
				pool.Put(frame)
				return fmt.Errorf("rendering frame %d: %w", i, err)
			}

			w0 := time.Now()
			err = e.Sink.WriteFrame(ctx, i, frame)
			report.Encoding += time.Since(w0)
			pool.Put(frame)
			if err != nil {
				return err
			}

			report.Frames++
			if e.Progress != nil {
				e.Progress(i+1, e.Frames)
			}
		}
		return nil
	}()

	c0 := time.Now()
	closeErr := e.Sink.Close()
	report.Encoding += time.Since(c0)
	report.Total = time.Since(start)
	report.Build = e.Build
	if e.Stats {
		host, err := system.Snapshot()
		if err != nil {
			logger.Debug("host statistics incomplete", "error", err)
		}
		report.Host = host
	}

	if runErr != nil {
		logger.Error("export aborted", "frames", report.Frames, "error", runErr)
		return report, runErr
	}
	if closeErr != nil {
		return report, closeErr
	}
	logger.Info("export finished", "frames", report.Frames, "seconds", report.Total.Seconds())
	return report, nil
}
