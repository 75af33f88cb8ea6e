package engine

import (
	"context"
	"image"
	"log/slog"
	"time"

	"github.com/ivlev/showreel/internal/show"
)

// Player runs a show against the wall clock without a window. It renders
// into one reused frame and logs the resolved state periodically.
type Player struct {
	Show     Renderer
	Width    int
	Height   int
	FPS      int
	Duration float64
	Start    float64 // show time to begin at
	LogEvery time.Duration
	Logger   *slog.Logger

	// OnFrame sees every rendered frame; it must not keep it.
	OnFrame func(frame *image.RGBA, st show.Status)
}

// Run plays until the show time reaches Duration or ctx is cancelled. It
// returns the number of frames rendered.
func (p *Player) Run(ctx context.Context) (int, error) {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}
	fps := p.FPS
	if fps <= 0 {
		fps = 60
	}

	frame := image.NewRGBA(image.Rect(0, 0, p.Width, p.Height))
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	begin := time.Now()
	var lastLog time.Time
	frames := 0

	for {
		t := p.Start + time.Since(begin).Seconds()
		if t >= p.Duration {
			logger.Info("playback finished", "frames", frames, "time", t)
			return frames, nil
		}

		if err := p.Show.Render(frame, t); err != nil {
			return frames, err
		}
		frames++
		st := p.Show.Status()
		if p.OnFrame != nil {
			p.OnFrame(frame, st)
		}
		if p.LogEvery > 0 && time.Since(lastLog) >= p.LogEvery {
			logger.Info("playing", "time", st.Time, "segment", st.Segment, "local", st.Local, "alpha", st.Alpha)
			lastLog = time.Now()
		}

		select {
		case <-ctx.Done():
			return frames, ctx.Err()
		case <-ticker.C:
		}
	}
}
