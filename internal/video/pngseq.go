package video

import (
	"bufio"
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/showreel/internal/system"
)

// PNGSink writes frame_000000.png, frame_000001.png, ... into a directory.
// Encoding runs on up to Workers goroutines over pooled copies of the frames.
type PNGSink struct {
	dir    string
	pool   *system.FramePool
	logger *slog.Logger

	group *errgroup.Group
	ctx   context.Context
	enc   png.Encoder

	mu      sync.Mutex
	closed  bool
	written int
}

// NewPNGSink creates dir and a sink writing into it.
func NewPNGSink(ctx context.Context, dir string, workers int, pool *system.FramePool, logger *slog.Logger) (*PNGSink, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = 1
	}
	if pool == nil {
		pool = system.NewFramePool()
	}
	if logger == nil {
		logger = slog.Default()
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	return &PNGSink{
		dir:    dir,
		pool:   pool,
		logger: logger,
		group:  g,
		ctx:    gctx,
		enc:    png.Encoder{CompressionLevel: png.BestSpeed},
	}, nil
}

// FramePath is the file frame index is written to.
func (s *PNGSink) FramePath(index int) string {
	return filepath.Join(s.dir, fmt.Sprintf("frame_%06d.png", index))
}

// WriteFrame copies the frame and queues it. It blocks while every worker is
// busy and returns the first worker error.
func (s *PNGSink) WriteFrame(ctx context.Context, index int, frame *image.RGBA) error {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return ErrClosed
	}
	if s.ctx.Err() != nil {
		if err := s.group.Wait(); err != nil {
			return err
		}
		return s.ctx.Err()
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	buf := s.pool.Clone(frame)
	s.group.Go(func() error {
		defer s.pool.Put(buf)
		if err := s.ctx.Err(); err != nil {
			return err
		}
		if err := s.writePNG(s.FramePath(index), buf); err != nil {
			return fmt.Errorf("frame %d: %w", index, err)
		}
		s.mu.Lock()
		s.written++
		s.mu.Unlock()
		return nil
	})
	return nil
}

func (s *PNGSink) writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if err := s.enc.Encode(w, img); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Close waits for queued frames.
func (s *PNGSink) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	err := s.group.Wait()
	s.logger.Info("png sequence written", "dir", s.dir, "frames", s.Written())
	return err
}

// Written counts frames encoded so far.
func (s *PNGSink) Written() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.written
}
