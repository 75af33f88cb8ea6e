// Package show is the controller that owns the timeline, the cover fade and
// every constructed segment, and draws one frame for a given global time.
package show

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"

	"github.com/ivlev/showreel/internal/config"
	"github.com/ivlev/showreel/internal/fade"
	"github.com/ivlev/showreel/internal/gfx"
	"github.com/ivlev/showreel/internal/params"
	"github.com/ivlev/showreel/internal/segment"
	"github.com/ivlev/showreel/internal/source"
	"github.com/ivlev/showreel/internal/timeline"
)

// Status describes the last rendered frame.
type Status struct {
	Time    float64
	Segment string // empty when no segment covers Time
	Local   float64
	Alpha   float64
}

// Show is the controller. It is not safe for concurrent use; the host calls
// Render from a single goroutine.
type Show struct {
	cfg      *config.Config
	registry *segment.Registry
	assets   *source.Loader
	store    *params.Store
	logger   *slog.Logger

	timeline *timeline.Timeline
	fade     *fade.Fade
	overlay  *fade.Overlay
	segments []segment.Segment

	initialized bool
	status      Status
}

// Option customizes a Show.
type Option func(*Show)

// WithAssets sets the loader used for the cover and segment assets.
func WithAssets(l *source.Loader) Option {
	return func(s *Show) { s.assets = l }
}

// WithStore sets where parameter files are read and written.
func WithStore(st *params.Store) Option {
	return func(s *Show) { s.store = st }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Show) { s.logger = l }
}

// New prepares a show from its configuration. Nothing is loaded until Init.
func New(cfg *config.Config, registry *segment.Registry, opts ...Option) *Show {
	s := &Show{
		cfg:      cfg,
		registry: registry,
		timeline: timeline.New(),
		fade:     fade.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.assets == nil {
		s.assets = source.NewLoader("")
	}
	if s.store == nil {
		s.store = params.NewStore(cfg.ParametersDir, s.logger)
	}
	return s
}

// Init builds every segment, loads the cover, registers the fade windows and
// initializes each segment. Any failure aborts startup and leaves the show as
// it was before the call, so Init may be retried. Persisted parameters are
// applied last; a missing or bad parameter file keeps the segment's defaults.
func (s *Show) Init(ctx context.Context) error {
	if s.initialized {
		return nil
	}

	tl := timeline.New()
	var segments []segment.Segment
	for _, sc := range s.cfg.Segments {
		seg, err := s.registry.New(sc)
		if err != nil {
			return err
		}
		if err := seg.Params().Validate(); err != nil {
			return fmt.Errorf("segment %s: %w", seg.Name(), err)
		}
		if _, err := tl.Add(float64(sc.Start), float64(sc.End), seg); err != nil {
			return err
		}
		segments = append(segments, seg)
	}
	if _, end, ok := tl.Span(); ok && end > float64(s.cfg.Duration) {
		s.logger.Warn("segments run past the show duration", "end", end, "duration", float64(s.cfg.Duration))
	}

	var cover image.Image
	if s.cfg.Cover.File != "" {
		img, err := s.assets.LoadTexture(source.TextureParams{File: s.cfg.Cover.File, Flip: s.cfg.Cover.Flip})
		if err != nil {
			return fmt.Errorf("loading cover: %w", err)
		}
		cover = img
	}

	fd := fade.New()
	for _, fc := range s.cfg.Fades {
		if err := fd.Add(float64(fc.Start), float64(fc.End), fc.From, fc.To); err != nil {
			return fmt.Errorf("adding fade: %w", err)
		}
	}
	overlay := fade.NewOverlay(fd, cover, s.cfg.Width, s.cfg.Height)

	env := segment.Env{
		Width:  s.cfg.Width,
		Height: s.cfg.Height,
		Assets: s.assets,
		Logger: s.logger,
	}
	for _, e := range tl.Entries() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.Segment.Init(ctx, env); err != nil {
			return fmt.Errorf("initializing %s: %w", e.Segment.Name(), err)
		}
		if err := tl.MarkInitialized(e); err != nil {
			return err
		}
		s.logger.Debug("segment initialized", "segment", e.Segment.Name(), "start", e.Start, "end", e.End)
	}

	for _, seg := range segments {
		s.loadParamsAtStartup(seg)
	}

	s.timeline = tl
	s.fade = fd
	s.overlay = overlay
	s.segments = segments
	s.initialized = true
	s.logger.Info("show initialized", "segments", len(segments), "fades", len(fd.Windows()))
	return nil
}

func (s *Show) loadParamsAtStartup(seg segment.Segment) {
	err := s.store.Load(seg.Name(), seg.Params())
	switch {
	case err == nil:
	case errors.Is(err, os.ErrNotExist):
		s.logger.Debug("no parameter file", "segment", seg.Name())
	default:
		s.logger.Warn("parameters not applied, keeping defaults", "segment", seg.Name(), "error", err)
	}
}

// Render draws the segment active at t and composites the cover over it.
// When no segment is active the frame is cleared to black first.
func (s *Show) Render(frame *image.RGBA, t float64) error {
	if !s.initialized {
		return ErrNotInitialized
	}

	e, local, changes, err := s.timeline.Advance(t)
	if err != nil {
		return err
	}
	for _, c := range changes {
		s.logger.Info("segment "+c.To.String(), "segment", c.Entry.Segment.Name(), "time", t)
	}

	status := Status{Time: t}
	if e != nil {
		e.Segment.Render(frame, segment.Time{Global: t, Local: local})
		status.Segment = e.Segment.Name()
		status.Local = local
	} else {
		gfx.Clear(frame, gfx.Black)
	}
	status.Alpha = s.overlay.Render(frame, t)
	s.status = status
	return nil
}

// Status reports the last rendered frame.
func (s *Show) Status() Status {
	return s.status
}

// Segments returns the segments in declaration order.
func (s *Show) Segments() []segment.Segment {
	return s.segments
}

// Lookup finds a segment by name.
func (s *Show) Lookup(name string) (segment.Segment, error) {
	for _, seg := range s.segments {
		if seg.Name() == name {
			return seg, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownSegment, name)
}

// SaveParams writes the named segment's parameters to its file.
func (s *Show) SaveParams(name string) error {
	seg, err := s.Lookup(name)
	if err != nil {
		return err
	}
	return s.store.Save(seg.Name(), seg.Params())
}

// LoadParams reloads the named segment's parameters. The set is unchanged on
// error.
func (s *Show) LoadParams(name string) error {
	seg, err := s.Lookup(name)
	if err != nil {
		return err
	}
	return s.store.Load(seg.Name(), seg.Params())
}

// Timeline exposes the schedule for inspection.
func (s *Show) Timeline() *timeline.Timeline {
	return s.timeline
}

// Fade exposes the cover curve for inspection.
func (s *Show) Fade() *fade.Fade {
	return s.fade
}

// Config returns the configuration the show was built from.
func (s *Show) Config() *config.Config {
	return s.cfg
}
