package parts

import (
	"context"
	"fmt"
	"image"
	"image/color"

	"github.com/ivlev/showreel/internal/analyzer"
	"github.com/ivlev/showreel/internal/camera"
	"github.com/ivlev/showreel/internal/config"
	"github.com/ivlev/showreel/internal/gfx"
	"github.com/ivlev/showreel/internal/params"
	"github.com/ivlev/showreel/internal/segment"
	"github.com/ivlev/showreel/internal/source"
)

// SlidesOptions configures a slides segment.
type SlidesOptions struct {
	Source string `yaml:"source"` // PDF, image or folder of images
	DPI    int    `yaml:"dpi"`
	Pages  []int  `yaml:"pages"`  // zero-based; empty means all
	Camera string `yaml:"camera"` // "auto", or a YAML keyframe file applied to every page
	Title  string `yaml:"title"`  // used when there is no source
	Flip   bool   `yaml:"flip"`
}

// Slides shows pages of a deck one after another, each with a camera move.
type Slides struct {
	segment.Base
	opts     SlidesOptions
	duration float64

	clearColor params.Vec3
	zoom       float64
	captions   bool

	pages []*image.RGBA
	path  camera.Path
	auto  []camera.Path // per page, when Camera is "auto"
}

// CameraAuto plans a camera path per page from detected blocks.
const CameraAuto = "auto"

// NewSlides builds a slides segment that spans duration seconds.
func NewSlides(name string, duration float64, opts SlidesOptions) *Slides {
	if opts.DPI <= 0 {
		opts.DPI = 150
	}
	s := &Slides{
		Base:       segment.NewBase(name),
		opts:       opts,
		duration:   duration,
		clearColor: params.Vec3{0.1, 0.1, 0.12},
		zoom:       1.5,
	}
	p := s.Params()
	p.Color3("clearColor", &s.clearColor)
	p.Float("zoom", &s.zoom, 0.01, 1.0, 4.0, "%.2f")
	p.Bool("captions", &s.captions)
	return s
}

func newSlidesFromConfig(cfg config.SegmentConfig) (segment.Segment, error) {
	var opts SlidesOptions
	if err := segment.DecodeOptions(cfg.Options, &opts); err != nil {
		return nil, err
	}
	return NewSlides(cfg.Name, float64(cfg.End-cfg.Start), opts), nil
}

// Init rasterizes every page up front and reads or plans the camera path.
func (s *Slides) Init(ctx context.Context, env segment.Env) error {
	if s.opts.Camera != "" && s.opts.Camera != CameraAuto {
		path, err := camera.ReadPath(env.Assets.Resolve(s.opts.Camera))
		if err != nil {
			return fmt.Errorf("camera path: %w", err)
		}
		if err := path.Validate(); err != nil {
			return fmt.Errorf("camera path: %w", err)
		}
		s.path = path.Sorted()
	}

	if s.opts.Source == "" {
		s.pages = []*image.RGBA{titleCard(env.Width, env.Height, s.opts.Title)}
	} else if err := s.loadPages(ctx, env); err != nil {
		return err
	}

	if s.opts.Camera == CameraAuto {
		return s.planCamera(ctx)
	}
	return nil
}

// planCamera detects blocks on every page and plans a path through them.
func (s *Slides) planCamera(ctx context.Context) error {
	det := analyzer.NewContrastDetector()
	planner := camera.NewPlanner()
	s.auto = make([]camera.Path, len(s.pages))
	for i, page := range s.pages {
		blocks, err := det.Detect(ctx, page)
		if err != nil {
			return fmt.Errorf("analyzing page %d: %w", i, err)
		}
		s.auto[i] = planner.Plan(blocks, page.Rect.Dx(), page.Rect.Dy(), s.perPage())
	}
	return nil
}

func (s *Slides) loadPages(ctx context.Context, env segment.Env) error {
	src, err := env.Assets.Open(s.opts.Source)
	if err != nil {
		return err
	}
	defer src.Close()

	indices := s.opts.Pages
	if len(indices) == 0 {
		for i := 0; i < src.PageCount(); i++ {
			indices = append(indices, i)
		}
	}
	for _, i := range indices {
		if err := ctx.Err(); err != nil {
			return err
		}
		if i < 0 || i >= src.PageCount() {
			return fmt.Errorf("page %d out of range (%d pages)", i, src.PageCount())
		}
		img, err := src.RenderPage(i, s.opts.DPI)
		if err != nil {
			return fmt.Errorf("rendering page %d: %w", i, err)
		}
		page := source.ToRGBA(img)
		if s.opts.Flip {
			source.FlipVertical(page)
		}
		s.pages = append(s.pages, page)
	}
	if env.Logger != nil {
		env.Logger.Debug("slides loaded", "segment", s.Name(), "pages", len(s.pages))
	}
	return nil
}

// Page returns the page index and the time into that page at local time t.
func (s *Slides) Page(local float64) (int, float64) {
	n := len(s.pages)
	if n == 0 {
		return 0, local
	}
	per := s.perPage()
	if per <= 0 {
		return 0, local
	}
	i := int(local / per)
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i, local - float64(i)*per
}

func (s *Slides) perPage() float64 {
	n := len(s.pages)
	if n == 0 || s.duration <= 0 {
		return s.duration
	}
	return s.duration / float64(n)
}

// Render draws the camera's view of the current page letterboxed in the frame.
func (s *Slides) Render(frame *image.RGBA, t segment.Time) {
	gfx.Clear(frame, gfx.RGB(s.clearColor))
	if len(s.pages) == 0 {
		return
	}
	i, pageTime := s.Page(t.Local)
	page := s.pages[i]

	view := camera.Interpolate(s.PagePath(i), pageTime).View(page.Rect.Dx(), page.Rect.Dy())

	dst := gfx.Fit(view, frame.Rect)
	gfx.Blit(frame, dst, page, view)

	if s.captions {
		caption := fmt.Sprintf("%s  %d/%d", s.Name(), i+1, len(s.pages))
		gfx.Text(frame, 12, frame.Rect.Dy()-12, caption, color.RGBA{255, 255, 255, 255})
	}
}

// PagePath is the camera path used on page i, timed to the page's share of
// the segment.
func (s *Slides) PagePath(i int) camera.Path {
	switch {
	case i >= 0 && i < len(s.auto):
		return s.auto[i]
	case len(s.path) > 0:
		return s.path.Scale(s.perPage())
	default:
		return camera.DefaultPath(s.perPage(), s.zoom)
	}
}

// PageImage returns loaded page i, or nil when out of range.
func (s *Slides) PageImage(i int) *image.RGBA {
	if i < 0 || i >= len(s.pages) {
		return nil
	}
	return s.pages[i]
}

// Pages is the number of loaded pages.
func (s *Slides) Pages() int {
	return len(s.pages)
}

func titleCard(w, h int, title string) *image.RGBA {
	card := image.NewRGBA(image.Rect(0, 0, w, h))
	gfx.Clear(card, color.RGBA{250, 250, 248, 255})
	if title != "" {
		gfx.CenteredText(card, h/2, title, color.RGBA{20, 20, 24, 255})
	}
	return card
}
