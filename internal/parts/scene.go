package parts

import (
	"context"
	"image"
	"image/color"
	"math"

	"github.com/ivlev/showreel/internal/config"
	"github.com/ivlev/showreel/internal/gfx"
	"github.com/ivlev/showreel/internal/params"
	"github.com/ivlev/showreel/internal/segment"
	"github.com/ivlev/showreel/internal/source"
)

// SceneOptions configures a scene segment.
type SceneOptions struct {
	FOV       float64 `yaml:"fov"`
	Near      float64 `yaml:"near"`
	Far       float64 `yaml:"far"`
	GridSize  float64 `yaml:"grid_size"`
	GridCount int     `yaml:"grid_count"`
	HullSize  float64 `yaml:"hull_size"`
	Sprite    string  `yaml:"sprite"`
}

func defaultSceneOptions() SceneOptions {
	return SceneOptions{
		FOV:       60,
		Near:      10,
		Far:       1000,
		GridSize:  5000,
		GridCount: 400,
		HullSize:  200,
	}
}

// Scene draws a ground grid and a gently rocking model seen through a
// look-at camera whose eye and target are live parameters.
type Scene struct {
	segment.Base
	opts SceneOptions

	clearColor     params.Vec3
	eye            params.Vec3
	center         params.Vec3
	enableGrid     bool
	scaleModel     float64
	translateModel params.Vec3

	hull   [][2]params.Vec3
	sprite *image.RGBA
}

// NewScene builds the scene with its tuned defaults.
func NewScene(name string, opts SceneOptions) *Scene {
	s := &Scene{
		Base:       segment.NewBase(name),
		opts:       opts,
		clearColor: params.Vec3{0.78, 0.78, 0.78},
		eye:        params.Vec3{50, -100, 50},
		center:     params.Vec3{0, 20, 50},
		enableGrid: true,
		scaleModel: 0.1,
	}
	p := s.Params()
	p.Color3("clearColor", &s.clearColor)
	p.Vec3("eye", &s.eye)
	p.Vec3("center", &s.center)
	p.Bool("enableGrid", &s.enableGrid)
	p.Float("scaleModel", &s.scaleModel, 0.001, 0.001, 1.0, "%.3f")
	p.Vec3("translateModel", &s.translateModel)
	return s
}

func newSceneFromConfig(cfg config.SegmentConfig) (segment.Segment, error) {
	opts := defaultSceneOptions()
	if err := segment.DecodeOptions(cfg.Options, &opts); err != nil {
		return nil, err
	}
	return NewScene(cfg.Name, opts), nil
}

// Init builds the model outline and loads the optional sprite.
func (s *Scene) Init(ctx context.Context, env segment.Env) error {
	s.hull = hullEdges(s.opts.HullSize)
	if s.opts.Sprite != "" {
		img, err := env.Assets.LoadTexture(source.TextureParams{File: s.opts.Sprite})
		if err != nil {
			return err
		}
		s.sprite = img
	}
	return nil
}

// Render clears, draws the grid when enabled and the model moved by global
// time so motion continues across segment boundaries.
func (s *Scene) Render(frame *image.RGBA, t segment.Time) {
	gfx.Clear(frame, gfx.RGB(s.clearColor))

	pr := newProjector(s.eye, s.center, s.opts.FOV, s.opts.Near, s.opts.Far, frame.Rect)

	if s.enableGrid {
		s.renderGrid(frame, pr)
	}

	m := s.modelMatrix(t.Global)
	ink := color.RGBA{40, 40, 48, 255}
	for _, e := range s.hull {
		pr.segment(frame, m.apply(e[0]), m.apply(e[1]), ink)
	}

	if s.sprite != nil {
		s.renderSprite(frame, pr, m.apply(params.Vec3{}))
	}
}

func (s *Scene) modelMatrix(global float64) mat4 {
	deg := math.Pi / 180
	return identity().
		scale(s.scaleModel).
		rotateX(math.Sin(global) * 2 * deg).
		rotateY(math.Cos(global) * 2 * deg).
		translate(params.Vec3{math.Cos(global) * 2, 0, math.Sin(global) * 10}).
		translate(s.translateModel)
}

func (s *Scene) renderGrid(frame *image.RGBA, pr projector) {
	count := s.opts.GridCount
	if count <= 0 {
		return
	}
	half := s.opts.GridSize / 2
	step := s.opts.GridSize / float64(count)
	white := color.RGBA{255, 255, 255, 255}
	for i := 0; i <= count; i++ {
		k := -half + float64(i)*step
		pr.segment(frame, params.Vec3{k, -half, 0}, params.Vec3{k, half, 0}, white)
		pr.segment(frame, params.Vec3{-half, k, 0}, params.Vec3{half, k, 0}, white)
	}
}

// renderSprite draws the sprite billboarded at p, sized by its depth.
func (s *Scene) renderSprite(frame *image.RGBA, pr projector, p params.Vec3) {
	v := pr.view(p)
	if v[2] < pr.near || v[2] > pr.far {
		return
	}
	cx, cy := pr.screen(v)
	size := int(pr.height * pr.focal * 20 / v[2])
	if size <= 0 {
		return
	}
	b := s.sprite.Bounds()
	w := size * b.Dx() / max(b.Dy(), 1)
	dr := image.Rect(cx-w/2, cy-size/2, cx+w/2, cy+size/2)
	gfx.Blit(frame, dr, s.sprite, b)
}

// hullEdges is a boat-like wireframe: a tapered box with a mast.
func hullEdges(size float64) [][2]params.Vec3 {
	l, w, h := size, size*0.4, size*0.3
	bottom := [4]params.Vec3{{-l * 0.8, -w * 0.6, 0}, {l * 0.8, -w * 0.6, 0}, {l * 0.8, w * 0.6, 0}, {-l * 0.8, w * 0.6, 0}}
	top := [4]params.Vec3{{-l, -w, h}, {l, -w, h}, {l, w, h}, {-l, w, h}}

	var edges [][2]params.Vec3
	for i := 0; i < 4; i++ {
		j := (i + 1) % 4
		edges = append(edges,
			[2]params.Vec3{bottom[i], bottom[j]},
			[2]params.Vec3{top[i], top[j]},
			[2]params.Vec3{bottom[i], top[i]},
		)
	}
	bow := params.Vec3{l * 1.4, 0, h}
	edges = append(edges,
		[2]params.Vec3{top[1], bow},
		[2]params.Vec3{top[2], bow},
		[2]params.Vec3{{0, 0, h}, {0, 0, h + size}},
	)
	return edges
}
