package parts

import (
	"context"
	"fmt"
	"image"
	"image/color"

	"github.com/skip2/go-qrcode"

	"github.com/ivlev/showreel/internal/config"
	"github.com/ivlev/showreel/internal/gfx"
	"github.com/ivlev/showreel/internal/params"
	"github.com/ivlev/showreel/internal/segment"
)

// CreditsOptions configures a credits segment.
type CreditsOptions struct {
	Lines []string `yaml:"lines"`
	URL   string   `yaml:"url"` // encoded as a QR code when set
}

// Credits rolls lines of text upward and shows a QR code for the URL.
type Credits struct {
	segment.Base
	opts CreditsOptions

	clearColor params.Vec3
	textColor  params.Vec3
	speed      float64
	qrSize     float64

	qr image.Image
}

// NewCredits builds a credits segment.
func NewCredits(name string, opts CreditsOptions) *Credits {
	c := &Credits{
		Base:      segment.NewBase(name),
		opts:      opts,
		textColor: params.Vec3{1, 1, 1},
		speed:     40,
		qrSize:    0.3,
	}
	p := c.Params()
	p.Color3("clearColor", &c.clearColor)
	p.Color3("textColor", &c.textColor)
	p.Float("speed", &c.speed, 1, 0, 400, "%.0f")
	p.Float("qrSize", &c.qrSize, 0.01, 0.05, 0.9, "%.2f")
	return c
}

func newCreditsFromConfig(cfg config.SegmentConfig) (segment.Segment, error) {
	var opts CreditsOptions
	if err := segment.DecodeOptions(cfg.Options, &opts); err != nil {
		return nil, err
	}
	return NewCredits(cfg.Name, opts), nil
}

// Init encodes the URL.
func (c *Credits) Init(ctx context.Context, env segment.Env) error {
	if c.opts.URL == "" {
		return nil
	}
	code, err := qrcode.New(c.opts.URL, qrcode.Medium)
	if err != nil {
		return fmt.Errorf("encoding %q: %w", c.opts.URL, err)
	}
	c.qr = code.Image(512)
	return nil
}

// Render scrolls the lines from the bottom edge at speed pixels per second.
func (c *Credits) Render(frame *image.RGBA, t segment.Time) {
	gfx.Clear(frame, gfx.RGB(c.clearColor))
	b := frame.Rect
	ink := gfx.RGB(c.textColor)

	textArea := b
	if c.qr != nil {
		side := int(float64(b.Dy()) * c.qrSize)
		margin := b.Dy() / 20
		dr := image.Rect(b.Max.X-side-margin, b.Max.Y-side-margin, b.Max.X-margin, b.Max.Y-margin)
		gfx.FillRect(frame, dr.Inset(-4), color.RGBA{255, 255, 255, 255})
		gfx.Blit(frame, dr, c.qr, c.qr.Bounds())
		textArea.Max.X = dr.Min.X - margin
	}

	y0 := b.Max.Y + gfx.LineHeight - int(t.Local*c.speed)
	for i, line := range c.opts.Lines {
		y := y0 + i*gfx.LineHeight*2
		if y < b.Min.Y || y > b.Max.Y+gfx.LineHeight {
			continue
		}
		x := textArea.Min.X + (textArea.Dx()-gfx.TextWidth(line))/2
		gfx.Text(frame, x, y, line, ink)
	}
}
