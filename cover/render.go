// Package cover draws decorative book covers as PNG images.
package cover

import (
	"bytes"
	"fmt"
	"image/color"
	"math/rand/v2"
	"time"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/font"

	"story-archiver/model"
)

const (
	Width  = 800
	Height = 1200

	titleMaxWidth   = 700
	titleCenterY    = 400
	titleLineHeight = 80
	authorY         = 700
	fandomY         = 800

	decorationCount = 5
	decorationAlpha = 0.1
	borderWidth     = 8
	borderInset     = 20

	shadowOffset = 2
	// a canvas shadowBlur of 10 corresponds to a gaussian sigma of 5
	shadowSigma = 5
)

var shadowColor = color.NRGBA{A: 0x80}

// canvas is one drawing surface with everything needed to paint a cover. A
// canvas is only ever used by the goroutine that acquired it.
type canvas struct {
	dc     *gg.Context
	shadow *gg.Context
	faces  map[family]*faces
	rng    *rand.Rand
}

func (c *canvas) facesFor(fam family) (*faces, error) {
	if f, ok := c.faces[fam]; ok {
		return f, nil
	}
	f, err := newFaces(fam)
	if err != nil {
		return nil, err
	}
	c.faces[fam] = f
	return f, nil
}

// Renderer paints covers on a bounded pool of canvases.
type Renderer struct {
	canvases chan *canvas
	seed     func() uint64
	Logger   logrus.FieldLogger
}

// NewRenderer returns a Renderer that draws at most size covers at once.
func NewRenderer(size int) *Renderer {
	if size < 1 {
		size = 1
	}
	r := &Renderer{
		canvases: make(chan *canvas, size),
		seed:     func() uint64 { return uint64(time.Now().UnixNano()) },
	}
	// empty slots are filled on first use
	for range size {
		r.canvases <- nil
	}
	return r
}

// WithSeed makes the decoration layout reproducible.
func (r *Renderer) WithSeed(seed uint64) *Renderer {
	r.seed = func() uint64 { return seed }
	return r
}

func (r *Renderer) acquire() *canvas {
	c := <-r.canvases
	if c == nil {
		c = &canvas{
			dc:     gg.NewContext(Width, Height),
			shadow: gg.NewContext(Width, Height),
			faces:  make(map[family]*faces),
		}
	}
	seed := r.seed()
	c.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	return c
}

func (r *Renderer) release(c *canvas) {
	r.canvases <- c
}

func (r *Renderer) logger() logrus.FieldLogger {
	if r.Logger == nil {
		return logrus.StandardLogger()
	}
	return r.Logger
}

// Generate draws the cover for story with the named theme (Classic when the
// name is unknown) and any non-empty override fields, and returns PNG bytes.
func (r *Renderer) Generate(story *model.Story, themeName string, overrides Theme) ([]byte, error) {
	if story == nil {
		return nil, fmt.Errorf("failed to generate cover: %w", model.ErrInvalidStory)
	}
	theme := Resolve(themeName, overrides)
	r.logger().WithFields(logrus.Fields{"story": story.Id, "theme": theme.Name}).Debug("Drawing cover")

	c := r.acquire()
	defer r.release(c)

	if err := c.paint(story, theme); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := c.dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode cover: %w", err)
	}
	return buf.Bytes(), nil
}

func (c *canvas) paint(story *model.Story, theme Theme) error {
	fc, err := c.facesFor(familyOf(theme.Font))
	if err != nil {
		return fmt.Errorf("failed to load cover fonts: %w", err)
	}
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	accent := mustColor(theme.AccentColor, white)

	dc := c.dc
	dc.SetColor(color.Transparent)
	dc.Clear()

	c.drawBackground(ParseBackground(theme.Background))
	c.drawDecorations(accent)
	c.drawTitle(story.Title, fc.title, mustColor(theme.TitleColor, white))

	dc.SetFontFace(fc.author)
	dc.SetColor(mustColor(theme.AuthorColor, white))
	dc.DrawStringAnchored("by "+story.Author, Width/2, authorY, 0.5, 0.5)

	if story.HasFandom() {
		dc.SetFontFace(fc.fandom)
		dc.SetColor(accent)
		dc.DrawStringAnchored(story.FandomText(), Width/2, fandomY, 0.5, 0.5)
	}

	dc.SetColor(accent)
	dc.SetLineWidth(borderWidth)
	dc.DrawRectangle(borderInset, borderInset, Width-2*borderInset, Height-2*borderInset)
	dc.Stroke()
	return nil
}

func (c *canvas) drawBackground(colors []color.NRGBA) {
	dc := c.dc
	if len(colors) == 1 {
		dc.SetColor(colors[0])
	} else {
		grad := gg.NewLinearGradient(0, 0, Width, Height)
		for i, col := range colors {
			grad.AddColorStop(float64(i)/float64(len(colors)-1), col)
		}
		dc.SetFillStyle(grad)
	}
	dc.DrawRectangle(0, 0, Width, Height)
	dc.Fill()
}

type decoration struct {
	X, Y, Radius float64
}

func planDecorations(rng *rand.Rand) []decoration {
	out := make([]decoration, decorationCount)
	for i := range out {
		out[i] = decoration{
			X:      rng.Float64() * Width,
			Y:      rng.Float64() * Height,
			Radius: rng.Float64()*100 + 20,
		}
	}
	return out
}

func (c *canvas) drawDecorations(accent color.NRGBA) {
	faded := accent
	faded.A = uint8(float64(accent.A) * decorationAlpha)
	c.dc.SetColor(faded)
	for _, d := range planDecorations(c.rng) {
		c.dc.DrawCircle(d.X, d.Y, d.Radius)
		c.dc.Fill()
	}
}

func titleLineY(i, n int) float64 {
	return float64(titleCenterY-(n-1)*titleLineHeight/2) + float64(i*titleLineHeight)
}

func (c *canvas) drawTitle(title string, face font.Face, fill color.NRGBA) {
	dc := c.dc
	dc.SetFontFace(face)
	lines := WrapTitle(func(s string) float64 {
		w, _ := dc.MeasureString(s)
		return w
	}, title, titleMaxWidth)
	if len(lines) == 0 {
		return
	}

	sh := c.shadow
	sh.SetColor(color.Transparent)
	sh.Clear()
	sh.SetFontFace(face)
	sh.SetColor(shadowColor)
	for i, line := range lines {
		sh.DrawStringAnchored(line, Width/2+shadowOffset, titleLineY(i, len(lines))+shadowOffset, 0.5, 0.5)
	}
	dc.DrawImage(imaging.Blur(sh.Image(), shadowSigma), 0, 0)

	dc.SetColor(fill)
	for i, line := range lines {
		dc.DrawStringAnchored(line, Width/2, titleLineY(i, len(lines)), 0.5, 0.5)
	}
}
