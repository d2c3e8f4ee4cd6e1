// Package preview draws planned tower layers into images.
//
// A Canvas implements plan.Backend, so a layer recording can be replayed
// straight onto it:
//
//	c := preview.NewCanvas(bounds, preview.DefaultOptions())
//	if err := recording.Playback(c); err != nil { ... }
//	err := preview.SavePNG("layer-0003.png", c.Image())
package preview

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"

	"golang.org/x/image/vector"

	"github.com/gogpu/primetower"
	"github.com/gogpu/primetower/geom"
	"github.com/gogpu/primetower/layer"
	"github.com/gogpu/primetower/plan"
)

// ErrEmptyBounds is returned when there is nothing to frame.
var ErrEmptyBounds = errors.New("preview: empty bounds")

// Options control how layers are drawn.
type Options struct {
	// PixelsPerMM is the resolution. Default 20.
	PixelsPerMM float64
	// Margin is added around the bounds, in micrometres. Default 2 mm.
	Margin geom.Coord
	// Background fills the image before drawing.
	Background color.Color
	// Palette colours printed lines by extruder number.
	Palette []color.Color
	// TravelColor draws travel moves as hairlines; nil hides them.
	TravelColor color.Color
}

// DefaultOptions returns the options used by the demo.
func DefaultOptions() Options {
	return Options{
		PixelsPerMM: 20,
		Margin:      2000,
		Background:  color.White,
		Palette: []color.Color{
			color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
			color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
			color.RGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
			color.RGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
		},
		TravelColor: color.RGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xff},
	}
}

// Canvas rasterises one layer at a time.
type Canvas struct {
	opts   Options
	bounds geom.AABB
	img    *image.RGBA
	z      *vector.Rasterizer
	last   geom.Point
	moved  bool
}

// NewCanvas returns a canvas framing bounds.
func NewCanvas(bounds geom.AABB, opts Options) *Canvas {
	if opts.PixelsPerMM <= 0 {
		opts.PixelsPerMM = 20
	}
	if opts.Background == nil {
		opts.Background = color.White
	}
	if len(opts.Palette) == 0 {
		opts.Palette = DefaultOptions().Palette
	}
	return &Canvas{opts: opts, bounds: bounds}
}

func (c *Canvas) scale() float64 {
	return c.opts.PixelsPerMM / 1000
}

// Begin implements plan.Backend.
func (c *Canvas) Begin(nr layer.Index) error {
	if c.bounds.Empty() {
		return fmt.Errorf("layer %d: %w", nr, ErrEmptyBounds)
	}
	m := float64(c.opts.Margin)
	w := int(math.Ceil((c.bounds.Width() + 2*m) * c.scale()))
	h := int(math.Ceil((c.bounds.Height() + 2*m) * c.scale()))
	c.img = image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	for i := 0; i < len(c.img.Pix); i += 4 {
		r, g, b, a := c.opts.Background.RGBA()
		c.img.Pix[i], c.img.Pix[i+1], c.img.Pix[i+2], c.img.Pix[i+3] = uint8(r>>8), uint8(g>>8), uint8(b>>8), uint8(a>>8)
	}
	c.z = vector.NewRasterizer(c.img.Bounds().Dx(), c.img.Bounds().Dy())
	c.moved = false
	return nil
}

// Travel implements plan.Backend.
func (c *Canvas) Travel(to geom.Point) {
	if c.moved && c.opts.TravelColor != nil {
		c.stroke([]geom.Point{c.last, to}, false, 1/c.scale(), c.opts.TravelColor)
	}
	c.last, c.moved = to, true
}

// Print implements plan.Backend.
func (c *Canvas) Print(paths geom.Shape, config primetower.PathConfig) {
	col := c.opts.Palette[config.Extruder%len(c.opts.Palette)]
	for _, poly := range paths {
		c.stroke(poly, true, float64(config.LineWidth), col)
		if len(poly) > 0 {
			c.last, c.moved = poly[0], true
		}
	}
}

// End implements plan.Backend.
func (c *Canvas) End() error {
	if c.img == nil {
		return errors.New("preview: End without Begin")
	}
	return nil
}

// Image returns the image of the last layer.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

func (c *Canvas) toPixel(p geom.Point) (float32, float32) {
	m := float64(c.opts.Margin)
	x := (float64(p.X) - c.bounds.Min.X + m) * c.scale()
	y := (c.bounds.Max.Y - float64(p.Y) + m) * c.scale()
	return float32(x), float32(y)
}

// stroke draws every segment as a quad of the given width in micrometres.
// All quads share the same winding, so overlaps never cancel out.
func (c *Canvas) stroke(pts []geom.Point, closed bool, width float64, col color.Color) {
	if c.img == nil || len(pts) < 2 {
		return
	}
	c.z.Reset(c.img.Bounds().Dx(), c.img.Bounds().Dy())
	half := width / 2
	n := len(pts)
	if !closed {
		n--
	}
	for i := range n {
		a, b := pts[i], pts[(i+1)%len(pts)]
		dx, dy := float64(b.X-a.X), float64(b.Y-a.Y)
		length := math.Hypot(dx, dy)
		if length == 0 {
			continue
		}
		nx, ny := -dy/length*half, dx/length*half
		corner := func(p geom.Point, sx, sy float64) (float32, float32) {
			return c.toPixel(geom.Pt(p.X+geom.Coord(sx), p.Y+geom.Coord(sy)))
		}
		c.z.MoveTo(corner(a, nx, ny))
		c.z.LineTo(corner(b, nx, ny))
		c.z.LineTo(corner(b, -nx, -ny))
		c.z.LineTo(corner(a, -nx, -ny))
		c.z.ClosePath()
	}
	c.z.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{})
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("preview: encode png: %w", err)
	}
	return nil
}

// SavePNG writes img to a PNG file.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	if err := WritePNG(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

var _ plan.Backend = (*Canvas)(nil)
