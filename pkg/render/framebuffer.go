// Package render projects wireframe geometry through a perspective camera
// and rasterizes it into a pixel framebuffer that can be shown in a terminal,
// uploaded to a window, or written to a PNG file.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"

	"golang.org/x/image/vector"
)

// Framebuffer is a 2D array of pixels. In the terminal the height is 2x the
// row count because each cell shows two pixels with a half-block (▀).
type Framebuffer struct {
	Width  int          // Width in pixels
	Height int          // Height in pixels
	Pixels []color.RGBA // Row-major pixel data

	disc *vector.Rasterizer
}

var _ draw.Image = (*Framebuffer)(nil)

// NewFramebuffer creates a new framebuffer with the given dimensions.
// Negative dimensions are treated as zero.
func NewFramebuffer(width, height int) *Framebuffer {
	width, height = max(width, 0), max(height, 0)
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]color.RGBA, width*height),
	}
}

// Resize changes the framebuffer dimensions. The pixel buffer is reused when
// it is large enough; contents are undefined until the next Clear.
func (fb *Framebuffer) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if n := width * height; n <= cap(fb.Pixels) {
		fb.Pixels = fb.Pixels[:n]
	} else {
		fb.Pixels = make([]color.RGBA, n)
	}
	fb.Width, fb.Height = width, height
}

// Clear fills the framebuffer with a solid color.
func (fb *Framebuffer) Clear(c color.RGBA) {
	for i := range fb.Pixels {
		fb.Pixels[i] = c
	}
}

// SetPixel sets a pixel at (x, y) to the given color.
// Bounds checking is performed.
func (fb *Framebuffer) SetPixel(x, y int, c color.RGBA) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Pixels[y*fb.Width+x] = c
}

// GetPixel returns the color at (x, y).
// Returns transparent black if out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) color.RGBA {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return color.RGBA{}
	}
	return fb.Pixels[y*fb.Width+x]
}

// ColorModel implements image.Image.
func (fb *Framebuffer) ColorModel() color.Model { return color.RGBAModel }

// Bounds implements image.Image.
func (fb *Framebuffer) Bounds() image.Rectangle { return image.Rect(0, 0, fb.Width, fb.Height) }

// At implements image.Image.
func (fb *Framebuffer) At(x, y int) color.Color { return fb.GetPixel(x, y) }

// Set implements draw.Image.
func (fb *Framebuffer) Set(x, y int, c color.Color) {
	fb.SetPixel(x, y, color.RGBAModel.Convert(c).(color.RGBA))
}

// DrawLine draws a line from (x0, y0) to (x1, y1) using Bresenham's algorithm.
// Callers with unbounded endpoints should use DrawSegment.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		fb.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawSegment draws a line between two floating-point pixel positions.
// The segment is clipped to the framebuffer first, so endpoints far outside
// the buffer cost nothing. It reports whether any part was drawn.
func (fb *Framebuffer) DrawSegment(x0, y0, x1, y1 float64, c color.RGBA) bool {
	if fb.Width == 0 || fb.Height == 0 {
		return false
	}
	ax, ay, bx, by, ok := clipSegment(x0, y0, x1, y1, 0, 0, float64(fb.Width-1), float64(fb.Height-1))
	if !ok {
		return false
	}
	fb.DrawLine(int(math.Round(ax)), int(math.Round(ay)), int(math.Round(bx)), int(math.Round(by)), c)
	return true
}

// clipSegment clips a segment to the rectangle [xmin, xmax] x [ymin, ymax]
// using the Liang-Barsky parametric test.
func clipSegment(x0, y0, x1, y1, xmin, ymin, xmax, ymax float64) (ax, ay, bx, by float64, ok bool) {
	dx, dy := x1-x0, y1-y0
	for _, v := range [...]float64{x0, y0, dx, dy} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, 0, 0, 0, false
		}
	}

	t0, t1 := 0.0, 1.0
	p := [4]float64{-dx, dx, -dy, dy}
	q := [4]float64{x0 - xmin, xmax - x0, y0 - ymin, ymax - y0}
	for i := range 4 {
		if p[i] == 0 {
			if q[i] < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q[i] / p[i]
		if p[i] < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = min(t1, r)
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

// bezierCircle is the control point distance for a quarter circle drawn as a
// cubic Bézier curve, relative to the radius.
const bezierCircle = 0.5522847498

// DrawDisc fills an anti-aliased disc of the given diameter centered on
// (cx, cy). Discs entirely outside the framebuffer are ignored.
func (fb *Framebuffer) DrawDisc(cx, cy, diameter float64, c color.RGBA) {
	if diameter <= 0 || math.IsNaN(cx) || math.IsNaN(cy) {
		return
	}
	r := diameter / 2
	if cx+r < 0 || cy+r < 0 || cx-r > float64(fb.Width) || cy-r > float64(fb.Height) {
		return
	}

	// Rasterize into a small local mask placed at (x0, y0).
	x0, y0 := int(math.Floor(cx-r)), int(math.Floor(cy-r))
	n := int(math.Ceil(diameter)) + 2
	if fb.disc == nil {
		fb.disc = vector.NewRasterizer(n, n)
	} else {
		fb.disc.Reset(n, n)
	}

	lx, ly := float32(cx-float64(x0)), float32(cy-float64(y0))
	rr, k := float32(r), float32(r*bezierCircle)
	z := fb.disc
	z.MoveTo(lx+rr, ly)
	z.CubeTo(lx+rr, ly+k, lx+k, ly+rr, lx, ly+rr)
	z.CubeTo(lx-k, ly+rr, lx-rr, ly+k, lx-rr, ly)
	z.CubeTo(lx-rr, ly-k, lx-k, ly-rr, lx, ly-rr)
	z.CubeTo(lx+k, ly-rr, lx+rr, ly-k, lx+rr, ly)
	z.ClosePath()

	z.Draw(fb, image.Rect(x0, y0, x0+n, y0+n), image.NewUniform(c), image.Point{})
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ToImage converts the framebuffer to a standard Go image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			img.SetRGBA(x, y, fb.Pixels[y*fb.Width+x])
		}
	}
	return img
}

// RGBABytes returns the pixels as tightly packed RGBA bytes, the layout
// expected by GPU texture uploads.
func (fb *Framebuffer) RGBABytes(dst []byte) []byte {
	n := len(fb.Pixels) * 4
	if cap(dst) < n {
		dst = make([]byte, n)
	}
	dst = dst[:n]
	for i, p := range fb.Pixels {
		dst[i*4] = p.R
		dst[i*4+1] = p.G
		dst[i*4+2] = p.B
		dst[i*4+3] = p.A
	}
	return dst
}

// SavePNG saves the framebuffer as a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, fb.ToImage()); err != nil {
		f.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	return f.Close()
}
