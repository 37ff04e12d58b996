package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// upperHalf shows the top pixel as foreground and the bottom pixel as
// background, so one cell carries two pixel rows.
const upperHalf = "▀"

// Draw paints the framebuffer onto area of scr, two pixel rows per cell.
// Pixel (0, 0) lands on area.Min. Cells of area beyond the framebuffer are
// left untouched.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	area = area.Intersect(scr.Bounds())
	cols := min(area.Dx(), fb.Width)
	rows := min(area.Dy(), (fb.Height+1)/2)

	for y := range rows {
		for x := range cols {
			scr.SetCell(area.Min.X+x, area.Min.Y+y, fb.halfBlock(x, 2*y))
		}
	}
}

// halfBlock builds the cell for pixel rows y and y+1 of column x. With an
// odd height the last row has no bottom pixel and keeps the terminal
// background.
func (fb *Framebuffer) halfBlock(x, y int) *uv.Cell {
	cell := &uv.Cell{Content: upperHalf, Width: 1}
	cell.Style.Fg = opaque(fb.GetPixel(x, y))
	if y+1 < fb.Height {
		cell.Style.Bg = opaque(fb.GetPixel(x, y+1))
	}
	return cell
}

// opaque returns c, or nil for a fully transparent pixel.
func opaque(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil
	}
	return c
}
