package render

import (
	"testing"

	uv "github.com/charmbracelet/ultraviolet"
)

func TestFramebufferDrawHalfBlocks(t *testing.T) {
	fb := NewFramebuffer(3, 4)
	fb.Clear(ColorBlack)
	fb.SetPixel(1, 0, ColorRed)   // top half of row 0
	fb.SetPixel(1, 1, ColorGreen) // bottom half of row 0

	scr := uv.NewScreenBuffer(3, 2)
	fb.Draw(scr, scr.Bounds())

	cell := scr.CellAt(1, 0)
	if cell == nil || cell.Content != "▀" {
		t.Fatalf("cell = %+v, want half block", cell)
	}
	if cell.Style.Fg != ColorRed || cell.Style.Bg != ColorGreen {
		t.Errorf("cell colors fg=%v bg=%v", cell.Style.Fg, cell.Style.Bg)
	}
	if c := scr.CellAt(2, 1); c == nil || c.Style.Fg != ColorBlack {
		t.Errorf("second row cell = %+v", c)
	}
}

func TestFramebufferDrawNarrowerThanScreen(t *testing.T) {
	fb := NewFramebuffer(2, 2)
	fb.Clear(ColorWhite)

	scr := uv.NewScreenBuffer(5, 1)
	fb.Draw(scr, scr.Bounds())

	if c := scr.CellAt(4, 0); c != nil && c.Content == "▀" {
		t.Error("drew past the framebuffer width")
	}
}

func TestFramebufferDrawOffsetArea(t *testing.T) {
	fb := NewFramebuffer(2, 2)
	fb.Clear(ColorBlack)
	fb.SetPixel(0, 0, ColorRed)

	scr := uv.NewScreenBuffer(6, 4)
	fb.Draw(scr, uv.Rect(3, 2, 3, 2))

	if c := scr.CellAt(3, 2); c == nil || c.Style.Fg != ColorRed {
		t.Errorf("pixel (0,0) not at area origin: %+v", c)
	}
	if c := scr.CellAt(0, 0); c != nil && c.Content == upperHalf {
		t.Error("drew outside the area")
	}
	if c := scr.CellAt(5, 2); c != nil && c.Content == upperHalf {
		t.Error("drew past the framebuffer width inside the area")
	}
}

func TestFramebufferDrawOddHeight(t *testing.T) {
	fb := NewFramebuffer(1, 3)
	fb.Clear(ColorGreen)

	scr := uv.NewScreenBuffer(1, 3)
	fb.Draw(scr, scr.Bounds())

	last := scr.CellAt(0, 1)
	if last == nil || last.Style.Fg != ColorGreen || last.Style.Bg != nil {
		t.Errorf("last row cell = %+v, want green top and no background", last)
	}
	if c := scr.CellAt(0, 2); c != nil && c.Content == upperHalf {
		t.Error("drew a row with no pixels")
	}
}
