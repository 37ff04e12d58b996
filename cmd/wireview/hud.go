package main

import (
	"fmt"
	"strings"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/wireview/pkg/scene"
)

// HUD renders a one-line status overlay on the top terminal row.
type HUD struct {
	visible   bool
	fps       float64
	fpsFrames int
	fpsTime   time.Time
	message   string
}

// NewHUD creates a visible HUD.
func NewHUD() *HUD {
	return &HUD{visible: true, fpsTime: time.Now()}
}

// Toggle shows or hides the HUD.
func (h *HUD) Toggle() { h.visible = !h.visible }

// Flash shows msg in place of the key hint until the next Flash.
func (h *HUD) Flash(msg string) { h.message = msg }

// UpdateFPS updates the FPS counter (call once per frame)
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

// Line returns the status text for the current scene state.
func (h *HUD) Line(sc *scene.Scene) string {
	cam := sc.Camera()
	pos := cam.Position()
	stats := sc.LastStats()

	var b strings.Builder
	fmt.Fprintf(&b, " %.0f FPS | %s | pos %.2f,%.2f,%.2f yaw %.2f | edges %d/%d points %d/%d",
		h.fps, sc.Active(), pos.X, pos.Y, pos.Z, cam.Yaw(),
		stats.EdgesDrawn, stats.EdgesDrawn+stats.EdgesSkipped,
		stats.PointsDrawn, stats.PointsDrawn+stats.PointsHidden)
	if h.message != "" {
		fmt.Fprintf(&b, " | %s", h.message)
	} else {
		b.WriteString(" | WASD move, J/L turn, Q/Z up/down, Tab shape, ? hide")
	}
	return b.String()
}

// Draw writes the HUD line onto the first row of scr.
func (h *HUD) Draw(scr uv.Screen, sc *scene.Scene) {
	if !h.visible {
		return
	}
	area := scr.Bounds()
	area.Max.Y = area.Min.Y + 1
	uv.NewStyledString(h.Line(sc)).Draw(scr, area)
}
