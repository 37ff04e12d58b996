// wireview-gui - Windowed wireframe viewer
//
// Controls:
//
//	W/S    - Move forward/backward
//	A/D    - Strafe left/right
//	J/L    - Turn left/right
//	Q      - Move up
//	Shift  - Move down
//	Tab    - Next shape
//	1-9    - Select shape by number
//	Esc    - Quit
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/taigrr/wireview/pkg/config"
	"github.com/taigrr/wireview/pkg/logging"
	"github.com/taigrr/wireview/pkg/render"
	"github.com/taigrr/wireview/pkg/scene"
	"go.uber.org/zap"
)

var (
	configPath = flag.String("config", "", "Path to YAML config file")
	shapeName  = flag.String("shape", "", "Initial shape")
	targetFPS  = flag.Int("fps", 0, "Target FPS")
	bgColor    = flag.String("bg", "", "Background color (R,G,B or #rrggbb)")
	logLevel   = flag.String("log-level", "", "Log level (debug, info, warn, error, off)")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "wireview-gui - Windowed wireframe viewer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: wireview-gui [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "shape":
			cfg.Shape = *shapeName
		case "fps":
			cfg.Window.FPS = *targetFPS
		case "bg":
			cfg.Render.Background = *bgColor
		case "log-level":
			cfg.Log.Level = *logLevel
		}
	})
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	sc, err := scene.FromConfig(cfg, cfg.Window.Width, cfg.Window.Height, logger)
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle("wireview - " + sc.Active())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.Window.FPS)

	g := &game{scene: sc, log: logger}
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run: %w", err)
	}
	logger.Info("viewer stopped", zap.Uint64("frames", sc.Frames()))
	return nil
}

// heldKeys maps keys polled every tick to the commands they drive.
var heldKeys = []struct {
	key ebiten.Key
	cmd render.Commands
}{
	{ebiten.KeyW, render.CmdForward},
	{ebiten.KeyS, render.CmdBackward},
	{ebiten.KeyA, render.CmdStrafeLeft},
	{ebiten.KeyD, render.CmdStrafeRight},
	{ebiten.KeyJ, render.CmdYawLeft},
	{ebiten.KeyL, render.CmdYawRight},
	{ebiten.KeyQ, render.CmdUp},
	{ebiten.KeyShift, render.CmdDown},
}

// game adapts a scene to ebiten's update/draw cycle. Ebiten calls all three
// methods from one goroutine, so the scene needs no locking.
type game struct {
	scene  *scene.Scene
	log    *zap.Logger
	screen *ebiten.Image
	pixels []byte
}

// commands returns the commands of every key pressed reports as held.
// Q and Shift are independent, so holding both cancels out.
func commands(pressed func(ebiten.Key) bool) render.Commands {
	var cmds render.Commands
	for _, hk := range heldKeys {
		if pressed(hk.key) {
			cmds = cmds.With(hk.cmd)
		}
	}
	return cmds
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.selected(g.scene.SelectNext())
	}
	for i := range 9 {
		if inpututil.IsKeyJustPressed(ebiten.KeyDigit1 + ebiten.Key(i)) {
			g.selected(g.scene.SelectIndex(i))
		}
	}

	g.scene.Tick(commands(ebiten.IsKeyPressed))
	return nil
}

func (g *game) selected(err error) {
	switch {
	case scene.IsNotFound(err):
		// Digit keys past the last shape are expected.
		g.log.Debug("no shape for key", zap.Error(err))
		return
	case err != nil:
		g.log.Warn("shape selection failed", zap.Error(err))
		return
	}
	ebiten.SetWindowTitle("wireview - " + g.scene.Active())
}

func (g *game) Draw(screen *ebiten.Image) {
	fb := g.scene.Surface().Framebuffer()
	if g.screen == nil || g.screen.Bounds().Dx() != fb.Width || g.screen.Bounds().Dy() != fb.Height {
		if g.screen != nil {
			g.screen.Deallocate()
		}
		g.screen = ebiten.NewImage(fb.Width, fb.Height)
	}
	g.pixels = fb.RGBABytes(g.pixels)
	g.screen.WritePixels(g.pixels)
	screen.DrawImage(g.screen, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.scene.Surface()
	if outsideWidth != s.Width() || outsideHeight != s.Height() {
		g.scene.Resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
