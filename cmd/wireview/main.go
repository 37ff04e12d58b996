// wireview - Terminal wireframe viewer
// Fly a perspective camera around wireframe shapes in your terminal.
//
// Controls:
//
//	W/S or Up/Down     - Move forward/backward
//	A/D or Left/Right  - Strafe left/right
//	J/L                - Turn left/right
//	Q                  - Move up
//	Z or Shift+Q       - Move down
//	Tab                - Next shape
//	1-9                - Select shape by number
//	?                  - Toggle HUD overlay
//	Esc                - Quit
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/wireview/pkg/config"
	"github.com/taigrr/wireview/pkg/logging"
	"github.com/taigrr/wireview/pkg/render"
	"github.com/taigrr/wireview/pkg/scene"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	configPath = flag.String("config", "", "Path to YAML config file")
	shapeName  = flag.String("shape", "", "Initial shape")
	targetFPS  = flag.Int("fps", 0, "Target FPS")
	bgColor    = flag.String("bg", "", "Background color (R,G,B or #rrggbb)")
	scale      = flag.Float64("scale", 0, "Pixels per projected unit (0 scales with height)")
	snapshot   = flag.String("snapshot", "", "Render one frame to a PNG file and exit")
	logFile    = flag.String("log", "", "Log file path (\"stderr\" only in snapshot mode)")
	logLevel   = flag.String("log-level", "", "Log level (debug, info, warn, error, off)")
)

// errQuit stops the render loop on a user request.
var errQuit = errors.New("quit")

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "wireview - Terminal wireframe viewer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: wireview [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  W/S/A/D     - Move and strafe\n")
		fmt.Fprintf(os.Stderr, "  J/L         - Turn left/right\n")
		fmt.Fprintf(os.Stderr, "  Q / Z       - Move up/down\n")
		fmt.Fprintf(os.Stderr, "  Tab, 1-9    - Switch shape\n")
		fmt.Fprintf(os.Stderr, "  ?           - Toggle HUD overlay\n")
		fmt.Fprintf(os.Stderr, "  Esc         - Quit\n")
	}
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *snapshot != "" {
		err = runSnapshot(cfg, *snapshot)
	} else {
		err = run(cfg)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig loads the config file and applies the flags that were set
// explicitly on the command line.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return cfg, err
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "shape":
			cfg.Shape = *shapeName
		case "fps":
			cfg.Window.FPS = *targetFPS
		case "bg":
			cfg.Render.Background = *bgColor
		case "scale":
			cfg.Render.Scale = *scale
		case "log":
			cfg.Log.File = *logFile
		case "log-level":
			cfg.Log.Level = *logLevel
		}
	})
	return cfg, cfg.Validate()
}

// runSnapshot renders the initial frame at the window size and saves it.
func runSnapshot(cfg config.Config, path string) error {
	logger, err := logging.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	sc, err := scene.FromConfig(cfg, cfg.Window.Width, cfg.Window.Height, logger)
	if err != nil {
		return err
	}
	if err := sc.Surface().Framebuffer().SavePNG(path); err != nil {
		return err
	}
	stats := sc.LastStats()
	logger.Info("snapshot saved",
		zap.String("path", path),
		zap.String("shape", sc.Active()),
		zap.Int("edges", stats.EdgesDrawn),
		zap.Int("points", stats.PointsDrawn),
	)
	return nil
}

// terminalLogger keeps log lines off the alternate screen: only a real file
// gets logs while the terminal is in use.
func terminalLogger(cfg config.LogConfig) (*zap.Logger, error) {
	if cfg.File == "stderr" || cfg.File == "stdout" {
		return zap.NewNop(), nil
	}
	return logging.New(cfg.Level, cfg.File)
}

func run(cfg config.Config) error {
	logger, err := terminalLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	// Create terminal
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	// Terminals are far smaller than the window host, so the default
	// scale follows the terminal height instead.
	if !flagSet("scale") && cfg.Render.Scale == render.DefaultScale {
		cfg.Render.Scale = 0
	}
	// Each terminal cell holds two pixels stacked vertically.
	sc, err := scene.FromConfig(cfg, width, height*2, logger)
	if err != nil {
		return err
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		// The forwarder may have stopped reading, so do not wait on
		// pending events forever.
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		term.Shutdown(ctx)
	}
	defer cleanup()

	// Context for clean shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	events := make(chan uv.Event, 64)

	// The input goroutine only forwards events; the loop below owns the scene.
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case ev, ok := <-term.Events():
				if !ok {
					return nil
				}
				select {
				case events <- ev:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})

	g.Go(func() error {
		v := &viewer{
			term:  term,
			scene: sc,
			holds: NewKeyHolds(cfg.Window.FPS),
			hud:   NewHUD(),
			log:   logger,
		}
		return v.loop(ctx, events, cfg.Window.FPS)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errQuit) {
		return err
	}
	logger.Info("viewer stopped", zap.Uint64("frames", sc.Frames()))
	return nil
}

func flagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

// viewer is the render loop state. It is only touched by the loop goroutine.
type viewer struct {
	term  *uv.Terminal
	scene *scene.Scene
	holds *KeyHolds
	hud   *HUD
	log   *zap.Logger
}

func (v *viewer) loop(ctx context.Context, events <-chan uv.Event, fps int) error {
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if err := v.handle(ev); err != nil {
				return err
			}
		case <-ticker.C:
			v.scene.Tick(v.holds.Tick())
			v.hud.UpdateFPS()
			if err := v.display(); err != nil {
				return err
			}
		}
	}
}

func (v *viewer) handle(ev uv.Event) error {
	switch ev := ev.(type) {
	case uv.WindowSizeEvent:
		v.term.Erase()
		v.term.Resize(ev.Width, ev.Height)
		v.scene.Resize(ev.Width, ev.Height*2)

	case uv.KeyPressEvent:
		switch {
		case ev.MatchString("escape", "ctrl+c"):
			return errQuit
		case ev.MatchString("tab"):
			v.report(v.scene.SelectNext())
		case ev.MatchString("?", "shift+/"):
			v.hud.Toggle()
		default:
			if n, ok := digit(uv.Key(ev)); ok {
				v.report(v.scene.SelectIndex(n - 1))
				return nil
			}
			if cmd, ok := keyCommand(uv.Key(ev)); ok {
				v.holds.Press(cmd)
			}
		}

	case uv.KeyReleaseEvent:
		if cmd, ok := keyCommand(uv.Key(ev)); ok {
			v.holds.Release(cmd)
		}
	}
	return nil
}

// report shows a selection failure on the HUD instead of stopping the loop.
func (v *viewer) report(err error) {
	switch {
	case scene.IsNotFound(err):
		v.hud.Flash("no such shape")
	case err != nil:
		v.hud.Flash(err.Error())
	default:
		v.hud.Flash("")
	}
}

func (v *viewer) display() error {
	fb := v.scene.Surface().Framebuffer()
	fb.Draw(v.term, v.term.Bounds())
	v.hud.Draw(v.term, v.scene)
	if err := v.term.Display(); err != nil {
		return fmt.Errorf("display: %w", err)
	}
	return nil
}

// digit returns the value of a 1-9 key press.
func digit(k uv.Key) (int, bool) {
	for n := 1; n <= 9; n++ {
		if k.MatchString(fmt.Sprint(n)) {
			return n, true
		}
	}
	return 0, false
}
