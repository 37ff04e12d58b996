package scene

import (
	"fmt"

	"github.com/taigrr/wireview/pkg/config"
	"github.com/taigrr/wireview/pkg/math3d"
	"github.com/taigrr/wireview/pkg/models"
	"github.com/taigrr/wireview/pkg/render"
	"go.uber.org/zap"
)

// FromConfig builds a ready scene for a width x height surface: presets plus
// configured shapes, a camera at the configured start position, and the
// configured initial shape selected and drawn.
func FromConfig(cfg config.Config, width, height int, logger *zap.Logger) (*Scene, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	cc := cfg.Camera
	cam, err := render.NewCamera(cc.FOV, cc.AspectFor(width, height), cc.Near, cc.Far)
	if err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}
	cam.SetPosition(math3d.Vec3(cc.Start))

	surface := render.NewSurface(width, height)
	surface.Background = cfg.Render.BackgroundColor()
	surface.Scale = cfg.Render.Scale
	if cfg.Render.PointSize > 0 {
		surface.PointSize = cfg.Render.PointSize
	}

	s := New(models.NewPresetStore(), cam, surface, WithLogger(logger))
	for _, sc := range cfg.Shapes {
		body, err := cfg.Build(sc)
		if err != nil {
			return nil, err
		}
		if err := s.Register(sc.Name, body); err != nil {
			return nil, err
		}
	}

	if err := s.Select(cfg.Shape); err != nil {
		return nil, fmt.Errorf("initial shape: %w", err)
	}
	s.Redraw()
	return s, nil
}
