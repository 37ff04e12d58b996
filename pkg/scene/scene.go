// Package scene drives frames: it owns the active body selection and, on
// every tick, applies camera commands and redraws the surface.
//
// A Scene is not safe for concurrent use. Hosts call it from one goroutine.
package scene

import (
	"errors"
	"fmt"

	"github.com/taigrr/wireview/pkg/models"
	"github.com/taigrr/wireview/pkg/render"
	"go.uber.org/zap"
)

// Scene ties a shape store, a camera and a raster surface together.
type Scene struct {
	store   *models.Store
	camera  *render.Camera
	surface *render.Surface
	logger  *zap.Logger

	active string
	body   *models.Body

	frames uint64
	last   render.DrawStats
}

// Option configures a Scene.
type Option func(*Scene)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(s *Scene) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a scene with no active body.
func New(store *models.Store, camera *render.Camera, surface *render.Surface, opts ...Option) *Scene {
	s := &Scene{
		store:   store,
		camera:  camera,
		surface: surface,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store returns the shape store.
func (s *Scene) Store() *models.Store { return s.store }

// Camera returns the scene camera.
func (s *Scene) Camera() *render.Camera { return s.camera }

// Surface returns the raster surface.
func (s *Scene) Surface() *render.Surface { return s.surface }

// Active returns the name of the active shape, or "" if none is selected.
func (s *Scene) Active() string { return s.active }

// Body returns the active body, or nil.
func (s *Scene) Body() *models.Body { return s.body }

// Frames returns the number of ticks run so far.
func (s *Scene) Frames() uint64 { return s.frames }

// LastStats returns the statistics of the most recent draw.
func (s *Scene) LastStats() render.DrawStats { return s.last }

// Select makes the named shape active. On failure the previous selection
// stays active.
func (s *Scene) Select(name string) error {
	body, err := s.store.Get(name)
	if err != nil {
		s.logger.Debug("shape lookup failed", zap.String("shape", name), zap.Error(err))
		return fmt.Errorf("select: %w", err)
	}
	s.active, s.body = name, body
	s.logger.Info("shape selected",
		zap.String("shape", name),
		zap.Int("vertices", body.VertexCount()),
		zap.Int("edges", body.EdgeCount()),
	)
	return nil
}

// SelectIndex selects the i-th registered shape.
func (s *Scene) SelectIndex(i int) error {
	name, ok := s.store.NameAt(i)
	if !ok {
		return fmt.Errorf("select #%d: %w", i+1, models.ErrNotFound)
	}
	return s.Select(name)
}

// SelectNext selects the shape registered after the active one, wrapping
// around at the end.
func (s *Scene) SelectNext() error {
	names := s.store.Names()
	if len(names) == 0 {
		return fmt.Errorf("select next: %w", models.ErrNotFound)
	}
	next := 0
	for i, n := range names {
		if n == s.active {
			next = (i + 1) % len(names)
			break
		}
	}
	return s.Select(names[next])
}

// AddShape parses vertex and edge text and registers the result under name.
// Re-adding a name replaces its body. The active body is refreshed when the
// replaced shape is the active one.
func (s *Scene) AddShape(name, verticesText, edgesText string) error {
	return s.Register(name, models.ParseBody(verticesText, edgesText))
}

// Register adds a prebuilt body under name.
func (s *Scene) Register(name string, body *models.Body) error {
	if err := s.store.Register(name, body); err != nil {
		return fmt.Errorf("add shape: %w", err)
	}
	s.logger.Info("shape registered",
		zap.String("shape", name),
		zap.Int("vertices", body.VertexCount()),
		zap.Int("edges", body.EdgeCount()),
	)
	if name == s.active {
		s.body = body
	}
	return nil
}

// Tick applies one tick of camera commands, then clears and redraws.
func (s *Scene) Tick(cmds render.Commands) render.DrawStats {
	s.frames++
	s.camera.ApplyTick(cmds)
	return s.Redraw()
}

// Redraw clears the surface and draws the active body without moving the
// camera.
func (s *Scene) Redraw() render.DrawStats {
	s.surface.Clear()
	if s.body == nil {
		s.last = render.DrawStats{}
		return s.last
	}
	s.last = s.surface.DrawBody(s.camera, s.body)
	return s.last
}

// Resize changes the surface size and redraws.
func (s *Scene) Resize(width, height int) render.DrawStats {
	s.surface.Resize(width, height)
	s.logger.Debug("surface resized", zap.Int("width", width), zap.Int("height", height))
	return s.Redraw()
}

// IsNotFound reports whether err came from a failed shape lookup.
func IsNotFound(err error) bool {
	return errors.Is(err, models.ErrNotFound)
}
