// Package config loads wireview settings from defaults, an optional YAML
// file and WIREVIEW_* environment variables, in that order.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/taigrr/wireview/pkg/logging"
	"github.com/taigrr/wireview/pkg/math3d"
	"github.com/taigrr/wireview/pkg/models"
	"github.com/taigrr/wireview/pkg/render"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "WIREVIEW_"

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("invalid config")

// Config is the complete wireview configuration.
type Config struct {
	Window WindowConfig  `yaml:"window" envPrefix:"WINDOW_"`
	Camera CameraConfig  `yaml:"camera" envPrefix:"CAMERA_"`
	Render RenderConfig  `yaml:"render" envPrefix:"RENDER_"`
	Log    LogConfig     `yaml:"log" envPrefix:"LOG_"`
	Shape  string        `yaml:"shape" env:"SHAPE"` // initially selected shape
	Shapes []ShapeConfig `yaml:"shapes" env:"-"`

	dir string // directory of the loaded file, for relative glTF paths
}

// WindowConfig sizes the window host and sets the tick rate of both hosts.
type WindowConfig struct {
	Width  int `yaml:"width" env:"WIDTH"`
	Height int `yaml:"height" env:"HEIGHT"`
	FPS    int `yaml:"fps" env:"FPS"`
}

// CameraConfig holds the fixed projection parameters and start position.
type CameraConfig struct {
	FOV    float64  `yaml:"fov" env:"FOV"`       // vertical, degrees
	Aspect float64  `yaml:"aspect" env:"ASPECT"` // 0 derives width/height
	Near   float64  `yaml:"near" env:"NEAR"`
	Far    float64  `yaml:"far" env:"FAR"`
	Start  Position `yaml:"start" env:"START"`
}

// RenderConfig controls surface colors and scale.
type RenderConfig struct {
	Background string  `yaml:"background" env:"BACKGROUND"` // "r,g,b" or "#rrggbb"
	Scale      float64 `yaml:"scale" env:"SCALE"`           // pixels per NDC unit, 0 scales with height
	PointSize  float64 `yaml:"point_size" env:"POINT_SIZE"`
}

// LogConfig selects the log level and destination.
type LogConfig struct {
	Level string `yaml:"level" env:"LEVEL"`
	File  string `yaml:"file" env:"FILE"` // path or "stderr"; empty disables logging
}

// ShapeConfig declares an extra shape, either as vertex/edge text or as a
// glTF file.
type ShapeConfig struct {
	Name     string  `yaml:"name"`
	Vertices string  `yaml:"vertices,omitempty"`
	Edges    string  `yaml:"edges,omitempty"`
	GLTF     string  `yaml:"gltf,omitempty"`
	Fit      float64 `yaml:"fit,omitempty"` // glTF only; 0 uses the loader default
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Window: WindowConfig{Width: 800, Height: 600, FPS: 60},
		Camera: CameraConfig{
			FOV:   40,
			Near:  0.1,
			Far:   1000,
			Start: Position(math3d.V3(0, 0, 10)),
		},
		Render: RenderConfig{
			Background: "0,0,0",
			Scale:      render.DefaultScale,
			PointSize:  render.DefaultPointSize,
		},
		Log:   LogConfig{Level: "info", File: "stderr"},
		Shape: models.PresetSphere,
	}
}

// Load returns the defaults overlaid with the YAML file at path (if path is
// not empty) and then the environment. The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := cfg.decodeYAML(data); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
		cfg.dir = filepath.Dir(path)
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) decodeYAML(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate checks every field that would otherwise fail later at startup.
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Window.FPS <= 0 {
		errs = append(errs, fmt.Errorf("fps %d must be positive", c.Window.FPS))
	}
	if c.Camera.Aspect < 0 {
		errs = append(errs, fmt.Errorf("aspect %v must not be negative", c.Camera.Aspect))
	}
	if _, err := render.NewCamera(c.Camera.FOV, 1, c.Camera.Near, c.Camera.Far); err != nil {
		errs = append(errs, err)
	}
	if !math3d.Vec3(c.Camera.Start).IsFinite() {
		errs = append(errs, fmt.Errorf("start position %v must be finite", c.Camera.Start))
	}
	if _, err := render.ParseColor(c.Render.Background); err != nil {
		errs = append(errs, fmt.Errorf("background: %w", err))
	}
	if c.Render.Scale < 0 || c.Render.PointSize < 0 {
		errs = append(errs, fmt.Errorf("scale and point size must not be negative"))
	}
	if !strings.EqualFold(c.Log.Level, "off") {
		if _, err := logging.ParseLevel(c.Log.Level); err != nil {
			errs = append(errs, err)
		}
	}

	seen := make(map[string]bool)
	for i, s := range c.Shapes {
		switch {
		case s.Name == "":
			errs = append(errs, fmt.Errorf("shapes[%d]: missing name", i))
		case seen[s.Name]:
			errs = append(errs, fmt.Errorf("shapes[%d]: duplicate name %q", i, s.Name))
		case s.GLTF != "" && (s.Vertices != "" || s.Edges != ""):
			errs = append(errs, fmt.Errorf("shape %q: gltf and vertices/edges are exclusive", s.Name))
		case s.GLTF == "" && s.Vertices == "":
			errs = append(errs, fmt.Errorf("shape %q: needs vertices or gltf", s.Name))
		}
		seen[s.Name] = true
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// AspectFor returns the configured aspect ratio, or width/height when the
// configured value is zero.
func (c CameraConfig) AspectFor(width, height int) float64 {
	if c.Aspect > 0 || width <= 0 || height <= 0 {
		return c.Aspect
	}
	return float64(width) / float64(height)
}

// BackgroundColor returns the parsed background color.
func (r RenderConfig) BackgroundColor() render.Color {
	c, err := render.ParseColor(r.Background)
	if err != nil {
		return render.ColorBlack
	}
	return c
}

// Build creates the body a shape declaration describes. Relative glTF paths
// resolve against the directory of the loaded config file.
func (c Config) Build(s ShapeConfig) (*models.Body, error) {
	if s.GLTF == "" {
		return models.ParseBody(s.Vertices, s.Edges), nil
	}

	path := s.GLTF
	if !filepath.IsAbs(path) && c.dir != "" {
		path = filepath.Join(c.dir, path)
	}
	loader := models.NewGLTFLoader()
	if s.Fit > 0 {
		loader.FitSize = s.Fit
	}
	body, err := loader.Load(path)
	if err != nil {
		return nil, fmt.Errorf("shape %q: %w", s.Name, err)
	}
	return body, nil
}

// Position is a world position written as "x,y,z" or a YAML sequence.
type Position math3d.Vec3

func (p Position) String() string {
	return fmt.Sprintf("%g,%g,%g", p.X, p.Y, p.Z)
}

// UnmarshalText parses "x,y,z".
func (p *Position) UnmarshalText(text []byte) error {
	parts := strings.Split(string(text), ",")
	if len(parts) != 3 {
		return fmt.Errorf("position %q: want x,y,z", text)
	}
	var xyz [3]float64
	for i, s := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("position %q: bad component %q", text, s)
		}
		xyz[i] = v
	}
	*p = Position{X: xyz[0], Y: xyz[1], Z: xyz[2]}
	return nil
}

// UnmarshalYAML accepts [x, y, z] or "x,y,z".
func (p *Position) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		return p.UnmarshalText([]byte(node.Value))
	}
	var xyz []float64
	if err := node.Decode(&xyz); err != nil {
		return err
	}
	if len(xyz) != 3 {
		return fmt.Errorf("line %d: position needs 3 components, got %d", node.Line, len(xyz))
	}
	*p = Position{X: xyz[0], Y: xyz[1], Z: xyz[2]}
	return nil
}
