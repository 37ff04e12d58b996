package render

import (
	"image/color"

	"github.com/taigrr/wireview/pkg/math3d"
)

// Surface defaults.
const (
	DefaultScale       = 100.0 // pixels per NDC unit
	DefaultDepthOffset = 5.0   // added to every vertex z before projection
	DefaultPointSize   = 4.0   // vertex marker diameter in pixels

	// ReferenceHeight is the surface height at which an automatic scale
	// equals DefaultScale.
	ReferenceHeight = 600.0
)

// WireframeSource is the geometry a Surface can draw: indexed vertices and
// edges given as vertex index pairs. Edge indices may be out of range.
type WireframeSource interface {
	VertexCount() int
	Vertex(i int) math3d.Vec3
	EdgeCount() int
	Edge(i int) (from, to int)
}

// DrawStats reports what one DrawBody call rendered.
type DrawStats struct {
	EdgesDrawn   int // both endpoints visible and in range
	EdgesSkipped int // an endpoint was not visible or out of range
	PointsDrawn  int
	PointsHidden int // vertices behind the camera
}

// Surface maps projected points to pixels and draws wireframe bodies into
// its framebuffer.
type Surface struct {
	Background color.RGBA
	EdgeColor  color.RGBA
	PointColor color.RGBA

	// Scale is pixels per NDC unit. Zero scales with the surface height so
	// that a ReferenceHeight surface uses DefaultScale.
	Scale       float64
	DepthOffset float64
	PointSize   float64

	fb *Framebuffer

	// Scratch space reused across draws.
	pixels  []math3d.Vec2
	visible []bool
}

// NewSurface creates a surface with a black background, green edges and
// red vertex markers.
func NewSurface(width, height int) *Surface {
	return &Surface{
		Background:  ColorBlack,
		EdgeColor:   ColorGreen,
		PointColor:  ColorRed,
		Scale:       DefaultScale,
		DepthOffset: DefaultDepthOffset,
		PointSize:   DefaultPointSize,
		fb:          NewFramebuffer(width, height),
	}
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int { return s.fb.Width }

// Height returns the surface height in pixels.
func (s *Surface) Height() int { return s.fb.Height }

// Framebuffer returns the backing framebuffer.
func (s *Surface) Framebuffer() *Framebuffer { return s.fb }

// Resize changes the surface size. Negative sizes clamp to zero.
// The next Clear repaints the whole new area.
func (s *Surface) Resize(width, height int) {
	s.fb.Resize(width, height)
}

// Clear fills the whole surface with the background color.
func (s *Surface) Clear() {
	s.fb.Clear(s.Background)
}

func (s *Surface) scale() float64 {
	if s.Scale > 0 {
		return s.Scale
	}
	return DefaultScale * float64(s.fb.Height) / ReferenceHeight
}

// ToPixel maps a projected point to pixel coordinates using the current
// surface size. Y is flipped so NDC up is screen up.
func (s *Surface) ToPixel(p ProjectedPoint) (math3d.Vec2, bool) {
	x, y, ok := p.NDC()
	if !ok {
		return math3d.Vec2{}, false
	}
	k := s.scale()
	return math3d.V2(
		x*k+float64(s.fb.Width)/2,
		-y*k+float64(s.fb.Height)/2,
	), true
}

// DrawBody projects every vertex of body through cam and draws its edges,
// then a marker on every visible vertex. Edges with an endpoint behind the
// camera or an index out of range are skipped.
func (s *Surface) DrawBody(cam *Camera, body WireframeSource) DrawStats {
	var stats DrawStats
	n := body.VertexCount()
	s.pixels = grow(s.pixels, n)
	s.visible = grow(s.visible, n)

	for i := range n {
		v := body.Vertex(i)
		p := cam.Project(math3d.V3(v.X, v.Y, v.Z+s.DepthOffset))
		s.pixels[i], s.visible[i] = s.ToPixel(p)
	}

	for i := range body.EdgeCount() {
		from, to := body.Edge(i)
		if from < 0 || from >= n || to < 0 || to >= n || !s.visible[from] || !s.visible[to] {
			stats.EdgesSkipped++
			continue
		}
		a, b := s.pixels[from], s.pixels[to]
		s.fb.DrawSegment(a.X, a.Y, b.X, b.Y, s.EdgeColor)
		stats.EdgesDrawn++
	}

	for i := range n {
		if !s.visible[i] {
			stats.PointsHidden++
			continue
		}
		s.fb.DrawDisc(s.pixels[i].X, s.pixels[i].Y, s.PointSize, s.PointColor)
		stats.PointsDrawn++
	}
	return stats
}

func grow[T any](buf []T, n int) []T {
	if cap(buf) < n {
		return make([]T, n)
	}
	return buf[:n]
}
