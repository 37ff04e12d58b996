package render

import "fmt"

// ProjectedPoint is the result of projecting a world point: either a
// visible position in normalized device coordinates or NotVisible.
// A NotVisible point carries no coordinates.
type ProjectedPoint struct {
	x, y    float64
	visible bool
}

// Visible returns a visible projected point at (x, y) in NDC.
func Visible(x, y float64) ProjectedPoint {
	return ProjectedPoint{x: x, y: y, visible: true}
}

// NotVisible returns the projection result for a point behind the camera.
func NotVisible() ProjectedPoint {
	return ProjectedPoint{}
}

// NDC returns the normalized device coordinates and whether the point is visible.
// Coordinates are zero when ok is false.
func (p ProjectedPoint) NDC() (x, y float64, ok bool) {
	return p.x, p.y, p.visible
}

// IsVisible reports whether the point projected in front of the camera.
func (p ProjectedPoint) IsVisible() bool {
	return p.visible
}

func (p ProjectedPoint) String() string {
	if !p.visible {
		return "NotVisible"
	}
	return fmt.Sprintf("Visible(%.4f, %.4f)", p.x, p.y)
}
