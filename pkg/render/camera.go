package render

import (
	"errors"
	"fmt"
	"math"

	"github.com/taigrr/wireview/pkg/math3d"
)

// ErrInvalidParameter is returned when a camera is constructed with
// parameters that cannot produce a usable projection.
var ErrInvalidParameter = errors.New("invalid parameter")

// Camera is a perspective camera with a mutable position and Euler
// orientation. Projection parameters are fixed at construction.
type Camera struct {
	position math3d.Vec3

	// Orientation (Euler angles in radians)
	pitch float64 // around X
	yaw   float64 // around Y
	roll  float64 // around Z

	fov    float64 // vertical, radians
	aspect float64
	near   float64
	far    float64

	projMatrix math3d.Mat4
}

// NewCamera creates a camera at the origin with zero rotation.
// fovDegrees is the vertical field of view in degrees and must lie in (0, 180);
// aspect must be positive, near positive and far greater than near.
func NewCamera(fovDegrees, aspect, near, far float64) (*Camera, error) {
	for _, v := range []float64{fovDegrees, aspect, near, far} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("camera parameters must be finite: %w", ErrInvalidParameter)
		}
	}
	if fovDegrees <= 0 || fovDegrees >= 180 {
		return nil, fmt.Errorf("field of view %v outside (0, 180): %w", fovDegrees, ErrInvalidParameter)
	}
	if aspect <= 0 {
		return nil, fmt.Errorf("aspect ratio %v must be positive: %w", aspect, ErrInvalidParameter)
	}
	if near <= 0 {
		return nil, fmt.Errorf("near plane %v must be positive: %w", near, ErrInvalidParameter)
	}
	if far <= near {
		return nil, fmt.Errorf("far plane %v must exceed near plane %v: %w", far, near, ErrInvalidParameter)
	}

	fov := fovDegrees * math.Pi / 180
	return &Camera{
		fov:        fov,
		aspect:     aspect,
		near:       near,
		far:        far,
		projMatrix: math3d.Perspective(fov, aspect, near, far),
	}, nil
}

// Position returns the camera position in world space.
func (c *Camera) Position() math3d.Vec3 { return c.position }

// Pitch returns the rotation around the X axis in radians.
func (c *Camera) Pitch() float64 { return c.pitch }

// Yaw returns the rotation around the Y axis in radians.
func (c *Camera) Yaw() float64 { return c.yaw }

// Roll returns the rotation around the Z axis in radians.
func (c *Camera) Roll() float64 { return c.roll }

// FOV returns the vertical field of view in radians.
func (c *Camera) FOV() float64 { return c.fov }

// AspectRatio returns width / height.
func (c *Camera) AspectRatio() float64 { return c.aspect }

// Near returns the near plane distance.
func (c *Camera) Near() float64 { return c.near }

// Far returns the far plane distance.
func (c *Camera) Far() float64 { return c.far }

// SetPosition places the camera. Hosts use it once to set the start position.
func (c *Camera) SetPosition(pos math3d.Vec3) {
	c.position = pos
}

// ProjectionMatrix returns the projection matrix built at construction.
func (c *Camera) ProjectionMatrix() math3d.Mat4 {
	return c.projMatrix
}

// ViewMatrix returns the world-to-view transform for the current
// position and orientation. It is built fresh on every call.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	// View = Rz(-roll) * (Ry(-yaw) * Rx(-pitch)) * T(-position).
	// Changing the composition order changes what the user sees.
	rot := math3d.RotateZ(-c.roll).Mul(
		math3d.RotateY(-c.yaw).Mul(math3d.RotateX(-c.pitch)))

	trans := math3d.Translate(c.position.Negate())

	return rot.Mul(trans)
}

// Project maps a world point to normalized device coordinates.
// Points with clip-space w <= 0 are behind the camera and come back
// NotVisible; nothing else is clipped.
func (c *Camera) Project(p math3d.Vec3) ProjectedPoint {
	clip := c.projMatrix.Mul(c.ViewMatrix()).MulPoint(p)
	if clip.W <= 0 {
		return NotVisible()
	}
	return Visible(clip.X/clip.W, clip.Y/clip.W)
}

// MoveForward moves the camera along its view direction.
// Positive pitch moves the camera down, not up.
func (c *Camera) MoveForward(distance float64) {
	sy, cy := math.Sincos(c.yaw)
	sp, cp := math.Sincos(c.pitch)
	c.position = math3d.V3(
		c.position.X-sy*cp*distance,
		c.position.Y-sp*distance,
		c.position.Z-cy*cp*distance,
	)
}

// MoveBackward moves the camera opposite to MoveForward.
func (c *Camera) MoveBackward(distance float64) {
	c.MoveForward(-distance)
}

// StrafeLeft moves the camera sideways in the horizontal plane.
func (c *Camera) StrafeLeft(distance float64) {
	sy, cy := math.Sincos(c.yaw)
	c.position = math3d.V3(
		c.position.X-cy*distance,
		c.position.Y,
		c.position.Z+sy*distance,
	)
}

// StrafeRight moves the camera opposite to StrafeLeft.
func (c *Camera) StrafeRight(distance float64) {
	c.StrafeLeft(-distance)
}

// MoveUp raises the camera along world Y.
func (c *Camera) MoveUp(distance float64) {
	c.position = c.position.Add(math3d.V3(0, distance, 0))
}

// MoveDown lowers the camera along world Y.
func (c *Camera) MoveDown(distance float64) {
	c.position = c.position.Sub(math3d.V3(0, distance, 0))
}

// RotateYaw turns the camera around the world Y axis.
func (c *Camera) RotateYaw(angle float64) {
	c.yaw += angle
}
