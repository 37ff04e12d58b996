package render

import (
	"errors"
	"math"
	"testing"

	"github.com/taigrr/wireview/pkg/math3d"
)

const tolerance = 1e-9

// newTestCamera returns the camera the window host starts with.
func newTestCamera(t *testing.T) *Camera {
	t.Helper()
	cam, err := NewCamera(40, 800.0/600.0, 0.1, 1000)
	if err != nil {
		t.Fatalf("NewCamera: %v", err)
	}
	return cam
}

func TestNewCameraRejectsInvalidParameters(t *testing.T) {
	tests := []struct {
		name                   string
		fov, aspect, near, far float64
	}{
		{"zero near", 40, 1, 0, 100},
		{"negative near", 40, 1, -1, 100},
		{"far equals near", 40, 1, 1, 1},
		{"far before near", 40, 1, 10, 1},
		{"zero fov", 0, 1, 0.1, 100},
		{"fov 180", 180, 1, 0.1, 100},
		{"negative fov", -30, 1, 0.1, 100},
		{"zero aspect", 40, 0, 0.1, 100},
		{"NaN fov", math.NaN(), 1, 0.1, 100},
		{"infinite far", 40, 1, 0.1, math.Inf(1)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cam, err := NewCamera(tc.fov, tc.aspect, tc.near, tc.far)
			if !errors.Is(err, ErrInvalidParameter) {
				t.Fatalf("NewCamera error = %v, want ErrInvalidParameter", err)
			}
			if cam != nil {
				t.Error("NewCamera returned a camera alongside an error")
			}
		})
	}
}

func TestNewCameraDefaults(t *testing.T) {
	cam := newTestCamera(t)

	if cam.Position() != math3d.Zero3() {
		t.Errorf("Position() = %v, want origin", cam.Position())
	}
	if cam.Pitch() != 0 || cam.Yaw() != 0 || cam.Roll() != 0 {
		t.Errorf("rotation = (%v, %v, %v), want zero", cam.Pitch(), cam.Yaw(), cam.Roll())
	}
	if math.Abs(cam.FOV()-40*math.Pi/180) > tolerance {
		t.Errorf("FOV() = %v, want 40 degrees in radians", cam.FOV())
	}
	if cam.Near() != 0.1 || cam.Far() != 1000 || cam.AspectRatio() != 800.0/600.0 {
		t.Errorf("near/far/aspect = %v/%v/%v", cam.Near(), cam.Far(), cam.AspectRatio())
	}
}

func TestProjectionMatrix(t *testing.T) {
	cam := newTestCamera(t)
	m := cam.ProjectionMatrix()

	f := 1 / math.Tan(cam.FOV()/2)
	n, fr := cam.Near(), cam.Far()
	want := map[[2]int]float64{
		{0, 0}: f / cam.AspectRatio(),
		{1, 1}: f,
		{2, 2}: (fr + n) / (n - fr),
		{2, 3}: 2 * fr * n / (n - fr),
		{3, 2}: -1,
		{3, 3}: 0,
		{0, 2}: 0,
		{1, 3}: 0,
	}
	for rc, w := range want {
		if got := m.Get(rc[0], rc[1]); math.Abs(got-w) > tolerance {
			t.Errorf("P[%d][%d] = %v, want %v", rc[0], rc[1], got, w)
		}
	}
}

func TestProjectVisibility(t *testing.T) {
	cam := newTestCamera(t)

	tests := []struct {
		name    string
		point   math3d.Vec3
		visible bool
	}{
		{"straight ahead", math3d.V3(0, 0, -5), true},
		{"far ahead", math3d.V3(3, -2, -500), true},
		{"behind", math3d.V3(0, 0, 5), false},
		{"camera plane", math3d.V3(1, 1, 0), false},
		{"at the eye", math3d.Zero3(), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := cam.Project(tc.point)
			if p.IsVisible() != tc.visible {
				t.Fatalf("Project(%v) = %v, want visible=%v", tc.point, p, tc.visible)
			}
			if !tc.visible {
				if x, y, ok := p.NDC(); ok || x != 0 || y != 0 {
					t.Errorf("NotVisible carried coordinates (%v, %v, %v)", x, y, ok)
				}
			}
		})
	}
}

func TestProjectCenterAndSides(t *testing.T) {
	cam := newTestCamera(t)

	x, y, ok := cam.Project(math3d.V3(0, 0, -5)).NDC()
	if !ok || math.Abs(x) > tolerance || math.Abs(y) > tolerance {
		t.Errorf("point on the view axis = (%v, %v, %v), want (0, 0, true)", x, y, ok)
	}

	right, _, _ := cam.Project(math3d.V3(1, 0, -5)).NDC()
	left, _, _ := cam.Project(math3d.V3(-1, 0, -5)).NDC()
	if right <= 0 || left >= 0 {
		t.Errorf("x signs: right=%v left=%v", right, left)
	}
	f := 1 / math.Tan(cam.FOV()/2)
	if want := f / cam.AspectRatio() / 5; math.Abs(right-want) > tolerance {
		t.Errorf("right NDC x = %v, want %v", right, want)
	}

	_, up, _ := cam.Project(math3d.V3(0, 1, -5)).NDC()
	if up <= 0 {
		t.Errorf("point above the axis projected to y=%v", up)
	}
}

func TestProjectFollowsPosition(t *testing.T) {
	cam := newTestCamera(t)
	cam.SetPosition(math3d.V3(0, 0, 10))

	// A vertex at the origin is drawn with the depth offset at z=5.
	x, y, ok := cam.Project(math3d.V3(0, 0, 5)).NDC()
	if !ok || math.Abs(x) > tolerance || math.Abs(y) > tolerance {
		t.Errorf("Project from (0,0,10) = (%v, %v, %v), want centered", x, y, ok)
	}

	cam.SetPosition(math3d.V3(0, 0, 0))
	if cam.Project(math3d.V3(0, 0, 5)).IsVisible() {
		t.Error("view matrix not rebuilt after SetPosition")
	}
}

func TestProjectAfterYaw(t *testing.T) {
	cam := newTestCamera(t)
	cam.RotateYaw(math.Pi / 2)

	// Positive yaw turns left: the camera now looks down -X.
	x, y, ok := cam.Project(math3d.V3(-5, 0, 0)).NDC()
	if !ok || math.Abs(x) > tolerance || math.Abs(y) > tolerance {
		t.Errorf("Project(-5,0,0) after yaw = (%v, %v, %v), want centered", x, y, ok)
	}
	if cam.Project(math3d.V3(5, 0, 0)).IsVisible() {
		t.Error("point behind the turned camera reported visible")
	}
}

func TestViewMatrixCompositionOrder(t *testing.T) {
	cam := newTestCamera(t)
	cam.SetPosition(math3d.V3(1, 2, 3))
	cam.pitch, cam.yaw, cam.roll = 0.3, 0.7, 0.2

	want := math3d.RotateZ(-0.2).Mul(math3d.RotateY(-0.7).Mul(math3d.RotateX(-0.3))).
		Mul(math3d.Translate(math3d.V3(-1, -2, -3)))
	other := math3d.RotateZ(-0.2).Mul(math3d.RotateX(-0.3).Mul(math3d.RotateY(-0.7))).
		Mul(math3d.Translate(math3d.V3(-1, -2, -3)))

	got := cam.ViewMatrix()
	for i := range got {
		if math.Abs(got[i]-want[i]) > tolerance {
			t.Fatalf("ViewMatrix()[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	differs := false
	for i := range got {
		if math.Abs(got[i]-other[i]) > 1e-6 {
			differs = true
		}
	}
	if !differs {
		t.Error("pitch/yaw order should matter for these angles")
	}
}

func TestCameraMovement(t *testing.T) {
	tests := []struct {
		name string
		yaw  float64
		move func(c *Camera)
		want math3d.Vec3
	}{
		{"forward", 0, func(c *Camera) { c.MoveForward(1) }, math3d.V3(0, 0, -1)},
		{"backward", 0, func(c *Camera) { c.MoveBackward(1) }, math3d.V3(0, 0, 1)},
		{"strafe left", 0, func(c *Camera) { c.StrafeLeft(1) }, math3d.V3(-1, 0, 0)},
		{"strafe right", 0, func(c *Camera) { c.StrafeRight(1) }, math3d.V3(1, 0, 0)},
		{"up", 0, func(c *Camera) { c.MoveUp(0.5) }, math3d.V3(0, 0.5, 0)},
		{"down", 0, func(c *Camera) { c.MoveDown(0.5) }, math3d.V3(0, -0.5, 0)},
		{"forward after quarter yaw", math.Pi / 2, func(c *Camera) { c.MoveForward(1) }, math3d.V3(-1, 0, 0)},
		{"strafe left after quarter yaw", math.Pi / 2, func(c *Camera) { c.StrafeLeft(1) }, math3d.V3(0, 0, 1)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cam := newTestCamera(t)
			cam.RotateYaw(tc.yaw)
			tc.move(cam)
			if got := cam.Position(); !got.ApproxEqual(tc.want, tolerance) {
				t.Errorf("Position() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestMoveForwardPitchSign(t *testing.T) {
	cam := newTestCamera(t)
	cam.pitch = 0.5

	cam.MoveForward(1)

	want := math3d.V3(0, -math.Sin(0.5), -math.Cos(0.5))
	if got := cam.Position(); !got.ApproxEqual(want, tolerance) {
		t.Errorf("Position() = %v, want %v", got, want)
	}
}

func TestMovementRoundTrip(t *testing.T) {
	cam := newTestCamera(t)
	cam.RotateYaw(0.37)
	cam.SetPosition(math3d.V3(1, 2, 3))

	cam.MoveForward(2.5)
	cam.MoveBackward(2.5)
	cam.StrafeLeft(1.25)
	cam.StrafeRight(1.25)
	cam.MoveUp(0.08)
	cam.MoveDown(0.08)

	if got := cam.Position(); !got.ApproxEqual(math3d.V3(1, 2, 3), 1e-12) {
		t.Errorf("Position() = %v after inverse moves", got)
	}
}

func TestRotateYawIsAdditive(t *testing.T) {
	split := newTestCamera(t)
	split.RotateYaw(0.13)
	split.RotateYaw(0.29)

	whole := newTestCamera(t)
	whole.RotateYaw(0.42)

	points := []math3d.Vec3{
		math3d.V3(0, 0, -5),
		math3d.V3(1, 0.5, -3),
		math3d.V3(-2, -1, -8),
		math3d.V3(0.5, 2, -1),
	}
	for _, p := range points {
		sx, sy, sok := split.Project(p).NDC()
		wx, wy, wok := whole.Project(p).NDC()
		if sok != wok || math.Abs(sx-wx) > tolerance || math.Abs(sy-wy) > tolerance {
			t.Errorf("Project(%v): yaw 0.13+0.29 = (%v, %v, %v), yaw 0.42 = (%v, %v, %v)",
				p, sx, sy, sok, wx, wy, wok)
		}
	}
}

func TestProjectSeesPoseChangesImmediately(t *testing.T) {
	cam := newTestCamera(t)
	p := math3d.V3(0, 0, -5)
	if x, _, ok := cam.Project(p).NDC(); !ok || math.Abs(x) > tolerance {
		t.Fatalf("Project(%v) = (%v, %v), want centered", p, x, ok)
	}

	// A pose written without going through a mutator still shows up.
	cam.position = math3d.V3(1, 0, 0)
	if x, _, ok := cam.Project(p).NDC(); !ok || x >= 0 {
		t.Errorf("after moving right, Project(%v).x = %v (%v), want negative", p, x, ok)
	}
	cam.yaw = math.Pi
	if cam.Project(p).IsVisible() {
		t.Error("point behind the turned camera reported visible")
	}
}
