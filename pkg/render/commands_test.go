package render

import (
	"math"
	"testing"

	"github.com/taigrr/wireview/pkg/math3d"
)

func TestCommandsSet(t *testing.T) {
	var cmds Commands
	if cmds.String() != "none" {
		t.Errorf("empty set = %q", cmds.String())
	}

	cmds = cmds.With(CmdForward).With(CmdYawRight)
	if !cmds.Has(CmdForward) || !cmds.Has(CmdYawRight) || cmds.Has(CmdBackward) {
		t.Errorf("Has misreports for %v", cmds)
	}
	if got := cmds.String(); got != "forward|yaw-right" {
		t.Errorf("String() = %q", got)
	}
}

func TestApplyTickMagnitudes(t *testing.T) {
	tests := []struct {
		name    string
		cmds    Commands
		wantPos math3d.Vec3
		wantYaw float64
	}{
		{"idle", 0, math3d.Zero3(), 0},
		{"forward", CmdForward, math3d.V3(0, 0, -MoveStep), 0},
		{"backward", CmdBackward, math3d.V3(0, 0, MoveStep), 0},
		{"strafe left", CmdStrafeLeft, math3d.V3(-MoveStep, 0, 0), 0},
		{"strafe right", CmdStrafeRight, math3d.V3(MoveStep, 0, 0), 0},
		{"up", CmdUp, math3d.V3(0, VerticalStep, 0), 0},
		{"down", CmdDown, math3d.V3(0, -VerticalStep, 0), 0},
		{"yaw left", CmdYawLeft, math3d.Zero3(), YawStep},
		{"yaw right", CmdYawRight, math3d.Zero3(), -YawStep},
		{"opposites cancel", CmdForward | CmdBackward | CmdUp | CmdDown | CmdYawLeft | CmdYawRight, math3d.Zero3(), 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cam := newTestCamera(t)
			cam.ApplyTick(tc.cmds)
			if got := cam.Position(); !got.ApproxEqual(tc.wantPos, tolerance) {
				t.Errorf("Position() = %v, want %v", got, tc.wantPos)
			}
			if math.Abs(cam.Yaw()-tc.wantYaw) > tolerance {
				t.Errorf("Yaw() = %v, want %v", cam.Yaw(), tc.wantYaw)
			}
		})
	}
}

func TestApplyTickRotatesBeforeMoving(t *testing.T) {
	cam := newTestCamera(t)
	cam.ApplyTick(CmdForward | CmdYawLeft)

	want := math3d.V3(-math.Sin(YawStep)*MoveStep, 0, -math.Cos(YawStep)*MoveStep)
	if got := cam.Position(); !got.ApproxEqual(want, tolerance) {
		t.Errorf("Position() = %v, want %v", got, want)
	}
}

func TestApplyTickAccumulates(t *testing.T) {
	cam := newTestCamera(t)
	for range 10 {
		cam.ApplyTick(CmdStrafeRight | CmdUp)
	}
	want := math3d.V3(10*MoveStep, 10*VerticalStep, 0)
	if got := cam.Position(); !got.ApproxEqual(want, 1e-12) {
		t.Errorf("Position() = %v, want %v", got, want)
	}
}
