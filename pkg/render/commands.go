package render

import "strings"

// Per-tick command magnitudes.
const (
	MoveStep     = 0.1  // forward, backward and strafe, world units
	VerticalStep = 0.08 // up and down, world units
	YawStep      = 0.02 // radians
)

// Commands is the set of camera commands active during one tick.
type Commands uint8

const (
	CmdForward Commands = 1 << iota
	CmdBackward
	CmdStrafeLeft
	CmdStrafeRight
	CmdUp
	CmdDown
	CmdYawLeft
	CmdYawRight
)

var commandNames = [...]struct {
	cmd  Commands
	name string
}{
	{CmdForward, "forward"},
	{CmdBackward, "backward"},
	{CmdStrafeLeft, "strafe-left"},
	{CmdStrafeRight, "strafe-right"},
	{CmdUp, "up"},
	{CmdDown, "down"},
	{CmdYawLeft, "yaw-left"},
	{CmdYawRight, "yaw-right"},
}

// Has reports whether every command in cmd is set.
func (c Commands) Has(cmd Commands) bool {
	return c&cmd == cmd
}

// With returns c with cmd added.
func (c Commands) With(cmd Commands) Commands {
	return c | cmd
}

func (c Commands) String() string {
	if c == 0 {
		return "none"
	}
	var names []string
	for _, n := range commandNames {
		if c.Has(n.cmd) {
			names = append(names, n.name)
		}
	}
	return strings.Join(names, "|")
}

// ApplyTick applies one tick of commands. Rotation is applied before
// movement so forward and strafe follow the new heading.
func (c *Camera) ApplyTick(cmds Commands) {
	if cmds.Has(CmdYawLeft) {
		c.RotateYaw(YawStep)
	}
	if cmds.Has(CmdYawRight) {
		c.RotateYaw(-YawStep)
	}

	if cmds.Has(CmdForward) {
		c.MoveForward(MoveStep)
	}
	if cmds.Has(CmdBackward) {
		c.MoveBackward(MoveStep)
	}
	if cmds.Has(CmdStrafeRight) {
		c.StrafeRight(MoveStep)
	}
	if cmds.Has(CmdStrafeLeft) {
		c.StrafeLeft(MoveStep)
	}
	if cmds.Has(CmdUp) {
		c.MoveUp(VerticalStep)
	}
	if cmds.Has(CmdDown) {
		c.MoveDown(VerticalStep)
	}
}
