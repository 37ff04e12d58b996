package main

import (
	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/wireview/pkg/render"
)

// holdThreshold is the level above which a key counts as held.
const holdThreshold = 0.5

// heldKey tracks how "held" one key is. Terminals rarely report key
// releases, so a press sets the level to 1 and a spring pulls it back to 0.
// Auto-repeat presses keep it topped up while the key stays down.
type heldKey struct {
	level    float64
	velocity float64
}

// KeyHolds turns terminal key presses into per-tick camera commands.
type KeyHolds struct {
	keys   [8]heldKey // one per command bit
	spring harmonica.Spring
}

// NewKeyHolds creates key state that decays at the given tick rate.
func NewKeyHolds(fps int) *KeyHolds {
	return &KeyHolds{
		// Frequency 6.0 with damping 1.0 (critically damped) keeps a key
		// held for about 0.28s, longer than the usual auto-repeat delay.
		spring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
	}
}

// Press marks every command in cmds as freshly held.
func (k *KeyHolds) Press(cmds render.Commands) {
	for i := range k.keys {
		if cmds.Has(render.Commands(1 << i)) {
			k.keys[i] = heldKey{level: 1}
		}
	}
}

// Release drops every command in cmds immediately.
func (k *KeyHolds) Release(cmds render.Commands) {
	for i := range k.keys {
		if cmds.Has(render.Commands(1 << i)) {
			k.keys[i] = heldKey{}
		}
	}
}

// Tick returns the commands held this tick and advances the decay.
func (k *KeyHolds) Tick() render.Commands {
	var cmds render.Commands
	for i := range k.keys {
		key := &k.keys[i]
		if key.level > holdThreshold {
			cmds = cmds.With(render.Commands(1 << i))
		}
		key.level, key.velocity = k.spring.Update(key.level, key.velocity, 0)
	}
	return cmds
}

// keyCommand maps a key to the camera command it drives.
func keyCommand(k uv.Key) (render.Commands, bool) {
	switch {
	case k.MatchString("w", "up"):
		return render.CmdForward, true
	case k.MatchString("s", "down"):
		return render.CmdBackward, true
	case k.MatchString("a", "left"):
		return render.CmdStrafeLeft, true
	case k.MatchString("d", "right"):
		return render.CmdStrafeRight, true
	case k.MatchString("j"):
		return render.CmdYawLeft, true
	case k.MatchString("l"):
		return render.CmdYawRight, true
	// Terminals do not report a bare Shift press, so down has its own keys.
	case k.MatchString("z", "shift+q", "Q"):
		return render.CmdDown, true
	case k.MatchString("q"):
		return render.CmdUp, true
	}
	return 0, false
}
