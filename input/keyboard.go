package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/rollcube/common"
)

const stickDeadzone = 0.5

// Keyboard polls arrows, WASD and the first gamepad once per frame.
type Keyboard struct {
	held [common.NumDirections]bool

	// PausePressed is true on the frame Escape or Start was pressed.
	PausePressed bool
	// RestartPressed is true on the frame R or Back was pressed.
	RestartPressed bool
	// QuitPressed is true on the frame F12 was pressed.
	QuitPressed bool
}

func NewKeyboard() *Keyboard {
	return &Keyboard{}
}

// Update polls the devices. Call it once at the top of the game update.
func (k *Keyboard) Update() {
	k.held[common.DirUp] = ebiten.IsKeyPressed(ebiten.KeyUp) || ebiten.IsKeyPressed(ebiten.KeyW)
	k.held[common.DirDown] = ebiten.IsKeyPressed(ebiten.KeyDown) || ebiten.IsKeyPressed(ebiten.KeyS)
	k.held[common.DirLeft] = ebiten.IsKeyPressed(ebiten.KeyLeft) || ebiten.IsKeyPressed(ebiten.KeyA)
	k.held[common.DirRight] = ebiten.IsKeyPressed(ebiten.KeyRight) || ebiten.IsKeyPressed(ebiten.KeyD)

	k.PausePressed = inpututil.IsKeyJustPressed(ebiten.KeyEscape)
	k.RestartPressed = inpututil.IsKeyJustPressed(ebiten.KeyR)
	k.QuitPressed = inpututil.IsKeyJustPressed(ebiten.KeyF12)

	ids := ebiten.GamepadIDs()
	if len(ids) == 0 {
		return
	}
	gid := ids[0]

	// Left stick, falling back to the d-pad.
	x := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
	y := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickVertical)
	k.held[common.DirUp] = k.held[common.DirUp] || y < -stickDeadzone ||
		ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftTop)
	k.held[common.DirDown] = k.held[common.DirDown] || y > stickDeadzone ||
		ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftBottom)
	k.held[common.DirLeft] = k.held[common.DirLeft] || x < -stickDeadzone ||
		ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftLeft)
	k.held[common.DirRight] = k.held[common.DirRight] || x > stickDeadzone ||
		ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftRight)

	k.PausePressed = k.PausePressed || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonCenterRight)
	k.RestartPressed = k.RestartPressed || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonCenterLeft)
}

// Held reports whether d was held at the last Update.
func (k *Keyboard) Held(d common.Direction) bool {
	if !d.Cardinal() {
		return false
	}
	return k.held[d]
}
