package movement

import (
	"github.com/milk9111/rollcube/common"
)

// Mode is the movement state of the avatar.
type Mode uint8

const (
	ModeIdle Mode = iota
	ModeRotating
	ModeFalling
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeRotating:
		return "rotating"
	case ModeFalling:
		return "falling"
	}
	return "unknown"
}

// QuarterTurn is the angle of one roll in degrees.
const QuarterTurn = 90.0

// RotationState describes a roll in progress.
type RotationState struct {
	Pivot          common.Vec3
	Axis           common.Vec3
	AngleRemaining float64
	Direction      common.Direction
	Elapsed        float64
}

// Occlusion answers whether a direction is blocked.
type Occlusion interface {
	IsBlocked(d common.Direction) bool
}

// Input is polled once per tick.
type Input interface {
	Held(d common.Direction) bool
}

// Physics is the gravity toggle owned by the collision layer.
type Physics interface {
	SetGravityEnabled(on bool)
}

// PoseSink receives the visual pose of the avatar cube after every change.
type PoseSink interface {
	SetPose(center common.Vec3, orientation common.Basis)
}

// Camera is a world-space camera. Rotation holds Euler angles in degrees.
type Camera struct {
	Position common.Vec3
	Rotation common.Vec3
}

type Config struct {
	// Speed is in cells per second.
	Speed float64
}

// Controller turns directional intents into quarter-turn rolls of a unit
// cube. The grid position only changes when a roll completes.
type Controller struct {
	cfg     Config
	field   Occlusion
	physics Physics
	input   Input
	pose    PoseSink

	mode    Mode
	enabled bool
	rot     RotationState

	grid        common.GridPosition
	center      common.Vec3
	orientation common.Basis

	cam       *Camera
	camOffset common.Vec3
	camHeight float64
}

func NewController(cfg Config, field Occlusion, physics Physics) *Controller {
	if cfg.Speed <= 0 {
		cfg.Speed = 1
	}
	return &Controller{
		cfg:         cfg,
		field:       field,
		physics:     physics,
		orientation: common.IdentityBasis,
	}
}

func (c *Controller) SetInput(in Input) {
	c.input = in
}

func (c *Controller) SetPoseSink(p PoseSink) {
	c.pose = p
	c.publish()
}

// SetSpeed changes the roll speed for moves started afterwards.
func (c *Controller) SetSpeed(speed float64) {
	if speed > 0 {
		c.cfg.Speed = speed
	}
}

func (c *Controller) Speed() float64 {
	return c.cfg.Speed
}

// Place puts the avatar at rest on cell, cancelling any roll or fall. The
// move-enabled flag is left untouched.
func (c *Controller) Place(cell common.GridPosition) {
	c.mode = ModeIdle
	c.rot = RotationState{}
	c.grid = cell
	c.center = common.CellCenter(cell)
	c.orientation = common.IdentityBasis
	c.publish()
}

func (c *Controller) Mode() Mode {
	return c.mode
}

func (c *Controller) GridPosition() common.GridPosition {
	return c.grid
}

// Position is the logical avatar position: the horizontal position of the
// cube at its resting height.
func (c *Controller) Position() common.Vec3 {
	return c.center.Horizontal(common.HalfUnit)
}

// CubeCenter is the visual centre of the cube, raised mid-roll.
func (c *Controller) CubeCenter() common.Vec3 {
	return c.center
}

func (c *Controller) Orientation() common.Basis {
	return c.orientation
}

// Rotation returns the roll in progress, if any.
func (c *Controller) Rotation() (RotationState, bool) {
	return c.rot, c.mode == ModeRotating
}

func (c *Controller) MoveEnabled() bool {
	return c.enabled
}

// SetMoveEnabled gates new intents. A roll already in progress finishes.
func (c *Controller) SetMoveEnabled(on bool) {
	c.enabled = on
}

// LinkCamera records the camera offset from the cube. From then on every
// tick moves the camera with the cube at a fixed elevation.
func (c *Controller) LinkCamera(cam *Camera) {
	c.cam = cam
	if cam == nil {
		return
	}
	c.camOffset = cam.Position.Sub(c.center)
	c.camHeight = cam.Position.Y
}

// RequestMove starts a roll toward d. It reports false, changing nothing,
// when the avatar is busy, disabled or blocked.
func (c *Controller) RequestMove(d common.Direction) bool {
	if c.mode != ModeIdle || !c.enabled || !d.Cardinal() {
		return false
	}
	if c.field != nil && c.field.IsBlocked(d) {
		return false
	}

	c.rot = RotationState{
		Pivot:          c.center.Add(d.Vector().Scale(common.HalfUnit)).Add(common.Vec3Down.Scale(common.HalfUnit)),
		Axis:           pivotAxis(d),
		AngleRemaining: QuarterTurn,
		Direction:      d,
	}
	c.mode = ModeRotating
	return true
}

// Land ends a fall. It is driven by the collision layer.
func (c *Controller) Land() bool {
	if c.mode != ModeFalling {
		return false
	}
	c.mode = ModeIdle
	return true
}

// Tick runs gravity, input, rotation and camera, in that order.
func (c *Controller) Tick(dt float64) {
	if c.mode == ModeIdle && c.enabled && c.field != nil && !c.field.IsBlocked(common.DirBelow) {
		c.enabled = false
		c.mode = ModeFalling
		if c.physics != nil {
			c.physics.SetGravityEnabled(true)
		}
	}

	if c.mode == ModeIdle && c.input != nil {
		for _, d := range common.Cardinals {
			if c.input.Held(d) && c.RequestMove(d) {
				break
			}
		}
	}

	if c.mode == ModeRotating {
		c.advance(dt)
	}

	c.followCamera()
}

func (c *Controller) advance(dt float64) {
	r := &c.rot
	r.Elapsed += dt

	if r.Elapsed <= 1/c.cfg.Speed {
		angle := QuarterTurn * dt * c.cfg.Speed
		r.AngleRemaining -= angle
		c.rotate(angle)
		return
	}

	// final correction; may be negative after an overshoot
	c.rotate(r.AngleRemaining)
	c.grid = c.grid.Neighbor(r.Direction)
	c.center = common.CellCenter(c.grid)
	c.orientation = c.orientation.Snap()
	c.rot = RotationState{}
	c.mode = ModeIdle
	c.publish()
}

func (c *Controller) rotate(deg float64) {
	c.center = c.center.RotateAround(c.rot.Pivot, c.rot.Axis, deg)
	c.orientation = c.orientation.Rotate(c.rot.Axis, deg)
	c.publish()
}

func (c *Controller) followCamera() {
	if c.cam == nil {
		return
	}
	p := c.center.Add(c.camOffset)
	p.Y = c.camHeight
	c.cam.Position = p
}

func (c *Controller) publish() {
	if c.pose != nil {
		c.pose.SetPose(c.center, c.orientation)
	}
}

// pivotAxis returns the horizontal axis a positive rotation about which
// tips the cube toward d.
func pivotAxis(d common.Direction) common.Vec3 {
	switch d {
	case common.DirUp:
		return common.Vec3Right
	case common.DirDown:
		return common.Vec3Left
	case common.DirRight:
		return common.Vec3Back
	case common.DirLeft:
		return common.Vec3Forward
	}
	return common.Vec3{}
}
