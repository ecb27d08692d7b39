package movement

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/milk9111/rollcube/common"
)

const eps = 1e-9

type heldKeys map[common.Direction]bool

func (h heldKeys) Held(d common.Direction) bool { return h[d] }

type gravitySwitch struct {
	on    bool
	calls int
}

func (g *gravitySwitch) SetGravityEnabled(on bool) {
	g.on = on
	g.calls++
}

type poseLog struct {
	centers []common.Vec3
}

func (p *poseLog) SetPose(center common.Vec3, _ common.Basis) {
	p.centers = append(p.centers, center)
}

// newGrounded returns an enabled controller resting on cell (2,2) with floor
// under it.
func newGrounded(speed float64) (*Controller, *ObstacleField, *gravitySwitch) {
	field := &ObstacleField{}
	field.Enter(common.DirBelow, BodySolid)
	g := &gravitySwitch{}
	c := NewController(Config{Speed: speed}, field, g)
	c.Place(common.GridPosition{X: 2, Y: 2})
	c.SetMoveEnabled(true)
	return c, field, g
}

// runUntilIdle ticks at dt and returns the number of ticks spent rotating.
func runUntilIdle(t *testing.T, c *Controller, dt float64) int {
	t.Helper()
	ticks := 0
	for c.Mode() == ModeRotating {
		c.Tick(dt)
		ticks++
		require.Less(t, ticks, 10000, "roll never finished")
	}
	return ticks
}

func TestRollMovesOneCell(t *testing.T) {
	cases := []struct {
		dir  common.Direction
		want common.GridPosition
	}{
		{common.DirUp, common.GridPosition{X: 2, Y: 1}},
		{common.DirDown, common.GridPosition{X: 2, Y: 3}},
		{common.DirLeft, common.GridPosition{X: 1, Y: 2}},
		{common.DirRight, common.GridPosition{X: 3, Y: 2}},
	}

	for _, tc := range cases {
		t.Run(tc.dir.String(), func(t *testing.T) {
			c, _, _ := newGrounded(3)
			require.True(t, c.RequestMove(tc.dir))
			require.Equal(t, ModeRotating, c.Mode())

			runUntilIdle(t, c, 1.0/60)

			require.Equal(t, tc.want, c.GridPosition())
			require.True(t, c.CubeCenter().Near(common.CellCenter(tc.want), eps))
			rot, active := c.Rotation()
			require.False(t, active)
			require.Zero(t, rot.AngleRemaining)
		})
	}
}

func TestRollOrientationTipsForward(t *testing.T) {
	c, _, _ := newGrounded(2)
	require.True(t, c.RequestMove(common.DirRight))
	runUntilIdle(t, c, 1.0/60)

	// rolling right turns the top face toward +X
	require.Equal(t, common.Vec3Right, c.Orientation().Up)
}

func TestGridUnchangedMidRoll(t *testing.T) {
	c, _, _ := newGrounded(1)
	start := c.GridPosition()
	require.True(t, c.RequestMove(common.DirUp))

	for i := 0; i < 20; i++ {
		c.Tick(0.02)
	}
	require.Equal(t, ModeRotating, c.Mode())
	require.Equal(t, start, c.GridPosition())
	require.Greater(t, c.CubeCenter().Y, common.HalfUnit, "cube lifts while tipping")
	require.Equal(t, common.HalfUnit, c.Position().Y)
}

func TestRollTimingIsFrameRateIndependent(t *testing.T) {
	const speed = 4.0
	var finals []common.Vec3
	for _, fps := range []float64{30, 144} {
		c, _, _ := newGrounded(speed)
		require.True(t, c.RequestMove(common.DirRight))
		dt := 1 / fps
		ticks := runUntilIdle(t, c, dt)

		elapsed := float64(ticks) * dt
		require.InDelta(t, 1/speed, elapsed, dt, "fps=%v", fps)
		finals = append(finals, c.CubeCenter())
	}
	require.True(t, finals[0].Near(finals[1], eps))
}

func TestFinalCorrectionLandsOnCell(t *testing.T) {
	c, _, _ := newGrounded(1)
	require.True(t, c.RequestMove(common.DirLeft))

	// uneven steps so the last regular increment overshoots the duration
	for _, dt := range []float64{0.3, 0.45, 0.2, 0.3} {
		c.Tick(dt)
	}
	require.Equal(t, ModeIdle, c.Mode())
	require.True(t, c.CubeCenter().Near(common.CellCenter(common.GridPosition{X: 1, Y: 2}), eps))
}

func TestRequestMoveRejected(t *testing.T) {
	t.Run("while_rotating", func(t *testing.T) {
		c, _, _ := newGrounded(2)
		require.True(t, c.RequestMove(common.DirUp))
		before, _ := c.Rotation()
		require.False(t, c.RequestMove(common.DirLeft))
		after, _ := c.Rotation()
		require.Equal(t, before, after)
		require.Equal(t, ModeRotating, c.Mode())
	})

	t.Run("disabled", func(t *testing.T) {
		c, _, _ := newGrounded(2)
		c.SetMoveEnabled(false)
		for _, d := range common.Cardinals {
			require.False(t, c.RequestMove(d))
		}
		require.Equal(t, ModeIdle, c.Mode())
		require.Equal(t, common.GridPosition{X: 2, Y: 2}, c.GridPosition())
	})

	t.Run("blocked", func(t *testing.T) {
		c, field, _ := newGrounded(2)
		field.Enter(common.DirDown, BodySolid)
		require.False(t, c.RequestMove(common.DirDown))
		require.Equal(t, ModeIdle, c.Mode())

		field.Exit(common.DirDown, BodySolid)
		require.True(t, c.RequestMove(common.DirDown))
	})

	t.Run("below_is_not_a_move", func(t *testing.T) {
		c, _, _ := newGrounded(2)
		require.False(t, c.RequestMove(common.DirBelow))
	})
}

func TestDisableMidRollFinishes(t *testing.T) {
	c, _, _ := newGrounded(2)
	require.True(t, c.RequestMove(common.DirUp))
	c.Tick(0.1)
	c.SetMoveEnabled(false)
	runUntilIdle(t, c, 0.1)
	require.Equal(t, common.GridPosition{X: 2, Y: 1}, c.GridPosition())
}

func TestInputPriorityFallsThroughBlocked(t *testing.T) {
	c, field, _ := newGrounded(2)
	field.Enter(common.DirUp, BodySolid)
	c.SetInput(heldKeys{common.DirUp: true, common.DirDown: true, common.DirRight: true})

	c.Tick(0.01)
	rot, active := c.Rotation()
	require.True(t, active)
	require.Equal(t, common.DirDown, rot.Direction)
}

func TestInputPriorityOrder(t *testing.T) {
	c, _, _ := newGrounded(2)
	c.SetInput(heldKeys{common.DirRight: true, common.DirLeft: true})
	c.Tick(0.01)
	rot, _ := c.Rotation()
	require.Equal(t, common.DirLeft, rot.Direction)
}

func TestGravityWhenNothingBelow(t *testing.T) {
	c, field, g := newGrounded(2)
	c.SetInput(heldKeys{common.DirUp: true})
	field.Exit(common.DirBelow, BodySolid)

	c.Tick(0.01)
	require.Equal(t, ModeFalling, c.Mode())
	require.False(t, c.MoveEnabled())
	require.True(t, g.on)
	require.Equal(t, 1, g.calls)

	c.Tick(0.01)
	require.Equal(t, 1, g.calls, "toggle fires once")
	require.False(t, c.RequestMove(common.DirUp))

	require.True(t, c.Land())
	require.Equal(t, ModeIdle, c.Mode())
	require.False(t, c.MoveEnabled(), "landing does not re-enable movement")
	require.False(t, c.Land())
}

func TestNoGravityWhileDisabledOrRolling(t *testing.T) {
	c, field, g := newGrounded(2)
	require.True(t, c.RequestMove(common.DirRight))
	field.Exit(common.DirBelow, BodySolid)
	c.Tick(0.01)
	require.Equal(t, ModeRotating, c.Mode())

	c.SetMoveEnabled(false)
	runUntilIdle(t, c, 0.05)
	c.Tick(0.01)
	require.Equal(t, ModeIdle, c.Mode())
	require.Zero(t, g.calls)
}

func TestCameraFollowKeepsElevation(t *testing.T) {
	c, _, _ := newGrounded(2)
	cam := &Camera{Position: common.CellCenter(common.GridPosition{X: 2, Y: 2}).Add(common.Vec3{Y: 8, Z: -6})}
	c.LinkCamera(cam)
	height := cam.Position.Y

	require.True(t, c.RequestMove(common.DirUp))
	for c.Mode() == ModeRotating {
		c.Tick(0.03)
		require.Equal(t, height, cam.Position.Y)
	}

	want := common.CellCenter(common.GridPosition{X: 2, Y: 1}).Add(common.Vec3{Y: 8, Z: -6})
	require.InDelta(t, want.X, cam.Position.X, eps)
	require.InDelta(t, want.Z, cam.Position.Z, eps)
}

func TestPoseSinkSeesEveryStep(t *testing.T) {
	c, _, _ := newGrounded(2)
	var log poseLog
	c.SetPoseSink(&log)
	require.Len(t, log.centers, 1)

	require.True(t, c.RequestMove(common.DirRight))
	runUntilIdle(t, c, 0.1)
	require.Greater(t, len(log.centers), 2)
	last := log.centers[len(log.centers)-1]
	require.True(t, last.Near(common.CellCenter(common.GridPosition{X: 3, Y: 2}), eps))

	for _, p := range log.centers {
		require.False(t, math.IsNaN(p.X))
	}
}
