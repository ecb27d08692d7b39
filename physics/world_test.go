package physics

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/milk9111/rollcube/common"
	"github.com/milk9111/rollcube/ecs"
	"github.com/milk9111/rollcube/ecs/component"
	"github.com/milk9111/rollcube/levels"
	"github.com/milk9111/rollcube/movement"
	"github.com/milk9111/rollcube/scene"
)

const tick = 1.0 / 60

type fixture struct {
	world *ecs.World
	scene *scene.Scene
	field *movement.ObstacleField
	phys  *World
	root  ecs.Entity
}

func newFixture(t *testing.T, rows ...string) *fixture {
	t.Helper()
	width := 0
	for _, r := range rows {
		width = max(width, len(r))
	}
	desc, err := levels.Resolve(&levels.Level{Name: "phys", Width: width, Height: len(rows), Rows: rows})
	require.NoError(t, err)

	w := ecs.NewWorld()
	f := &fixture{world: w, scene: scene.New(w), field: &movement.ObstacleField{}}
	f.phys = NewWorld(Config{Gravity: 9.8, KillDepth: -5}, zap.NewNop(), w, f.field)
	f.scene.AddListener(f.phys)
	f.root = f.scene.Instantiate(desc, common.Vec3Zero)
	f.scene.SpawnAvatar(desc.Spawn)
	return f
}

func (f *fixture) events() []ecs.Event {
	return f.world.Events().Drain()
}

func TestSensorsReportWallsAndFloor(t *testing.T) {
	f := newFixture(t,
		"...",
		".S#",
		"...",
	)
	f.phys.Sync(tick)

	require.True(t, f.field.IsBlocked(common.DirRight))
	require.True(t, f.field.IsBlocked(common.DirBelow))
	require.False(t, f.field.IsBlocked(common.DirUp))
	require.False(t, f.field.IsBlocked(common.DirLeft))
	require.False(t, f.field.IsBlocked(common.DirDown))

	// the right sensor also overlaps the avatar's own detector
	require.Equal(t, 2, f.phys.Touching(common.DirRight))
	require.Equal(t, 1, f.field.Count(common.DirRight))
}

func TestRescanIsIdempotent(t *testing.T) {
	f := newFixture(t, "S#")
	for i := 0; i < 5; i++ {
		f.phys.Sync(tick)
	}
	require.Equal(t, 1, f.field.Count(common.DirRight))
	require.Equal(t, 1, f.field.Count(common.DirBelow))
}

func TestMovingAvatarUpdatesSensors(t *testing.T) {
	f := newFixture(t, "S.#")
	f.phys.Sync(tick)
	require.False(t, f.field.IsBlocked(common.DirRight))

	f.scene.SetPose(common.CellCenter(common.GridPosition{X: 1}), common.IdentityBasis)
	f.phys.Sync(tick)
	require.True(t, f.field.IsBlocked(common.DirRight))
	require.True(t, f.field.IsBlocked(common.DirBelow))

	// off the edge of the board
	f.scene.SetPose(common.CellCenter(common.GridPosition{X: -1}), common.IdentityBasis)
	f.phys.Sync(tick)
	require.False(t, f.field.IsBlocked(common.DirRight))
	require.False(t, f.field.IsBlocked(common.DirBelow))
}

func TestDestroyedLevelClearsSensors(t *testing.T) {
	f := newFixture(t, "S#")
	f.phys.Sync(tick)
	require.True(t, f.field.IsBlocked(common.DirRight))

	f.scene.Destroy(f.root)
	f.phys.Sync(tick)
	require.False(t, f.field.IsBlocked(common.DirRight))
	require.False(t, f.field.IsBlocked(common.DirBelow))
}

func TestDespawnExitsEverything(t *testing.T) {
	f := newFixture(t, "S#")
	f.phys.Sync(tick)
	f.scene.DespawnAvatar()
	for d := common.Direction(0); d < common.NumDirections; d++ {
		require.Zero(t, f.field.Count(d), d.String())
		require.Zero(t, f.phys.Touching(d))
	}
	f.phys.Sync(tick)
}

func TestPadPressedOnce(t *testing.T) {
	f := newFixture(t, "SB.")
	f.phys.Sync(tick)
	require.Empty(t, f.events())

	f.scene.SetPose(common.CellCenter(common.GridPosition{X: 1}), common.IdentityBasis)
	f.phys.Sync(tick)
	evs := f.events()
	require.Len(t, evs, 1)
	require.Equal(t, ecs.EventObjectiveActivated, evs[0].Kind)
	require.Equal(t, common.GridPosition{X: 1}, evs[0].Cell)

	f.phys.Sync(tick)
	f.scene.SetPose(common.CellCenter(common.GridPosition{X: 2}), common.IdentityBasis)
	f.phys.Sync(tick)
	f.scene.SetPose(common.CellCenter(common.GridPosition{X: 1}), common.IdentityBasis)
	f.phys.Sync(tick)
	require.Empty(t, f.events())
}

func TestFallOutRaisedOnce(t *testing.T) {
	f := newFixture(t, "S")
	f.scene.SetPose(common.CellCenter(common.GridPosition{X: 3}), common.IdentityBasis)
	f.phys.SetGravityEnabled(true)

	var fell int
	for i := 0; i < 600; i++ {
		f.phys.Sync(tick)
		for _, ev := range f.events() {
			if ev.Kind == ecs.EventAvatarFellOut {
				fell++
			}
		}
	}
	require.Equal(t, 1, fell)
	require.False(t, f.phys.GravityEnabled())

	av, _ := f.scene.Avatar()
	tr, _ := ecs.Get(f.world, av, componentTransform())
	require.Less(t, tr.Base.Y, -5.0)
}

func TestLandingOnFloor(t *testing.T) {
	f := newFixture(t, "S")
	f.scene.SetPose(common.Vec3{X: 0.5, Y: 3, Z: -0.5}, common.IdentityBasis)
	f.phys.SetGravityEnabled(true)

	landed := false
	for i := 0; i < 600 && !landed; i++ {
		f.phys.Sync(tick)
		for _, ev := range f.events() {
			landed = landed || ev.Kind == ecs.EventAvatarLanded
		}
	}
	require.True(t, landed)
	require.False(t, f.phys.GravityEnabled())

	av, _ := f.scene.Avatar()
	tr, _ := ecs.Get(f.world, av, componentTransform())
	require.Equal(t, common.HalfUnit, tr.Base.Y)
}

func componentTransform() component.ComponentKind[component.Transform] {
	return component.TransformComponent.Kind()
}
