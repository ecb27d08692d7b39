package scene

import (
	"github.com/milk9111/rollcube/common"
	"github.com/milk9111/rollcube/ecs"
	"github.com/milk9111/rollcube/ecs/component"
	"github.com/milk9111/rollcube/levels"
)

// Object sizes. Floor tiles sit below y=0, walls on top of the floor and
// button pads are thin plates on the floor surface.
var (
	unitSize = common.Vec3{X: 1, Y: 1, Z: 1}
	padSize  = common.Vec3{X: 0.8, Y: 0.1, Z: 0.8}
	cubeSize = common.Vec3{X: 1, Y: 1, Z: 1}
)

// Listener is told about objects entering and leaving the scene.
type Listener interface {
	ObjectSpawned(e ecs.Entity, kind component.ObjectKind, tr component.Transform)
	ObjectDestroyed(e ecs.Entity, kind component.ObjectKind)
}

// Scene instantiates levels and the avatar as ECS entities.
type Scene struct {
	world     *ecs.World
	avatar    ecs.Entity
	listeners []Listener
}

func New(w *ecs.World) *Scene {
	return &Scene{world: w}
}

func (s *Scene) World() *ecs.World {
	return s.world
}

func (s *Scene) AddListener(l Listener) {
	s.listeners = append(s.listeners, l)
}

// Instantiate creates a level root and one child per cell object. Children
// are grouped once here so later lookups are by typed group.
func (s *Scene) Instantiate(desc *levels.Descriptor, origin common.Vec3) ecs.Entity {
	root := ecs.CreateEntity(s.world)
	lr := &component.LevelRoot{Name: desc.Name, Origin: origin}

	add := func(g component.Group, kind component.ObjectKind, base common.Vec3, size common.Vec3, cell common.GridPosition) {
		e := s.spawn(kind, base.Add(origin), size)
		_ = ecs.Add(s.world, e, component.LevelMemberComponent.Kind(), &component.LevelMember{Root: uint64(root), Group: g})
		if kind == component.KindButton {
			_ = ecs.Add(s.world, e, component.ObjectiveComponent.Kind(), &component.Objective{Cell: cell})
		}
		lr.Groups[g] = append(lr.Groups[g], uint64(e))
		s.notifySpawned(e, kind)
	}

	for _, cell := range desc.Floor {
		add(component.GroupFloor, component.KindFloor, common.CellCenter(cell).Add(common.Vec3Down), unitSize, cell)
	}
	for _, cell := range desc.Walls {
		add(component.GroupWalls, component.KindWall, common.CellCenter(cell), unitSize, cell)
	}
	for _, cell := range desc.Buttons {
		base := common.CellCenter(cell)
		base.Y = padSize.Y / 2
		add(component.GroupInteractables, component.KindButton, base, padSize, cell)
	}

	_ = ecs.Add(s.world, root, component.LevelRootComponent.Kind(), lr)
	return root
}

// Destroy removes a level root and all of its children.
func (s *Scene) Destroy(root ecs.Entity) {
	lr, ok := ecs.Get(s.world, root, component.LevelRootComponent.Kind())
	if !ok {
		return
	}
	for _, group := range lr.Groups {
		for _, raw := range group {
			s.destroy(ecs.Entity(raw))
		}
	}
	ecs.DestroyEntity(s.world, root)
}

// Group returns the children of root in group g.
func (s *Scene) Group(root ecs.Entity, g component.Group) []ecs.Entity {
	lr, ok := ecs.Get(s.world, root, component.LevelRootComponent.Kind())
	if !ok || g >= component.NumGroups {
		return nil
	}
	out := make([]ecs.Entity, 0, len(lr.Groups[g]))
	for _, raw := range lr.Groups[g] {
		if e := ecs.Entity(raw); ecs.IsAlive(s.world, e) {
			out = append(out, e)
		}
	}
	return out
}

// SpawnAvatar places the avatar cube at rest on cell, replacing any
// existing avatar.
func (s *Scene) SpawnAvatar(cell common.GridPosition) ecs.Entity {
	s.DespawnAvatar()
	e := s.spawn(component.KindAvatar, common.CellCenter(cell), cubeSize)
	_ = ecs.Add(s.world, e, component.AvatarTagComponent.Kind(), &component.AvatarTag{})
	s.avatar = e
	s.notifySpawned(e, component.KindAvatar)
	return e
}

func (s *Scene) DespawnAvatar() {
	if !ecs.IsAlive(s.world, s.avatar) {
		return
	}
	s.destroy(s.avatar)
	s.avatar = 0
}

func (s *Scene) Avatar() (ecs.Entity, bool) {
	return s.avatar, ecs.IsAlive(s.world, s.avatar)
}

// SetPose moves the avatar cube. Calls without an avatar are dropped.
func (s *Scene) SetPose(center common.Vec3, orientation common.Basis) {
	tr, ok := ecs.Get(s.world, s.avatar, component.TransformComponent.Kind())
	if !ok {
		return
	}
	tr.Base = center
	tr.Orientation = orientation
}

// Activate marks a button as pressed and lights it. It reports false if the
// button was already active.
func (s *Scene) Activate(e ecs.Entity) bool {
	obj, ok := ecs.Get(s.world, e, component.ObjectiveComponent.Kind())
	if !ok || obj.Activated {
		return false
	}
	obj.Activated = true
	if app, ok := ecs.Get(s.world, e, component.AppearanceComponent.Kind()); ok {
		app.Lit = true
	}
	return true
}

// Object is a drawable snapshot of one entity.
type Object struct {
	Entity ecs.Entity
	component.Transform
	component.Appearance
}

// Objects returns every drawable entity.
func (s *Scene) Objects() []Object {
	ents := ecs.Query(s.world, component.TransformComponent.ID(), component.AppearanceComponent.ID())
	out := make([]Object, 0, len(ents))
	for _, e := range ents {
		tr, _ := ecs.Get(s.world, e, component.TransformComponent.Kind())
		app, _ := ecs.Get(s.world, e, component.AppearanceComponent.Kind())
		out = append(out, Object{Entity: e, Transform: *tr, Appearance: *app})
	}
	return out
}

func (s *Scene) spawn(kind component.ObjectKind, base, size common.Vec3) ecs.Entity {
	e := ecs.CreateEntity(s.world)
	_ = ecs.Add(s.world, e, component.TransformComponent.Kind(), &component.Transform{
		Base:        base,
		Orientation: common.IdentityBasis,
		Size:        size,
	})
	_ = ecs.Add(s.world, e, component.AppearanceComponent.Kind(), &component.Appearance{Kind: kind, Alpha: 1})
	return e
}

func (s *Scene) destroy(e ecs.Entity) {
	app, ok := ecs.Get(s.world, e, component.AppearanceComponent.Kind())
	if ok {
		kind := app.Kind
		for _, l := range s.listeners {
			l.ObjectDestroyed(e, kind)
		}
	}
	ecs.DestroyEntity(s.world, e)
}

func (s *Scene) notifySpawned(e ecs.Entity, kind component.ObjectKind) {
	if len(s.listeners) == 0 {
		return
	}
	tr, _ := ecs.Get(s.world, e, component.TransformComponent.Kind())
	for _, l := range s.listeners {
		l.ObjectSpawned(e, kind, *tr)
	}
}
