package physics

import (
	"github.com/jakecoffman/cp"
	"go.uber.org/zap"

	"github.com/milk9111/rollcube/common"
	"github.com/milk9111/rollcube/ecs"
	"github.com/milk9111/rollcube/ecs/component"
	"github.com/milk9111/rollcube/movement"
)

// Shape categories. The cp space is the top-down X/Z plane; height is
// implied by category.
const (
	CategoryFloor uint = 1 << iota
	CategoryWall
	CategoryPad
	CategoryAvatar
	CategoryDetector
)

const (
	avatarHalf   = 0.45
	detectorHalf = 0.25
	// restTolerance is how far below resting height the avatar may be and
	// still press pads.
	restTolerance = 0.25
	// avatarGroup keeps the avatar's own shapes from colliding.
	avatarGroup uint = 1
)

// Sink receives occupancy changes per direction.
type Sink interface {
	Enter(d common.Direction, kind movement.BodyKind)
	Exit(d common.Direction, kind movement.BodyKind)
}

type Config struct {
	Gravity   float64
	KillDepth float64
}

type body struct {
	entity ecs.Entity
	object component.ObjectKind
	kind   movement.BodyKind
}

// World mirrors scene objects into a cp space and turns overlaps around the
// avatar into obstacle events, pad presses and falls.
type World struct {
	cfg    Config
	log    *zap.Logger
	ecs    *ecs.World
	sink   Sink
	space  *cp.Space
	shapes map[ecs.Entity]*cp.Shape

	avatar    ecs.Entity
	avBody    *cp.Body
	avShapes  []*cp.Shape
	touching  [common.NumDirections]map[*cp.Shape]movement.BodyKind
	pressed   map[ecs.Entity]bool
	gravity   bool
	fallSpeed float64
	fellOut   bool
}

func NewWorld(cfg Config, log *zap.Logger, w *ecs.World, sink Sink) *World {
	pw := &World{
		cfg:     cfg,
		log:     log.Named("physics"),
		ecs:     w,
		sink:    sink,
		space:   cp.NewSpace(),
		shapes:  make(map[ecs.Entity]*cp.Shape),
		pressed: make(map[ecs.Entity]bool),
	}
	for i := range pw.touching {
		pw.touching[i] = make(map[*cp.Shape]movement.BodyKind)
	}
	return pw
}

// SetConfig replaces gravity and kill depth.
func (w *World) SetConfig(cfg Config) {
	w.cfg = cfg
}

// SetGravityEnabled starts or stops the avatar fall.
func (w *World) SetGravityEnabled(on bool) {
	if on == w.gravity {
		return
	}
	w.gravity = on
	w.fallSpeed = 0
	w.log.Debug("gravity", zap.Bool("enabled", on))
}

func (w *World) GravityEnabled() bool {
	return w.gravity
}

// ObjectSpawned adds a shape for a new scene object.
func (w *World) ObjectSpawned(e ecs.Entity, kind component.ObjectKind, tr component.Transform) {
	if kind == component.KindAvatar {
		w.addAvatar(e, tr)
		return
	}

	var category uint
	switch kind {
	case component.KindFloor:
		category = CategoryFloor
	case component.KindWall:
		category = CategoryWall
	case component.KindButton:
		category = CategoryPad
	default:
		return
	}

	half := footprint(tr)
	shape := cp.NewBox2(w.space.StaticBody, cp.NewBBForExtents(planar(tr.Base), half.X, half.Y), 0)
	shape.SetSensor(true)
	shape.Filter = cp.NewShapeFilter(cp.NO_GROUP, category, cp.ALL_CATEGORIES)
	shape.UserData = &body{entity: e, object: kind, kind: movement.BodySolid}
	w.space.AddShape(shape)
	w.shapes[e] = shape
}

// ObjectDestroyed drops the shape of a removed scene object.
func (w *World) ObjectDestroyed(e ecs.Entity, kind component.ObjectKind) {
	if kind == component.KindAvatar {
		w.removeAvatar()
		return
	}
	shape, ok := w.shapes[e]
	if !ok {
		return
	}
	w.space.RemoveShape(shape)
	delete(w.shapes, e)
	delete(w.pressed, e)
}

func (w *World) addAvatar(e ecs.Entity, tr component.Transform) {
	w.removeAvatar()

	b := cp.NewKinematicBody()
	b.SetPosition(planar(tr.Base))
	w.space.AddBody(b)

	main := cp.NewBox2(b, cp.NewBBForExtents(cp.Vector{}, avatarHalf, avatarHalf), 0)
	main.Filter = cp.NewShapeFilter(avatarGroup, CategoryAvatar, cp.ALL_CATEGORIES)
	main.UserData = &body{entity: e, object: component.KindAvatar, kind: movement.BodyPlayer}
	main.SetSensor(true)
	w.space.AddShape(main)
	w.avShapes = append(w.avShapes, main)

	for _, d := range common.Cardinals {
		v := d.Vector()
		det := cp.NewBox2(b, cp.NewBBForExtents(cp.Vector{X: v.X, Y: v.Z}, detectorHalf, detectorHalf), 0)
		det.Filter = cp.NewShapeFilter(avatarGroup, CategoryDetector, cp.ALL_CATEGORIES)
		det.UserData = &body{entity: e, object: component.KindAvatar, kind: movement.BodyDetector}
		det.SetSensor(true)
		w.space.AddShape(det)
		w.avShapes = append(w.avShapes, det)
	}

	w.avatar = e
	w.avBody = b
	w.gravity = false
	w.fallSpeed = 0
	w.fellOut = false
}

func (w *World) removeAvatar() {
	if w.avBody == nil {
		return
	}
	for d := range w.touching {
		for shape, kind := range w.touching[d] {
			w.sink.Exit(common.Direction(d), kind)
			delete(w.touching[d], shape)
		}
	}
	for _, s := range w.avShapes {
		w.space.RemoveShape(s)
	}
	w.space.RemoveBody(w.avBody)
	w.avShapes = nil
	w.avBody = nil
	w.avatar = 0
	w.gravity = false
}

// Sync reads the avatar pose, advances the fall and rescans every sensor.
// Overlap changes since the previous Sync become Enter/Exit calls on the
// sink; pads under the avatar raise objective events.
func (w *World) Sync(dt float64) {
	if w.avBody == nil {
		return
	}
	tr, ok := ecs.Get(w.ecs, w.avatar, component.TransformComponent.Kind())
	if !ok {
		return
	}

	if w.gravity {
		w.fall(tr, dt)
	}

	w.avBody.SetPosition(planar(tr.Base))
	if dt > 0 {
		w.space.Step(dt)
	}

	for _, d := range common.Cardinals {
		v := d.Vector()
		c := cp.Vector{X: tr.Base.X + v.X, Y: tr.Base.Z + v.Z}
		w.scan(d, cp.NewBBForExtents(c, detectorHalf, detectorHalf), CategoryWall|CategoryAvatar|CategoryDetector)
	}
	below := cp.NewBBForExtents(planar(tr.Base), detectorHalf, detectorHalf)
	w.scan(common.DirBelow, below, CategoryFloor|CategoryAvatar|CategoryDetector)

	if w.gravity && len(w.solids(common.DirBelow)) > 0 && tr.Base.Y <= common.HalfUnit {
		tr.Base.Y = common.HalfUnit
		w.SetGravityEnabled(false)
		w.ecs.Events().Push(ecs.Event{Kind: ecs.EventAvatarLanded, Entity: w.avatar, Cell: common.CellOf(tr.Base)})
	}

	if tr.Base.Y >= common.HalfUnit-restTolerance {
		w.pressPads(tr.Base)
	}
}

func (w *World) fall(tr *component.Transform, dt float64) {
	w.fallSpeed += w.cfg.Gravity * dt
	tr.Base.Y -= w.fallSpeed * dt
	if !w.fellOut && tr.Base.Y < w.cfg.KillDepth {
		w.fellOut = true
		w.SetGravityEnabled(false)
		w.log.Info("avatar fell out", zap.Float64("y", tr.Base.Y))
		w.ecs.Events().Push(ecs.Event{Kind: ecs.EventAvatarFellOut, Entity: w.avatar, Cell: common.CellOf(tr.Base)})
	}
}

func (w *World) scan(d common.Direction, bb cp.BB, mask uint) {
	seen := make(map[*cp.Shape]movement.BodyKind)
	filter := cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, mask)
	w.space.BBQuery(bb, filter, func(shape *cp.Shape, _ interface{}) {
		if b, ok := shape.UserData.(*body); ok {
			seen[shape] = b.kind
		}
	}, nil)

	prev := w.touching[d]
	for shape, kind := range prev {
		if _, still := seen[shape]; !still {
			w.sink.Exit(d, kind)
			delete(prev, shape)
		}
	}
	for shape, kind := range seen {
		if _, had := prev[shape]; !had {
			prev[shape] = kind
			w.sink.Enter(d, kind)
		}
	}
}

func (w *World) solids(d common.Direction) []*cp.Shape {
	var out []*cp.Shape
	for shape, kind := range w.touching[d] {
		if kind == movement.BodySolid {
			out = append(out, shape)
		}
	}
	return out
}

func (w *World) pressPads(at common.Vec3) {
	bb := cp.NewBBForExtents(planar(at), avatarHalf, avatarHalf)
	filter := cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, CategoryPad)
	var hits []*body
	w.space.BBQuery(bb, filter, func(shape *cp.Shape, _ interface{}) {
		if b, ok := shape.UserData.(*body); ok && b.object == component.KindButton {
			hits = append(hits, b)
		}
	}, nil)

	for _, b := range hits {
		if w.pressed[b.entity] {
			continue
		}
		w.pressed[b.entity] = true
		cell := common.CellOf(at)
		if tr, ok := ecs.Get(w.ecs, b.entity, component.TransformComponent.Kind()); ok {
			cell = common.CellOf(tr.Base)
		}
		w.log.Debug("pad pressed", zap.Stringer("cell", cell))
		w.ecs.Events().Push(ecs.Event{Kind: ecs.EventObjectiveActivated, Entity: b.entity, Cell: cell})
	}
}

// Touching reports how many bodies of any kind overlap the sensor for d.
func (w *World) Touching(d common.Direction) int {
	if !d.Valid() {
		return 0
	}
	return len(w.touching[d])
}

func planar(v common.Vec3) cp.Vector {
	return cp.Vector{X: v.X, Y: v.Z}
}

func footprint(tr component.Transform) cp.Vector {
	size := tr.Size
	if size == (common.Vec3{}) {
		size = common.Vec3{X: 1, Y: 1, Z: 1}
	}
	// shrink slightly so neighbouring cells do not touch
	return cp.Vector{X: size.X/2 - 0.01, Y: size.Z/2 - 0.01}
}
