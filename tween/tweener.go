package tween

import (
	"github.com/milk9111/rollcube/common"
	"github.com/milk9111/rollcube/ecs"
	"github.com/milk9111/rollcube/ecs/component"
)

// Tweener drives fade and offset tweens stored on ECS entities. Callers fire
// tweens and forget them; the total running time of a tween is always
// delay + duration.
type Tweener struct {
	world *ecs.World
}

func New(w *ecs.World) *Tweener {
	return &Tweener{world: w}
}

// FadeFrom snaps e to alpha start and fades back to its current alpha.
func (tw *Tweener) FadeFrom(e ecs.Entity, start, duration, delay float64, ease component.Ease) {
	app, ok := ecs.Get(tw.world, e, component.AppearanceComponent.Kind())
	if !ok {
		return
	}
	end := app.Alpha
	app.Alpha = start
	tw.push(e, component.Tween{
		Property: component.TweenAlpha,
		From:     common.Vec3{X: start},
		To:       common.Vec3{X: end},
		Delay:    delay,
		Duration: duration,
		Ease:     ease,
	})
}

// FadeTo fades e from its alpha at start time to alpha.
func (tw *Tweener) FadeTo(e ecs.Entity, alpha, duration, delay float64, ease component.Ease) {
	app, ok := ecs.Get(tw.world, e, component.AppearanceComponent.Kind())
	if !ok {
		return
	}
	tw.push(e, component.Tween{
		Property: component.TweenAlpha,
		From:     common.Vec3{X: app.Alpha},
		To:       common.Vec3{X: alpha},
		Delay:    delay,
		Duration: duration,
		Ease:     ease,
	})
}

// MoveFrom displaces e by offset immediately and eases it back to rest.
func (tw *Tweener) MoveFrom(e ecs.Entity, offset common.Vec3, duration, delay float64, ease component.Ease) {
	tr, ok := ecs.Get(tw.world, e, component.TransformComponent.Kind())
	if !ok {
		return
	}
	from := tr.Offset.Add(offset)
	to := tr.Offset
	tr.Offset = from
	tw.push(e, component.Tween{
		Property: component.TweenOffset,
		From:     from,
		To:       to,
		Delay:    delay,
		Duration: duration,
		Ease:     ease,
	})
}

// MoveBy eases e away from its current offset by delta.
func (tw *Tweener) MoveBy(e ecs.Entity, delta common.Vec3, duration, delay float64, ease component.Ease) {
	tr, ok := ecs.Get(tw.world, e, component.TransformComponent.Kind())
	if !ok {
		return
	}
	tw.push(e, component.Tween{
		Property: component.TweenOffset,
		From:     tr.Offset,
		To:       tr.Offset.Add(delta),
		Delay:    delay,
		Duration: duration,
		Ease:     ease,
	})
}

func (tw *Tweener) push(e ecs.Entity, t component.Tween) {
	list, ok := ecs.Get(tw.world, e, component.TweensComponent.Kind())
	if !ok {
		_ = ecs.Add(tw.world, e, component.TweensComponent.Kind(), &component.Tweens{Active: []component.Tween{t}})
		return
	}
	list.Active = append(list.Active, t)
}

// Busy reports whether e has unfinished tweens.
func (tw *Tweener) Busy(e ecs.Entity) bool {
	list, ok := ecs.Get(tw.world, e, component.TweensComponent.Kind())
	return ok && len(list.Active) > 0
}

// Update advances every running tween by dt and drops finished ones.
func (tw *Tweener) Update(dt float64) {
	var finished []ecs.Entity
	ecs.ForEach(tw.world, component.TweensComponent.Kind(), func(e ecs.Entity, list *component.Tweens) {
		kept := list.Active[:0]
		for _, t := range list.Active {
			t.Elapsed += dt
			tw.apply(e, t)
			if !t.Done() {
				kept = append(kept, t)
			}
		}
		list.Active = kept
		if len(kept) == 0 {
			finished = append(finished, e)
		}
	})
	for _, e := range finished {
		ecs.Remove(tw.world, e, component.TweensComponent.Kind())
	}
}

func (tw *Tweener) apply(e ecs.Entity, t component.Tween) {
	if t.Elapsed < t.Delay {
		return
	}
	p := 1.0
	if t.Duration > 0 {
		p = Apply(t.Ease, (t.Elapsed-t.Delay)/t.Duration)
	}
	switch t.Property {
	case component.TweenAlpha:
		if app, ok := ecs.Get(tw.world, e, component.AppearanceComponent.Kind()); ok {
			app.Alpha = common.Lerp(t.From.X, t.To.X, p)
		}
	case component.TweenOffset:
		if tr, ok := ecs.Get(tw.world, e, component.TransformComponent.Kind()); ok {
			tr.Offset = common.Vec3{
				X: common.Lerp(t.From.X, t.To.X, p),
				Y: common.Lerp(t.From.Y, t.To.Y, p),
				Z: common.Lerp(t.From.Z, t.To.Z, p),
			}
		}
	}
}
