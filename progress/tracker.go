package progress

import (
	"go.uber.org/zap"
)

// Tracker counts the objectives left in the current level and fires
// onComplete exactly once when the count reaches zero.
type Tracker struct {
	log        *zap.Logger
	remaining  int
	total      int
	ready      bool
	done       bool
	onComplete func()
}

func NewTracker(log *zap.Logger, onComplete func()) *Tracker {
	return &Tracker{log: log.Named("progress"), onComplete: onComplete, done: true}
}

// Reset arms the tracker for a new level with count objectives. Completion
// waits until LevelReady so a level cannot finish while it is revealed.
func (t *Tracker) Reset(count int) {
	if count < 0 {
		count = 0
	}
	t.remaining = count
	t.total = count
	t.ready = false
	t.done = false
	t.log.Debug("reset", zap.Int("objectives", count))
}

// LevelReady marks the level playable. A level without objectives
// completes here.
func (t *Tracker) LevelReady() {
	t.ready = true
	if t.remaining == 0 {
		t.complete()
	}
}

// OnObjectiveActivated counts one activation and reports whether it
// completed the level. Activations after completion are ignored.
func (t *Tracker) OnObjectiveActivated() bool {
	if t.done || t.remaining == 0 {
		t.log.Debug("activation ignored", zap.Int("remaining", t.remaining))
		return false
	}
	t.remaining--
	t.log.Info("objective activated", zap.Int("remaining", t.remaining), zap.Int("total", t.total))
	if t.remaining > 0 || !t.ready {
		return false
	}
	t.complete()
	return true
}

func (t *Tracker) Remaining() int {
	return t.remaining
}

func (t *Tracker) Total() int {
	return t.total
}

// Complete reports whether the level-complete signal has fired.
func (t *Tracker) Complete() bool {
	return t.done
}

func (t *Tracker) complete() {
	if t.done {
		return
	}
	t.done = true
	t.log.Info("level complete")
	if t.onComplete != nil {
		t.onComplete()
	}
}
