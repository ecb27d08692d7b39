package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/milk9111/rollcube/levels"
	"github.com/milk9111/rollcube/movement"
	"github.com/milk9111/rollcube/prefabs"
	"github.com/milk9111/rollcube/replay"
	"github.com/milk9111/rollcube/session"
	"github.com/milk9111/rollcube/transition"
)

type runOptions struct {
	Spec       *prefabs.GameSpec
	Levels     []*levels.Descriptor
	StartLevel string
	Moves      string
	Loop       bool
	TPS        int
	Seconds    float64
	Seed       uint64
	// Frame, if set, is called after every tick.
	Frame func(*session.Session)
}

type runResult struct {
	Ticks    int
	Moves    int
	Cleared  int
	Restarts int
	Blocked  int
	// Visited lists every level set up, in order.
	Visited []string
}

// checkEvery is how many ticks pass between context checks.
const checkEvery = 256

func simulate(ctx context.Context, log *zap.Logger, opts runOptions) (runResult, error) {
	var res runResult
	script, err := replay.ParseScript(opts.Moves, opts.Loop)
	if err != nil {
		return res, err
	}
	if opts.TPS <= 0 {
		opts.TPS = 60
	}

	sess, err := session.New(session.Options{
		Spec:       opts.Spec,
		Levels:     opts.Levels,
		StartLevel: opts.StartLevel,
		Seed:       opts.Seed,
		Input:      script,
		Log:        log,
	})
	if err != nil {
		return res, err
	}
	if err := sess.Start(); err != nil {
		return res, err
	}

	seq := sess.Sequencer()
	ctrl := sess.Controller()
	dt := 1 / float64(opts.TPS)
	total := int(opts.Seconds * float64(opts.TPS))

	prevMode := ctrl.Mode()
	prevState := seq.State()
	res.Visited = append(res.Visited, seq.Level().Name)
	for res.Ticks = 0; res.Ticks < total; res.Ticks++ {
		if res.Ticks%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return res, err
			}
		}
		depth := seq.Depth()
		wasEnabled := ctrl.MoveEnabled()
		wasIdle := ctrl.Mode() == movement.ModeIdle
		sess.Update(dt)

		mode := ctrl.Mode()
		switch {
		case mode != prevMode && mode == movement.ModeRotating:
			script.Accept()
			res.Moves++
		case mode == movement.ModeIdle && prevMode == movement.ModeIdle && wasEnabled && ctrl.MoveEnabled() && !script.Done():
			// the controller polled the pending move and refused it
			script.Accept()
			res.Blocked++
		}
		prevMode = mode
		if opts.Frame != nil {
			opts.Frame(sess)
		}
		if state := seq.State(); state != prevState {
			if state == transition.StateSettingUp {
				res.Visited = append(res.Visited, seq.Level().Name)
				if seq.Depth() == depth {
					res.Restarts++
				}
			}
			prevState = state
		}
		// a resting avatar has had one tick to start falling before we stop
		settled := wasIdle && wasEnabled && mode == movement.ModeIdle && ctrl.MoveEnabled()
		if !opts.Loop && script.Done() && settled && seq.State() == transition.StateActive {
			break
		}
	}
	res.Cleared = seq.Depth()
	return res, nil
}
