// Command simulate runs game sessions without a window, feeding each one a
// scripted move string. It is used to soak the transition and progress
// logic.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/milk9111/rollcube/levels"
	"github.com/milk9111/rollcube/prefabs"
	"github.com/milk9111/rollcube/session"
)

func main() {
	debug := flag.Bool("debug", false, "log every phase")
	levelName := flag.String("level", "", "level to play first")
	moves := flag.String("moves", "RRRR", "moves to replay (U, D, L, R)")
	loop := flag.Bool("loop", true, "repeat the move string when it runs out")
	tps := flag.Int("tps", 60, "ticks per simulated second")
	seconds := flag.Float64("seconds", 60, "simulated seconds per run")
	runs := flag.Int("runs", 1, "sessions to run in parallel")
	seed := flag.Uint64("seed", 1, "seed of the first run; run i uses seed+i")
	view := flag.Bool("view", false, "draw a single run in the terminal in real time")
	flag.Parse()

	var log *zap.Logger
	if *debug {
		log, _ = zap.NewDevelopment()
	} else {
		log, _ = zap.NewProduction()
	}
	defer log.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	descs, err := levels.LoadAll(ctx)
	if err != nil {
		log.Fatal("load levels", zap.Error(err))
	}
	spec, err := prefabs.LoadGameSpec()
	if err != nil {
		log.Fatal("load game spec", zap.Error(err))
	}

	runLog := log
	var frame func(*session.Session)
	if *view {
		if *runs != 1 {
			log.Fatal("-view needs -runs=1")
		}
		tv, err := newTermView(time.Second / time.Duration(max(*tps, 1)))
		if err != nil {
			log.Fatal("terminal view", zap.Error(err))
		}
		defer tv.Close()
		var cancel context.CancelFunc
		ctx, cancel = context.WithCancel(ctx)
		defer cancel()
		tv.watchKeys(cancel)
		frame = tv.Frame
		// the terminal belongs to the view now
		runLog = zap.NewNop()
	}

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < *runs; i++ {
		opts := runOptions{
			Spec:       spec,
			Levels:     descs,
			StartLevel: *levelName,
			Moves:      *moves,
			Loop:       *loop,
			TPS:        *tps,
			Seconds:    *seconds,
			Seed:       *seed + uint64(i),
			Frame:      frame,
		}
		g.Go(func() error {
			res, err := simulate(ctx, runLog, opts)
			if err != nil {
				return err
			}
			log.Info("run finished",
				zap.Uint64("seed", opts.Seed),
				zap.Int("ticks", res.Ticks),
				zap.Int("moves", res.Moves),
				zap.Int("cleared", res.Cleared),
				zap.Int("restarts", res.Restarts),
				zap.Strings("visited", res.Visited),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Error("simulate", zap.Error(err))
		os.Exit(1)
	}
}
