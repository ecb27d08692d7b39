package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"go.uber.org/zap"

	"github.com/milk9111/rollcube/input"
	"github.com/milk9111/rollcube/levels"
	"github.com/milk9111/rollcube/prefabs"
	"github.com/milk9111/rollcube/session"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug mode (verbose logs, prefab hot reload)")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	levelName := flag.String("level", "", "level name in levels/ (basename, .json optional) to play first")
	seed := flag.Uint64("seed", 0, "seed for transition delays (0 picks one per run)")
	flag.Parse()

	log := newLogger(*debug)
	defer log.Sync() //nolint:errcheck

	if err := run(log, *levelName, *seed, *debug, *baseMonitor); err != nil {
		log.Error("exit", zap.Error(err))
		os.Exit(1)
	}
}

func newLogger(debug bool) *zap.Logger {
	var (
		log *zap.Logger
		err error
	)
	if debug {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop()
	}
	return log
}

func run(log *zap.Logger, levelName string, seed uint64, debug, baseMonitor bool) error {
	descs, err := levels.LoadAll(context.Background())
	if err != nil {
		return err
	}
	spec, err := prefabs.LoadGameSpec()
	if err != nil {
		return err
	}

	var watcher *prefabs.Watcher
	if debug {
		watcher, err = prefabs.NewWatcher(log, prefabs.Dir, filepath.Join(prefabs.Dir, "scripts"))
		if err != nil {
			// running outside the source tree; keep the embedded prefabs
			log.Warn("prefab hot reload disabled", zap.Error(err))
			watcher = nil
		} else {
			defer watcher.Close()
		}
	}

	keyboard := input.NewKeyboard()
	sess, err := session.New(session.Options{
		Spec:       spec,
		Levels:     descs,
		StartLevel: trimJSON(levelName),
		Seed:       seed,
		Input:      keyboard,
		Log:        log,
	})
	if err != nil {
		return err
	}
	if err := sess.Start(); err != nil {
		return err
	}

	if baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("rollcube")

	chimes := NewChimes(audio.NewContext(sampleRate))
	return ebiten.RunGame(NewGame(log, sess, keyboard, watcher, chimes, debug))
}

func trimJSON(name string) string {
	if name == "" {
		return ""
	}
	return filepath.Base(name[:len(name)-len(filepath.Ext(name))])
}
