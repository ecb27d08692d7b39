package prefabs

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const debounce = 100 * time.Millisecond

// Watcher reloads game.yaml when it or a script changes on disk. Each good
// reload is delivered on Specs; decode failures are logged and the previous
// spec stays in effect.
type Watcher struct {
	watcher *fsnotify.Watcher
	log     *zap.Logger
	Specs   chan *GameSpec
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

func NewWatcher(log *zap.Logger, dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		log:     log.Named("prefabs"),
		Specs:   make(chan *GameSpec, 1),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.Specs)
		close(w.Errors)
	})
	return err
}

// Latest returns the most recent reloaded spec without blocking.
func (w *Watcher) Latest() (*GameSpec, bool) {
	var spec *GameSpec
	for {
		select {
		case s, ok := <-w.Specs:
			if !ok {
				return spec, spec != nil
			}
			spec = s
		default:
			return spec, spec != nil
		}
	}
}

func (w *Watcher) run() {
	defer close(w.done)
	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !isSpecFile(event.Name) && !isScriptFile(event.Name) {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < debounce {
				continue
			}
			last[event.Name] = now
			w.reload(event.Name)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
				w.log.Warn("watch error dropped", zap.Error(err))
			}
		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) reload(changed string) {
	spec, err := loadGameSpecFrom(filepath.Dir(changed))
	if err != nil {
		w.log.Warn("reload failed", zap.String("file", changed), zap.Error(err))
		return
	}
	w.log.Info("reloaded", zap.String("file", changed))
	// keep only the newest spec buffered
	select {
	case <-w.Specs:
	default:
	}
	select {
	case w.Specs <- spec:
	case <-w.closeCh:
	}
}

// loadGameSpecFrom prefers a game.yaml next to the changed file and falls
// back to the regular lookup for script edits.
func loadGameSpecFrom(dir string) (*GameSpec, error) {
	data, err := os.ReadFile(filepath.Join(dir, GameFile))
	if err != nil {
		return LoadGameSpec()
	}
	return DecodeGameSpec(data)
}

func isSpecFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func isScriptFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".tengo"
}
