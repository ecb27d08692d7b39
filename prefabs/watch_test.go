package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWatcherDeliversSpecOnWrite(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(zap.NewNop(), dir)
	require.NoError(t, err)
	defer w.Close()

	// rename so the watcher sees one complete file
	staged := filepath.Join(t.TempDir(), "game.yaml")
	require.NoError(t, os.WriteFile(staged, []byte("movement:\n  speed: 3\n"), 0o644))
	require.NoError(t, os.Rename(staged, filepath.Join(dir, "game.yaml")))

	var got *GameSpec
	require.Eventually(t, func() bool {
		spec, ok := w.Latest()
		if ok {
			got = spec
		}
		return got != nil
	}, 2*time.Second, 10*time.Millisecond)
	require.Equal(t, 3.0, got.Movement.Speed)
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(zap.NewNop(), dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	time.Sleep(200 * time.Millisecond)
	_, ok := w.Latest()
	require.False(t, ok)
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	w, err := NewWatcher(zap.NewNop(), t.TempDir())
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}
