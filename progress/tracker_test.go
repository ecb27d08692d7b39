package progress

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestTrackerCompletesOnLastObjective(t *testing.T) {
	for _, n := range []int{1, 3, 7} {
		completions := 0
		tr := NewTracker(zap.NewNop(), func() { completions++ })
		tr.Reset(n)
		tr.LevelReady()

		for i := 1; i < n; i++ {
			require.False(t, tr.OnObjectiveActivated())
		}
		require.Zero(t, completions, "no completion after %d of %d", n-1, n)
		require.Equal(t, 1, tr.Remaining())

		require.True(t, tr.OnObjectiveActivated())
		require.Equal(t, 1, completions)
		require.True(t, tr.Complete())

		require.False(t, tr.OnObjectiveActivated(), "extra activations are no-ops")
		require.Equal(t, 1, completions)
		require.Zero(t, tr.Remaining())
	}
}

func TestTrackerZeroObjectivesCompleteWhenReady(t *testing.T) {
	completions := 0
	tr := NewTracker(zap.NewNop(), func() { completions++ })
	tr.Reset(0)
	require.Zero(t, completions)

	tr.LevelReady()
	require.Equal(t, 1, completions)
	tr.LevelReady()
	require.Equal(t, 1, completions)
}

func TestTrackerWaitsForReady(t *testing.T) {
	completions := 0
	tr := NewTracker(zap.NewNop(), func() { completions++ })
	tr.Reset(1)
	require.False(t, tr.OnObjectiveActivated())
	require.Zero(t, completions)

	tr.LevelReady()
	require.Equal(t, 1, completions)
}

func TestTrackerResetRearms(t *testing.T) {
	completions := 0
	tr := NewTracker(zap.NewNop(), func() { completions++ })
	require.False(t, tr.OnObjectiveActivated(), "ignored before the first level")

	tr.Reset(1)
	tr.LevelReady()
	tr.OnObjectiveActivated()

	tr.Reset(2)
	tr.LevelReady()
	require.Equal(t, 2, tr.Remaining())
	require.Equal(t, 2, tr.Total())
	require.False(t, tr.Complete())
	tr.OnObjectiveActivated()
	tr.OnObjectiveActivated()
	require.Equal(t, 2, completions)
}
