package movement

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/milk9111/rollcube/common"
)

func TestObstacleFieldCounts(t *testing.T) {
	for _, d := range []common.Direction{common.DirUp, common.DirDown, common.DirLeft, common.DirRight, common.DirBelow} {
		t.Run(d.String(), func(t *testing.T) {
			var f ObstacleField
			require.False(t, f.IsBlocked(d))

			const n = 4
			for i := 0; i < n; i++ {
				f.Enter(d, BodySolid)
				require.True(t, f.IsBlocked(d))
			}
			for i := 0; i < n-1; i++ {
				f.Exit(d, BodySolid)
				require.True(t, f.IsBlocked(d), "overlap %d still active", n-1-i)
			}
			f.Exit(d, BodySolid)
			require.False(t, f.IsBlocked(d))
		})
	}
}

func TestObstacleFieldSaturatesAtZero(t *testing.T) {
	var f ObstacleField
	f.Exit(common.DirLeft, BodySolid)
	f.Exit(common.DirLeft, BodySolid)
	require.Zero(t, f.Count(common.DirLeft))

	f.Enter(common.DirLeft, BodySolid)
	require.True(t, f.IsBlocked(common.DirLeft))
}

func TestObstacleFieldIgnoresSelf(t *testing.T) {
	var f ObstacleField
	f.Enter(common.DirUp, BodyPlayer)
	f.Enter(common.DirUp, BodyDetector)
	require.False(t, f.IsBlocked(common.DirUp))

	f.Enter(common.DirUp, BodySolid)
	f.Exit(common.DirUp, BodyDetector)
	require.True(t, f.IsBlocked(common.DirUp))
}

func TestObstacleFieldDirectionsIndependent(t *testing.T) {
	var f ObstacleField
	f.Enter(common.DirRight, BodySolid)
	require.True(t, f.IsBlocked(common.DirRight))
	require.False(t, f.IsBlocked(common.DirLeft))
	require.False(t, f.IsBlocked(common.Direction(99)))

	f.Reset()
	require.False(t, f.IsBlocked(common.DirRight))
}
