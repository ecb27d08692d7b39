package replay

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/milk9111/rollcube/common"
)

func TestParseScript(t *testing.T) {
	sc, err := ParseScript("R r, U d L", false)
	require.NoError(t, err)
	require.Equal(t, 5, sc.Len())

	want := []common.Direction{common.DirRight, common.DirRight, common.DirUp, common.DirDown, common.DirLeft}
	for _, d := range want {
		require.True(t, sc.Held(d))
		for _, other := range common.Cardinals {
			if other != d {
				require.False(t, sc.Held(other))
			}
		}
		sc.Accept()
	}
	require.True(t, sc.Done())
	require.False(t, sc.Held(common.DirLeft))
	sc.Accept()
	require.True(t, sc.Done())
}

func TestParseScriptRejectsUnknownMoves(t *testing.T) {
	for _, in := range []string{"RX", "below", "R?"} {
		_, err := ParseScript(in, false)
		require.ErrorIs(t, err, common.ErrUnknownDirection, in)
	}
}

func TestLoopingScript(t *testing.T) {
	sc, err := ParseScript("UD", true)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		require.True(t, sc.Held(common.DirUp))
		sc.Accept()
		require.True(t, sc.Held(common.DirDown))
		sc.Accept()
	}
	require.False(t, sc.Done())
	require.Equal(t, "|UD", sc.String())
}
