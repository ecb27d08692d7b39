package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRotateAroundTipsCubeForward(t *testing.T) {
	center := CellCenter(GridPosition{X: 2, Y: 3})

	cases := []struct {
		name string
		dir  Direction
		axis Vec3
	}{
		{"up", DirUp, Vec3Right},
		{"down", DirDown, Vec3Left},
		{"right", DirRight, Vec3Back},
		{"left", DirLeft, Vec3Forward},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			pivot := center.Add(c.dir.Vector().Scale(HalfUnit)).Add(Vec3Down.Scale(HalfUnit))
			got := center.RotateAround(pivot, c.axis, 90)
			want := CellCenter(GridPosition{X: 2, Y: 3}.Neighbor(c.dir))
			require.True(t, got.Near(want, 1e-9), "got %v want %v", got, want)
		})
	}
}

func TestBasisSnapRemovesDrift(t *testing.T) {
	b := IdentityBasis
	for i := 0; i < 4; i++ {
		b = b.Rotate(Vec3Right, 90)
	}
	require.Equal(t, IdentityBasis, b.Snap())
}

func TestCellRoundTrip(t *testing.T) {
	for _, p := range []GridPosition{{0, 0}, {3, 7}, {10, 1}} {
		require.Equal(t, p, CellOf(CellCenter(p)))
	}
}

func TestParseDirection(t *testing.T) {
	for _, d := range []Direction{DirUp, DirDown, DirLeft, DirRight, DirBelow} {
		got, err := ParseDirection(d.String())
		require.NoError(t, err)
		require.Equal(t, d, got)
	}
	_, err := ParseDirection("sideways")
	require.Error(t, err)
}
