package levels

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/milk9111/rollcube/common"
)

func TestResolve(t *testing.T) {
	three := 3
	cases := []struct {
		name    string
		level   Level
		wantErr error
		check   func(t *testing.T, d *Descriptor)
	}{
		{
			name: "groups",
			level: Level{Name: "g", Width: 3, Height: 2, Rows: []string{
				".#B",
				"S. ",
			}},
			check: func(t *testing.T, d *Descriptor) {
				require.Equal(t, common.GridPosition{X: 0, Y: 1}, d.Spawn)
				require.Len(t, d.Floor, 5)
				require.Equal(t, []common.GridPosition{{X: 1, Y: 0}}, d.Walls)
				require.Equal(t, []common.GridPosition{{X: 2, Y: 0}}, d.Buttons)
				require.Equal(t, 1, d.Objectives)
				require.Equal(t, 7, d.CellCount())
			},
		},
		{
			name:  "explicit_button_count",
			level: Level{Width: 4, Height: 1, Rows: []string{"SBBB"}, NumButtons: &three},
			check: func(t *testing.T, d *Descriptor) {
				require.Equal(t, 3, d.Objectives)
			},
		},
		{
			name:  "zero_objectives",
			level: Level{Width: 2, Height: 1, Rows: []string{"S."}},
			check: func(t *testing.T, d *Descriptor) {
				require.Zero(t, d.Objectives)
			},
		},
		{name: "no_spawn", level: Level{Width: 1, Height: 1, Rows: []string{"."}}, wantErr: ErrNoSpawn},
		{name: "two_spawns", level: Level{Width: 2, Height: 1, Rows: []string{"SS"}}, wantErr: ErrMultipleSpawns},
		{name: "row_mismatch", level: Level{Width: 2, Height: 2, Rows: []string{"S."}}, wantErr: ErrBadDimensions},
		{name: "row_too_wide", level: Level{Width: 1, Height: 1, Rows: []string{"S."}}, wantErr: ErrBadDimensions},
		{name: "unknown_tile", level: Level{Width: 2, Height: 1, Rows: []string{"Sx"}}, wantErr: ErrUnknownTile},
		{name: "too_many_buttons", level: Level{Width: 2, Height: 1, Rows: []string{"SB"}, NumButtons: &three}, wantErr: ErrButtonCount},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := Resolve(&tc.level)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			tc.check(t, d)
		})
	}
}

func TestLoadAllEmbedded(t *testing.T) {
	descs, err := LoadAll(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, descs)

	for i := 1; i < len(descs); i++ {
		require.Less(t, descs[i-1].Name, descs[i].Name)
	}

	d, _, ok := Find(descs, "level_02")
	require.True(t, ok)
	require.Equal(t, 3, d.Objectives)
}

func TestLoadAllReportsBadFile(t *testing.T) {
	fsys := fstest.MapFS{
		"a.json": {Data: []byte(`{"width":1,"height":1,"rows":["S"]}`)},
		"b.json": {Data: []byte(`{"width":1,"height":1,"rows":["."]}`)},
	}
	_, err := LoadAllFS(context.Background(), fsys)
	require.ErrorIs(t, err, ErrNoSpawn)
}

func TestLoadDefaultsNameFromFile(t *testing.T) {
	fsys := fstest.MapFS{"tiny.json": {Data: []byte(`{"width":1,"height":1,"rows":["S"]}`)}}
	descs, err := LoadAllFS(context.Background(), fsys)
	require.NoError(t, err)
	require.Equal(t, "tiny", descs[0].Name)
}
