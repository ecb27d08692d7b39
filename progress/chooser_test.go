package progress

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/milk9111/rollcube/levels"
)

func fixtures(difficulty ...int) []*levels.Descriptor {
	out := make([]*levels.Descriptor, len(difficulty))
	for i, d := range difficulty {
		out[i] = &levels.Descriptor{Name: string(rune('a' + i)), Difficulty: d}
	}
	return out
}

func names(t *testing.T, c interface {
	ChooseNextLevel(int) (*levels.Descriptor, error)
}, depths int) string {
	t.Helper()
	out := ""
	for d := 0; d < depths; d++ {
		lvl, err := c.ChooseNextLevel(d)
		require.NoError(t, err)
		out += lvl.Name
	}
	return out
}

func TestStaticChooser(t *testing.T) {
	lv := fixtures(1, 2, 3)
	require.Equal(t, "aaaa", names(t, StaticChooser{Levels: lv}, 4))
	require.Equal(t, "ccc", names(t, StaticChooser{Levels: lv, Index: 9}, 3))

	_, err := StaticChooser{}.ChooseNextLevel(0)
	require.ErrorIs(t, err, ErrNoLevels)
}

func TestCycleChooser(t *testing.T) {
	lv := fixtures(1, 2, 3)
	require.Equal(t, "abcab", names(t, CycleChooser{Levels: lv}, 5))
	require.Equal(t, "cabc", names(t, CycleChooser{Levels: lv, Offset: -1}, 4))

	_, err := CycleChooser{}.ChooseNextLevel(0)
	require.ErrorIs(t, err, ErrNoLevels)
}

func TestScriptChooserEmbedded(t *testing.T) {
	lv := fixtures(1, 3, 2, 3)
	c, err := NewScriptChooser("select_level.tengo", lv)
	require.NoError(t, err)

	// authored order first, then the hardest levels in turn
	require.Equal(t, "abcdbdbd", names(t, c, 8))
}

func TestScriptChooserRejectsBadIndex(t *testing.T) {
	c, err := newScriptChooser("inline", []byte("next := depth * 10"), fixtures(1, 1))
	require.NoError(t, err)

	lvl, err := c.ChooseNextLevel(0)
	require.NoError(t, err)
	require.Equal(t, "a", lvl.Name)

	_, err = c.ChooseNextLevel(1)
	require.ErrorIs(t, err, ErrChoiceInvalid)
}

func TestScriptChooserCompileErrors(t *testing.T) {
	_, err := newScriptChooser("broken", []byte("next := ("), fixtures(1))
	require.Error(t, err)

	_, err = newScriptChooser("silent", []byte("x := 1"), fixtures(1))
	require.Error(t, err)

	_, err = NewScriptChooser("select_level.tengo", nil)
	require.ErrorIs(t, err, ErrNoLevels)
}

func TestScriptChooserImports(t *testing.T) {
	c, err := newScriptChooser("math", []byte(`math := import("math")
next := int(math.min(depth, count - 1))`), fixtures(1, 2))
	require.NoError(t, err)
	require.Equal(t, "ab", names(t, c, 2))

	_, err = newScriptChooser("os", []byte(`os := import("os")
next := 0`), fixtures(1))
	require.Error(t, err)
}
