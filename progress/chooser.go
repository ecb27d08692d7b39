package progress

import (
	"errors"
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/milk9111/rollcube/levels"
	"github.com/milk9111/rollcube/prefabs"
)

var (
	ErrNoLevels      = errors.New("progress: no levels to choose from")
	ErrChoiceInvalid = errors.New("progress: chosen level index out of range")
)

// StaticChooser always returns the same level.
type StaticChooser struct {
	Levels []*levels.Descriptor
	Index  int
}

func (c StaticChooser) ChooseNextLevel(int) (*levels.Descriptor, error) {
	if len(c.Levels) == 0 {
		return nil, ErrNoLevels
	}
	i := min(max(c.Index, 0), len(c.Levels)-1)
	return c.Levels[i], nil
}

// CycleChooser walks the list by depth and wraps around.
type CycleChooser struct {
	Levels []*levels.Descriptor
	// Offset shifts the starting level.
	Offset int
}

func (c CycleChooser) ChooseNextLevel(depth int) (*levels.Descriptor, error) {
	n := len(c.Levels)
	if n == 0 {
		return nil, ErrNoLevels
	}
	i := ((depth+c.Offset)%n + n) % n
	return c.Levels[i], nil
}

// scriptModules are the stdlib modules a level-selection script may import.
var scriptModules = []string{"math", "rand"}

// ScriptChooser asks a tengo script for the next level. The script reads
// depth, count and difficulties and must set next to a level index.
type ScriptChooser struct {
	path     string
	levels   []*levels.Descriptor
	compiled *tengo.Compiled
}

func NewScriptChooser(path string, lvls []*levels.Descriptor) (*ScriptChooser, error) {
	if len(lvls) == 0 {
		return nil, ErrNoLevels
	}
	src, err := prefabs.LoadScript(path)
	if err != nil {
		return nil, fmt.Errorf("progress: load script %s: %w", path, err)
	}
	return newScriptChooser(path, src, lvls)
}

func newScriptChooser(path string, src []byte, lvls []*levels.Descriptor) (*ScriptChooser, error) {
	script := tengo.NewScript(src)
	_ = script.Add("depth", 0)
	_ = script.Add("count", len(lvls))
	_ = script.Add("difficulties", difficulties(lvls))
	script.SetImports(stdlib.GetModuleMap(scriptModules...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("progress: compile %s: %w", path, err)
	}
	// globals stay undefined until the script has run once
	if err := compiled.Run(); err != nil {
		return nil, fmt.Errorf("progress: run %s: %w", path, err)
	}
	if !compiled.IsDefined("next") {
		return nil, fmt.Errorf("progress: %s does not define next", path)
	}
	return &ScriptChooser{path: path, levels: lvls, compiled: compiled}, nil
}

func (c *ScriptChooser) ChooseNextLevel(depth int) (*levels.Descriptor, error) {
	if err := c.compiled.Set("depth", depth); err != nil {
		return nil, err
	}
	if err := c.compiled.Run(); err != nil {
		return nil, fmt.Errorf("progress: run %s: %w", c.path, err)
	}
	i := c.compiled.Get("next").Int()
	if i < 0 || i >= len(c.levels) {
		return nil, fmt.Errorf("%w: %d of %d", ErrChoiceInvalid, i, len(c.levels))
	}
	return c.levels[i], nil
}

func difficulties(lvls []*levels.Descriptor) []interface{} {
	out := make([]interface{}, len(lvls))
	for i, l := range lvls {
		out[i] = l.Difficulty
	}
	return out
}
