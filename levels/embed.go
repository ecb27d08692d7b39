package levels

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

//go:embed *.json
var LevelsFS embed.FS

// Level is the on-disk level format. Rows are read top to bottom, so row 0
// is the far edge of the board and grid y grows toward the camera.
type Level struct {
	Name       string   `json:"name"`
	Difficulty int      `json:"difficulty"`
	Width      int      `json:"width"`
	Height     int      `json:"height"`
	Rows       []string `json:"rows"`
	NumButtons *int     `json:"num_buttons,omitempty"`
}

func LoadLevelFromFS(name string) (*Level, error) {
	return loadLevel(LevelsFS, name)
}

func loadLevel(fsys fs.FS, name string) (*Level, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level %s: %w", name, err)
	}
	if lvl.Name == "" {
		lvl.Name = strings.TrimSuffix(path.Base(name), path.Ext(name))
	}
	return &lvl, nil
}

// Load reads and resolves a single embedded level.
func Load(name string) (*Descriptor, error) {
	if path.Ext(name) == "" {
		name += ".json"
	}
	lvl, err := LoadLevelFromFS(name)
	if err != nil {
		return nil, err
	}
	return Resolve(lvl)
}

// LoadAll decodes every embedded level in parallel and returns them sorted
// by file name.
func LoadAll(ctx context.Context) ([]*Descriptor, error) {
	return LoadAllFS(ctx, LevelsFS)
}

func LoadAllFS(ctx context.Context, fsys fs.FS) ([]*Descriptor, error) {
	names, err := fs.Glob(fsys, "*.json")
	if err != nil {
		return nil, fmt.Errorf("list levels: %w", err)
	}
	sort.Strings(names)

	out := make([]*Descriptor, len(names))
	g, ctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			lvl, err := loadLevel(fsys, name)
			if err != nil {
				return err
			}
			desc, err := Resolve(lvl)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			out[i] = desc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
