package levels

import (
	"errors"
	"fmt"

	"github.com/milk9111/rollcube/common"
)

var (
	ErrNoSpawn        = errors.New("levels: level has no spawn cell")
	ErrMultipleSpawns = errors.New("levels: level has more than one spawn cell")
	ErrBadDimensions  = errors.New("levels: rows do not match width and height")
	ErrUnknownTile    = errors.New("levels: unknown tile")
	ErrButtonCount    = errors.New("levels: num_buttons exceeds buttons on the board")
)

// Tile characters used in Level.Rows.
const (
	TileVoid   = ' '
	TileFloor  = '.'
	TileWall   = '#'
	TileButton = 'B'
	TileSpawn  = 'S'
)

// Descriptor is a level resolved into typed cell groups. It is read-only once
// built.
type Descriptor struct {
	Name       string
	Difficulty int
	Width      int
	Height     int
	Spawn      common.GridPosition
	Objectives int

	Floor   []common.GridPosition
	Walls   []common.GridPosition
	Buttons []common.GridPosition
}

// Resolve validates a raw level and splits its rows into cell groups. Every
// non-void tile has floor under it.
func Resolve(lvl *Level) (*Descriptor, error) {
	if lvl == nil {
		return nil, errors.New("levels: nil level")
	}
	if lvl.Height != len(lvl.Rows) || lvl.Width <= 0 || lvl.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d with %d rows", ErrBadDimensions, lvl.Width, lvl.Height, len(lvl.Rows))
	}

	d := &Descriptor{
		Name:       lvl.Name,
		Difficulty: lvl.Difficulty,
		Width:      lvl.Width,
		Height:     lvl.Height,
	}
	spawns := 0
	for y, row := range lvl.Rows {
		if len(row) > lvl.Width {
			return nil, fmt.Errorf("%w: row %d is %d wide", ErrBadDimensions, y, len(row))
		}
		for x := 0; x < len(row); x++ {
			cell := common.GridPosition{X: x, Y: y}
			switch row[x] {
			case TileVoid:
				continue
			case TileFloor:
			case TileWall:
				d.Walls = append(d.Walls, cell)
			case TileButton:
				d.Buttons = append(d.Buttons, cell)
			case TileSpawn:
				d.Spawn = cell
				spawns++
			default:
				return nil, fmt.Errorf("%w %q at %s", ErrUnknownTile, row[x], cell)
			}
			d.Floor = append(d.Floor, cell)
		}
	}

	switch {
	case spawns == 0:
		return nil, ErrNoSpawn
	case spawns > 1:
		return nil, ErrMultipleSpawns
	}

	d.Objectives = len(d.Buttons)
	if lvl.NumButtons != nil {
		if *lvl.NumButtons < 0 || *lvl.NumButtons > len(d.Buttons) {
			return nil, fmt.Errorf("%w: %d > %d", ErrButtonCount, *lvl.NumButtons, len(d.Buttons))
		}
		d.Objectives = *lvl.NumButtons
	}
	return d, nil
}

// CellCount returns the number of objects the level instantiates.
func (d *Descriptor) CellCount() int {
	return len(d.Floor) + len(d.Walls) + len(d.Buttons)
}

// Find returns the descriptor with the given name.
func Find(descs []*Descriptor, name string) (*Descriptor, int, bool) {
	for i, d := range descs {
		if d.Name == name {
			return d, i, true
		}
	}
	return nil, -1, false
}
