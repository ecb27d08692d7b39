package common

import (
	"fmt"
	"math"
)

// HalfUnit is half the edge of a grid cell and of the avatar cube.
const HalfUnit = 0.5

// GridPosition is a logical cell coordinate.
type GridPosition struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

func (p GridPosition) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Neighbor returns the cell one step in d.
func (p GridPosition) Neighbor(d Direction) GridPosition {
	dx, dy := d.Step()
	return GridPosition{X: p.X + dx, Y: p.Y + dy}
}

// CellCenter returns the resting centre of a unit cube standing on cell p.
func CellCenter(p GridPosition) Vec3 {
	return Vec3{
		X: float64(p.X) + HalfUnit,
		Y: HalfUnit,
		Z: -(float64(p.Y) + HalfUnit),
	}
}

// CellOf returns the cell whose column contains the world point v.
func CellOf(v Vec3) GridPosition {
	return GridPosition{
		X: int(math.Floor(v.X)),
		Y: int(math.Floor(-v.Z)),
	}
}
