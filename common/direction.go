package common

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownDirection = errors.New("common: unknown direction")

// Direction is a movement or sensing direction on the grid.
type Direction uint8

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
	// DirBelow is only used for sensing the cell under the avatar.
	DirBelow
)

// NumDirections counts every sensed direction including DirBelow.
const NumDirections = 5

// Cardinals lists the movable directions in input priority order.
var Cardinals = [...]Direction{DirUp, DirDown, DirLeft, DirRight}

var directionNames = [NumDirections]string{"up", "down", "left", "right", "below"}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return fmt.Sprintf("direction(%d)", d)
}

func (d Direction) Valid() bool {
	return d < NumDirections
}

// Cardinal reports whether d is one of the four movable directions.
func (d Direction) Cardinal() bool {
	return d <= DirRight
}

// Vector returns the world-space unit vector for d.
func (d Direction) Vector() Vec3 {
	switch d {
	case DirUp:
		return Vec3Forward
	case DirDown:
		return Vec3Back
	case DirLeft:
		return Vec3Left
	case DirRight:
		return Vec3Right
	case DirBelow:
		return Vec3Down
	}
	return Vec3{}
}

// Step returns the grid delta for d. Rows grow downward, so Up is y-1.
func (d Direction) Step() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	}
	return 0, 0
}

// ParseDirection accepts the names produced by String and the u/d/l/r
// shorthands.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "u":
		return DirUp, nil
	case "down", "d":
		return DirDown, nil
	case "left", "l":
		return DirLeft, nil
	case "right", "r":
		return DirRight, nil
	case "below":
		return DirBelow, nil
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownDirection, s)
}
