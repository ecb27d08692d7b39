package component

import "github.com/milk9111/rollcube/common"

// Transform places a unit cube in the world. Base is owned by gameplay code
// (level layout, movement); Offset is owned by tweens. The drawn centre is
// Base + Offset.
type Transform struct {
	Base        common.Vec3
	Offset      common.Vec3
	Orientation common.Basis
	// Size is the box extent; zero means a unit cube.
	Size common.Vec3
}

func (t Transform) Center() common.Vec3 {
	return t.Base.Add(t.Offset)
}

var TransformComponent = NewComponent[Transform]()
