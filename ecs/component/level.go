package component

import "github.com/milk9111/rollcube/common"

// Group is one layer of level geometry, revealed in declaration order.
type Group uint8

const (
	GroupFloor Group = iota
	GroupWalls
	GroupInteractables
	NumGroups
)

func (g Group) String() string {
	switch g {
	case GroupFloor:
		return "floor"
	case GroupWalls:
		return "walls"
	case GroupInteractables:
		return "interactables"
	}
	return "unknown"
}

// LevelRoot sits on the entity returned when a level is instantiated and
// lists its children per group, resolved once at instantiate time.
type LevelRoot struct {
	Name   string
	Origin common.Vec3
	Groups [NumGroups][]uint64
}

var LevelRootComponent = NewComponent[LevelRoot]()

// LevelMember links a child object back to its level root.
type LevelMember struct {
	Root  uint64
	Group Group
}

var LevelMemberComponent = NewComponent[LevelMember]()

// Objective marks an activatable button.
type Objective struct {
	Cell      common.GridPosition
	Activated bool
}

var ObjectiveComponent = NewComponent[Objective]()

type AvatarTag struct{}

var AvatarTagComponent = NewComponent[AvatarTag]()
