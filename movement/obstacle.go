package movement

import "github.com/milk9111/rollcube/common"

// BodyKind classifies a body reported by the collision layer.
type BodyKind uint8

const (
	// BodySolid blocks movement.
	BodySolid BodyKind = iota
	// BodyPlayer is the avatar itself.
	BodyPlayer
	// BodyDetector is another sensing volume.
	BodyDetector
)

func (k BodyKind) String() string {
	switch k {
	case BodySolid:
		return "solid"
	case BodyPlayer:
		return "player"
	case BodyDetector:
		return "detector"
	}
	return "unknown"
}

// ObstacleField keeps one occupancy counter per sensed direction. Counters
// only move on enter/exit events, so IsBlocked never touches the physics
// world.
type ObstacleField struct {
	counts [common.NumDirections]int
}

// Enter records a body starting to overlap the sensor for d. Avatar and
// detector bodies are ignored.
func (f *ObstacleField) Enter(d common.Direction, kind BodyKind) {
	if !d.Valid() || kind != BodySolid {
		return
	}
	f.counts[d]++
}

// Exit records a body leaving the sensor for d. The counter never drops
// below zero.
func (f *ObstacleField) Exit(d common.Direction, kind BodyKind) {
	if !d.Valid() || kind != BodySolid {
		return
	}
	if f.counts[d] > 0 {
		f.counts[d]--
	}
}

func (f *ObstacleField) IsBlocked(d common.Direction) bool {
	return d.Valid() && f.counts[d] > 0
}

func (f *ObstacleField) Count(d common.Direction) int {
	if !d.Valid() {
		return 0
	}
	return f.counts[d]
}

// Reset clears every counter, used when the avatar is despawned.
func (f *ObstacleField) Reset() {
	f.counts = [common.NumDirections]int{}
}
