package transition

// State is the lifecycle state of the sequencer.
type State uint8

const (
	StateIdle State = iota
	StateSettingUp
	StateActive
	StateTearingDown
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSettingUp:
		return "setting_up"
	case StateActive:
		return "active"
	case StateTearingDown:
		return "tearing_down"
	}
	return "unknown"
}

// Phase is one timed stage of the level choreography.
type Phase uint8

const (
	PhaseNone Phase = iota
	PhaseFloorReveal
	PhaseWallsReveal
	PhaseInteractablesReveal
	PhaseAvatarReveal
	PhaseAvatarHide
	PhaseInteractablesHide
	PhaseWallsHide
	PhaseFloorHide
)

var phaseNames = [...]string{
	PhaseNone:                "none",
	PhaseFloorReveal:         "floor_reveal",
	PhaseWallsReveal:         "walls_reveal",
	PhaseInteractablesReveal: "interactables_reveal",
	PhaseAvatarReveal:        "avatar_reveal",
	PhaseAvatarHide:          "avatar_hide",
	PhaseInteractablesHide:   "interactables_hide",
	PhaseWallsHide:           "walls_hide",
	PhaseFloorHide:           "floor_hide",
}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

func setupPlan(combineFloorWalls bool) []Phase {
	if combineFloorWalls {
		return []Phase{PhaseFloorReveal, PhaseInteractablesReveal, PhaseAvatarReveal}
	}
	return []Phase{PhaseFloorReveal, PhaseWallsReveal, PhaseInteractablesReveal, PhaseAvatarReveal}
}

func teardownPlan(combineFloorWalls bool) []Phase {
	if combineFloorWalls {
		return []Phase{PhaseAvatarHide, PhaseInteractablesHide, PhaseFloorHide}
	}
	return []Phase{PhaseAvatarHide, PhaseInteractablesHide, PhaseWallsHide, PhaseFloorHide}
}
