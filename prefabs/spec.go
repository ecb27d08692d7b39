package prefabs

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// GameFile is the prefab holding every tunable of the game.
const GameFile = "game.yaml"

var ErrInvalidSpec = errors.New("prefabs: invalid spec")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type GameSpec struct {
	Movement   MovementSpec   `yaml:"movement"`
	Transition TransitionSpec `yaml:"transition"`
	Camera     CameraSpec     `yaml:"camera"`
	World      WorldSpec      `yaml:"world"`
	Levels     LevelsSpec     `yaml:"levels"`
}

type MovementSpec struct {
	// Speed is in cells per second.
	Speed float64 `yaml:"speed"`
}

// TransitionSpec times are in seconds.
type TransitionSpec struct {
	MinDelay          float64 `yaml:"min_delay"`
	MaxDelay          float64 `yaml:"max_delay"`
	Duration          float64 `yaml:"duration"`
	AvatarDuration    float64 `yaml:"avatar_duration"`
	Distance          float64 `yaml:"distance"`
	Settle            float64 `yaml:"settle"`
	CombineFloorWalls bool    `yaml:"combine_floor_walls"`
}

type Vec3Spec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

type CameraSpec struct {
	Offset   Vec3Spec `yaml:"offset"`
	Rotation Vec3Spec `yaml:"rotation"`
}

type WorldSpec struct {
	Gravity   float64 `yaml:"gravity"`
	KillDepth float64 `yaml:"kill_depth"`
}

type LevelsSpec struct {
	// Chooser is one of "static", "cycle" or "script".
	Chooser string   `yaml:"chooser"`
	Index   int      `yaml:"index"`
	Order   []string `yaml:"order"`
	Script  string   `yaml:"script"`
}

// DefaultGameSpec mirrors prefabs/game.yaml.
func DefaultGameSpec() GameSpec {
	return GameSpec{
		Movement: MovementSpec{Speed: 4},
		Transition: TransitionSpec{
			MinDelay:       0,
			MaxDelay:       0.6,
			Duration:       0.8,
			AvatarDuration: 0.6,
			Distance:       6,
			Settle:         0.5,
		},
		Camera: CameraSpec{
			Offset:   Vec3Spec{Y: 8, Z: -6},
			Rotation: Vec3Spec{X: 50},
		},
		World:  WorldSpec{Gravity: 9.8, KillDepth: -5},
		Levels: LevelsSpec{Chooser: "static"},
	}
}

// LoadGameSpec reads game.yaml from disk or the embedded copy.
func LoadGameSpec() (*GameSpec, error) {
	data, err := Load(GameFile)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load %s: %w", GameFile, err)
	}
	return DecodeGameSpec(data)
}

// DecodeGameSpec decodes over the defaults so a partial file is valid.
func DecodeGameSpec(data []byte) (*GameSpec, error) {
	spec := DefaultGameSpec()
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal %s: %w", GameFile, err)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

func (s *GameSpec) Validate() error {
	t := s.Transition
	switch {
	case s.Movement.Speed <= 0:
		return fmt.Errorf("%w: movement.speed must be positive", ErrInvalidSpec)
	case t.MinDelay < 0 || t.MaxDelay < t.MinDelay:
		return fmt.Errorf("%w: transition delays must satisfy 0 <= min_delay <= max_delay", ErrInvalidSpec)
	case t.Duration < 0 || t.AvatarDuration < 0 || t.Settle < 0:
		return fmt.Errorf("%w: transition durations must not be negative", ErrInvalidSpec)
	case s.World.KillDepth >= 0:
		return fmt.Errorf("%w: world.kill_depth must be below the floor", ErrInvalidSpec)
	}
	switch s.Levels.Chooser {
	case "static", "cycle":
	case "script":
		if s.Levels.Script == "" {
			return fmt.Errorf("%w: levels.script is required for the script chooser", ErrInvalidSpec)
		}
	default:
		return fmt.Errorf("%w: unknown levels.chooser %q", ErrInvalidSpec, s.Levels.Chooser)
	}
	return nil
}
