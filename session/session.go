package session

import (
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/milk9111/rollcube/common"
	"github.com/milk9111/rollcube/ecs"
	"github.com/milk9111/rollcube/levels"
	"github.com/milk9111/rollcube/movement"
	"github.com/milk9111/rollcube/physics"
	"github.com/milk9111/rollcube/prefabs"
	"github.com/milk9111/rollcube/progress"
	"github.com/milk9111/rollcube/scene"
	"github.com/milk9111/rollcube/transition"
	"github.com/milk9111/rollcube/tween"
)

var ErrUnknownLevel = errors.New("session: unknown level")

type Options struct {
	Spec   *prefabs.GameSpec
	Levels []*levels.Descriptor
	// StartLevel, if set, is played first regardless of the chooser.
	StartLevel string
	// Seed drives transition delays. Zero picks one from the session ID.
	Seed  uint64
	Input movement.Input
	Log   *zap.Logger
}

// Session owns every gameplay component and advances them in a fixed order
// once per tick.
type Session struct {
	id  uuid.UUID
	log *zap.Logger

	world      *ecs.World
	scene      *scene.Scene
	tweens     *tween.Tweener
	field      *movement.ObstacleField
	physics    *physics.World
	controller *movement.Controller
	sequencer  *transition.Sequencer
	tracker    *progress.Tracker
	camera     movement.Camera

	all        []*levels.Descriptor
	levels     []*levels.Descriptor
	startLevel string
	nextSpeed  float64
}

func New(opts Options) (*Session, error) {
	if opts.Spec == nil {
		def := prefabs.DefaultGameSpec()
		opts.Spec = &def
	}
	if err := opts.Spec.Validate(); err != nil {
		return nil, err
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}

	order, err := orderLevels(opts.Levels, opts.Spec.Levels.Order)
	if err != nil {
		return nil, err
	}
	if len(order) == 0 {
		return nil, progress.ErrNoLevels
	}
	if opts.StartLevel != "" {
		if _, _, ok := levels.Find(opts.Levels, opts.StartLevel); !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownLevel, opts.StartLevel)
		}
	}

	id := uuid.New()
	seed := opts.Seed
	if seed == 0 {
		seed = xxhash.Sum64String(id.String())
	}

	s := &Session{
		id:         id,
		log:        opts.Log.With(zap.String("session", id.String())),
		world:      ecs.NewWorld(),
		field:      &movement.ObstacleField{},
		all:        opts.Levels,
		levels:     order,
		startLevel: opts.StartLevel,
	}
	s.scene = scene.New(s.world)
	s.tweens = tween.New(s.world)
	s.physics = physics.NewWorld(physicsConfig(opts.Spec), s.log, s.world, s.field)
	s.scene.AddListener(s.physics)

	s.controller = movement.NewController(movement.Config{Speed: opts.Spec.Movement.Speed}, s.field, s.physics)
	s.controller.SetPoseSink(s.scene)
	s.controller.SetInput(opts.Input)

	chooser, err := newChooser(opts.Spec.Levels, order)
	if err != nil {
		return nil, err
	}
	s.sequencer = transition.New(transitionConfig(opts.Spec, seed), s.log, s.scene, s.tweens, s.controller, &s.camera, chooser)
	s.tracker = progress.NewTracker(s.log, s.levelComplete)
	s.sequencer.SetHooks(transition.Hooks{
		LevelStarting: s.levelStarting,
		LevelReady:    func(*levels.Descriptor) { s.tracker.LevelReady() },
	})
	return s, nil
}

// Start sets up the first level.
func (s *Session) Start() error {
	s.log.Info("session start", zap.Int("levels", len(s.levels)))
	if s.startLevel == "" {
		return s.sequencer.Start()
	}
	// the start level may be outside the configured order
	desc, _, ok := levels.Find(s.all, s.startLevel)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownLevel, s.startLevel)
	}
	return s.sequencer.SetupLevel(desc)
}

// Update runs one tick: collision scan, movement, tweens, transitions and
// then the events raised during the tick, in order.
func (s *Session) Update(dt float64) {
	s.physics.Sync(dt)
	s.controller.Tick(dt)
	s.tweens.Update(dt)
	s.sequencer.Update(dt)

	for _, ev := range s.world.Events().Drain() {
		switch ev.Kind {
		case ecs.EventObjectiveActivated:
			if s.scene.Activate(ev.Entity) {
				s.tracker.OnObjectiveActivated()
			}
		case ecs.EventAvatarFellOut:
			s.log.Info("restarting after fall", zap.Stringer("cell", ev.Cell))
			if err := s.sequencer.RestartLevel(); err != nil {
				s.log.Warn("restart", zap.Error(err))
			}
		case ecs.EventAvatarLanded:
			s.controller.Land()
		}
	}
}

// RestartLevel replays the current level. It fails unless the level is
// active.
func (s *Session) RestartLevel() error {
	return s.sequencer.RestartLevel()
}

// ApplySpec queues new tunables. They take effect when the next level
// starts so a running roll or phase keeps its timing.
func (s *Session) ApplySpec(spec *prefabs.GameSpec) {
	if spec == nil {
		return
	}
	s.sequencer.SetConfig(transitionConfig(spec, s.sequencer.Config().Seed))
	s.physics.SetConfig(physicsConfig(spec))
	s.nextSpeed = spec.Movement.Speed
	s.log.Info("spec queued", zap.Float64("speed", spec.Movement.Speed))
}

func (s *Session) levelStarting(desc *levels.Descriptor) {
	if s.nextSpeed > 0 {
		s.controller.SetSpeed(s.nextSpeed)
		s.nextSpeed = 0
	}
	s.tracker.Reset(desc.Objectives)
}

func (s *Session) levelComplete() {
	if err := s.sequencer.TeardownLevel(); err != nil {
		s.log.Warn("teardown", zap.Error(err))
	}
}

func (s *Session) ID() uuid.UUID                    { return s.id }
func (s *Session) Scene() *scene.Scene              { return s.scene }
func (s *Session) Controller() *movement.Controller { return s.controller }
func (s *Session) Sequencer() *transition.Sequencer { return s.sequencer }
func (s *Session) Tracker() *progress.Tracker       { return s.tracker }
func (s *Session) Camera() movement.Camera          { return s.camera }
func (s *Session) Levels() []*levels.Descriptor     { return s.levels }

func orderLevels(all []*levels.Descriptor, order []string) ([]*levels.Descriptor, error) {
	if len(order) == 0 {
		return all, nil
	}
	out := make([]*levels.Descriptor, 0, len(order))
	for _, name := range order {
		d, _, ok := levels.Find(all, name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownLevel, name)
		}
		out = append(out, d)
	}
	return out, nil
}

func newChooser(spec prefabs.LevelsSpec, order []*levels.Descriptor) (transition.Chooser, error) {
	switch spec.Chooser {
	case "cycle":
		return progress.CycleChooser{Levels: order}, nil
	case "script":
		return progress.NewScriptChooser(spec.Script, order)
	}
	return progress.StaticChooser{Levels: order, Index: spec.Index}, nil
}

func transitionConfig(spec *prefabs.GameSpec, seed uint64) transition.Config {
	t := spec.Transition
	return transition.Config{
		MinDelay:          t.MinDelay,
		MaxDelay:          t.MaxDelay,
		Duration:          t.Duration,
		AvatarDuration:    t.AvatarDuration,
		Distance:          t.Distance,
		Settle:            t.Settle,
		CombineFloorWalls: t.CombineFloorWalls,
		CameraOffset:      vec(spec.Camera.Offset),
		CameraRotation:    vec(spec.Camera.Rotation),
		Seed:              seed,
	}
}

func physicsConfig(spec *prefabs.GameSpec) physics.Config {
	return physics.Config{Gravity: spec.World.Gravity, KillDepth: spec.World.KillDepth}
}

func vec(v prefabs.Vec3Spec) common.Vec3 {
	return common.Vec3{X: v.X, Y: v.Y, Z: v.Z}
}
