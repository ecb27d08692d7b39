package transition

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"

	"github.com/milk9111/rollcube/common"
	"github.com/milk9111/rollcube/ecs"
	"github.com/milk9111/rollcube/ecs/component"
	"github.com/milk9111/rollcube/levels"
	"github.com/milk9111/rollcube/movement"
)

var (
	// ErrBusy is returned when a setup is requested while another setup or
	// teardown is running or a level is active.
	ErrBusy = errors.New("transition: sequencer busy")
	// ErrNotActive is returned when a teardown is requested without an
	// active level.
	ErrNotActive = errors.New("transition: no active level")
	ErrNilLevel  = errors.New("transition: nil level")
)

// Scene creates and removes level geometry and the avatar.
type Scene interface {
	Instantiate(desc *levels.Descriptor, origin common.Vec3) ecs.Entity
	Destroy(root ecs.Entity)
	Group(root ecs.Entity, g component.Group) []ecs.Entity
	SpawnAvatar(cell common.GridPosition) ecs.Entity
	DespawnAvatar()
}

// Tweener runs fire-and-forget animations. Each call finishes after
// delay + duration seconds.
type Tweener interface {
	FadeFrom(e ecs.Entity, start, duration, delay float64, ease component.Ease)
	FadeTo(e ecs.Entity, alpha, duration, delay float64, ease component.Ease)
	MoveFrom(e ecs.Entity, offset common.Vec3, duration, delay float64, ease component.Ease)
	MoveBy(e ecs.Entity, delta common.Vec3, duration, delay float64, ease component.Ease)
}

// Avatar is the movement side of the avatar.
type Avatar interface {
	SetMoveEnabled(on bool)
	Place(cell common.GridPosition)
	LinkCamera(cam *movement.Camera)
}

// Chooser picks the level to play after depth levels were cleared.
type Chooser interface {
	ChooseNextLevel(depth int) (*levels.Descriptor, error)
}

// Hooks are optional callbacks. They run on the tick that caused them.
type Hooks struct {
	// LevelStarting runs when setup begins, before any object is animated.
	LevelStarting func(desc *levels.Descriptor)
	// LevelReady runs once movement has been enabled.
	LevelReady func(desc *levels.Descriptor)
	// LevelCleared runs after the level geometry is destroyed.
	LevelCleared func(desc *levels.Descriptor)
	PhaseStarted func(p Phase)
	PhaseEnded   func(p Phase)
}

type Config struct {
	MinDelay          float64
	MaxDelay          float64
	Duration          float64
	AvatarDuration    float64
	Distance          float64
	Settle            float64
	CombineFloorWalls bool

	CameraOffset   common.Vec3
	CameraRotation common.Vec3

	// Seed mixes with the level name to pick per-object delays.
	Seed uint64
}

// GroupWindow is how long a level group phase lasts.
func (c Config) GroupWindow() float64 {
	return c.Duration + c.MaxDelay + c.Settle
}

// AvatarWindow is how long an avatar phase lasts.
func (c Config) AvatarWindow() float64 {
	return c.AvatarDuration + c.Settle
}

// Sequencer runs level setup and teardown as a chain of timed phases. A
// phase starts only after the previous one has waited out its full window,
// and only one setup or teardown runs at a time.
type Sequencer struct {
	cfg     Config
	log     *zap.Logger
	scene   Scene
	tweens  Tweener
	avatar  Avatar
	chooser Chooser
	camera  *movement.Camera
	hooks   Hooks

	state   State
	plan    []Phase
	step    int
	elapsed float64
	wait    float64

	level   *levels.Descriptor
	root    ecs.Entity
	player  ecs.Entity
	depth   int
	repeat  bool
	rng     *rand.Rand
	pending *Config
}

func New(cfg Config, log *zap.Logger, scene Scene, tweens Tweener, avatar Avatar, camera *movement.Camera, chooser Chooser) *Sequencer {
	return &Sequencer{
		cfg:     cfg,
		log:     log.Named("transition"),
		scene:   scene,
		tweens:  tweens,
		avatar:  avatar,
		camera:  camera,
		chooser: chooser,
	}
}

func (s *Sequencer) SetHooks(h Hooks) {
	s.hooks = h
}

// SetConfig takes effect at the next level setup.
func (s *Sequencer) SetConfig(cfg Config) {
	s.pending = &cfg
}

func (s *Sequencer) Config() Config {
	return s.cfg
}

func (s *Sequencer) State() State {
	return s.state
}

// Phase returns the running phase, or PhaseNone.
func (s *Sequencer) Phase() Phase {
	if s.step >= len(s.plan) {
		return PhaseNone
	}
	return s.plan[s.step]
}

func (s *Sequencer) Level() *levels.Descriptor {
	return s.level
}

// Depth counts the levels cleared so far. Restarts do not count.
func (s *Sequencer) Depth() int {
	return s.depth
}

// Start asks the chooser for the first level and sets it up.
func (s *Sequencer) Start() error {
	desc, err := s.chooser.ChooseNextLevel(s.depth)
	if err != nil {
		return fmt.Errorf("transition: choose level %d: %w", s.depth, err)
	}
	return s.SetupLevel(desc)
}

// SetupLevel instantiates desc and begins the reveal phases.
func (s *Sequencer) SetupLevel(desc *levels.Descriptor) error {
	if s.state != StateIdle {
		s.log.Warn("setup rejected", zap.Stringer("state", s.state))
		return ErrBusy
	}
	if desc == nil {
		return ErrNilLevel
	}
	if s.pending != nil {
		s.cfg = *s.pending
		s.pending = nil
	}

	s.level = desc
	s.rng = rand.New(rand.NewPCG(s.cfg.Seed, xxhash.Sum64String(desc.Name)))
	s.state = StateSettingUp
	s.log.Info("level setup", zap.String("level", desc.Name), zap.Int("depth", s.depth), zap.Int("objectives", desc.Objectives))

	if s.camera != nil {
		s.camera.Position = common.CellCenter(desc.Spawn).Add(s.cfg.CameraOffset)
		s.camera.Rotation = s.cfg.CameraRotation
	}
	s.root = s.scene.Instantiate(desc, common.Vec3Zero)
	if s.hooks.LevelStarting != nil {
		s.hooks.LevelStarting(desc)
	}

	s.run(setupPlan(s.cfg.CombineFloorWalls))
	return nil
}

// TeardownLevel disables movement and begins the hide phases. When they
// finish the next level is chosen and set up.
func (s *Sequencer) TeardownLevel() error {
	if s.state != StateActive {
		s.log.Warn("teardown rejected", zap.Stringer("state", s.state))
		return ErrNotActive
	}
	s.avatar.SetMoveEnabled(false)
	s.state = StateTearingDown
	s.log.Info("level teardown", zap.String("level", s.level.Name), zap.Bool("repeat", s.repeat))
	s.run(teardownPlan(s.cfg.CombineFloorWalls))
	return nil
}

// RestartLevel tears the active level down and sets the same level up
// again without advancing depth.
func (s *Sequencer) RestartLevel() error {
	if s.state != StateActive {
		return ErrNotActive
	}
	s.repeat = true
	if err := s.TeardownLevel(); err != nil {
		s.repeat = false
		return err
	}
	return nil
}

// Update advances the running phase by dt. At most one phase ends per call.
func (s *Sequencer) Update(dt float64) {
	if s.state != StateSettingUp && s.state != StateTearingDown {
		return
	}
	s.elapsed += dt
	if s.elapsed < s.wait {
		return
	}

	p := s.plan[s.step]
	s.endPhase(p)
	if s.hooks.PhaseEnded != nil {
		s.hooks.PhaseEnded(p)
	}

	s.step++
	if s.step < len(s.plan) {
		s.beginPhase()
		return
	}
	if s.state == StateSettingUp {
		s.finishSetup()
	} else {
		s.finishTeardown()
	}
}

func (s *Sequencer) run(plan []Phase) {
	s.plan = plan
	s.step = 0
	s.beginPhase()
}

func (s *Sequencer) beginPhase() {
	p := s.plan[s.step]
	s.elapsed = 0
	lift := common.Vec3{Y: s.cfg.Distance}

	switch p {
	case PhaseFloorReveal:
		objs := s.scene.Group(s.root, component.GroupFloor)
		if s.cfg.CombineFloorWalls {
			objs = append(objs, s.scene.Group(s.root, component.GroupWalls)...)
		}
		s.revealGroup(objs, lift)
	case PhaseWallsReveal:
		s.revealGroup(s.scene.Group(s.root, component.GroupWalls), lift)
	case PhaseInteractablesReveal:
		s.revealGroup(s.scene.Group(s.root, component.GroupInteractables), lift)
	case PhaseAvatarReveal:
		s.player = s.scene.SpawnAvatar(s.level.Spawn)
		s.avatar.Place(s.level.Spawn)
		s.avatar.LinkCamera(s.camera)
		s.tweens.FadeFrom(s.player, 0, s.cfg.AvatarDuration, 0, component.EaseOutQuart)
		s.tweens.MoveFrom(s.player, lift, s.cfg.AvatarDuration, 0, component.EaseOutQuart)
		s.wait = s.cfg.AvatarWindow()
	case PhaseAvatarHide:
		s.tweens.FadeTo(s.player, 0, s.cfg.AvatarDuration, 0, component.EaseInQuart)
		s.tweens.MoveBy(s.player, lift, s.cfg.AvatarDuration, 0, component.EaseInQuart)
		s.wait = s.cfg.AvatarWindow()
	case PhaseInteractablesHide:
		s.hideGroup(s.scene.Group(s.root, component.GroupInteractables), lift)
	case PhaseWallsHide:
		s.hideGroup(s.scene.Group(s.root, component.GroupWalls), lift)
	case PhaseFloorHide:
		objs := s.scene.Group(s.root, component.GroupFloor)
		if s.cfg.CombineFloorWalls {
			objs = append(objs, s.scene.Group(s.root, component.GroupWalls)...)
		}
		s.hideGroup(objs, lift)
	}

	s.log.Debug("phase", zap.Stringer("phase", p), zap.Float64("wait", s.wait))
	if s.hooks.PhaseStarted != nil {
		s.hooks.PhaseStarted(p)
	}
}

// revealGroup drops every object in from above. Empty groups still wait the
// whole window.
func (s *Sequencer) revealGroup(objs []ecs.Entity, lift common.Vec3) {
	for _, e := range objs {
		delay := s.delay()
		s.tweens.FadeFrom(e, 0, s.cfg.Duration, delay, component.EaseOutQuart)
		s.tweens.MoveFrom(e, lift, s.cfg.Duration, delay, component.EaseOutQuart)
	}
	s.wait = s.cfg.GroupWindow()
}

func (s *Sequencer) hideGroup(objs []ecs.Entity, lift common.Vec3) {
	for _, e := range objs {
		delay := s.delay()
		s.tweens.FadeTo(e, 0, s.cfg.Duration, delay, component.EaseInQuart)
		s.tweens.MoveBy(e, lift, s.cfg.Duration, delay, component.EaseInQuart)
	}
	s.wait = s.cfg.GroupWindow()
}

func (s *Sequencer) delay() float64 {
	span := s.cfg.MaxDelay - s.cfg.MinDelay
	if span <= 0 {
		return s.cfg.MinDelay
	}
	return s.cfg.MinDelay + s.rng.Float64()*span
}

func (s *Sequencer) endPhase(p Phase) {
	if p == PhaseAvatarHide {
		s.scene.DespawnAvatar()
		s.player = 0
	}
}

func (s *Sequencer) finishSetup() {
	s.plan = nil
	s.step = 0
	s.state = StateActive
	s.avatar.SetMoveEnabled(true)
	s.log.Info("level ready", zap.String("level", s.level.Name))
	if s.hooks.LevelReady != nil {
		s.hooks.LevelReady(s.level)
	}
}

func (s *Sequencer) finishTeardown() {
	s.plan = nil
	s.step = 0
	s.scene.Destroy(s.root)
	s.root = 0
	s.state = StateIdle

	cleared := s.level
	repeat := s.repeat
	s.repeat = false
	if !repeat {
		s.depth++
	}
	s.log.Info("level cleared", zap.String("level", cleared.Name), zap.Int("depth", s.depth))
	if s.hooks.LevelCleared != nil {
		s.hooks.LevelCleared(cleared)
	}

	next := cleared
	if !repeat {
		var err error
		next, err = s.chooser.ChooseNextLevel(s.depth)
		if err != nil {
			s.log.Error("choose next level", zap.Int("depth", s.depth), zap.Error(err))
			return
		}
	}
	if err := s.SetupLevel(next); err != nil {
		s.log.Error("setup next level", zap.Error(err))
	}
}
