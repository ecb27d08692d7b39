package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"go.uber.org/zap"

	"github.com/milk9111/rollcube/input"
	"github.com/milk9111/rollcube/prefabs"
	"github.com/milk9111/rollcube/render"
	"github.com/milk9111/rollcube/session"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

type Game struct {
	log      *zap.Logger
	debug    bool
	paused   bool
	session  *session.Session
	input    *input.Keyboard
	renderer *render.Renderer
	watcher  *prefabs.Watcher
	quit     bool
	menu     *pauseMenu
	chimes   *Chimes

	lastRemaining int
}

func NewGame(log *zap.Logger, sess *session.Session, in *input.Keyboard, watcher *prefabs.Watcher, chimes *Chimes, debug bool) *Game {
	g := &Game{
		log:      log,
		debug:    debug,
		session:  sess,
		input:    in,
		renderer: render.NewRenderer(),
		watcher:  watcher,
		chimes:   chimes,
	}
	g.menu = NewPauseUI(g)
	return g
}

func (g *Game) Update() error {
	g.input.Update()
	if g.input.QuitPressed || g.quit {
		return ebiten.Termination
	}
	if g.input.PausePressed {
		g.paused = !g.paused
		if g.paused {
			s := g.session
			g.menu.Refresh(g.levelName(), s.Tracker().Total()-s.Tracker().Remaining(), s.Tracker().Total(), s.Sequencer().Depth())
		}
	}
	if g.paused {
		g.menu.ui.Update()
		return nil
	}

	if g.watcher != nil {
		if spec, ok := g.watcher.Latest(); ok {
			g.session.ApplySpec(spec)
		}
	}
	if g.input.RestartPressed {
		g.restart()
	}

	g.session.Update(1 / float64(ebiten.TPS()))
	g.playChimes()
	return nil
}

func (g *Game) playChimes() {
	remaining := g.session.Tracker().Remaining()
	if g.chimes != nil && remaining < g.lastRemaining {
		if remaining == 0 {
			g.chimes.Clear()
		} else {
			g.chimes.Press()
		}
	}
	g.lastRemaining = remaining
}

func (g *Game) restart() {
	if err := g.session.RestartLevel(); err != nil {
		g.log.Debug("restart ignored", zap.Error(err))
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	s := g.session
	g.renderer.Draw(screen, s.Scene().Objects(), s.Camera())

	hud := render.HUD{
		Level:     g.levelName(),
		Depth:     s.Sequencer().Depth(),
		Remaining: s.Tracker().Remaining(),
		Total:     s.Tracker().Total(),
		Phase:     s.Sequencer().Phase().String(),
		Debug:     g.debug,
		FPS:       ebiten.ActualFPS(),
	}
	g.renderer.DrawHUD(screen, hud)

	if g.debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("cam %.1f %.1f %.1f", s.Camera().Position.X, s.Camera().Position.Y, s.Camera().Position.Z), 12, baseHeight-24)
	}
	if g.paused {
		g.menu.ui.Draw(screen)
	}
}

func (g *Game) levelName() string {
	if lvl := g.session.Sequencer().Level(); lvl != nil {
		return lvl.Name
	}
	return ""
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
