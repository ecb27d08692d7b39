package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/milk9111/rollcube/common"
	"github.com/milk9111/rollcube/ecs/component"
	"github.com/milk9111/rollcube/session"
)

// termView draws a running session as text, one character pair per cell.
type termView struct {
	screen tcell.Screen
	delay  time.Duration
}

var (
	floorStyle  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	wallStyle   = tcell.StyleDefault.Foreground(tcell.ColorOlive).Bold(true)
	buttonStyle = tcell.StyleDefault.Foreground(tcell.ColorRed)
	litStyle    = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	avatarStyle = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
)

func newTermView(delay time.Duration) (*termView, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return &termView{screen: screen, delay: delay}, nil
}

// watchKeys cancels the run on Escape, q or Ctrl-C.
func (v *termView) watchKeys(cancel context.CancelFunc) {
	go func() {
		for {
			switch ev := v.screen.PollEvent().(type) {
			case nil:
				return
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
					cancel()
					return
				}
			}
		}
	}()
}

func (v *termView) Close() {
	v.screen.Fini()
}

// Frame redraws the session and sleeps so the run plays in real time.
func (v *termView) Frame(s *session.Session) {
	v.screen.Clear()

	header := fmt.Sprintf("%s  cleared %d  buttons %d/%d  %s",
		levelName(s), s.Sequencer().Depth(),
		s.Tracker().Total()-s.Tracker().Remaining(), s.Tracker().Total(),
		s.Sequencer().Phase())
	v.text(0, 0, header, tcell.StyleDefault)

	var avatar *common.GridPosition
	for _, o := range s.Scene().Objects() {
		if o.Alpha < 0.5 {
			continue
		}
		cell := common.CellOf(o.Center())
		switch o.Kind {
		case component.KindFloor:
			v.cell(cell, '.', floorStyle)
		case component.KindWall:
			v.cell(cell, '#', wallStyle)
		case component.KindButton:
			if o.Lit {
				v.cell(cell, 'O', litStyle)
			} else {
				v.cell(cell, 'o', buttonStyle)
			}
		case component.KindAvatar:
			avatar = &cell
		}
	}
	// drawn last so it sits on top of the floor it rests on
	if avatar != nil {
		v.cell(*avatar, '@', avatarStyle)
	}

	v.screen.Show()
	time.Sleep(v.delay)
}

func (v *termView) cell(p common.GridPosition, r rune, style tcell.Style) {
	x, y := p.X*2, p.Y+2
	w, h := v.screen.Size()
	if x < 0 || y < 2 || x >= w || y >= h {
		return
	}
	v.screen.SetContent(x, y, r, nil, style)
}

func (v *termView) text(x, y int, s string, style tcell.Style) {
	for i, r := range s {
		v.screen.SetContent(x+i, y, r, nil, style)
	}
}

func levelName(s *session.Session) string {
	if lvl := s.Sequencer().Level(); lvl != nil {
		return lvl.Name
	}
	return "-"
}
