package render

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// HUD is the status line drawn over the scene.
type HUD struct {
	Level     string
	Depth     int
	Remaining int
	Total     int
	Phase     string
	Debug     bool
	FPS       float64
}

var hudFace ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)

func (r *Renderer) DrawHUD(screen *ebiten.Image, h HUD) {
	lines := []string{
		fmt.Sprintf("%s  (cleared %d)", h.Level, h.Depth),
		fmt.Sprintf("buttons %d/%d", h.Total-h.Remaining, h.Total),
	}
	if h.Debug {
		lines = append(lines, fmt.Sprintf("phase %s  fps %.1f", h.Phase, h.FPS))
	}

	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(12, 12)
	op.ColorScale.ScaleWithColor(color.White)
	op.LineSpacing = 16
	for _, l := range lines {
		ebtext.Draw(screen, l, hudFace, op)
		op.GeoM.Translate(0, op.LineSpacing)
	}
}
