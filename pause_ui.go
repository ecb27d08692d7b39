package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

var (
	menuPanelColor = color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200}
	menuButtonIdle = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255}
	menuButtonHot  = color.NRGBA{R: 0x3a, G: 0x7b, B: 0xd5, A: 255}
	menuTextColor  = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// pauseMenu is the overlay shown while the game is paused. The status line
// is refreshed every time the menu opens.
type pauseMenu struct {
	ui     *ebitenui.UI
	status *widget.Text
}

// NewPauseUI builds a centered pause menu from colored nine-slices, so no
// theme fonts need loading.
func NewPauseUI(g *Game) *pauseMenu {
	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	center := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	button := func(label string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{
				Idle:    imageui.NewNineSliceColor(menuButtonIdle),
				Hover:   imageui.NewNineSliceColor(menuButtonHot),
				Pressed: imageui.NewNineSliceColor(menuButtonHot),
			}),
			widget.ButtonOpts.Text(label, &face, &widget.ButtonTextColor{Idle: menuTextColor}),
			widget.ButtonOpts.TextPadding(&widget.Insets{Left: 16, Right: 16, Top: 6, Bottom: 6}),
			widget.ButtonOpts.WidgetOpts(center),
			widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) { onClick() }),
		)
	}

	title := widget.NewText(
		widget.TextOpts.Text("Paused", &face, menuTextColor),
		widget.TextOpts.WidgetOpts(center),
	)
	status := widget.NewText(
		widget.TextOpts.Text("", &face, menuTextColor),
		widget.TextOpts.WidgetOpts(center),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(imageui.NewNineSliceColor(menuPanelColor)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(baseWidth/3, baseHeight/3),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	panel.AddChild(title)
	panel.AddChild(status)
	panel.AddChild(button("Resume", func() { g.paused = false }))
	panel.AddChild(button("Restart level", func() {
		g.paused = false
		g.restart()
	}))
	panel.AddChild(button("Quit", func() { g.quit = true }))

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)

	return &pauseMenu{ui: &ebitenui.UI{Container: root}, status: status}
}

func (m *pauseMenu) Refresh(level string, pressed, total, cleared int) {
	m.status.Label = fmt.Sprintf("%s  buttons %d/%d  cleared %d", level, pressed, total, cleared)
}
