package render

import (
	"cmp"
	"image/color"
	"math"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/rollcube/common"
	"github.com/milk9111/rollcube/ecs/component"
	"github.com/milk9111/rollcube/movement"
	"github.com/milk9111/rollcube/scene"
)

// DefaultScale is how many pixels one world unit spans.
const DefaultScale = 64

var (
	floorColor    = color.NRGBA{R: 0x9a, G: 0x9a, B: 0xa4, A: 0xff}
	wallColor     = color.NRGBA{R: 0x6b, G: 0x4f, B: 0x3a, A: 0xff}
	buttonColor   = color.NRGBA{R: 0xd0, G: 0x40, B: 0x40, A: 0xff}
	litColor      = color.NRGBA{R: 0x40, G: 0xd0, B: 0x60, A: 0xff}
	avatarColor   = color.NRGBA{R: 0x3a, G: 0x7b, B: 0xd5, A: 0xff}
	markerColor   = color.NRGBAModel.Convert(colornames.Whitesmoke).(color.NRGBA)
	backdropColor = color.NRGBA{R: 0x14, G: 0x16, B: 0x1c, A: 0xff}
)

// Renderer draws the scene as axis-aligned boxes seen from the camera's
// pitch. Only the pitch of the camera rotation is honoured.
type Renderer struct {
	Scale float64
}

func NewRenderer() *Renderer {
	return &Renderer{Scale: DefaultScale}
}

type view struct {
	focus    common.Vec3
	cx, cy   float64
	scale    float64
	sin, cos float64
}

func (r *Renderer) view(screen *ebiten.Image, cam movement.Camera) view {
	pitch := cam.Rotation.X
	if pitch <= 0 || pitch > 90 {
		pitch = 90
	}
	rad := pitch * math.Pi / 180
	sin, cos := math.Sincos(rad)

	// ground point the camera looks at
	focus := cam.Position.Horizontal(0)
	if sin < 1 {
		focus.Z += cam.Position.Y * cos / sin
	}
	b := screen.Bounds()
	return view{
		focus: focus,
		cx:    float64(b.Dx()) / 2,
		cy:    float64(b.Dy()) / 2,
		scale: r.Scale,
		sin:   sin,
		cos:   cos,
	}
}

func (v view) project(p common.Vec3) (float32, float32) {
	d := p.Sub(v.focus)
	x := v.cx + d.X*v.scale
	y := v.cy - (d.Y*v.cos+d.Z*v.sin)*v.scale
	return float32(x), float32(y)
}

// Draw paints every object far to near.
func (r *Renderer) Draw(screen *ebiten.Image, objs []scene.Object, cam movement.Camera) {
	screen.Fill(backdropColor)
	v := r.view(screen, cam)

	slices.SortStableFunc(objs, func(a, b scene.Object) int {
		ca, cb := a.Center(), b.Center()
		if c := cmp.Compare(cb.Z, ca.Z); c != 0 {
			return c
		}
		return cmp.Compare(ca.Y, cb.Y)
	})

	for _, o := range objs {
		if o.Alpha <= 0 {
			continue
		}
		r.drawBox(screen, v, o)
		if o.Kind == component.KindAvatar {
			r.drawMarker(screen, v, o)
		}
	}
}

func (r *Renderer) drawBox(screen *ebiten.Image, v view, o scene.Object) {
	size := o.Size
	if size == (common.Vec3{}) {
		size = common.Vec3{X: 1, Y: 1, Z: 1}
	}
	h := size.Scale(0.5)
	c := o.Center()
	top := fade(colorOf(o.Appearance), o.Alpha)
	front := shade(top, 0.7)

	x0, yFar := v.project(common.Vec3{X: c.X - h.X, Y: c.Y + h.Y, Z: c.Z + h.Z})
	x1, yNear := v.project(common.Vec3{X: c.X + h.X, Y: c.Y + h.Y, Z: c.Z - h.Z})
	_, yBottom := v.project(common.Vec3{X: c.X, Y: c.Y - h.Y, Z: c.Z - h.Z})

	vector.FillRect(screen, x0, yNear, x1-x0, yBottom-yNear, front, false)
	vector.FillRect(screen, x0, yFar, x1-x0, yNear-yFar, top, false)
	vector.StrokeRect(screen, x0, yFar, x1-x0, yBottom-yFar, 1, shade(top, 0.4), false)
}

// drawMarker shows which face of the cube started on top.
func (r *Renderer) drawMarker(screen *ebiten.Image, v view, o scene.Object) {
	c := o.Center()
	tip := c.Add(o.Orientation.Up.Scale(common.HalfUnit))
	x0, y0 := v.project(c)
	x1, y1 := v.project(tip)
	vector.StrokeLine(screen, x0, y0, x1, y1, 3, fade(markerColor, o.Alpha), true)
}

func colorOf(a component.Appearance) color.NRGBA {
	switch a.Kind {
	case component.KindWall:
		return wallColor
	case component.KindButton:
		if a.Lit {
			return litColor
		}
		return buttonColor
	case component.KindAvatar:
		return avatarColor
	}
	return floorColor
}

func fade(c color.NRGBA, alpha float64) color.NRGBA {
	c.A = uint8(float64(c.A) * common.Clamp(alpha, 0, 1))
	return c
}

func shade(c color.NRGBA, k float64) color.NRGBA {
	c.R = uint8(float64(c.R) * k)
	c.G = uint8(float64(c.G) * k)
	c.B = uint8(float64(c.B) * k)
	return c
}
