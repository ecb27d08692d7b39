package component

import "github.com/milk9111/rollcube/common"

// TweenProperty selects what a tween drives.
type TweenProperty uint8

const (
	TweenAlpha TweenProperty = iota
	TweenOffset
)

// Ease names an easing curve.
type Ease uint8

const (
	EaseLinear Ease = iota
	EaseOutQuart
	EaseInQuart
	EaseInOutCubic
)

// Tween interpolates one property from From to To after Delay seconds,
// over Duration seconds. Alpha tweens use From.X/To.X.
type Tween struct {
	Property TweenProperty
	From     common.Vec3
	To       common.Vec3
	Delay    float64
	Duration float64
	Elapsed  float64
	Ease     Ease
}

// Done reports whether the tween has reached its end value.
func (t Tween) Done() bool {
	return t.Elapsed >= t.Delay+t.Duration
}

// Tweens holds the running tweens of one entity.
type Tweens struct {
	Active []Tween
}

var TweensComponent = NewComponent[Tweens]()
