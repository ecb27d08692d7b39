package tween

import (
	"math"

	"github.com/milk9111/rollcube/ecs/component"
)

// Apply maps linear progress t in [0,1] through the curve e.
func Apply(e component.Ease, t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	switch e {
	case component.EaseOutQuart:
		return 1 - math.Pow(1-t, 4)
	case component.EaseInQuart:
		return t * t * t * t
	case component.EaseInOutCubic:
		if t < 0.5 {
			return 4 * t * t * t
		}
		f := -2*t + 2
		return 1 - f*f*f/2
	}
	return t
}
