package fbui

import (
	"github.com/tanema/gween/ease"
)

// Interpolator names the easing curve an animation follows.
type Interpolator int

const (
	Linear Interpolator = iota
	Decelerate
	Accelerate
	Overshoot
	AccelerateDecelerate
)

var interpolatorNames = [...]string{"linear", "decelerate", "accelerate", "overshoot", "accelerate-decelerate"}

func (i Interpolator) String() string {
	if i < 0 || int(i) >= len(interpolatorNames) {
		return "unknown"
	}
	return interpolatorNames[i]
}

// Func returns the gween easing function backing the curve. Unknown values
// fall back to linear.
func (i Interpolator) Func() ease.TweenFunc {
	switch i {
	case Decelerate:
		return ease.OutQuad
	case Accelerate:
		return ease.InQuad
	case Overshoot:
		return ease.OutBack
	case AccelerateDecelerate:
		return ease.InOutSine
	default:
		return ease.Linear
	}
}

// Apply maps linear progress t in [0, 1] to eased progress. Overshoot may
// leave [0, 1] before settling on 1.
func (i Interpolator) Apply(t float64) float64 {
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	}
	return float64(i.Func()(float32(t), 0, 1, 1))
}
