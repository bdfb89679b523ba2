package hand

import "time"

const (
	// TickPeriod is the control loop period: 40 Hz.
	TickPeriod = 25 * time.Millisecond

	// SmoothingAlpha is the exponential filter coefficient. At 40 Hz this
	// settles a step change to within ~95% in roughly 150 ms.
	SmoothingAlpha = 0.85
)

// Smoother owns the authoritative actual angle per channel and eases it
// toward the latest target once per tick. It holds no history beyond the
// previous actual value, and it never pauses: with no new target it keeps
// settling asymptotically on the last one.
type Smoother struct {
	alpha  float64
	actual TargetVector
}

// NewSmoother returns a smoother whose actual angles start at initial.
func NewSmoother(initial TargetVector) *Smoother {
	return &Smoother{alpha: SmoothingAlpha, actual: initial}
}

// Step advances every channel one tick toward target and returns the new
// actual angles. As long as targets are pre-clamped, actual angles stay
// within the same bounds.
func (s *Smoother) Step(target TargetVector) TargetVector {
	for i := range s.actual {
		s.actual[i] = s.actual[i]*s.alpha + target[i]*(1-s.alpha)
	}
	return s.actual
}

// Actual returns the current actual angles.
func (s *Smoother) Actual() TargetVector {
	return s.actual
}

// Output returns the angle to hand the actuator for one channel: the
// mirror of the actual angle on inverted channels.
func Output(ch Channel, actual float64) float64 {
	if ch.Inverted() {
		return 180 - actual
	}
	return actual
}
