package hand

// Limit is the allowed angle range for one channel, in degrees.
type Limit struct {
	Min float64
	Max float64
}

// Clamp forces deg into the limit's range. Out-of-range targets are
// clamped rather than rejected: upstream producers (vision and LLM
// pipelines) are untrusted, and the hand must stay safe instead of halting.
func (l Limit) Clamp(deg float64) float64 {
	if deg < l.Min {
		return l.Min
	}
	if deg > l.Max {
		return l.Max
	}
	return deg
}

// Limits holds the per-channel angle bounds, indexed by Channel.
type Limits [NumChannels]Limit

// DefaultLimits returns the mechanical angle bounds of the hand. The ring
// finger linkage bottoms out at 25 degrees.
func DefaultLimits() Limits {
	return Limits{
		Thumb:  {0, 180},
		Index:  {0, 180},
		Middle: {0, 180},
		Ring:   {25, 180},
		Pinky:  {0, 180},
		Wrist:  {0, 180},
	}
}

// Clamp returns v with every channel forced into its bounds.
func (ls Limits) Clamp(v TargetVector) TargetVector {
	for i := range v {
		v[i] = ls[i].Clamp(v[i])
	}
	return v
}
