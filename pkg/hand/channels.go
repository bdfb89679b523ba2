// Package hand implements the control core for a 6-servo robotic hand:
// command translation, per-channel safety limits, motion smoothing and the
// fixed-rate control loop that ties them to an actuator.
package hand

// NumChannels is the number of controlled degrees of freedom.
const NumChannels = 6

// Channel identifies one degree of freedom. The numeric value is the wire
// and actuator index.
type Channel int

const (
	Thumb Channel = iota
	Index
	Middle
	Ring
	Pinky
	Wrist
)

var channelNames = [NumChannels]string{"thumb", "index", "middle", "ring", "pinky", "wrist"}

func (c Channel) String() string {
	if c < 0 || c >= NumChannels {
		return "invalid"
	}
	return channelNames[c]
}

// Inverted reports whether the channel's physical motor direction is the
// mirror of its logical angle. The actuator for an inverted channel is
// driven with 180 minus the logical angle.
func (c Channel) Inverted() bool {
	return c == Thumb || c == Wrist
}

// AllChannels returns every channel in index order.
func AllChannels() []Channel {
	return []Channel{Thumb, Index, Middle, Ring, Pinky, Wrist}
}

// TargetVector holds one angle in degrees per channel, indexed by Channel.
type TargetVector [NumChannels]float64
