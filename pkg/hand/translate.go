package hand

import (
	"encoding/binary"
	"math"

	"github.com/akshayakula/myogen/pkg/wire"
)

// PulseRange maps the vendor protocol's raw 16-bit servo positions onto
// degrees for one channel. DegAtMin/DegAtMax pin the degree values at the
// raw extremes, so an inverted mapping just swaps them.
type PulseRange struct {
	RawMin   uint16
	RawMax   uint16
	DegAtMin float64
	DegAtMax float64
}

// ToDegrees converts a raw position to degrees. Raw values outside the
// declared range are clamped to it first; there is no extrapolation beyond
// the degree bounds.
func (r PulseRange) ToDegrees(raw uint16) float64 {
	if raw < r.RawMin {
		raw = r.RawMin
	}
	if raw > r.RawMax {
		raw = r.RawMax
	}
	t := float64(raw-r.RawMin) / float64(r.RawMax-r.RawMin)
	return r.DegAtMin + t*(r.DegAtMax-r.DegAtMin)
}

// FromDegrees converts degrees back to a raw position, clamped to the
// declared raw range.
func (r PulseRange) FromDegrees(deg float64) uint16 {
	lo, hi := r.DegAtMin, r.DegAtMax
	if lo > hi {
		lo, hi = hi, lo
	}
	if deg < lo {
		deg = lo
	}
	if deg > hi {
		deg = hi
	}
	t := (deg - r.DegAtMin) / (r.DegAtMax - r.DegAtMin)
	return r.RawMin + uint16(math.Round(t*float64(r.RawMax-r.RawMin)))
}

// VendorRanges returns the per-channel pulse calibration of the hand. The
// thumb runs inverted on the wire and the wrist servo has a wider pulse
// span than the finger servos.
func VendorRanges() [NumChannels]PulseRange {
	return [NumChannels]PulseRange{
		Thumb:  {1100, 1950, 180, 0},
		Index:  {1100, 1950, 0, 180},
		Middle: {1100, 1950, 0, 180},
		Ring:   {1100, 1950, 0, 180},
		Pinky:  {1100, 1950, 0, 180},
		Wrist:  {600, 2400, 0, 180},
	}
}

// Translate maps a decoded servo frame onto per-channel target angles.
// base supplies the angles for channels a vendor frame does not mention,
// since vendor servo-move frames may address any subset of servos. ok is
// false when the frame is not a well-formed servo command; such frames
// have no motion effect.
func Translate(f *wire.Frame, base TargetVector) (TargetVector, bool) {
	switch {
	case f.Protocol == wire.Simple && f.Func == wire.FuncSetServo:
		p := f.Payload()
		if len(p) < NumChannels {
			return base, false
		}
		// Payload bytes are already degrees, one per channel.
		var v TargetVector
		for i := 0; i < NumChannels; i++ {
			v[i] = float64(p[i])
		}
		return v, true

	case f.Protocol == wire.Vendor && f.Func == wire.CmdServoMove:
		// [num][time u16 LE][ID, position u16 LE] x num
		p := f.Payload()
		if len(p) < 3 {
			return base, false
		}
		n := int(p[0])
		if len(p) < 3+3*n {
			return base, false
		}
		ranges := VendorRanges()
		v := base
		for i := 0; i < n; i++ {
			id := p[3+3*i]
			if id < 1 || id > NumChannels {
				// Unknown servo IDs are ignored, not errors.
				continue
			}
			ch := Channel(id - 1)
			raw := binary.LittleEndian.Uint16(p[4+3*i : 6+3*i])
			v[ch] = ranges[ch].ToDegrees(raw)
		}
		return v, true
	}
	return base, false
}
