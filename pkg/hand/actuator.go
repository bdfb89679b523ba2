package hand

import (
	"fmt"
	"io"
	"sync"

	"github.com/akshayakula/myogen/pkg/wire"
)

// Actuator is the boundary to a physical or simulated servo channel. It is
// called once per channel per tick, after inversion has been applied, and
// must return quickly: it runs inside the fixed-rate control loop.
type Actuator interface {
	SetAngle(ch Channel, deg float64) error
}

// BatchActuator is implemented by actuators that prefer one transport
// write per tick instead of one per channel. The controller calls Flush
// after the per-channel SetAngle round.
type BatchActuator interface {
	Actuator
	Flush() error
}

// SimActuator records the last commanded angle per channel. It stands in
// for the hardware in tests and in monitor mode.
type SimActuator struct {
	mu     sync.RWMutex
	angles TargetVector
}

// NewSimActuator returns a simulator with all channels at 0.
func NewSimActuator() *SimActuator {
	return &SimActuator{}
}

func (s *SimActuator) SetAngle(ch Channel, deg float64) error {
	if ch < 0 || ch >= NumChannels {
		return fmt.Errorf("channel %d out of range", ch)
	}
	s.mu.Lock()
	s.angles[ch] = deg
	s.mu.Unlock()
	return nil
}

// Angles returns the last commanded angle for every channel.
func (s *SimActuator) Angles() TargetVector {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.angles
}

// SerialActuator drives the physical hand by encoding vendor servo-move
// frames onto a serial writer, converting degrees back to raw pulse
// positions with the channel's calibration. Writes are batched: SetAngle
// only stages, Flush emits a single frame per tick addressing all staged
// channels.
type SerialActuator struct {
	w      io.Writer
	ranges [NumChannels]PulseRange
	moveMS uint16

	staged  TargetVector
	pending [NumChannels]bool
	buf     []byte
}

// NewSerialActuator returns an actuator writing to w. Move time per frame
// is the tick period, so the servo controller's own ramping matches the
// command rate.
func NewSerialActuator(w io.Writer) *SerialActuator {
	return &SerialActuator{
		w:      w,
		ranges: VendorRanges(),
		moveMS: uint16(TickPeriod.Milliseconds()),
		buf:    make([]byte, 0, 4+3+3*NumChannels),
	}
}

func (a *SerialActuator) SetAngle(ch Channel, deg float64) error {
	if ch < 0 || ch >= NumChannels {
		return fmt.Errorf("channel %d out of range", ch)
	}
	a.staged[ch] = deg
	a.pending[ch] = true
	return nil
}

// Flush writes one servo-move frame carrying every staged channel.
func (a *SerialActuator) Flush() error {
	var targets [NumChannels]wire.ServoTarget
	n := 0
	for ch := Channel(0); ch < NumChannels; ch++ {
		if !a.pending[ch] {
			continue
		}
		a.pending[ch] = false
		targets[n] = wire.ServoTarget{
			ID:       byte(ch) + 1, // wire IDs are 1-indexed
			Position: a.ranges[ch].FromDegrees(a.staged[ch]),
		}
		n++
	}
	if n == 0 {
		return nil
	}
	a.buf = wire.AppendServoMove(a.buf[:0], a.moveMS, targets[:n])
	if _, err := a.w.Write(a.buf); err != nil {
		return fmt.Errorf("write servo frame: %w", err)
	}
	return nil
}
