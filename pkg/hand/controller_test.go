package hand

import (
	"bytes"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/akshayakula/myogen/pkg/wire"
)

// loopback is an in-memory transport: the test writes command bytes to in,
// the controller's replies land in out. Reads on an empty buffer return
// io.EOF, which ends the drain like a serial read timeout does.
type loopback struct {
	in  bytes.Buffer
	out bytes.Buffer
}

func (l *loopback) Read(p []byte) (int, error)  { return l.in.Read(p) }
func (l *loopback) Write(p []byte) (int, error) { return l.out.Write(p) }

func newTestController(t *testing.T, sink Actuator) (*Controller, *loopback) {
	t.Helper()
	lb := &loopback{}
	c, err := NewController(Options{Transport: lb, Actuator: sink})
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	return c, lb
}

func runTicks(c *Controller, n int) {
	now := time.Now()
	for i := 0; i < n; i++ {
		c.step(now.Add(time.Duration(i) * TickPeriod))
	}
}

func TestEndToEndServoSet(t *testing.T) {
	sink := NewSimActuator()
	c, lb := newTestController(t, sink)

	// Servo-set: all zero except ring at its 25° minimum.
	lb.in.Write(wire.AppendSetServo(nil, [6]byte{0, 0, 0, 25, 0, 0}))
	runTicks(c, 100)

	if c.target != (TargetVector{0, 0, 0, 25, 0, 0}) {
		t.Fatalf("target = %v", c.target)
	}

	angles := sink.Angles()
	wantSink := TargetVector{180, 0, 0, 25, 0, 180} // thumb and wrist inverted
	for _, ch := range AllChannels() {
		if math.Abs(angles[ch]-wantSink[ch]) > 1 {
			t.Errorf("sink %s = %g°, want within 1° of %g°", ch, angles[ch], wantSink[ch])
		}
	}
}

func TestRepeatedFramesConverge(t *testing.T) {
	sink := NewSimActuator()
	c, lb := newTestController(t, sink)

	target := [6]byte{120, 40, 60, 80, 100, 20}
	for i := 0; i < 5; i++ {
		lb.in.Write(wire.AppendSetServo(nil, target))
		runTicks(c, 20)
	}

	actual := c.smoother.Actual()
	for _, ch := range AllChannels() {
		if math.Abs(actual[ch]-float64(target[ch])) > 1 {
			t.Errorf("%s actual = %g°, want within 1° of %d°", ch, actual[ch], target[ch])
		}
	}
}

func TestLastWriterWinsWithinOneDrain(t *testing.T) {
	c, lb := newTestController(t, NewSimActuator())

	stream := wire.AppendSetServo(nil, [6]byte{10, 10, 10, 30, 10, 10})
	stream = wire.AppendSetServo(stream, [6]byte{170, 170, 170, 170, 170, 170})
	lb.in.Write(stream)
	runTicks(c, 1)

	want := TargetVector{170, 170, 170, 170, 170, 170}
	if c.target != want {
		t.Errorf("target = %v, want the later frame's %v", c.target, want)
	}
}

func TestOutOfRangeWireTargetsAreClamped(t *testing.T) {
	c, lb := newTestController(t, NewSimActuator())

	lb.in.Write(wire.AppendSetServo(nil, [6]byte{255, 255, 255, 0, 255, 255}))
	runTicks(c, 1)

	want := TargetVector{180, 180, 180, 25, 180, 180}
	if c.target != want {
		t.Errorf("target = %v, want %v", c.target, want)
	}
}

func TestSetTargetsBoundary(t *testing.T) {
	c, _ := newTestController(t, NewSimActuator())

	c.SetTargets(TargetVector{0, 0, 0, 0, 0, 0})
	runTicks(c, 1)
	if c.target[Ring] != 25 {
		t.Errorf("ring target = %g°, want clamped to 25°", c.target[Ring])
	}

	// A newer vector overwrites an unconsumed one.
	c.SetTargets(TargetVector{10, 10, 10, 30, 10, 10})
	c.SetTargets(TargetVector{50, 50, 50, 50, 50, 50})
	runTicks(c, 1)
	if c.target != (TargetVector{50, 50, 50, 50, 50, 50}) {
		t.Errorf("target = %v, want the later SetTargets vector", c.target)
	}
}

func TestCorruptThenValidFrame(t *testing.T) {
	c, lb := newTestController(t, NewSimActuator())

	corrupt := wire.AppendSetServo(nil, [6]byte{5, 5, 5, 30, 5, 5})
	corrupt[len(corrupt)-1]++
	lb.in.Write(append(corrupt, wire.AppendSetServo(nil, [6]byte{0, 0, 0, 25, 0, 0})...))
	runTicks(c, 1)

	if c.target != (TargetVector{0, 0, 0, 25, 0, 0}) {
		t.Errorf("target = %v, want only the valid frame applied", c.target)
	}
	if c.dec.FramingErrors != 1 {
		t.Errorf("FramingErrors = %d, want 1", c.dec.FramingErrors)
	}
}

func TestReadAngleReply(t *testing.T) {
	c, lb := newTestController(t, NewSimActuator())

	lb.in.Write(wire.AppendReadAngle(nil))
	runTicks(c, 1)

	var got *wire.Frame
	wire.NewDecoder(wire.Simple).Feed(lb.out.Bytes(), func(f *wire.Frame) {
		cp := *f
		got = &cp
	})
	if got == nil {
		t.Fatal("no reply frame")
	}
	if got.Func != wire.FuncReadAngle {
		t.Fatalf("reply func = %#x, want FuncReadAngle", got.Func)
	}
	// The reply carries the actual angles at request time: still at the
	// neutral pose.
	want := []byte{90, 90, 90, 90, 90, 90}
	if !bytes.Equal(got.Payload(), want) {
		t.Errorf("reply payload = %v, want %v", got.Payload(), want)
	}
}

func TestBuzzerFrame(t *testing.T) {
	out := &recordBeeper{}
	lb := &loopback{}
	c, err := NewController(Options{Transport: lb, Actuator: NewSimActuator(), Beeper: out})
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}

	lb.in.Write(wire.AppendSetBuzzer(nil, 440, 50))
	runTicks(c, 10) // 250 ms of ticks, well past the 50 ms beep

	if len(out.tones) != 2 || out.tones[0] != 440 || out.tones[1] != 0 {
		t.Errorf("tones = %v, want [440 0]", out.tones)
	}
}

func TestGyroSampleSurfacesInState(t *testing.T) {
	c, lb := newTestController(t, NewSimActuator())

	sample := wire.GyroSample{AX: 100, AY: -200, AZ: 300, GX: -1, GY: 2, GZ: -3}
	lb.in.Write(wire.AppendGyroData(nil, sample))
	runTicks(c, 1)

	st := <-c.States()
	if !st.HasGyro {
		t.Fatal("state has no gyro sample")
	}
	if st.Gyro != sample {
		t.Errorf("gyro = %+v, want %+v", st.Gyro, sample)
	}
}

func TestUnknownFunctionCodeHasNoMotionEffect(t *testing.T) {
	c, lb := newTestController(t, NewSimActuator())
	before := c.target

	payload := []byte{1, 2, 3}
	frame := []byte{0xAA, 0x77, 0x42, 3}
	frame = append(frame, payload...)
	frame = append(frame, wire.Checksum(0x42, payload))
	lb.in.Write(frame)
	runTicks(c, 1)

	if c.target != before {
		t.Errorf("target changed by unknown function: %v -> %v", before, c.target)
	}
	if c.dec.Frames != 1 {
		t.Errorf("Frames = %d, want the unknown frame still decoded", c.dec.Frames)
	}
}

// faultyActuator fails permanently on one channel.
type faultyActuator struct {
	bad   Channel
	calls map[Channel]int
}

func (f *faultyActuator) SetAngle(ch Channel, deg float64) error {
	if f.calls == nil {
		f.calls = map[Channel]int{}
	}
	if ch == f.bad {
		return fmt.Errorf("servo %s not responding", ch)
	}
	f.calls[ch]++
	return nil
}

func TestActuatorFaultIsolatedToChannel(t *testing.T) {
	sink := &faultyActuator{bad: Index}
	c, _ := newTestController(t, sink)

	runTicks(c, 5)

	if !c.faulted[Index] {
		t.Error("faulty channel not marked")
	}
	for _, ch := range []Channel{Thumb, Middle, Ring, Pinky, Wrist} {
		if c.faulted[ch] {
			t.Errorf("%s marked faulted", ch)
		}
		if sink.calls[ch] != 5 {
			t.Errorf("%s received %d writes, want 5", ch, sink.calls[ch])
		}
	}
}

func TestSmootherNeverPauses(t *testing.T) {
	sink := NewSimActuator()
	c, _ := newTestController(t, sink)

	c.SetTargets(TargetVector{0, 0, 0, 25, 0, 0})
	runTicks(c, 1)
	first := c.smoother.Actual()

	// No new commands: the smoother keeps settling toward the last target.
	runTicks(c, 1)
	second := c.smoother.Actual()
	if !(second[Index] < first[Index]) {
		t.Errorf("actual did not keep moving: %g then %g", first[Index], second[Index])
	}
}
