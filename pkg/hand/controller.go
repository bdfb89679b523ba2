package hand

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/akshayakula/myogen/pkg/wire"
)

// State is a snapshot of the control loop, published after each tick.
type State struct {
	Target        TargetVector
	Actual        TargetVector
	Gyro          wire.GyroSample
	HasGyro       bool
	Frames        uint64
	FramingErrors uint64
	Timestamp     time.Time
}

// Options configures a Controller.
type Options struct {
	// Transport carries the framed command stream. Reads must be
	// non-blocking or bounded by a short timeout so the tick deadline
	// holds; the loop drains it every tick.
	Transport io.ReadWriter

	// Actuator receives the smoothed, inverted angles.
	Actuator Actuator

	// Beeper is the buzzer output. Optional.
	Beeper Beeper

	Protocol wire.Protocol
	Limits   Limits // zero value means DefaultLimits

	// Logger is optional; nil disables logging.
	Logger *zerolog.Logger
}

// Controller runs the fixed-rate control loop: drain transport bytes into
// decoded frames, translate servo commands into a clamped target vector
// (last writer wins, no queue), then smooth each channel toward its target
// and hand the result to the actuator. All servo and parser state is owned
// by the loop goroutine.
type Controller struct {
	conn     io.ReadWriter
	sink     Actuator
	dec      *wire.Decoder
	limits   Limits
	smoother *Smoother
	signaler *Signaler
	logger   zerolog.Logger

	target     TargetVector
	faulted    [NumChannels]bool
	gyro       wire.GyroSample
	hasGyro    bool
	streamGyro bool

	readBuf  [256]byte
	writeBuf []byte

	mu         sync.Mutex
	running    bool
	pending    TargetVector
	pendingSet bool

	stateCh chan State
	logCh   chan string
}

type nopBeeper struct{}

func (nopBeeper) Tone(uint16) {}

// NewController creates a controller. The hand starts at the neutral pose.
func NewController(opts Options) (*Controller, error) {
	if opts.Transport == nil {
		return nil, fmt.Errorf("transport is required")
	}
	if opts.Actuator == nil {
		return nil, fmt.Errorf("actuator is required")
	}
	limits := opts.Limits
	if limits == (Limits{}) {
		limits = DefaultLimits()
	}
	beeper := opts.Beeper
	if beeper == nil {
		beeper = nopBeeper{}
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	initial := limits.Clamp(Poses["neutral"])
	return &Controller{
		conn:     opts.Transport,
		sink:     opts.Actuator,
		dec:      wire.NewDecoder(opts.Protocol),
		limits:   limits,
		smoother: NewSmoother(initial),
		signaler: NewSignaler(beeper),
		logger:   logger,
		target:   initial,
		stateCh:  make(chan State, 1),
		logCh:    make(chan string, 10),
	}, nil
}

// States returns a channel that receives state snapshots, one per tick.
// Stale snapshots are dropped when the consumer lags.
func (c *Controller) States() <-chan State {
	return c.stateCh
}

// Logs returns a channel that receives log messages for UIs.
func (c *Controller) Logs() <-chan string {
	return c.logCh
}

// SetTargets submits a target vector from an upstream collaborator: six
// angles in degrees, indexed thumb..wrist. Values are clamped to the
// channel limits. Safe to call from any goroutine; the loop picks the
// vector up on its next tick, overwriting any not-yet-consumed one.
func (c *Controller) SetTargets(v TargetVector) {
	c.mu.Lock()
	c.pending = v
	c.pendingSet = true
	c.mu.Unlock()
}

// SetPose submits a named pose.
func (c *Controller) SetPose(name string) error {
	v, ok := Poses[name]
	if !ok {
		return fmt.Errorf("unknown pose %q", name)
	}
	c.SetTargets(v)
	return nil
}

func (c *Controller) log(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	c.logger.Info().Msg(msg)
	select {
	case c.logCh <- msg:
	default:
		// Drop if channel full
	}
}

// Start runs the control loop until ctx is cancelled.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return fmt.Errorf("already running")
	}
	c.running = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.running = false
		c.mu.Unlock()
	}()

	c.log("control loop started, tick %s, protocol %s", TickPeriod, c.dec.Protocol())

	ticker := time.NewTicker(TickPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.log("control loop stopped")
			return ctx.Err()
		case now := <-ticker.C:
			c.step(now)
		}
	}
}

// step is one tick: drain input, smooth, actuate, signal, publish.
func (c *Controller) step(now time.Time) {
	c.drainInput()

	c.mu.Lock()
	if c.pendingSet {
		c.target = c.limits.Clamp(c.pending)
		c.pendingSet = false
	}
	c.mu.Unlock()

	actual := c.smoother.Step(c.target)

	for _, ch := range AllChannels() {
		if c.faulted[ch] {
			continue
		}
		if err := c.sink.SetAngle(ch, Output(ch, actual[ch])); err != nil {
			// A hardware fault takes out one channel, not the loop.
			c.faulted[ch] = true
			c.log("actuator fault on %s, channel disabled: %v", ch, err)
		}
	}
	if batch, ok := c.sink.(BatchActuator); ok {
		if err := batch.Flush(); err != nil {
			c.logger.Error().Err(err).Msg("actuator flush")
		}
	}

	c.signaler.Tick(now)

	c.sendState(State{
		Target:        c.target,
		Actual:        actual,
		Gyro:          c.gyro,
		HasGyro:       c.hasGyro,
		Frames:        c.dec.Frames,
		FramingErrors: c.dec.FramingErrors,
		Timestamp:     now,
	})
}

// drainInput pulls all currently available transport bytes through the
// decoder. Framing errors are absorbed by the decoder; transport errors
// end the drain for this tick.
func (c *Controller) drainInput() {
	for {
		n, err := c.conn.Read(c.readBuf[:])
		if n > 0 {
			c.dec.Feed(c.readBuf[:n], c.handleFrame)
		}
		if err != nil {
			if err != io.EOF {
				c.logger.Debug().Err(err).Msg("transport read")
			}
			return
		}
		if n == 0 {
			return
		}
	}
}

func (c *Controller) handleFrame(f *wire.Frame) {
	switch {
	case f.Protocol == wire.Simple && f.Func == wire.FuncSetServo,
		f.Protocol == wire.Vendor && f.Func == wire.CmdServoMove:
		v, ok := Translate(f, c.target)
		if !ok {
			c.logger.Debug().Msg("malformed servo frame dropped")
			return
		}
		c.target = c.limits.Clamp(v)

	case f.Protocol == wire.Simple && f.Func == wire.FuncSetBuzzer:
		p := f.Payload()
		if len(p) < 4 {
			return
		}
		freq := binary.LittleEndian.Uint16(p[0:2])
		dur := binary.LittleEndian.Uint16(p[2:4])
		c.signaler.Beep(freq, time.Duration(dur)*time.Millisecond)

	case f.Protocol == wire.Simple && f.Func == wire.FuncSetRGB:
		// No RGB output on this build; acknowledged and dropped.
		c.logger.Debug().Msg("rgb frame ignored")

	case f.Protocol == wire.Simple && f.Func == wire.FuncReadAngle:
		c.replyAngles()

	case f.Protocol == wire.Vendor && f.Func == wire.CmdStartGyroStream:
		c.streamGyro = true
		c.log("gyro stream enabled")

	case f.Protocol == wire.Vendor && f.Func == wire.CmdStopGyroStream:
		c.streamGyro = false
		c.hasGyro = false
		c.log("gyro stream disabled")

	case f.Protocol == wire.Vendor && f.Func == wire.CmdGyroData:
		if s, ok := wire.ParseGyroData(f.Payload()); ok {
			c.gyro = s
			c.hasGyro = true
		}

	default:
		// Unknown function codes have no motion effect.
		c.logger.Debug().
			Str("protocol", f.Protocol.String()).
			Uint8("func", f.Func).
			Msg("unknown function code dropped")
	}
}

// replyAngles answers a read-angle request with the current actual angles.
func (c *Controller) replyAngles() {
	var angles [NumChannels]byte
	for i, deg := range c.smoother.Actual() {
		angles[i] = byte(math.Round(deg))
	}
	c.writeBuf = wire.AppendAngleReply(c.writeBuf[:0], angles)
	if _, err := c.conn.Write(c.writeBuf); err != nil {
		c.logger.Error().Err(err).Msg("angle reply write")
	}
}

func (c *Controller) sendState(s State) {
	select {
	case c.stateCh <- s:
	default:
		// Drop old state if channel full, replace with new
		select {
		case <-c.stateCh:
		default:
		}
		c.stateCh <- s
	}
}
