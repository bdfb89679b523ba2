package hand

import "time"

// Beeper is the output side of the tone sequencer. Tone starts a tone at
// the given frequency; zero silences the output. Implementations must not
// block.
type Beeper interface {
	Tone(freqHz uint16)
}

// Signaler steps through a tone sequence one beat at a time. It shares the
// control loop's tick but keeps its own elapsed-time gate, and has no
// interaction with servo state.
type Signaler struct {
	out  Beeper
	seq  []uint16
	pos  int
	beat time.Duration
	next time.Time
}

// NewSignaler returns a signaler driving out.
func NewSignaler(out Beeper) *Signaler {
	return &Signaler{out: out}
}

// Play starts a tone sequence, one tone per beat. Any sequence already
// playing is replaced.
func (s *Signaler) Play(tones []uint16, beat time.Duration) {
	s.seq = tones
	s.pos = 0
	s.beat = beat
	s.next = time.Time{} // first tick plays immediately
}

// Beep plays a single tone for the given duration.
func (s *Signaler) Beep(freqHz uint16, d time.Duration) {
	s.Play([]uint16{freqHz}, d)
}

// Active reports whether a sequence is still playing.
func (s *Signaler) Active() bool {
	return s.seq != nil
}

// Tick advances the sequence if its beat has elapsed, silencing the output
// when the sequence is exhausted.
func (s *Signaler) Tick(now time.Time) {
	if s.seq == nil || now.Before(s.next) {
		return
	}
	if s.pos >= len(s.seq) {
		s.out.Tone(0)
		s.seq = nil
		return
	}
	s.out.Tone(s.seq[s.pos])
	s.pos++
	s.next = now.Add(s.beat)
}
