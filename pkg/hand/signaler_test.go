package hand

import (
	"testing"
	"time"
)

type recordBeeper struct {
	tones []uint16
}

func (r *recordBeeper) Tone(freq uint16) {
	r.tones = append(r.tones, freq)
}

func TestSignalerPlaysSequenceOnBeat(t *testing.T) {
	out := &recordBeeper{}
	s := NewSignaler(out)
	s.Play([]uint16{440, 660, 880}, 100*time.Millisecond)

	now := time.Now()
	tick := 25 * time.Millisecond

	// Drive ticks for 500 ms of simulated time.
	for i := 0; i < 20; i++ {
		s.Tick(now.Add(time.Duration(i) * tick))
	}

	want := []uint16{440, 660, 880, 0}
	if len(out.tones) != len(want) {
		t.Fatalf("tones = %v, want %v", out.tones, want)
	}
	for i, f := range want {
		if out.tones[i] != f {
			t.Errorf("tone %d = %d, want %d", i, out.tones[i], f)
		}
	}
	if s.Active() {
		t.Error("signaler still active after sequence exhausted")
	}
}

func TestSignalerHoldsToneBetweenBeats(t *testing.T) {
	out := &recordBeeper{}
	s := NewSignaler(out)
	s.Play([]uint16{440}, time.Second)

	now := time.Now()
	s.Tick(now)
	s.Tick(now.Add(25 * time.Millisecond))
	s.Tick(now.Add(50 * time.Millisecond))

	if len(out.tones) != 1 || out.tones[0] != 440 {
		t.Errorf("tones = %v, want a single 440", out.tones)
	}
}

func TestSignalerIdleDoesNothing(t *testing.T) {
	out := &recordBeeper{}
	s := NewSignaler(out)
	for i := 0; i < 10; i++ {
		s.Tick(time.Now())
	}
	if len(out.tones) != 0 {
		t.Errorf("idle signaler produced tones: %v", out.tones)
	}
}

func TestSignalerBeepSilencesAfterDuration(t *testing.T) {
	out := &recordBeeper{}
	s := NewSignaler(out)
	s.Beep(1000, 50*time.Millisecond)

	now := time.Now()
	s.Tick(now)                           // starts the tone
	s.Tick(now.Add(25 * time.Millisecond)) // within the beat, holds
	s.Tick(now.Add(60 * time.Millisecond)) // beat elapsed, silences

	want := []uint16{1000, 0}
	if len(out.tones) != 2 || out.tones[0] != want[0] || out.tones[1] != want[1] {
		t.Errorf("tones = %v, want %v", out.tones, want)
	}
}
