package hand

import "testing"

func TestClampRingMinimum(t *testing.T) {
	limits := DefaultLimits()
	v := limits.Clamp(TargetVector{0, 0, 0, 0, 0, 0})
	if v[Ring] != 25 {
		t.Errorf("ring clamped to %g°, want 25°", v[Ring])
	}
	for _, ch := range []Channel{Thumb, Index, Middle, Pinky, Wrist} {
		if v[ch] != 0 {
			t.Errorf("%s clamped to %g°, want 0°", ch, v[ch])
		}
	}
}

func TestClampUpperBound(t *testing.T) {
	limits := DefaultLimits()
	v := limits.Clamp(TargetVector{255, 255, 255, 255, 255, 255})
	for _, ch := range AllChannels() {
		if v[ch] != limits[ch].Max {
			t.Errorf("%s clamped to %g°, want %g°", ch, v[ch], limits[ch].Max)
		}
	}
}

func TestClampInRangePassesThrough(t *testing.T) {
	limits := DefaultLimits()
	want := TargetVector{90, 45, 135, 25, 180, 0}
	if v := limits.Clamp(want); v != want {
		t.Errorf("in-range vector changed: %v -> %v", want, v)
	}
}

func TestInversion(t *testing.T) {
	if got := Output(Thumb, 90); got != 90 {
		t.Errorf("Output(thumb, 90) = %g, want 90", got)
	}
	if got := Output(Thumb, 0); got != 180 {
		t.Errorf("Output(thumb, 0) = %g, want 180", got)
	}
	if got := Output(Wrist, 30); got != 150 {
		t.Errorf("Output(wrist, 30) = %g, want 150", got)
	}
	if got := Output(Index, 30); got != 30 {
		t.Errorf("Output(index, 30) = %g, want 30", got)
	}
}
