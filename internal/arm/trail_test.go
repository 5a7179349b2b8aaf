package arm

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestTrailPushEvictsOldest(t *testing.T) {
	tr := NewTrail(3)
	for i := 1; i <= 5; i++ {
		tr.Push(r2.Vec{X: float64(i)})
	}

	pts := tr.Points()
	if len(pts) != 3 {
		t.Fatalf("expected 3 points, got %d", len(pts))
	}
	for i, want := range []float64{3, 4, 5} {
		if pts[i].X != want {
			t.Errorf("point %d: expected %g, got %g", i, want, pts[i].X)
		}
	}

	last, ok := tr.Last()
	if !ok || last.X != 5 {
		t.Errorf("expected last 5, got %v (%v)", last, ok)
	}
}

func TestTrailClear(t *testing.T) {
	tr := NewTrail(2)
	tr.Push(r2.Vec{X: 1})
	tr.Clear()

	if tr.Len() != 0 {
		t.Errorf("expected empty trail, got %d", tr.Len())
	}
	if _, ok := tr.Last(); ok {
		t.Error("expected no last point after clear")
	}

	tr.Push(r2.Vec{X: 7})
	if pts := tr.Points(); len(pts) != 1 || pts[0].X != 7 {
		t.Errorf("unexpected points after reuse: %v", pts)
	}
}

func TestTrailDefaultCapacity(t *testing.T) {
	if c := NewTrail(0).Cap(); c != DefaultMaxTrail {
		t.Errorf("expected default capacity %d, got %d", DefaultMaxTrail, c)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
		ok   bool
	}{
		{"ik", ModeInverse, true},
		{"Inverse", ModeInverse, true},
		{" fk ", ModeForward, true},
		{"forward", ModeForward, true},
		{"jacobian", 0, false},
	}

	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if tt.ok && (err != nil || got != tt.want) {
			t.Errorf("ParseMode(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
		if !tt.ok && err == nil {
			t.Errorf("ParseMode(%q) expected error", tt.in)
		}
	}

	if ModeForward.Toggle() != ModeInverse || ModeInverse.Toggle() != ModeForward {
		t.Error("Toggle did not flip mode")
	}
}
