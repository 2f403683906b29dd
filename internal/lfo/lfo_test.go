package lfo

import (
	"math"
	"testing"
)

func TestSineShape(t *testing.T) {
	l := New(ShapeSine, 1, 2, 100)
	samples := make([]float64, 100)
	for i := range samples {
		samples[i] = l.Next()
	}
	for _, tc := range []struct {
		idx  int
		want float64
	}{
		{0, 0}, {25, 2}, {50, 0}, {75, -2},
	} {
		if math.Abs(samples[tc.idx]-tc.want) > 1e-9 {
			t.Errorf("sample %d = %f, want %f", tc.idx, samples[tc.idx], tc.want)
		}
	}
}

func TestTriangleShape(t *testing.T) {
	l := New(ShapeTriangle, 1, 1, 100)
	var got []float64
	for i := 0; i < 100; i++ {
		got = append(got, l.Next())
	}
	if math.Abs(got[0]+1) > 1e-9 || math.Abs(got[50]-1) > 1e-9 || math.Abs(got[25]) > 1e-9 {
		t.Fatalf("triangle shape wrong: %f %f %f", got[0], got[25], got[50])
	}
}

func TestWithPhase(t *testing.T) {
	l := New(ShapeSine, 1, 1, 100).WithPhase(1.25)
	if v := l.Next(); math.Abs(v-1) > 1e-9 {
		t.Fatalf("phase 0.25 sine = %f, want 1", v)
	}
}

func TestInactiveReturnsZero(t *testing.T) {
	for _, l := range []LFO{New(ShapeSine, 0, 1, 48000), New(ShapeSine, 5, 0, 48000), New(ShapeSine, 5, 1, 0)} {
		if l.Active() {
			t.Fatalf("expected inactive lfo")
		}
		if v := l.Next(); v != 0 {
			t.Fatalf("inactive lfo returned %f", v)
		}
	}
}

func TestBounded(t *testing.T) {
	l := New(ShapeTriangle, 7.3, 0.5, 44100)
	for i := 0; i < 44100; i++ {
		if v := l.Next(); math.Abs(v) > 0.5+1e-9 {
			t.Fatalf("sample %d out of range: %f", i, v)
		}
	}
}
