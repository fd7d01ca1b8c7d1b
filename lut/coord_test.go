package lut

import (
	"math"
	"testing"
)

func TestForwardAxis(t *testing.T) {
	tests := []struct {
		name   string
		v      float64
		dim    int
		lo, hi int
		d      float64
	}{
		{"midpoint", 0.5, 2, 0, 1, 0.5},
		{"zero", 0, 17, 0, 1, 0},
		{"top", 1, 17, 16, 16, 0},
		{"interior", 0.25, 9, 2, 3, 0},
		{"below range", -0.1, 17, 0, 0, -1.6},
		{"above range", 1.2, 5, 4, 4, 0.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := forwardAxis(tt.v, tt.dim)
			if a.lo != tt.lo || a.hi != tt.hi {
				t.Fatalf("indices = (%d, %d), want (%d, %d)", a.lo, a.hi, tt.lo, tt.hi)
			}
			assertClose(t, "delta", a.d, tt.d, 1e-9)
		})
	}
}

func TestForwardAxisHugeInput(t *testing.T) {
	a := forwardAxis(1e300, 9)
	if a.lo != 8 || a.hi != 8 {
		t.Errorf("indices = (%d, %d), want (8, 8)", a.lo, a.hi)
	}
	a = forwardAxis(-1e300, 9)
	if a.lo != 0 || a.hi != 0 {
		t.Errorf("indices = (%d, %d), want (0, 0)", a.lo, a.hi)
	}
}

func TestBackwardAxisUnclamped(t *testing.T) {
	a := backwardAxis(1.0, 0.25)
	if a.lo != 4 || a.hi != 5 {
		t.Errorf("indices = (%d, %d), want (4, 5)", a.lo, a.hi)
	}
	if a.d != 0 {
		t.Errorf("delta = %v, want 0", a.d)
	}
}

func TestMappersAgreeInRange(t *testing.T) {
	rng := newRand()
	for dim := 2; dim <= 33; dim++ {
		binsize := 1 / float64(dim-1)
		for range 200 {
			v := rng.Float64()
			loc := v * float64(dim-1)
			if frac := loc - math.Floor(loc); frac < 1e-6 || frac > 1-1e-6 {
				continue
			}

			f := forwardAxis(v, dim)
			b := backwardAxis(v, binsize)
			if f.lo != b.lo || f.hi != b.hi {
				t.Fatalf("dim %d v %v: forward (%d, %d), backward (%d, %d)", dim, v, f.lo, f.hi, b.lo, b.hi)
			}
			assertClose(t, "delta", b.d, f.d, 1e-9)
		}
	}
}

func TestCellOffset(t *testing.T) {
	c := cell[float64]{
		r: axis[float64]{lo: 1, hi: 2},
		g: axis[float64]{lo: 3, hi: 4},
		b: axis[float64]{lo: 0, hi: 1},
	}
	grid := NewGrid[float64](5)

	for corner := range 8 {
		r, g, b := 1, 3, 0
		if corner&bitR != 0 {
			r++
		}
		if corner&bitG != 0 {
			g++
		}
		if corner&bitB != 0 {
			b++
		}
		if got, want := c.offset(5, corner), grid.Index(r, g, b); got != want {
			t.Errorf("corner %03b: offset %d, want %d", corner, got, want)
		}
	}
}
