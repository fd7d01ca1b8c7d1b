package okcolor

import (
	"image/color"
	"math"
	"testing"
)

func TestTransferRoundTrip(t *testing.T) {
	for i := range 101 {
		x := float64(i) / 100
		if got := FromLinear(ToLinear(x)); math.Abs(got-x) > 1e-9 {
			t.Errorf("FromLinear(ToLinear(%v)) = %v", x, got)
		}
	}
}

func TestLabReferenceValues(t *testing.T) {
	tests := []struct {
		name string
		in   LinearRGB
		want Lab
	}{
		{"white", LinearRGB{1, 1, 1}, Lab{1, 0, 0}},
		{"black", LinearRGB{0, 0, 0}, Lab{0, 0, 0}},
		{"red", LinearRGB{1, 0, 0}, Lab{0.627955, 0.224863, 0.125846}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Lab()
			if math.Abs(got.L-tt.want.L) > 1e-4 || math.Abs(got.A-tt.want.A) > 1e-4 || math.Abs(got.B-tt.want.B) > 1e-4 {
				t.Errorf("Lab = %+v, want %+v", got, tt.want)
			}
			back := got.LinearRGB()
			if math.Abs(back.R-tt.in.R) > 1e-6 || math.Abs(back.G-tt.in.G) > 1e-6 || math.Abs(back.B-tt.in.B) > 1e-6 {
				t.Errorf("round trip = %+v, want %+v", back, tt.in)
			}
		})
	}
}

func TestClipReducesChroma(t *testing.T) {
	lc := LCh{L: 0.7, C: 0.5, H: 2}
	if lc.Lab().LinearRGB().InGamut() {
		t.Fatal("test colour is already in gamut")
	}

	clipped := lc.Clip()
	if !clipped.Lab().LinearRGB().InGamut() {
		t.Errorf("clipped colour %+v is out of gamut", clipped)
	}
	if clipped.L != lc.L || clipped.H != lc.H || clipped.C >= lc.C {
		t.Errorf("Clip changed %+v into %+v", lc, clipped)
	}
}

func TestModelsConvert(t *testing.T) {
	lab := LabModel.Convert(color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}).(Lab)
	if math.Abs(lab.L-1) > 1e-4 {
		t.Errorf("white L = %v", lab.L)
	}

	r, g, b, a := lab.RGBA()
	if r != 0xffff || g != 0xffff || b != 0xffff || a != 0xffff {
		t.Errorf("RGBA = %x %x %x %x", r, g, b, a)
	}
}
