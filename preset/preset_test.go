package preset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"lutgrad/lut"
	"lutgrad/okcolor"
	"lutgrad/palette"
)

func TestIdentityAdjust(t *testing.T) {
	grid := Adjust{Chroma: 1}.Grid(9)
	want := lut.Identity[float64](9)
	for i := range want.Data {
		if grid.Data[i] != want.Data[i] {
			t.Fatalf("element %d = %v, want %v", i, grid.Data[i], want.Data[i])
		}
	}
}

func TestAdjustRoundTripsNeutral(t *testing.T) {
	a := Adjust{Chroma: 1, Hue: 30}
	r, g, b := a.Apply(0.5, 0.5, 0.5)
	for _, v := range []float64{r, g, b} {
		if math.Abs(v-0.5) > 1e-6 {
			t.Errorf("hue rotation moved gray to (%v, %v, %v)", r, g, b)
		}
	}
}

func TestDesaturateYieldsGray(t *testing.T) {
	grid := Adjust{Chroma: 0}.Grid(5)
	for i := range 5 {
		for j := range 5 {
			for k := range 5 {
				r, g, b := grid.At(0, i, j, k), grid.At(1, i, j, k), grid.At(2, i, j, k)
				if math.Abs(r-g) > 1e-6 || math.Abs(g-b) > 1e-6 {
					t.Fatalf("lattice (%d, %d, %d) = (%v, %v, %v), want gray", i, j, k, r, g, b)
				}
			}
		}
	}
}

func TestSnapUsesPaletteColors(t *testing.T) {
	pal, err := palette.Load("bw")
	require.NoError(t, err)
	grid := Snap(3, palette.NewLab(pal))
	for _, v := range grid.Data {
		if math.Abs(v) > 1e-6 && math.Abs(v-1) > 1e-6 {
			t.Fatalf("value %v is neither black nor white", v)
		}
	}
	if grid.At(0, 0, 0, 0) > 1e-6 || grid.At(0, 2, 2, 2) < 1-1e-6 {
		t.Error("black and white corners are not preserved")
	}
}

func TestTransferPresetsOnLattice(t *testing.T) {
	const dim = 17
	dec, enc := Linearize(dim), Encode(dim)
	for i := range dim {
		x := float64(i) / (dim - 1)
		if got, want := dec.At(0, i, 0, 0), okcolor.ToLinear(x); got != want {
			t.Errorf("Linearize red at %d = %v, want %v", i, got, want)
		}
		if got, want := enc.At(2, 0, 0, i), okcolor.FromLinear(x); got != want {
			t.Errorf("Encode blue at %d = %v, want %v", i, got, want)
		}
	}
}
