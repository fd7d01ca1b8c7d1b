// Package preset builds LUTs by sampling colour transforms on the grid
// lattice. Inputs and outputs are gamma-encoded sRGB in [0, 1].
package preset

import (
	"math"

	"lutgrad/lut"
	"lutgrad/okcolor"
	"lutgrad/palette"
)

// Adjust shifts colours in Oklch.
type Adjust struct {
	Lightness float64 // added to L
	Chroma    float64 // chroma multiplier, 1 keeps chroma
	Hue       float64 // rotation in degrees
}

func (a Adjust) IsIdentity() bool {
	return a.Lightness == 0 && a.Chroma == 1 && math.Mod(a.Hue, 360) == 0
}

func (a Adjust) Apply(r, g, b float64) (float64, float64, float64) {
	lch := okcolor.FromSRGB(r, g, b).Lab().LCh()
	lch.L += a.Lightness
	lch.C *= a.Chroma
	lch.H += a.Hue * math.Pi / 180

	return lch.Clip().Lab().LinearRGB().ClipRGB().SRGB()
}

// Grid samples the adjustment. The identity adjustment yields the identity
// grid exactly.
func (a Adjust) Grid(dim int) *lut.Grid[float64] {
	if a.IsIdentity() {
		return lut.Identity[float64](dim)
	}
	return lut.Sample(dim, a.Apply)
}

// Snap maps every lattice point to the perceptually nearest palette entry.
func Snap(dim int, pal palette.Lab) *lut.Grid[float64] {
	return lut.Sample(dim, func(r, g, b float64) (float64, float64, float64) {
		lc := pal.Convert(okcolor.FromSRGB(r, g, b).Lab())
		return lc.LinearRGB().ClipRGB().SRGB()
	})
}

// Linearize decodes sRGB to linear light.
func Linearize(dim int) *lut.Grid[float64] {
	return lut.Sample(dim, func(r, g, b float64) (float64, float64, float64) {
		return okcolor.ToLinear(r), okcolor.ToLinear(g), okcolor.ToLinear(b)
	})
}

// Encode applies the sRGB transfer curve to linear input.
func Encode(dim int) *lut.Grid[float64] {
	return lut.Sample(dim, func(r, g, b float64) (float64, float64, float64) {
		return okcolor.FromLinear(r), okcolor.FromLinear(g), okcolor.FromLinear(b)
	})
}
