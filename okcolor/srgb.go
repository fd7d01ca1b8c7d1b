package okcolor

import (
	"image/color"
	"math"
)

// LinearRGB is a colour with linear-light sRGB primaries. Components are
// nominally in [0, 1] but are not clipped.
type LinearRGB struct {
	R float64
	G float64
	B float64
}

var LinearRGBModel = color.ModelFunc(linearRGBConvert)

func linearRGBConvert(c color.Color) color.Color {
	switch lc := c.(type) {
	case LinearRGB:
		return c
	case Lab:
		return lc.LinearRGB()
	case LCh:
		return lc.Lab().LinearRGB()
	}

	r, g, b, _ := c.RGBA()
	return FromSRGB(float64(r)/0xffff, float64(g)/0xffff, float64(b)/0xffff)
}

// FromSRGB decodes gamma-encoded sRGB components.
func FromSRGB(r, g, b float64) LinearRGB {
	return LinearRGB{R: ToLinear(r), G: ToLinear(g), B: ToLinear(b)}
}

// SRGB encodes the colour back to gamma-encoded sRGB components.
func (lc LinearRGB) SRGB() (float64, float64, float64) {
	return FromLinear(lc.R), FromLinear(lc.G), FromLinear(lc.B)
}

func (lc LinearRGB) InGamut() bool {
	const eps = 1e-9
	return lc.R >= -eps && lc.R <= 1+eps &&
		lc.G >= -eps && lc.G <= 1+eps &&
		lc.B >= -eps && lc.B <= 1+eps
}

func (lc LinearRGB) RGBA() (uint32, uint32, uint32, uint32) {
	r, g, b := lc.SRGB()
	return to16(r), to16(g), to16(b), 0xffff
}

func to16(x float64) uint32 {
	return uint32(math.Round(clamp(x, 0, 1) * 0xffff))
}

func ToLinear(x float64) float64 {
	if x >= 0.04045 {
		return math.Pow((x+0.055)/1.055, 2.4)
	}
	return x / 12.92
}

const invGamma = 1.0 / 2.4

func FromLinear(x float64) float64 {
	if x >= 0.0031308 {
		return math.Pow(x, invGamma)*1.055 - 0.055
	}
	return x * 12.92
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
