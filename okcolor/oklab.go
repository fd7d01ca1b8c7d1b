// based on:
// https://bottosson.github.io/posts/oklab/

package okcolor

import (
	"image/color"
	"math"
)

type Lab struct {
	L float64 // perceived lightness
	A float64 // how green/red the color is
	B float64 // how blue/yellow the color is
}

var LabModel = color.ModelFunc(labConvert)

func labConvert(c color.Color) color.Color {
	switch lc := c.(type) {
	case Lab:
		return c
	case LCh:
		return lc.Lab()
	}
	return linearRGBConvert(c).(LinearRGB).Lab()
}

func (lc LinearRGB) Lab() Lab {
	l := math.Cbrt(0.4122214708*lc.R + 0.5363325363*lc.G + 0.0514459929*lc.B)
	m := math.Cbrt(0.2119034982*lc.R + 0.6806995451*lc.G + 0.1073969566*lc.B)
	s := math.Cbrt(0.0883024619*lc.R + 0.2817188376*lc.G + 0.6299787005*lc.B)

	return Lab{
		L: 0.2104542553*l + 0.7936177850*m - 0.0040720468*s,
		A: 1.9779984951*l - 2.4285922050*m + 0.4505937099*s,
		B: 0.0259040371*l + 0.7827717662*m - 0.8086757660*s,
	}
}

func (lc Lab) LinearRGB() LinearRGB {
	l := lc.L + 0.3963377774*lc.A + 0.2158037573*lc.B
	m := lc.L - 0.1055613458*lc.A - 0.0638541728*lc.B
	s := lc.L - 0.0894841775*lc.A - 1.2914855480*lc.B
	l, m, s = l*l*l, m*m*m, s*s*s

	return LinearRGB{
		R: +4.0767416621*l - 3.3077115913*m + 0.2309699292*s,
		G: -1.2684380046*l + 2.6097574011*m - 0.3413193965*s,
		B: -0.0041960863*l - 0.7034186147*m + 1.7076147010*s,
	}
}

func (lc Lab) RGBA() (uint32, uint32, uint32, uint32) {
	return lc.LCh().Clip().Lab().LinearRGB().RGBA()
}

// Distance is the squared euclidean distance in Oklab.
func (lc Lab) Distance(o Lab) float64 {
	dL, da, db := lc.L-o.L, lc.A-o.A, lc.B-o.B
	return dL*dL + da*da + db*db
}

func (lc Lab) LCh() LCh {
	return LCh{
		L: lc.L,
		C: math.Hypot(lc.A, lc.B),
		H: math.Atan2(lc.B, lc.A),
	}
}

type LCh struct {
	L float64 // perceived lightness
	C float64 // chroma
	H float64 // hue, radians
}

func (lc LCh) Lab() Lab {
	return Lab{
		L: lc.L,
		A: lc.C * math.Cos(lc.H),
		B: lc.C * math.Sin(lc.H),
	}
}

func (lc LCh) RGBA() (uint32, uint32, uint32, uint32) {
	return lc.Clip().Lab().LinearRGB().RGBA()
}
