package okcolor

// Clip brings the colour into the sRGB gamut. Lightness is clamped to [0, 1]
// first, then chroma is reduced at constant hue until the colour fits.
func (lc LCh) Clip() LCh {
	lc.L = clamp(lc.L, 0, 1)
	if lc.Lab().LinearRGB().InGamut() {
		return lc
	}

	lo, hi := 0.0, lc.C
	for range 32 {
		mid := (lo + hi) / 2
		probe := LCh{L: lc.L, C: mid, H: lc.H}
		if probe.Lab().LinearRGB().InGamut() {
			lo = mid
		} else {
			hi = mid
		}
	}
	lc.C = lo
	return lc
}

// ClipRGB clamps each linear component to [0, 1].
func (lc LinearRGB) ClipRGB() LinearRGB {
	return LinearRGB{
		R: clamp(lc.R, 0, 1),
		G: clamp(lc.G, 0, 1),
		B: clamp(lc.B, 0, 1),
	}
}
