package lut

import "math"

// Float is the element type of every buffer the kernels touch.
type Float interface {
	~float32 | ~float64
}

// axis is one channel's position on the grid: the bracketing lower and upper
// indices and the fractional offset from the lower one.
type axis[T Float] struct {
	lo, hi int
	d      T
}

// forwardAxis scales a normalised value by dim-1. Both indices are clamped to
// the grid independently and the offset is measured from the clamped lower
// index, so input outside [0, 1] yields an offset outside [0, 1].
func forwardAxis[T Float](v T, dim int) axis[T] {
	loc := v * T(dim-1)
	f := math.Floor(float64(loc))
	lo := clampIndex(f, dim)
	return axis[T]{
		lo: lo,
		hi: clampIndex(f+1, dim),
		d:  loc - T(lo),
	}
}

// backwardAxis bins a value by binsize. Nothing is clamped: hi is lo+1 even on
// the top grid line, so callers must range-check with binIndex first.
func backwardAxis[T Float](v T, binsize float64) axis[T] {
	x := float64(v)
	lo := int(binIndex(x, binsize))
	return axis[T]{
		lo: lo,
		hi: lo + 1,
		d:  T(math.Mod(x, binsize) / binsize),
	}
}

func binIndex(v, binsize float64) float64 {
	return math.Floor(v / binsize)
}

func clampIndex(f float64, dim int) int {
	switch {
	case f <= 0:
		return 0
	case f >= float64(dim-1):
		return dim - 1
	}
	return int(f)
}

// cell holds the three axes of one pixel.
type cell[T Float] struct {
	r, g, b axis[T]
}

func forwardCell[T Float](r, g, b T, dim int) cell[T] {
	return cell[T]{
		r: forwardAxis(r, dim),
		g: forwardAxis(g, dim),
		b: forwardAxis(b, dim),
	}
}

func backwardCell[T Float](r, g, b T, binsize float64) cell[T] {
	return cell[T]{
		r: backwardAxis(r, binsize),
		g: backwardAxis(g, binsize),
		b: backwardAxis(b, binsize),
	}
}

// Corner bits, one per axis. Corner 0b110 is (r upper, g upper, b lower).
const (
	bitR = 4
	bitG = 2
	bitB = 1
)

// offset returns the index of a corner inside one channel plane.
func (c cell[T]) offset(dim, corner int) int {
	r, g, b := c.r.lo, c.g.lo, c.b.lo
	if corner&bitR != 0 {
		r = c.r.hi
	}
	if corner&bitG != 0 {
		g = c.g.hi
	}
	if corner&bitB != 0 {
		b = c.b.hi
	}
	return (r*dim+g)*dim + b
}
