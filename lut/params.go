package lut

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidArgument marks every rejected call. Nothing is written when it
	// is returned.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrOutOfGrid is returned by Backward when a pixel would scatter into a
	// cell past the edge of the grid.
	ErrOutOfGrid = fmt.Errorf("pixel outside gradient grid: %w", ErrInvalidArgument)
)

// Params describes the shapes shared by the forward and backward kernels.
type Params struct {
	Dim     int     // grid points per axis
	Shift   int     // elements per LUT channel plane, Dim³
	Binsize float64 // grid cell width used by Backward
	Width   int
	Height  int
	Batch   int
}

// DefaultBinsize is the cell width Backward expects for a grid of dim points.
// It sits slightly above 1/(dim-1) so a value of exactly 1.0 still bins into
// the last cell instead of onto the top grid line.
func DefaultBinsize(dim int) float64 {
	return 1.000001 / float64(dim-1)
}

func NewParams(dim, width, height, batch int) Params {
	return Params{
		Dim:     dim,
		Shift:   dim * dim * dim,
		Binsize: DefaultBinsize(dim),
		Width:   width,
		Height:  height,
		Batch:   batch,
	}
}

func (p Params) LUTSize() int {
	return 3 * p.Shift
}

func (p Params) ImageSize() int {
	return p.Batch * 3 * p.Height * p.Width
}

// Pixels is the pixel count across the batch.
func (p Params) Pixels() int {
	return p.Batch * p.Height * p.Width
}

func (p Params) Validate() error {
	switch {
	case p.Dim < 2:
		return fmt.Errorf("grid dimension %d is below 2: %w", p.Dim, ErrInvalidArgument)
	case p.Shift != p.Dim*p.Dim*p.Dim:
		return fmt.Errorf("shift %d does not match dimension %d: %w", p.Shift, p.Dim, ErrInvalidArgument)
	case !(p.Binsize > 0) || math.IsInf(p.Binsize, 0):
		return fmt.Errorf("binsize %v is not a positive finite number: %w", p.Binsize, ErrInvalidArgument)
	case p.Width < 1 || p.Height < 1 || p.Batch < 1:
		return fmt.Errorf("empty image batch %dx%dx%d: %w", p.Batch, p.Width, p.Height, ErrInvalidArgument)
	}

	nominal := 1 / float64(p.Dim-1)
	if math.Abs(p.Binsize-nominal) > 1e-3*nominal {
		logger().Warn("binsize does not match grid dimension",
			"binsize", p.Binsize, "dim", p.Dim, "expected", nominal)
	}
	return nil
}

func checkLen(name string, got, want int) error {
	if got != want {
		return fmt.Errorf("%s holds %d elements, want %d: %w", name, got, want, ErrInvalidArgument)
	}
	return nil
}

func checkFinite[T Float](name string, buf []T) error {
	for i, v := range buf {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%s element %d is not finite: %w", name, i, ErrInvalidArgument)
		}
	}
	return nil
}

// checkBins verifies that every pixel's lower backward index leaves room for
// the upper corner inside the grid.
func checkBins[T Float](src *Batch[T], p Params) error {
	top := float64(p.Dim - 2)
	for px := range src.Pixels() {
		r, g, b := src.Pixel(px)
		for c, v := range [3]T{r, g, b} {
			if f := binIndex(float64(v), p.Binsize); f < 0 || f > top {
				return fmt.Errorf("pixel %d channel %d value %v bins to %v, want [0, %v]: %w",
					px, c, v, f, top, ErrOutOfGrid)
			}
		}
	}
	return nil
}
