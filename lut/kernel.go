package lut

import (
	"unsafe"

	"lutgrad/parallel"
)

// Forward transforms every pixel of image through lut and writes the result to
// output. Pixels are independent, so the batch is split across the pool with
// no synchronisation. A nil pool runs on the calling goroutine.
func Forward[T Float](m Method, lut, image, output []T, p Params, pool *parallel.Pool) error {
	eval, err := evaluator[T](m)
	if err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}
	if err := checkLen("lut", len(lut), p.LUTSize()); err != nil {
		return err
	}
	if err := checkLen("image", len(image), p.ImageSize()); err != nil {
		return err
	}
	if err := checkLen("output", len(output), p.ImageSize()); err != nil {
		return err
	}
	if err := checkFinite("image", image); err != nil {
		return err
	}

	grid := &Grid[T]{Dim: p.Dim, Data: lut}
	src := &Batch[T]{N: p.Batch, Height: p.Height, Width: p.Width, Data: image}
	dst := &Batch[T]{N: p.Batch, Height: p.Height, Width: p.Width, Data: output}

	total := p.Pixels()
	logger().Debug("lut forward", "method", m, "dim", p.Dim, "pixels", total, "workers", pool.Parts(total))

	pool.Split(total, func(_, lo, hi int) {
		for px := lo; px < hi; px++ {
			r, g, b := src.Pixel(px)
			or, og, ob := eval(grid, r, g, b)
			dst.SetPixel(px, or, og, ob)
		}
	})
	return nil
}

// Backward adds the LUT gradient of every pixel to lutGrad, which the caller
// zeroes beforehand. Corner weights are always trilinear, whichever method
// produced the output. Pixels sharing a corner contend for the same cell, so
// parallel runs scatter into per-worker accumulators that are summed into
// lutGrad afterwards.
func Backward[T Float](image, outGrad, lutGrad []T, p Params, pool *parallel.Pool) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := checkLen("image", len(image), p.ImageSize()); err != nil {
		return err
	}
	if err := checkLen("output gradient", len(outGrad), p.ImageSize()); err != nil {
		return err
	}
	if err := checkLen("lut gradient", len(lutGrad), p.LUTSize()); err != nil {
		return err
	}
	if err := checkFinite("image", image); err != nil {
		return err
	}
	if err := checkFinite("output gradient", outGrad); err != nil {
		return err
	}

	src := &Batch[T]{N: p.Batch, Height: p.Height, Width: p.Width, Data: image}
	grad := &Batch[T]{N: p.Batch, Height: p.Height, Width: p.Width, Data: outGrad}
	if err := checkBins(src, p); err != nil {
		return err
	}

	total := p.Pixels()
	parts := accumulatorParts[T](pool.Parts(total), len(lutGrad))
	logger().Debug("lut backward", "dim", p.Dim, "pixels", total, "workers", parts)

	if parts == 1 {
		scatter(lutGrad, src, grad, p, 0, total)
		return nil
	}

	chunk := (total + parts - 1) / parts
	private := make([][]T, parts)
	pool.Split(parts, func(_, lo, hi int) {
		for w := lo; w < hi; w++ {
			acc := make([]T, len(lutGrad))
			scatter(acc, src, grad, p, w*chunk, min((w+1)*chunk, total))
			private[w] = acc
		}
	})

	pool.Split(len(lutGrad), func(_, lo, hi int) {
		for _, acc := range private {
			for i := lo; i < hi; i++ {
				lutGrad[i] += acc[i]
			}
		}
	})
	return nil
}

// maxAccumulatorBytes bounds the memory held by Backward's private
// accumulators across all workers.
var maxAccumulatorBytes = 512 << 20

// accumulatorParts caps parts so that parts private copies of a gradient of
// cells elements fit in maxAccumulatorBytes. It never returns less than 1.
func accumulatorParts[T Float](parts, cells int) int {
	size := cells * int(unsafe.Sizeof(T(0)))
	return max(1, min(parts, maxAccumulatorBytes/max(size, 1)))
}

func scatter[T Float](acc []T, src, grad *Batch[T], p Params, lo, hi int) {
	for px := lo; px < hi; px++ {
		r, g, b := src.Pixel(px)
		gr, gg, gb := grad.Pixel(px)
		c := backwardCell(r, g, b, p.Binsize)
		w := trilinearWeights(c.r.d, c.g.d, c.b.d)

		for corner, wc := range w {
			i := c.offset(p.Dim, corner)
			acc[i] += wc * gr
			acc[i+p.Shift] += wc * gg
			acc[i+2*p.Shift] += wc * gb
		}
	}
}

// Apply allocates an output batch and runs Forward over it.
func Apply[T Float](m Method, grid *Grid[T], src *Batch[T], pool *parallel.Pool) (*Batch[T], error) {
	dst := NewBatch[T](src.N, src.Height, src.Width)
	p := NewParams(grid.Dim, src.Width, src.Height, src.N)
	if err := Forward(m, grid.Data, src.Data, dst.Data, p, pool); err != nil {
		return nil, err
	}
	return dst, nil
}
