package lut

// trilinearWeights returns one weight per cube corner, indexed by corner bits.
// Each weight is the product of d or 1-d along every axis.
func trilinearWeights[T Float](rd, gd, bd T) [8]T {
	var w [8]T
	for corner := range w {
		wr, wg, wb := 1-rd, 1-gd, 1-bd
		if corner&bitR != 0 {
			wr = rd
		}
		if corner&bitG != 0 {
			wg = gd
		}
		if corner&bitB != 0 {
			wb = bd
		}
		w[corner] = wr * wg * wb
	}
	return w
}

func trilinearPixel[T Float](grid *Grid[T], r, g, b T) (T, T, T) {
	c := forwardCell(r, g, b, grid.Dim)
	w := trilinearWeights(c.r.d, c.g.d, c.b.d)
	shift := grid.Shift()

	var or, og, ob T
	for corner, wc := range w {
		i := c.offset(grid.Dim, corner)
		or += wc * grid.Data[i]
		og += wc * grid.Data[i+shift]
		ob += wc * grid.Data[i+2*shift]
	}
	return or, og, ob
}
