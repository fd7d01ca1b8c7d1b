package lut

// Grid is a view over a LUT buffer laid out as [3][Dim][Dim][Dim] in row-major
// order: channel, then red, green and blue index.
type Grid[T Float] struct {
	Dim  int
	Data []T
}

func NewGrid[T Float](dim int) *Grid[T] {
	return &Grid[T]{
		Dim:  dim,
		Data: make([]T, 3*dim*dim*dim),
	}
}

// Identity returns a grid that maps every lattice point onto itself.
func Identity[T Float](dim int) *Grid[T] {
	return Sample(dim, func(r, g, b T) (T, T, T) { return r, g, b })
}

// Sample evaluates fn at every lattice point. fn receives normalised
// coordinates in [0, 1].
func Sample[T Float](dim int, fn func(r, g, b T) (T, T, T)) *Grid[T] {
	grid := NewGrid[T](dim)
	scale := T(dim - 1)
	for i := range dim {
		for j := range dim {
			for k := range dim {
				r, g, b := fn(T(i)/scale, T(j)/scale, T(k)/scale)
				grid.Set(i, j, k, r, g, b)
			}
		}
	}
	return grid
}

// Shift is the number of elements in one channel plane.
func (g *Grid[T]) Shift() int {
	return g.Dim * g.Dim * g.Dim
}

// Index is the offset of lattice point (r, g, b) inside a channel plane.
func (g *Grid[T]) Index(r, gi, b int) int {
	return (r*g.Dim+gi)*g.Dim + b
}

func (g *Grid[T]) At(c, r, gi, b int) T {
	return g.Data[c*g.Shift()+g.Index(r, gi, b)]
}

// Set stores the three output channels of lattice point (r, g, b).
func (g *Grid[T]) Set(r, gi, b int, vr, vg, vb T) {
	i, shift := g.Index(r, gi, b), g.Shift()
	g.Data[i] = vr
	g.Data[i+shift] = vg
	g.Data[i+2*shift] = vb
}
