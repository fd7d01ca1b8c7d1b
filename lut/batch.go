package lut

// Batch is a view over planar image data shaped [N][3][Height][Width].
type Batch[T Float] struct {
	N      int
	Height int
	Width  int
	Data   []T
}

func NewBatch[T Float](n, height, width int) *Batch[T] {
	return &Batch[T]{
		N:      n,
		Height: height,
		Width:  width,
		Data:   make([]T, n*3*height*width),
	}
}

// PlaneSize is the number of elements in one channel of one image.
func (b *Batch[T]) PlaneSize() int {
	return b.Height * b.Width
}

// Pixels is the pixel count across the whole batch.
func (b *Batch[T]) Pixels() int {
	return b.N * b.PlaneSize()
}

// offset maps a batch-wide pixel ordinal to the index of its red sample.
func (b *Batch[T]) offset(p int) (int, int) {
	plane := b.PlaneSize()
	n, i := p/plane, p%plane
	return n*3*plane + i, plane
}

// Pixel returns the channels of the p-th pixel in batch scan order.
func (b *Batch[T]) Pixel(p int) (T, T, T) {
	i, plane := b.offset(p)
	return b.Data[i], b.Data[i+plane], b.Data[i+2*plane]
}

func (b *Batch[T]) SetPixel(p int, r, g, bl T) {
	i, plane := b.offset(p)
	b.Data[i] = r
	b.Data[i+plane] = g
	b.Data[i+2*plane] = bl
}

// At returns channel c of the pixel at (x, y) in image n.
func (b *Batch[T]) At(n, c, y, x int) T {
	return b.Data[((n*3+c)*b.Height+y)*b.Width+x]
}

func (b *Batch[T]) Set(n, c, y, x int, v T) {
	b.Data[((n*3+c)*b.Height+y)*b.Width+x] = v
}
