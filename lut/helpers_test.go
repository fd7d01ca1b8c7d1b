package lut

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(17, 33))
}

func randomGrid(rng *rand.Rand, dim int) *Grid[float64] {
	grid := NewGrid[float64](dim)
	for i := range grid.Data {
		grid.Data[i] = rng.Float64()
	}
	return grid
}

func randomBatch(rng *rand.Rand, n, height, width int, hi float64) *Batch[float64] {
	b := NewBatch[float64](n, height, width)
	for i := range b.Data {
		b.Data[i] = rng.Float64() * hi
	}
	return b
}

func assertClose(t *testing.T, what string, got, want, tol float64) {
	t.Helper()
	assert.InDelta(t, want, got, tol, what)
}
