package tilemm

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// RandomMatrix generates a deterministic rows×cols matrix of standard
// normal samples rounded to the nearest integer (ties to even). Integer
// values keep small products exact in both Float16 and float32, so
// results can be compared without rounding ambiguity.
//
// Example:
//
//	a := tilemm.RandomMatrix[tilemm.Float16](16, 16, 0)
func RandomMatrix[T Element](rows, cols int, seed uint64) Matrix[T] {
	rng := newRand(seed)
	m := NewMatrix[T](rows, cols)
	for i := range m.Data {
		m.Data[i] = narrow[T](float32(math.RoundToEven(rng.NormFloat64())))
	}
	return m
}

// RandomIntMatrix generates a deterministic rows×cols matrix with integer
// entries drawn uniformly from [lo, hi].
//
// Example:
//
//	b := tilemm.RandomIntMatrix[float32](19, 31, -4, 4, 42)
func RandomIntMatrix[T Element](rows, cols, lo, hi int, seed uint64) (Matrix[T], error) {
	if rows < 0 || cols < 0 {
		return Matrix[T]{}, NewInvalidArgError("RandomIntMatrix",
			fmt.Sprintf("negative dimensions %dx%d", rows, cols))
	}
	if lo > hi {
		return Matrix[T]{}, NewInvalidArgError("RandomIntMatrix",
			fmt.Sprintf("empty range [%d, %d]", lo, hi))
	}
	rng := newRand(seed)
	m := NewMatrix[T](rows, cols)
	for i := range m.Data {
		m.Data[i] = narrow[T](float32(lo + rng.IntN(hi-lo+1)))
	}
	return m, nil
}

// RandomUniformMatrix generates a deterministic rows×cols matrix with
// values uniform in [-1, 1). Products of these are not exact in reduced
// precision and need a tolerance to compare.
func RandomUniformMatrix[T Element](rows, cols int, seed uint64) Matrix[T] {
	rng := newRand(seed)
	m := NewMatrix[T](rows, cols)
	for i := range m.Data {
		m.Data[i] = narrow[T](float32(rng.Float64()*2 - 1))
	}
	return m
}

func newRand(seed uint64) *rand.Rand {
	// PCG parameters from the seed; the constant decorrelates the streams
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
