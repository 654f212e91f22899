// Package tilemm reference implementations for verification
package tilemm

import (
	"fmt"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"
	"gonum.org/v1/gonum/mat"
)

// The reference products below return row-major M×N results and only
// require A.Cols == B.Rows. They accept any strides, so they also serve
// to check the kernel against transposed views copied to contiguous form.

// NaiveReference computes A·B with the textbook triple loop in float64.
func NaiveReference[T Element](a, b Matrix[T]) ([]float64, error) {
	if err := checkReferenceShapes("NaiveReference", a, b); err != nil {
		return nil, err
	}
	m, k, n := a.Rows, a.Cols, b.Cols
	c := make([]float64, m*n)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			var sum float64
			for l := 0; l < k; l++ {
				sum += float64(widen(a.At(i, l))) * float64(widen(b.At(l, j)))
			}
			c[i*n+j] = sum
		}
	}
	return c, nil
}

// GonumReference computes A·B in float64 with gonum's mat.Dense.
func GonumReference[T Element](a, b Matrix[T]) ([]float64, error) {
	if err := checkReferenceShapes("GonumReference", a, b); err != nil {
		return nil, err
	}
	m, k, n := a.Rows, a.Cols, b.Cols
	// mat.Dense panics on zero-sized matrices.
	if m == 0 || n == 0 || k == 0 {
		return make([]float64, m*n), nil
	}

	da := mat.NewDense(m, k, a.Float64s())
	db := mat.NewDense(k, n, b.Float64s())
	var dc mat.Dense
	dc.Mul(da, db)

	raw := dc.RawMatrix()
	if raw.Stride == n {
		return raw.Data[:m*n], nil
	}
	out := make([]float64, 0, m*n)
	for i := 0; i < m; i++ {
		out = append(out, raw.Data[i*raw.Stride:i*raw.Stride+n]...)
	}
	return out, nil
}

// BLASReference computes A·B in float32 with gonum's blas32 Gemm.
func BLASReference[T Element](a, b Matrix[T]) ([]float32, error) {
	if err := checkReferenceShapes("BLASReference", a, b); err != nil {
		return nil, err
	}
	m, k, n := a.Rows, a.Cols, b.Cols
	c := make([]float32, m*n)
	if m == 0 || n == 0 || k == 0 {
		return c, nil
	}

	ga := blas32.General{Rows: m, Cols: k, Data: a.Float32s(), Stride: k}
	gb := blas32.General{Rows: k, Cols: n, Data: b.Float32s(), Stride: n}
	gc := blas32.General{Rows: m, Cols: n, Data: c, Stride: n}
	blas32.Gemm(blas.NoTrans, blas.NoTrans, 1, ga, gb, 0, gc)
	return c, nil
}

func checkReferenceShapes[T Element](op string, a, b Matrix[T]) error {
	if a.Cols != b.Rows {
		return NewShapeMismatchError(op,
			fmt.Sprintf("A is %dx%d but B is %dx%d", a.Rows, a.Cols, b.Rows, b.Cols))
	}
	if a.Rows < 0 || a.Cols < 0 || b.Cols < 0 {
		return NewInvalidArgError(op, "negative dimensions")
	}
	return nil
}
