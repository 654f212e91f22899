package tilemm

import (
	"fmt"
)

// Element is the set of element types a Matrix can hold. Accumulation is
// always performed in float32 regardless of the element type.
type Element interface {
	Float16 | float32
}

// Matrix is a 2-D view over a flat slice. The element at (i, j) lives at
// Data[i*RowStride + j*ColStride].
type Matrix[T Element] struct {
	Data      []T
	Rows      int
	Cols      int
	RowStride int
	ColStride int
}

// NewMatrix allocates a zeroed rows×cols matrix in contiguous row-major order.
func NewMatrix[T Element](rows, cols int) Matrix[T] {
	return Matrix[T]{
		Data:      make([]T, rows*cols),
		Rows:      rows,
		Cols:      cols,
		RowStride: cols,
		ColStride: 1,
	}
}

// MatrixFrom wraps data as a contiguous row-major rows×cols matrix.
// The slice is not copied.
//
// Example:
//
//	a, err := tilemm.MatrixFrom(2, 3, []float32{1, 2, 3, 4, 5, 6})
func MatrixFrom[T Element](rows, cols int, data []T) (Matrix[T], error) {
	if rows < 0 || cols < 0 {
		return Matrix[T]{}, NewInvalidArgError("MatrixFrom",
			fmt.Sprintf("negative dimensions %dx%d", rows, cols))
	}
	if len(data) != rows*cols {
		return Matrix[T]{}, NewInvalidArgError("MatrixFrom",
			fmt.Sprintf("data has %d elements, want %d for %dx%d", len(data), rows*cols, rows, cols))
	}
	return Matrix[T]{
		Data:      data,
		Rows:      rows,
		Cols:      cols,
		RowStride: cols,
		ColStride: 1,
	}, nil
}

// MatrixFromFloat32 builds a row-major matrix by narrowing float32 values
// to T.
func MatrixFromFloat32[T Element](rows, cols int, values []float32) (Matrix[T], error) {
	data := make([]T, len(values))
	for i, v := range values {
		data[i] = narrow[T](v)
	}
	return MatrixFrom(rows, cols, data)
}

// At returns the element at row i, column j.
func (m Matrix[T]) At(i, j int) T {
	return m.Data[i*m.RowStride+j*m.ColStride]
}

// Set stores v at row i, column j.
func (m Matrix[T]) Set(i, j int, v T) {
	m.Data[i*m.RowStride+j*m.ColStride] = v
}

// Shape returns (Rows, Cols).
func (m Matrix[T]) Shape() (int, int) {
	return m.Rows, m.Cols
}

// Transpose returns the transpose as a view sharing Data. The view is generally
// not contiguous.
func (m Matrix[T]) Transpose() Matrix[T] {
	return Matrix[T]{
		Data:      m.Data,
		Rows:      m.Cols,
		Cols:      m.Rows,
		RowStride: m.ColStride,
		ColStride: m.RowStride,
	}
}

// IsContiguous reports whether m is stored densely in row-major order.
// Strides of dimensions with extent 1 are never dereferenced and are
// ignored.
func (m Matrix[T]) IsContiguous() bool {
	if m.Cols > 1 && m.ColStride != 1 {
		return false
	}
	if m.Rows > 1 && m.RowStride != m.Cols {
		return false
	}
	// Rows*Cols may overflow; compare against the rows Data can hold.
	if m.Cols > 0 && m.Rows > len(m.Data)/m.Cols {
		return false
	}
	return true
}

// Float32s returns a row-major float32 copy of m.
func (m Matrix[T]) Float32s() []float32 {
	out := make([]float32, 0, m.Rows*m.Cols)
	for i := 0; i < m.Rows; i++ {
		for j := 0; j < m.Cols; j++ {
			out = append(out, widen(m.At(i, j)))
		}
	}
	return out
}

// Float64s returns a row-major float64 copy of m.
func (m Matrix[T]) Float64s() []float64 {
	out := make([]float64, 0, m.Rows*m.Cols)
	for i := 0; i < m.Rows; i++ {
		for j := 0; j < m.Cols; j++ {
			out = append(out, float64(widen(m.At(i, j))))
		}
	}
	return out
}

// String formats the matrix shape and strides.
func (m Matrix[T]) String() string {
	return fmt.Sprintf("Matrix[%s](%dx%d, strides=(%d,%d))",
		elementName[T](), m.Rows, m.Cols, m.RowStride, m.ColStride)
}

// widen converts an element to the float32 accumulation type.
func widen[T Element](v T) float32 {
	switch x := any(v).(type) {
	case Float16:
		return x.ToFloat32()
	case float32:
		return x
	}
	return 0
}

// narrow converts an accumulated float32 back to the element type. For
// Float16 this rounds to nearest even and loses precision.
func narrow[T Element](v float32) T {
	var out T
	switch p := any(&out).(type) {
	case *Float16:
		*p = FromFloat32(v)
	case *float32:
		*p = v
	}
	return out
}

func elementName[T Element]() string {
	var zero T
	switch any(zero).(type) {
	case Float16:
		return "float16"
	default:
		return "float32"
	}
}
