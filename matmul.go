package tilemm

import (
	"fmt"
)

// Grid returns the launch grid covering an m×n output with one instance
// per BlockM×BlockN tile.
func Grid(m, n int) Dim3 {
	return Dim3{X: cdiv(m, BlockM) * cdiv(n, BlockN), Y: 1, Z: 1}
}

// MatMul computes C = A·B on the default context.
//
// A must be M×K and B must be K×N, both contiguous row-major. The result is
// a new M×N matrix of the same element type. Accumulation is performed in
// float32; for Float16 inputs the final store rounds each element back to
// half precision.
//
// Example:
//
//	c, err := tilemm.MatMul(a, b)
//	if tilemm.IsShapeMismatch(err) {
//		// a.Cols != b.Rows
//	}
func MatMul[T Element](a, b Matrix[T]) (Matrix[T], error) {
	return MatMulContext(defaultContext, a, b)
}

// MatMulContext computes C = A·B on ctx. See MatMul.
func MatMulContext[T Element](ctx *Context, a, b Matrix[T]) (Matrix[T], error) {
	if ctx == nil {
		ctx = defaultContext
	}
	return matMul(ctx, a, b)
}

// launcher runs a kernel once per pid of a grid. *Context implements it.
type launcher interface {
	Launch(grid Dim3, fn KernelFunc) error
}

func matMul[T Element](l launcher, a, b Matrix[T]) (Matrix[T], error) {
	if a.Cols != b.Rows {
		return Matrix[T]{}, NewShapeMismatchError("MatMul",
			fmt.Sprintf("A is %dx%d but B is %dx%d", a.Rows, a.Cols, b.Rows, b.Cols))
	}
	if err := checkLayout("A", a); err != nil {
		return Matrix[T]{}, err
	}
	if err := checkLayout("B", b); err != nil {
		return Matrix[T]{}, err
	}

	m, k := a.Shape()
	_, n := b.Shape()
	c := NewMatrix[T](m, n)
	if m == 0 || n == 0 {
		return c, nil
	}

	err := l.Launch(Grid(m, n), func(pid int) {
		matmulTile(a, b, c, m, n, k, pid)
	})
	if err != nil {
		return Matrix[T]{}, NewLaunchFailureError("MatMul",
			fmt.Sprintf("launch of %dx%dx%d product failed", m, n, k), err)
	}
	return c, nil
}

// checkLayout rejects operands the kernel cannot address correctly.
func checkLayout[T Element](name string, x Matrix[T]) error {
	if x.Rows < 0 || x.Cols < 0 {
		return NewInvalidArgError("MatMul",
			fmt.Sprintf("%s has negative dimensions %dx%d", name, x.Rows, x.Cols))
	}
	if !x.IsContiguous() {
		return NewLayoutViolationError("MatMul",
			fmt.Sprintf("%s is not contiguous row-major: %v with %d elements", name, x, len(x.Data)))
	}
	return nil
}
