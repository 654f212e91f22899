// Copyright ©2024 The GUDA Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tilemm computes dense matrix products C = A·B with a custom tiled
// kernel launched as a grid of independent tile instances on the CPU device.
//
// Each kernel instance owns one BlockM×BlockN tile of C. It walks the shared
// K dimension in BlockK steps, staging masked slices of A and B and
// accumulating their product in float32, then stores the tile through a
// boundary mask so that matrices of any shape are handled.
//
// Inputs may be Float16 (IEEE half precision) or float32. Accumulation is
// always float32 and the final store narrows back to the input element type.
//
// Example usage:
//
//	a := tilemm.RandomMatrix[tilemm.Float16](16, 16, 0)
//	b := tilemm.RandomMatrix[tilemm.Float16](16, 31, 1)
//
//	c, err := tilemm.MatMul(a, b)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	want, _ := tilemm.GonumReference(a, b)
//	res := tilemm.VerifyMatrix(want, c, tilemm.HalfTolerance())
//	fmt.Println(res)
package tilemm
