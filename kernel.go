package tilemm

// Tile kernel for C = A·B.
//
// One instance computes one BlockM×BlockN tile of C. Instances share no
// mutable state: A and B are only read and each C element belongs to
// exactly one tile, so instances may run in any order or concurrently.
//
// The per-instance scratch (staged A and B slices plus the accumulator) is
// held in fixed-size arrays so it stays on the goroutine stack, playing the
// role of on-chip shared memory.

// matmulTile computes the tile of C selected by pid.
//
// m, n and k are the global problem dimensions; pid must lie in
// [0, cdiv(m, BlockM)*cdiv(n, BlockN)). Inputs are assumed valid; the
// launch driver checks shapes and layouts before dispatch.
func matmulTile[T Element](a, b, c Matrix[T], m, n, k, pid int) {
	numTilesN := cdiv(n, BlockN)
	tileRow, tileCol := pid/numTilesN, pid%numTilesN

	// Load offsets wrap modulo the matrix extent. Lanes past the edge of a
	// partial tile read valid (repeated) rows and columns whose results are
	// dropped by the store mask below.
	var offsAM [BlockM]int
	for i := range offsAM {
		offsAM[i] = (tileRow*BlockM + i) % m
	}
	var offsBN [BlockN]int
	for j := range offsBN {
		offsBN[j] = (tileCol*BlockN + j) % n
	}

	var (
		aTile [BlockM][BlockK]float32
		bTile [BlockK][BlockN]float32
		acc   [BlockM][BlockN]float32
	)

	// aK and bK are the K-step base offsets into A and B, advanced by
	// BlockK along each matrix's K stride after every step.
	aK, bK := 0, 0
	for step := 0; step < cdiv(k, BlockK); step++ {
		remaining := k - step*BlockK

		loadTileA(&aTile, a, &offsAM, aK, remaining)
		loadTileB(&bTile, b, &offsBN, bK, remaining)
		dotAccumulate(&acc, &aTile, &bTile)

		aK += BlockK * a.ColStride
		bK += BlockK * b.RowStride
	}

	storeTile(c, &acc, tileRow*BlockM, tileCol*BlockN, m, n)
}

// loadTileA stages a BlockM×BlockK slice of A. K lanes at or beyond
// remaining are zero-filled instead of read.
func loadTileA[T Element](dst *[BlockM][BlockK]float32, a Matrix[T], rows *[BlockM]int, kBase, remaining int) {
	for i := 0; i < BlockM; i++ {
		base := rows[i]*a.RowStride + kBase
		for kk := 0; kk < BlockK; kk++ {
			if kk < remaining {
				dst[i][kk] = widen(a.Data[base+kk*a.ColStride])
			} else {
				dst[i][kk] = 0
			}
		}
	}
}

// loadTileB stages a BlockK×BlockN slice of B with the same K mask as
// loadTileA.
func loadTileB[T Element](dst *[BlockK][BlockN]float32, b Matrix[T], cols *[BlockN]int, kBase, remaining int) {
	for kk := 0; kk < BlockK; kk++ {
		if kk >= remaining {
			dst[kk] = [BlockN]float32{}
			continue
		}
		base := kBase + kk*b.RowStride
		for j := 0; j < BlockN; j++ {
			dst[kk][j] = widen(b.Data[base+cols[j]*b.ColStride])
		}
	}
}

// dotAccumulate adds the BlockM×BlockK by BlockK×BlockN product into acc.
func dotAccumulate(acc *[BlockM][BlockN]float32, a *[BlockM][BlockK]float32, b *[BlockK][BlockN]float32) {
	for i := 0; i < BlockM; i++ {
		row := &acc[i]
		for p := 0; p < BlockK; p++ {
			av := a[i][p]
			bp := &b[p]
			for j := 0; j < BlockN; j++ {
				row[j] += av * bp[j]
			}
		}
	}
}

// storeTile writes acc to C at (row0, col0) narrowing to T. Lanes outside
// the m×n output are silently dropped.
func storeTile[T Element](c Matrix[T], acc *[BlockM][BlockN]float32, row0, col0, m, n int) {
	for i := 0; i < BlockM; i++ {
		cm := row0 + i
		if cm >= m {
			return
		}
		for j := 0; j < BlockN; j++ {
			cn := col0 + j
			if cn >= n {
				break
			}
			c.Data[cm*c.RowStride+cn*c.ColStride] = narrow[T](acc[i][j])
		}
	}
}
