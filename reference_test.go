package tilemm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferencesAgree(t *testing.T) {
	a := mustIntMatrix[float32](t, 13, 21, 1)
	b := mustIntMatrix[float32](t, 21, 9, 2)

	naive, err := NaiveReference(a, b)
	require.NoError(t, err)
	gonum, err := GonumReference(a, b)
	require.NoError(t, err)
	blas32, err := BLASReference(a, b)
	require.NoError(t, err)

	assert.Equal(t, naive, gonum)
	require.Len(t, blas32, len(naive))
	for i := range naive {
		assert.Equal(t, float32(naive[i]), blas32[i], "index %d", i)
	}
}

func TestNaiveReferenceKnownValues(t *testing.T) {
	a, err := MatrixFrom(2, 3, []float32{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)
	b, err := MatrixFrom(3, 2, []float32{7, 8, 9, 10, 11, 12})
	require.NoError(t, err)

	got, err := NaiveReference(a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{58, 64, 139, 154}, got)

	// Strided views are read through their strides
	got, err = GonumReference(b.Transpose(), a.Transpose())
	require.NoError(t, err)
	assert.Equal(t, []float64{58, 139, 64, 154}, got)
}

func TestReferenceShapeMismatch(t *testing.T) {
	a := NewMatrix[Float16](2, 3)
	b := NewMatrix[Float16](4, 2)

	_, err := NaiveReference(a, b)
	assert.True(t, IsShapeMismatch(err))
	_, err = GonumReference(a, b)
	assert.True(t, IsShapeMismatch(err))
	_, err = BLASReference(a, b)
	assert.True(t, IsShapeMismatch(err))
}

func TestReferenceZeroSizes(t *testing.T) {
	got, err := GonumReference(NewMatrix[float32](3, 0), NewMatrix[float32](0, 2))
	require.NoError(t, err)
	assert.Equal(t, make([]float64, 6), got)

	got32, err := BLASReference(NewMatrix[float32](0, 4), NewMatrix[float32](4, 2))
	require.NoError(t, err)
	assert.Empty(t, got32)
}
