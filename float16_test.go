package tilemm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloat16FromFloat32(t *testing.T) {
	tests := []struct {
		name string
		in   float32
		want Float16
	}{
		{"Zero", 0, 0x0000},
		{"NegativeZero", float32(math.Copysign(0, -1)), 0x8000},
		{"One", 1, 0x3C00},
		{"MinusTwo", -2, 0xC000},
		{"OneThird", 1.0 / 3.0, 0x3555},
		{"MaxHalf", 65504, 0x7BFF},
		{"OverflowTiesToInf", 65520, 0x7C00},
		{"LargeOverflow", 1e10, 0x7C00},
		{"NegativeInf", float32(math.Inf(-1)), 0xFC00},
		{"SmallestSubnormal", 1.0 / (1 << 24), 0x0001},
		{"HalfSmallestSubnormalTiesToZero", 1.0 / (1 << 25), 0x0000},
		{"RoundsUpToSubnormal", 1.5 / (1 << 25), 0x0001},
		{"SmallestNormal", 1.0 / (1 << 14), 0x0400},
		{"TieToEvenDown", 2049, 0x6800},
		{"TieToEvenUp", 2051, 0x6802},
		{"AboveTieRoundsUp", 2049.5, 0x6801},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromFloat32(tt.in)
			assert.Equal(t, tt.want, got, "FromFloat32(%v) = %#04x, want %#04x", tt.in, uint16(got), uint16(tt.want))
		})
	}
}

func TestFloat16NaN(t *testing.T) {
	h := FromFloat32(float32(math.NaN()))
	assert.True(t, h.IsNaN())
	assert.True(t, math.IsNaN(float64(h.ToFloat32())))

	// A NaN whose payload lives only in the low bits must stay NaN
	low := math.Float32frombits(0x7F800001)
	assert.True(t, FromFloat32(low).IsNaN())
}

func TestFloat16RoundTrip(t *testing.T) {
	// Every half value is exactly representable in float32
	for bits := 0; bits <= 0xFFFF; bits++ {
		h := Float16(bits)
		f := h.ToFloat32()
		if h.IsNaN() {
			require.True(t, math.IsNaN(float64(f)), "bits %#04x", bits)
			continue
		}
		require.Equal(t, h, FromFloat32(f), "bits %#04x -> %v", bits, f)
	}
}

func TestFloat16Subnormals(t *testing.T) {
	assert.Equal(t, float32(1.0/(1<<24)), Float16(0x0001).ToFloat32())
	assert.Equal(t, float32(1023.0/(1<<24)), Float16(0x03FF).ToFloat32())
	assert.Equal(t, float32(-1.0/(1<<24)), Float16(0x8001).ToFloat32())
}

func TestFloat16Slices(t *testing.T) {
	in := []float32{-3, -1, 0, 0.5, 2, 1000}
	half := Float16sFromFloat32(in)
	require.Len(t, half, len(in))
	assert.Equal(t, in, Float16sToFloat32(half))
	assert.Equal(t, Float16(0x3C00), FromFloat64(1))
}
