package tilemm

import (
	"math"
)

// Float16 represents a 16-bit IEEE 754 floating point number
type Float16 uint16

// Float16 conversion constants
const (
	float16SignMask     = 0x8000
	float16ExponentMask = 0x7C00
	float16MantissaMask = 0x03FF
	float16ExponentBias = 15
	float16MantissaBits = 10
)

// ToFloat32 converts Float16 to float32. The conversion is exact.
func (f Float16) ToFloat32() float32 {
	sign := uint32(f&float16SignMask) << 16
	exponent := uint32(f&float16ExponentMask) >> float16MantissaBits
	mantissa := uint32(f & float16MantissaMask)

	switch exponent {
	case 0:
		// Zero or subnormal: mantissa * 2^-24
		v := float32(mantissa) * (1.0 / (1 << 24))
		if sign != 0 {
			return -v
		}
		return v
	case 0x1F:
		if mantissa == 0 {
			return math.Float32frombits(sign | 0x7F800000) // Infinity
		}
		return math.Float32frombits(sign | 0x7FC00000 | (mantissa << 13)) // NaN
	}

	// Normal number
	return math.Float32frombits(sign | ((exponent + 127 - float16ExponentBias) << 23) | (mantissa << 13))
}

// Float32 is shorthand for ToFloat32.
func (f Float16) Float32() float32 {
	return f.ToFloat32()
}

// IsNaN reports whether f is a NaN.
func (f Float16) IsNaN() bool {
	return f&float16ExponentMask == float16ExponentMask && f&float16MantissaMask != 0
}

// FromFloat32 converts float32 to Float16, rounding to nearest even.
// Values beyond the half range become ±Inf and tiny values become
// subnormals or ±0.
func FromFloat32(f float32) Float16 {
	bits := math.Float32bits(f)
	sign := (bits >> 16) & float16SignMask
	exponent := int((bits >> 23) & 0xFF)
	mantissa := bits & 0x7FFFFF

	if exponent == 0xFF {
		if mantissa == 0 {
			return Float16(sign | float16ExponentMask) // Infinity
		}
		m := mantissa >> 13
		if m == 0 {
			m = 1 // keep a NaN payload so it does not collapse to Inf
		}
		return Float16(sign | float16ExponentMask | m)
	}

	exp := exponent - 127 + float16ExponentBias
	if exp >= 0x1F {
		return Float16(sign | float16ExponentMask)
	}

	if exp <= 0 {
		if exp < -10 {
			return Float16(sign)
		}
		// Subnormal half: restore the implicit bit and shift into place
		mantissa |= 0x800000
		shift := uint32(14 - exp)
		m := mantissa >> shift
		rem := mantissa & (1<<shift - 1)
		half := uint32(1) << (shift - 1)
		if rem > half || (rem == half && m&1 == 1) {
			m++
		}
		return Float16(sign | m)
	}

	// Normal number; a rounding carry may ripple into the exponent, which
	// correctly produces the next binade or Inf.
	h := sign | uint32(exp)<<float16MantissaBits | mantissa>>13
	rem := mantissa & 0x1FFF
	if rem > 0x1000 || (rem == 0x1000 && h&1 == 1) {
		h++
	}
	return Float16(h)
}

// FromFloat64 converts float64 to Float16 through float32.
func FromFloat64(f float64) Float16 {
	return FromFloat32(float32(f))
}

// Float16sFromFloat32 converts a float32 slice to Float16 values.
func Float16sFromFloat32(src []float32) []Float16 {
	dst := make([]Float16, len(src))
	for i, v := range src {
		dst[i] = FromFloat32(v)
	}
	return dst
}

// Float16sToFloat32 converts Float16 values to a float32 slice.
func Float16sToFloat32(src []Float16) []float32 {
	dst := make([]float32, len(src))
	for i, v := range src {
		dst[i] = v.ToFloat32()
	}
	return dst
}
