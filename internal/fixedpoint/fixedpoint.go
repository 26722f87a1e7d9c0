// Package fixedpoint implements the 256x (shift-8) fixed-point coordinate
// space used throughout the rasterization core.
//
// A8 anti-aliasing needs one sub-pixel bit per coverage level (0..255), so
// every user-space coordinate that reaches the edge builder or the analytic
// rasterizer is first scaled by 1<<Shift. Keeping the scale as an untyped
// constant lets every package multiply/divide without a conversion dance.
package fixedpoint

import "golang.org/x/exp/constraints"

// Shift is the number of fractional bits carried by fixed-point coordinates.
// 256 = 1<<8 subdivisions per pixel matches an A8 target's component depth,
// which is what bounds sub-pixel arithmetic to fit in a 32-bit multiply
// (see the rendering-target info table in the pixel-format package).
const Shift = 8

// Scale is 1<<Shift, the number of fixed-point units per pixel.
const Scale = 1 << Shift

// Mask extracts the fractional part of a fixed-point value.
const Mask = Scale - 1

// Int is the integer type backing fixed-point coordinates. int32 gives
// +-8M pixels of range at Shift=8, comfortably larger than any real target.
type Int = int32

// FromFloat converts a floating point coordinate to fixed-point, rounding
// to the nearest representable value (ties away from zero, matching the
// source engine's rounding for pixel-center sampling).
func FromFloat(v float64) Int {
	if v >= 0 {
		return Int(v*Scale + 0.5)
	}
	return Int(v*Scale - 0.5)
}

// ToFloat converts a fixed-point coordinate back to floating point.
func ToFloat(v Int) float64 {
	return float64(v) / Scale
}

// Floor returns the integer pixel (floor) containing fixed-point value v.
func Floor[T constraints.Integer](v T) T {
	return v >> Shift
}

// Frac returns the fractional sub-pixel part of v, in [0, Scale).
func Frac[T constraints.Integer](v T) T {
	return v & Mask
}

// Ceil returns the smallest integer pixel index >= v (in fixed-point units,
// result is an integer pixel index, not fixed-point).
func Ceil[T constraints.Integer](v T) T {
	return (v + Mask) >> Shift
}
