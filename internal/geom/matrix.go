package geom

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Class classifies an affine transform so the rendering context and the
// edge builder can take fast paths. Ordering matters: later classes are
// supersets of what earlier ones can express, which is what lets
// higher-level code compare classes with < to pick "at least as general
// as" fast paths: identity < translate < scale < swap < affine < invalid.
type Class uint8

const (
	ClassIdentity Class = iota
	ClassTranslate
	ClassScale
	ClassSwap
	ClassAffine
	ClassInvalid
)

// Matrix is a 2D affine transform, stored as the row-major 2x3 matrix
//
//	| a  b  c |
//	| d  e  f |
//
// backed by golang.org/x/image/math/f64.Aff3, whose element order
// ([6]float64{a, b, c, d, e, f}) matches this layout exactly.
type Matrix struct {
	m f64.Aff3
}

func New(a, b, c, d, e, f float64) Matrix {
	return Matrix{m: f64.Aff3{a, b, c, d, e, f}}
}

func Identity() Matrix { return New(1, 0, 0, 0, 1, 0) }

func Translate(x, y float64) Matrix { return New(1, 0, x, 0, 1, y) }

func Scale(x, y float64) Matrix { return New(x, 0, 0, 0, y, 0) }

func Rotate(radians float64) Matrix {
	s, c := math.Sincos(radians)
	return New(c, -s, 0, s, c, 0)
}

func Shear(x, y float64) Matrix { return New(1, x, 0, y, 1, 0) }

func (m Matrix) A() float64 { return m.m[0] }
func (m Matrix) B() float64 { return m.m[1] }
func (m Matrix) C() float64 { return m.m[2] }
func (m Matrix) D() float64 { return m.m[3] }
func (m Matrix) E() float64 { return m.m[4] }
func (m Matrix) F() float64 { return m.m[5] }

// Mul returns m * other (other applied first, then m); this is the
// composition rule used to fold a meta transform with a user transform
// into a single final transform.
func (m Matrix) Mul(o Matrix) Matrix {
	return New(
		m.A()*o.A()+m.B()*o.D(),
		m.A()*o.B()+m.B()*o.E(),
		m.A()*o.C()+m.B()*o.F()+m.C(),
		m.D()*o.A()+m.E()*o.D(),
		m.D()*o.B()+m.E()*o.E(),
		m.D()*o.C()+m.E()*o.F()+m.F(),
	)
}

func (m Matrix) Apply(p Point) Point {
	return Point{
		X: m.A()*p.X + m.B()*p.Y + m.C(),
		Y: m.D()*p.X + m.E()*p.Y + m.F(),
	}
}

// Invert returns the inverse transform and whether the matrix was
// invertible (determinant non-zero).
func (m Matrix) Invert() (Matrix, bool) {
	det := m.A()*m.E() - m.B()*m.D()
	if det == 0 {
		return Identity(), false
	}
	inv := 1 / det
	a := m.E() * inv
	b := -m.B() * inv
	d := -m.D() * inv
	e := m.A() * inv
	c := -(a*m.C() + b*m.F())
	f := -(d*m.C() + e*m.F())
	return New(a, b, c, d, e, f), true
}

const epsilon = 1e-9

func nearZero(v float64) bool { return math.Abs(v) < epsilon }
func nearOne(v float64) bool  { return math.Abs(v-1) < epsilon }

// Classify computes the fast-path class of the transform. This is used
// both to pick a cheap code path (e.g. integer translation) and should be
// recomputed any time the transform changes, e.g. after SetTransform or
// after the meta/user split is recombined into a new final transform.
func Classify(m Matrix) Class {
	if !isFinite(m) {
		return ClassInvalid
	}
	if !nearZero(m.B()) && !nearZero(m.D()) {
		// Off-diagonal terms both non-zero and not a pure swap: general affine
		// unless it happens to be a swap (b,d non-zero, a,e zero).
		if nearZero(m.A()) && nearZero(m.E()) {
			return ClassSwap
		}
		return ClassAffine
	}
	if !nearZero(m.B()) || !nearZero(m.D()) {
		return ClassAffine
	}
	// Diagonal-only (b == d == 0).
	if nearOne(m.A()) && nearOne(m.E()) {
		if nearZero(m.C()) && nearZero(m.F()) {
			return ClassIdentity
		}
		return ClassTranslate
	}
	return ClassScale
}

func isFinite(m Matrix) bool {
	for _, v := range m.m {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// IsIntegerTranslation reports whether m is a pure translation by integer
// amounts, which lets callers stay entirely in integer fixed-point
// arithmetic instead of rounding fractional offsets per pixel.
func IsIntegerTranslation(m Matrix) bool {
	if Classify(m) > ClassTranslate {
		return false
	}
	return m.C() == math.Trunc(m.C()) && m.F() == math.Trunc(m.F())
}
