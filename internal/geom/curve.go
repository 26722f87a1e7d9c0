package geom

import (
	"math"
	"sort"
)

// maxFlattenDepth bounds the adaptive-subdivision recursion so a
// numerically degenerate curve can't blow the stack; past this depth the
// curve is accepted as flat regardless.
const maxFlattenDepth = 32

// FlattenQuad adaptively subdivides a quadratic Bezier (p0, p1, p2) into
// line segments within the given tolerance and appends the resulting
// points (excluding p0, including p2) to dst.
//
// A quad is flat enough when cross(p2-p0, p1-p0)^2 <= tolerance^2 *
// |p2-p0|^2: the control point's perpendicular distance from the
// chord, scaled by the chord length, stays within tolerance.
func FlattenQuad(dst []Point, p0, p1, p2 Point, tolerance float64) []Point {
	return flattenQuadRec(dst, p0, p1, p2, tolerance*tolerance, 0)
}

func flattenQuadRec(dst []Point, p0, p1, p2 Point, tolSq float64, depth int) []Point {
	if depth >= maxFlattenDepth || quadIsFlat(p0, p1, p2, tolSq) {
		return append(dst, p2)
	}
	// de Casteljau split at t=0.5.
	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	mid := q0.Lerp(q1, 0.5)
	dst = flattenQuadRec(dst, p0, q0, mid, tolSq, depth+1)
	dst = flattenQuadRec(dst, mid, q1, p2, tolSq, depth+1)
	return dst
}

func quadIsFlat(p0, p1, p2 Point, tolSq float64) bool {
	base := p2.Sub(p0)
	d := base.Cross(p1.Sub(p0))
	baseLenSq := base.Dot(base)
	return d*d <= tolSq*baseLenSq
}

// FlattenCubic adaptively subdivides a cubic Bezier (p0, p1, p2, p3) into
// line segments and appends the result (excluding p0, including p3) to
// dst. The flatness test checks both control points against the same
// squared-tolerance bound as the quad case.
func FlattenCubic(dst []Point, p0, p1, p2, p3 Point, tolerance float64) []Point {
	return flattenCubicRec(dst, p0, p1, p2, p3, tolerance*tolerance, 0)
}

func flattenCubicRec(dst []Point, p0, p1, p2, p3 Point, tolSq float64, depth int) []Point {
	if depth >= maxFlattenDepth || cubicIsFlat(p0, p1, p2, p3, tolSq) {
		return append(dst, p3)
	}
	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	q2 := p2.Lerp(p3, 0.5)
	r0 := q0.Lerp(q1, 0.5)
	r1 := q1.Lerp(q2, 0.5)
	s := r0.Lerp(r1, 0.5)
	dst = flattenCubicRec(dst, p0, q0, r0, s, tolSq, depth+1)
	dst = flattenCubicRec(dst, s, r1, q2, p3, tolSq, depth+1)
	return dst
}

func cubicIsFlat(p0, p1, p2, p3 Point, tolSq float64) bool {
	base := p3.Sub(p0)
	baseLenSq := base.Dot(base)
	d1 := base.Cross(p1.Sub(p0))
	d2 := base.Cross(p2.Sub(p0))
	if d1*d1 > tolSq*baseLenSq {
		return false
	}
	if d2*d2 > tolSq*baseLenSq {
		return false
	}
	return true
}

// QuadExtremaT returns the parametric t values (in (0,1), sorted) at
// which a quadratic Bezier is not monotonic in x or y; i.e. where the
// derivative crosses zero componentwise.
func QuadExtremaT(p0, p1, p2 Point) []float64 {
	ts := make([]float64, 0, 2)
	if t, ok := quadExtremumT(p0.X, p1.X, p2.X); ok {
		ts = append(ts, t)
	}
	if t, ok := quadExtremumT(p0.Y, p1.Y, p2.Y); ok {
		ts = append(ts, t)
	}
	sort.Float64s(ts)
	return ts
}

// quadExtremumT solves B'(t) = 0 for a single axis of a quadratic Bezier
// with control values a, b, c: derivative is 2(1-t)(b-a) + 2t(c-b).
func quadExtremumT(a, b, c float64) (float64, bool) {
	denom := a - 2*b + c
	if nearZero(denom) {
		return 0, false
	}
	t := (a - b) / denom
	if t > 1e-9 && t < 1-1e-9 {
		return t, true
	}
	return 0, false
}

// CubicExtremaT returns sorted parametric t values in (0,1) at which a
// cubic Bezier has an x or y extremum, an inflection, or a cusp — the
// full set of split points needed before a cubic can be cut into
// x/y-monotonic pieces.
func CubicExtremaT(p0, p1, p2, p3 Point) []float64 {
	ts := make([]float64, 0, 8)
	ts = append(ts, cubicAxisExtremaT(p0.X, p1.X, p2.X, p3.X)...)
	ts = append(ts, cubicAxisExtremaT(p0.Y, p1.Y, p2.Y, p3.Y)...)
	ts = append(ts, cubicInflectionT(p0, p1, p2, p3)...)

	sort.Float64s(ts)
	return dedupT(ts)
}

// cubicAxisExtremaT solves the quadratic derivative B'(t)=0 for one axis.
func cubicAxisExtremaT(a, b, c, d float64) []float64 {
	// B(t) = (1-t)^3 a + 3(1-t)^2 t b + 3(1-t) t^2 c + t^3 d
	// B'(t)/3 = (-a+3b-3c+d) t^2 + (2a-4b+2c) t + (-a+b)
	qa := -a + 3*b - 3*c + d
	qb := 2*a - 4*b + 2*c
	qc := -a + b
	return solveQuadraticRoots(qa, qb, qc)
}

// cubicInflectionT returns the t values where curvature sign changes
// (the second derivative cross product vanishes), including cusps as a
// degenerate case of the same polynomial.
func cubicInflectionT(p0, p1, p2, p3 Point) []float64 {
	a := p1.Sub(p0)
	b := p2.Sub(p1).Sub(a)
	c := p3.Sub(p2).Sub(p2.Sub(p1))
	// Curvature numerator is proportional to cross(a + 2bt + ct^2, b + ct),
	// which reduces to a quadratic in t.
	qa := b.Cross(c)
	qb := a.Cross(c)
	qc := a.Cross(b)
	// Solve qa*t^2 + qb*t + qc == 0 is the textbook form for inflection
	// points of a cubic expressed via forward differences; see
	// Stone & DeRose for the derivation used in major 2D engines.
	return solveQuadraticRoots(qa, qb, qc)
}

func solveQuadraticRoots(a, b, c float64) []float64 {
	if nearZero(a) {
		if nearZero(b) {
			return nil
		}
		t := -c / b
		if t > 1e-9 && t < 1-1e-9 {
			return []float64{t}
		}
		return nil
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return nil
	}
	sq := math.Sqrt(disc)
	t1 := (-b + sq) / (2 * a)
	t2 := (-b - sq) / (2 * a)
	out := make([]float64, 0, 2)
	for _, t := range []float64{t1, t2} {
		if t > 1e-9 && t < 1-1e-9 {
			out = append(out, t)
		}
	}
	return out
}

func dedupT(ts []float64) []float64 {
	out := ts[:0]
	for i, t := range ts {
		if i > 0 && t-out[len(out)-1] < 1e-9 {
			continue
		}
		out = append(out, t)
	}
	return out
}

// SplitQuad splits a quadratic Bezier at parameter t using de Casteljau's
// algorithm, returning the two resulting quadratics' control points.
func SplitQuad(p0, p1, p2 Point, t float64) (a0, a1, a2, b0, b1, b2 Point) {
	q0 := p0.Lerp(p1, t)
	q1 := p1.Lerp(p2, t)
	mid := q0.Lerp(q1, t)
	return p0, q0, mid, mid, q1, p2
}

// SplitCubic splits a cubic Bezier at parameter t.
func SplitCubic(p0, p1, p2, p3 Point, t float64) (a0, a1, a2, a3, b0, b1, b2, b3 Point) {
	q0 := p0.Lerp(p1, t)
	q1 := p1.Lerp(p2, t)
	q2 := p2.Lerp(p3, t)
	r0 := q0.Lerp(q1, t)
	r1 := q1.Lerp(q2, t)
	s := r0.Lerp(r1, t)
	return p0, q0, r0, s, s, r1, q2, p3
}

// MonotoneSplitTs returns the full, sorted list of split parameters for a
// curve (extrema for quads; extrema + inflection/cusp for cubics) with a
// terminal T=1 appended, so callers can walk consecutive [prev,t] ranges
// that are each guaranteed x/y-monotonic.
func MonotoneSplitTs(extrema []float64) []float64 {
	out := make([]float64, 0, len(extrema)+1)
	out = append(out, extrema...)
	out = append(out, 1.0)
	return out
}

// CubicToQuads approximates a cubic Bezier with a short spline of
// quadratics, for pipelines that only support quads. The tolerance bound
// used by the split heuristic is 27/4 * 2^3 * epsilon,
// matching the source engine's accepted error bound for the
// degree-reduction approach (Schneider / Sederberg-Nishita style).
func CubicToQuads(p0, p1, p2, p3 Point, epsilon float64) []Point {
	tol := (27.0 / 4.0) * 8 * epsilon
	segments := estimateQuadSplineSegments(p0, p1, p2, p3, tol)

	out := make([]Point, 0, segments*2+1)
	out = append(out, p0)
	step := 1.0 / float64(segments)
	for i := 0; i < segments; i++ {
		t0 := float64(i) * step
		t1 := float64(i+1) * step
		segP0, segP1, segP2, segP3 := cubicSubSegment(p0, p1, p2, p3, t0, t1)
		ctrl := quadControlFromCubic(segP0, segP1, segP2, segP3)
		out = append(out, ctrl, segP3)
	}
	return out
}

// cubicSubSegment isolates the [t0,t1] portion of a cubic as its own
// cubic control points, by splitting at t0 and then splitting the "after"
// half at the renormalized position of t1.
func cubicSubSegment(p0, p1, p2, p3 Point, t0, t1 float64) (Point, Point, Point, Point) {
	_, _, _, _, after0, after1, after2, after3 := SplitCubic(p0, p1, p2, p3, t0)
	if t1 >= 1 {
		return after0, after1, after2, after3
	}
	tt := (t1 - t0) / (1 - t0)
	b0, b1, b2, b3, _, _, _, _ := SplitCubic(after0, after1, after2, after3, tt)
	return b0, b1, b2, b3
}

func quadControlFromCubic(p0, p1, p2, p3 Point) Point {
	// Midpoint of the two cubic control points' tangent projection is a
	// standard cheap quadratic approximation to a cubic sub-segment.
	return p1.Scale(0.75).Add(p0.Scale(0.25)).Add(p2.Scale(0.75).Add(p3.Scale(0.25))).Scale(0.5)
}

// estimateQuadSplineSegments picks how many quadratic pieces are needed
// to approximate the cubic within tol, based on the magnitude of its
// third derivative term (standard flattening heuristic).
func estimateQuadSplineSegments(p0, p1, p2, p3 Point, tol float64) int {
	d := p3.Sub(p2.Scale(3)).Add(p1.Scale(3)).Sub(p0)
	errEst := d.Length()
	if errEst <= 0 || tol <= 0 {
		return 1
	}
	n := int(math.Ceil(math.Pow(errEst/tol, 1.0/3.0)))
	if n < 1 {
		n = 1
	}
	if n > 16 {
		n = 16
	}
	return n
}
