// Package geom implements the floating-point geometry primitives and
// curve math shared by the edge builder and the rendering context: points,
// boxes, affine transforms with a fast-path classification, Bezier
// flattening and monotone splitting.
package geom

import "math"

// Point is a 2D floating-point coordinate in user space.
type Point struct{ X, Y float64 }

// Pt is a convenience constructor.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point   { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point   { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Scale(s float64) Point { return Point{p.X * s, p.Y * s} }
func (p Point) Dot(q Point) float64 { return p.X*q.X + p.Y*q.Y }

// Cross returns the z-component of p x q (2D cross product).
func (p Point) Cross(q Point) float64 { return p.X*q.Y - p.Y*q.X }

func (p Point) Length() float64 { return math.Hypot(p.X, p.Y) }

func (p Point) Lerp(q Point, t float64) Point {
	return Point{p.X + (q.X-p.X)*t, p.Y + (q.Y-p.Y)*t}
}

// Box is an axis-aligned floating-point rectangle, [MinX,MaxX) x [MinY,MaxY).
type Box struct {
	MinX, MinY, MaxX, MaxY float64
}

// Contains reports whether p lies within the box, counting points on the
// max edges as inside (half-open bounds are not enforced here).
func (b Box) Contains(p Point) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// UnionPoint returns the smallest box containing both b and p.
func (b Box) UnionPoint(p Point) Box {
	return Box{
		MinX: math.Min(b.MinX, p.X),
		MinY: math.Min(b.MinY, p.Y),
		MaxX: math.Max(b.MaxX, p.X),
		MaxY: math.Max(b.MaxY, p.Y),
	}
}

func (b Box) Union(o Box) Box {
	return Box{
		MinX: math.Min(b.MinX, o.MinX),
		MinY: math.Min(b.MinY, o.MinY),
		MaxX: math.Max(b.MaxX, o.MaxX),
		MaxY: math.Max(b.MaxY, o.MaxY),
	}
}

// EmptyBox returns a box in an inverted state suitable as a Union
// accumulator seed (any UnionPoint/Union call will correct it).
func EmptyBox() Box {
	return Box{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
}

func (b Box) Width() float64  { return b.MaxX - b.MinX }
func (b Box) Height() float64 { return b.MaxY - b.MinY }
func (b Box) Empty() bool     { return b.MaxX <= b.MinX || b.MaxY <= b.MinY }
