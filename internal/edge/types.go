// Package edge implements the edge storage and edge-builder subsystem:
// clipping and flattening paths into y-monotonic, band-indexed edge
// chains ready for the analytic rasterizer.
package edge

import "github.com/gogpu/raster2d/internal/fixedpoint"

// Point is a fixed-point coordinate pair.
type Point struct {
	X, Y fixedpoint.Int
}

// Box is a fixed-point axis-aligned rectangle, closed on both ends.
type Box struct {
	MinX, MinY, MaxX, MaxY fixedpoint.Int
}

// Contains reports whether p lies within the box, inclusive on both ends
// (the clip box itself is closed; edges are clamped exactly onto it).
func (b Box) Contains(p Point) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// Vector is a y-monotonic, strictly increasing-in-y run of >=2 points
// with a winding sign bit. SignBit false means the original path segment
// ran top-to-bottom (descending) in the same order as Points; true means
// the original path ran bottom-to-top and Points has been reversed to
// keep the increasing-y invariant, so the winding contribution must be
// negated by the rasterizer.
type Vector struct {
	Points  []Point
	SignBit bool
}

// Count returns the number of points in the vector.
func (v *Vector) Count() int { return len(v.Points) }

// Valid checks the per-vector invariants: at least 2 points, and
// non-decreasing Y.
func (v *Vector) Valid() bool {
	if len(v.Points) < 2 {
		return false
	}
	for i := 0; i+1 < len(v.Points); i++ {
		if v.Points[i].Y > v.Points[i+1].Y {
			return false
		}
	}
	return true
}

// TopY returns the Y of the vector's first point (its band key).
func (v *Vector) TopY() fixedpoint.Int { return v.Points[0].Y }
