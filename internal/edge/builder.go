package edge

import (
	"github.com/gogpu/raster2d/internal/fixedpoint"
	"github.com/gogpu/raster2d/internal/geom"
)

// Builder consumes a path already expressed in device-space floating
// point coordinates (the final transform has already been applied by the
// caller) and produces fixed-point, y-monotonic, band-chopped edge
// vectors clipped to a rectangular clip box.
//
// Curves are split into x/y-monotonic pieces at their extrema before
// flattening, so every polyline segment handed to the clipper is already
// monotonic in y; clipping then only has to reason about straight lines.
type Builder struct {
	box Box
	boxF geom.Box

	tolerance float64

	haveStart bool
	start     geom.Point
	havePrev  bool
	prevRaw   geom.Point

	chainOpen   bool
	openSign    bool
	openPts     []Point
	haveLast    bool
	lastEmitted Point

	storage *Storage
}

// NewBuilder creates a Builder that clips to box and flattens curves to
// the given tolerance (in device pixels), storing results banded at
// 1<<bandHeightShift fixed-point units.
func NewBuilder(box Box, bandHeightShift uint, tolerance float64) *Builder {
	return &Builder{
		box:       box,
		boxF:      boxToFloat(box),
		tolerance: tolerance,
		storage:   NewStorage(bandHeightShift),
	}
}

func boxToFloat(b Box) geom.Box {
	return geom.Box{
		MinX: fixedpoint.ToFloat(b.MinX),
		MinY: fixedpoint.ToFloat(b.MinY),
		MaxX: fixedpoint.ToFloat(b.MaxX),
		MaxY: fixedpoint.ToFloat(b.MaxY),
	}
}

// MoveTo starts a new subpath at p, implicitly closing and flushing any
// subpath already in progress (fills always treat open subpaths as
// closed, so the close happens here rather than waiting for an explicit
// Close call).
func (b *Builder) MoveTo(p geom.Point) {
	b.closeSubpath()
	b.start = p
	b.haveStart = true
	b.prevRaw = p
	b.havePrev = true
}

// LineTo appends a straight segment to p.
func (b *Builder) LineTo(p geom.Point) {
	b.feedPoint(p)
}

// QuadTo appends a quadratic Bezier with control point c, ending at p.
func (b *Builder) QuadTo(c, p geom.Point) {
	p0 := b.prevRaw
	ts := geom.MonotoneSplitTs(geom.QuadExtremaT(p0, c, p))
	prevT := 0.0
	sp0, sp1, sp2 := p0, c, p
	for _, t := range ts {
		if t <= prevT {
			continue
		}
		local := (t - prevT) / (1 - prevT)
		a0, a1, a2, rest0, rest1, rest2 := geom.SplitQuad(sp0, sp1, sp2, local)
		pts := geom.FlattenQuad(nil, a0, a1, a2, b.tolerance)
		for _, fp := range pts {
			b.feedPoint(fp)
		}
		sp0, sp1, sp2 = rest0, rest1, rest2
		prevT = t
	}
}

// CubicTo appends a cubic Bezier with control points c1, c2, ending at p.
func (b *Builder) CubicTo(c1, c2, p geom.Point) {
	p0 := b.prevRaw
	ts := geom.MonotoneSplitTs(geom.CubicExtremaT(p0, c1, c2, p))
	prevT := 0.0
	sp0, sp1, sp2, sp3 := p0, c1, c2, p
	for _, t := range ts {
		if t <= prevT {
			continue
		}
		local := (t - prevT) / (1 - prevT)
		a0, a1, a2, a3, rest0, rest1, rest2, rest3 := geom.SplitCubic(sp0, sp1, sp2, sp3, local)
		pts := geom.FlattenCubic(nil, a0, a1, a2, a3, b.tolerance)
		for _, fp := range pts {
			b.feedPoint(fp)
		}
		sp0, sp1, sp2, sp3 = rest0, rest1, rest2, rest3
		prevT = t
	}
}

// Close connects the current subpath back to its start point. Calling it
// is optional: Done and the next MoveTo perform the same implicit close.
func (b *Builder) Close() {
	b.closeSubpath()
}

// Done finalizes any in-progress subpath and returns the accumulated
// edge storage. The Builder must not be used afterward.
func (b *Builder) Done() *Storage {
	b.closeSubpath()
	return b.storage
}

func (b *Builder) closeSubpath() {
	if !b.havePrev {
		return
	}
	if b.haveStart {
		b.feedPoint(b.start)
	}
	b.flushChain()
	b.havePrev = false
	b.haveStart = false
}

func (b *Builder) feedPoint(p geom.Point) {
	if !b.havePrev {
		b.prevRaw = p
		b.havePrev = true
		return
	}
	p0 := b.prevRaw
	b.prevRaw = p
	b.processSegment(p0, p)
}

func (b *Builder) processSegment(p0, p1 geom.Point) {
	if p0.Y == p1.Y {
		return
	}
	descending := p1.Y > p0.Y
	signBit := !descending

	cy0, cy1, ok := clipSegmentY(p0, p1, b.boxF.MinY, b.boxF.MaxY)
	if !ok {
		return
	}

	fx0 := clampFloat(cy0.X, b.boxF.MinX, b.boxF.MaxX)
	fx1 := clampFloat(cy1.X, b.boxF.MinX, b.boxF.MaxX)

	np0 := Point{X: fixedpoint.FromFloat(fx0), Y: fixedpoint.FromFloat(cy0.Y)}
	np1 := Point{X: fixedpoint.FromFloat(fx1), Y: fixedpoint.FromFloat(cy1.Y)}
	if np0 == np1 {
		return
	}
	b.appendPiece(np0, np1, signBit)
}

func (b *Builder) appendPiece(a, c Point, signBit bool) {
	if b.chainOpen && b.openSign == signBit && b.haveLast && b.lastEmitted == a {
		b.openPts = append(b.openPts, c)
		b.lastEmitted = c
		return
	}
	b.flushChain()
	b.openPts = append(b.openPts, a, c)
	b.openSign = signBit
	b.chainOpen = true
	b.lastEmitted = c
	b.haveLast = true
}

func (b *Builder) flushChain() {
	if b.chainOpen && len(b.openPts) >= 2 {
		pts := append([]Point(nil), b.openPts...)
		if b.openSign {
			// Ascending chains are stored bottom-to-top so Y increases.
			for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
				pts[i], pts[j] = pts[j], pts[i]
			}
		}
		v := &Vector{Points: pts, SignBit: b.openSign}
		b.storage.Add(v)
	}
	b.chainOpen = false
	b.openPts = b.openPts[:0]
	b.haveLast = false
}

// clipSegmentY clips a segment, which may run in either y direction, to
// [minY, maxY], preserving the original a->b order in the result. Returns
// ok=false if the segment doesn't intersect the range at all.
func clipSegmentY(a, b geom.Point, minY, maxY float64) (geom.Point, geom.Point, bool) {
	lo, hi := a, b
	swapped := false
	if lo.Y > hi.Y {
		lo, hi = hi, lo
		swapped = true
	}
	if hi.Y < minY || lo.Y > maxY {
		return geom.Point{}, geom.Point{}, false
	}
	t0, t1 := 0.0, 1.0
	if lo.Y < minY {
		t0 = (minY - lo.Y) / (hi.Y - lo.Y)
	}
	if hi.Y > maxY {
		t1 = (maxY - lo.Y) / (hi.Y - lo.Y)
	}
	newLo := lo.Lerp(hi, t0)
	newHi := lo.Lerp(hi, t1)
	if swapped {
		return newHi, newLo, true
	}
	return newLo, newHi, true
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
