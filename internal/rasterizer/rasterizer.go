// Package rasterizer implements the analytic (exact-coverage) scan
// conversion of y-monotonic edge vectors into per-pixel alpha coverage.
//
// Unlike supersampling, analytic rasterization computes the exact area
// of the filled region within each pixel cell via trapezoid
// decomposition, so a single row pass yields exact antialiasing with no
// sample-count/quality tradeoff. Coverage is accumulated into a packed
// cell buffer rather than a plain float running total: cell[x] holds
// (cover<<9)-area and cell[x+1] holds area for every edge sub-segment
// touching column x, so a left-to-right prefix sum across the row
// reconstructs exact 0..255 coverage in one pass, with no separate
// deferred-coverage bookkeeping required once an edge has moved on to a
// later column.
package rasterizer

import (
	"math"

	"github.com/gogpu/raster2d/internal/edge"
	"github.com/gogpu/raster2d/internal/fixedpoint"
)

// FillRule selects how accumulated signed winding is converted to
// coverage.
type FillRule int

const (
	FillRuleNonZero FillRule = iota
	FillRuleEvenOdd
)

// cellBits is the word width of the coverage-presence bit-vector.
const cellBits = 64

// Rasterizer holds the reusable per-row accumulation buffers for a fixed
// pixel-column window [minX, minX+width). Reset and reused across bands
// or paths to avoid reallocating buffers per fill.
type Rasterizer struct {
	minX  int
	width int

	// cell[x] accumulates (cover<<9)-area and cell[x+1] accumulates area
	// for every edge sub-segment touching column x, both scaled to the
	// 256-wide fixed-point space. A running sum of cell[0..x] gives
	// column x's coverage directly after a >>9 shift; see sweep.
	cell []int32

	// bits is a presence mask over cell columns: one bit per pixel,
	// packed MSB-first within each 64-bit word, set whenever a column
	// receives a cell contribution. It mirrors the bit-vector the
	// compositor side of the pipeline uses to skip runs of untouched
	// columns; this rasterizer doesn't consume it itself.
	bits []uint64

	out []uint8
}

// New creates a Rasterizer whose output columns correspond to pixel x
// coordinates [minX, minX+width).
func New(minX, width int) *Rasterizer {
	return &Rasterizer{
		minX:  minX,
		width: width,
		cell:  make([]int32, width+1),
		bits:  make([]uint64, (width+cellBits-1)/cellBits),
		out:   make([]uint8, width),
	}
}

func (r *Rasterizer) resetRow() {
	for i := range r.cell {
		r.cell[i] = 0
	}
	for i := range r.bits {
		r.bits[i] = 0
	}
}

// Bits returns the coverage-presence bit-vector built by the most recent
// row, MSB-first within each word: bit (cellBits-1-i%cellBits) of
// Bits()[i/cellBits] is set iff column i received any contribution.
func (r *Rasterizer) Bits() []uint64 { return r.bits }

// Fill rasterizes vectors (assumed y-monotonic, as produced by
// internal/edge.Builder) for pixel rows [minRow, maxRow), invoking
// callback once per row with that row's coverage in [0,255]. The slice
// passed to callback is reused between calls; callers that need to keep
// it must copy.
func (r *Rasterizer) Fill(vectors []*edge.Vector, minRow, maxRow int, rule FillRule, callback func(row int, coverage []uint8)) {
	for row := minRow; row < maxRow; row++ {
		r.fillRow(vectors, row, rule)
		callback(row, r.out)
	}
}

func (r *Rasterizer) fillRow(vectors []*edge.Vector, row int, rule FillRule) {
	r.resetRow()
	rowY0 := fixedpoint.Int(row) << fixedpoint.Shift
	rowY1 := rowY0 + fixedpoint.Scale

	for _, v := range vectors {
		r.accumulateVector(v, rowY0, rowY1)
	}
	r.sweep(rule)
}

func (r *Rasterizer) accumulateVector(v *edge.Vector, rowY0, rowY1 fixedpoint.Int) {
	sign := int32(1)
	if v.SignBit {
		sign = -1
	}
	pts := v.Points
	for i := 0; i+1 < len(pts); i++ {
		p0, p1 := pts[i], pts[i+1]
		if p1.Y <= rowY0 || p0.Y >= rowY1 {
			continue
		}
		y0 := maxFixed(p0.Y, rowY0)
		y1 := minFixed(p1.Y, rowY1)
		if y0 >= y1 {
			continue
		}
		x0 := interpX(p0, p1, y0)
		x1 := interpX(p0, p1, y1)
		r.accumulateSegment(
			fixedpoint.ToFloat(x0)-float64(r.minX),
			fixedpoint.ToFloat(y0-rowY0)/fixedpoint.Scale,
			fixedpoint.ToFloat(x1)-float64(r.minX),
			fixedpoint.ToFloat(y1-rowY0)/fixedpoint.Scale,
			sign,
		)
	}
}

// accumulateSegment processes a sub-segment already clipped to a single
// row, with x0,x1 expressed relative to r.minX and y0,y1 in [0,1]
// (fraction of the row's height). It walks column by column and deposits
// each touched column's own (cover, area) pair independently; unlike a
// single trailing deferred step, depositing at every column lets the
// prefix sum in sweep pick up full coverage for a column the instant the
// edge has moved past it, even mid-row.
func (r *Rasterizer) accumulateSegment(x0, y0, x1, y1 float64, sign int32) {
	if y1 <= y0 {
		return
	}
	ex0 := clampCol(int(math.Floor(x0)), r.width)
	ex1 := clampCol(int(math.Floor(x1)), r.width)

	dir := 1
	if x1 < x0 {
		dir = -1
	}

	cx, cy := x0, y0
	col := ex0
	for {
		var exitX, exitY float64
		if col == ex1 {
			exitX, exitY = x1, y1
		} else {
			if dir > 0 {
				exitX = float64(col + 1)
			} else {
				exitX = float64(col)
			}
			t := (exitX - x0) / (x1 - x0)
			exitY = y0 + (y1-y0)*t
		}
		r.depositColumn(col, cx-float64(col), exitX-float64(col), exitY-cy, sign)
		if col == ex1 {
			break
		}
		cx, cy = exitX, exitY
		col += dir
	}
}

// depositColumn writes one column's contribution using the packed cell
// formula: cell[x] += (cover<<9)-area, cell[x+1] += area, where cover and
// the entry/exit fractional x positions are scaled to the 0..256
// fixed-point range matching fixedpoint.Scale.
func (r *Rasterizer) depositColumn(col int, fxEntry, fxExit, heightFrac float64, sign int32) {
	col = clampCol(col, r.width)
	cover := int32(math.Round(heightFrac*fixedpoint.Scale)) * sign
	fx0 := int32(math.Round(fxEntry * fixedpoint.Scale))
	fx1 := int32(math.Round(fxExit * fixedpoint.Scale))
	area := cover * (fx0 + fx1)

	r.cell[col] += (cover << 9) - area
	if col+1 < len(r.cell) {
		r.cell[col+1] += area
	}
	r.setBit(col)
}

func (r *Rasterizer) setBit(col int) {
	if col < 0 || col >= r.width {
		return
	}
	word := col / cellBits
	bit := cellBits - 1 - col%cellBits
	r.bits[word] |= uint64(1) << uint(bit)
}

// sweep reduces the packed cell row to per-pixel coverage by a running
// prefix sum: the sum of cell[0..x] is the column's accumulated coverage
// in units of 1/512th of full opacity, so >>9 recovers the 0..256 A8
// scale directly (see quantize).
func (r *Rasterizer) sweep(rule FillRule) {
	var running int32
	for x := 0; x < r.width; x++ {
		running += r.cell[x]
		r.out[x] = quantize(running, rule)
	}
}

func quantize(acc int32, rule FillRule) uint8 {
	v := acc >> 9
	switch rule {
	case FillRuleEvenOdd:
		const period = int32(512)
		v %= period
		if v < 0 {
			v += period
		}
		if v > 256 {
			v = period - v
		}
	default:
		if v < 0 {
			v = -v
		}
	}
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	return uint8(v)
}

func clampCol(c, width int) int {
	if c < 0 {
		return 0
	}
	if c >= width {
		return width - 1
	}
	return c
}

func maxFixed(a, b fixedpoint.Int) fixedpoint.Int {
	if a > b {
		return a
	}
	return b
}

func minFixed(a, b fixedpoint.Int) fixedpoint.Int {
	if a < b {
		return a
	}
	return b
}

func interpX(a, b edge.Point, y fixedpoint.Int) fixedpoint.Int {
	dy := int64(b.Y - a.Y)
	if dy == 0 {
		return a.X
	}
	dx := int64(b.X - a.X)
	t := int64(y - a.Y)
	return a.X + fixedpoint.Int((dx*t)/dy)
}
