package raster2d

import (
	"fmt"
	"math"

	"github.com/gogpu/raster2d/internal/batch"
	"github.com/gogpu/raster2d/internal/blend"
	"github.com/gogpu/raster2d/internal/blendops"
	"github.com/gogpu/raster2d/internal/edge"
	"github.com/gogpu/raster2d/internal/fixedpoint"
	"github.com/gogpu/raster2d/internal/geom"
	"github.com/gogpu/raster2d/internal/pixfmt"
	"github.com/gogpu/raster2d/internal/rastercmd"
	"github.com/gogpu/raster2d/internal/rasterizer"
	"github.com/gogpu/raster2d/internal/stroke"
	"github.com/gogpu/raster2d/internal/threadpool"
	"github.com/gogpu/raster2d/internal/worksync"
)

// asyncBandRows sizes each dispatch band at 1<<asyncBandRows pixel rows.
// The edge builder is given the equivalent shift in fixed-point units,
// asyncBandShift (asyncBandRows+fixedpoint.Shift), so internal/edge.Storage's own
// per-band bucketing lines up exactly with the bands workers claim.
const (
	asyncBandRows  = 6 // 64 pixel rows per band
	asyncBandShift = uint(asyncBandRows) + fixedpoint.Shift
)

// AsyncRenderer rasterizes fills and strokes through the command/batch
// /worker pipeline: a path is flattened to edge vectors, the destination
// is split into row bands, and a worker pool claims bands through a
// batch.Batch driven by a worksync.Coordinator. Unlike SoftwareRenderer,
// which rasterizes a whole fill on the calling goroutine, AsyncRenderer
// fans each fill out across its pool before returning.
type AsyncRenderer struct {
	pool  *threadpool.Pool
	coord *worksync.Coordinator
}

var _ Renderer = (*AsyncRenderer)(nil)

// NewAsyncRenderer creates an AsyncRenderer backed by a pool of
// workerCount goroutines. workerCount is clamped to at least 1.
func NewAsyncRenderer(workerCount int) *AsyncRenderer {
	if workerCount < 1 {
		workerCount = 1
	}
	return &AsyncRenderer{
		pool:  threadpool.New(workerCount),
		coord: worksync.NewCoordinator(workerCount),
	}
}

// Fill implements Renderer.
func (r *AsyncRenderer) Fill(pixmap *Pixmap, p *Path, paint *Paint) error {
	return r.dispatch(pixmap, p, paint)
}

// Stroke implements Renderer by first expanding the path to its stroke
// outline, then filling that outline through the same dispatch path.
func (r *AsyncRenderer) Stroke(pixmap *Pixmap, p *Path, paint *Paint) error {
	return r.dispatch(pixmap, expandStrokeToFillPath(p, paint), paint)
}

func (r *AsyncRenderer) dispatch(pixmap *Pixmap, p *Path, paint *Paint) error {
	solid := solidColorFromPaint(paint).Premultiply()
	src := pixfmt.Color{
		R: uint8(clamp255(solid.R * 255)),
		G: uint8(clamp255(solid.G * 255)),
		B: uint8(clamp255(solid.B * 255)),
		A: uint8(clamp255(solid.A * 255)),
	}

	// Geometry-class dispatch: a path that is exactly one axis-aligned
	// rectangle never needs edge building or a scanline rasterizer at
	// all — FillBoxA (pixel-aligned) composites full-coverage spans
	// directly, and FillBoxU computes each row/column's fractional
	// coverage from the box's fractional edges. Everything else goes
	// through FillAnalytic, the general edge-chain path.
	if geo, ok := classifyBox(p, pixmap); ok {
		if geo.aligned {
			return r.runSingle(func() batch.ErrorFlags {
				cmd := &rastercmd.Command{Type: rastercmd.FillBoxA, Box: geo.box, Solid: src, Alpha: 255}
				renderBoxA(pixmap, cmd)
				return 0
			})
		}
		return r.runSingle(func() batch.ErrorFlags {
			cmd := &rastercmd.Command{Type: rastercmd.FillBoxU, Box: geo.box, Solid: src, Alpha: 255}
			renderBoxU(pixmap, cmd, geo)
			return 0
		})
	}

	storage, rowMin, rowMax, ok := buildEdgeStorage(p, pixmap)
	if !ok {
		return nil
	}

	rule := rastercmd.FillRuleNonZero
	if paint.FillRule == FillRuleEvenOdd {
		rule = rastercmd.FillRuleEvenOdd
	}

	firstBand := rowMin >> asyncBandRows
	lastBand := (rowMax - 1) >> asyncBandRows
	width := pixmap.Width()

	b := batch.New(r.coord.WorkerCount(), lastBand-firstBand+1)
	for band := firstBand; band <= lastBand; band++ {
		vectors := storage.Band(band)
		if len(vectors) == 0 {
			continue
		}
		y0 := band << asyncBandRows
		y1 := y0 + (1 << asyncBandRows)
		if y0 < rowMin {
			y0 = rowMin
		}
		if y1 > rowMax {
			y1 = rowMax
		}
		b.Jobs.Append(func() batch.ErrorFlags {
			cmd := &rastercmd.Command{
				Type:    rastercmd.FillAnalytic,
				Band:    band,
				Vectors: vectors,
				Rule:    rule,
				Solid:   src,
				Alpha:   255,
			}
			renderBand(pixmap, cmd, width, y0, y1)
			return 0
		})
	}

	return r.run(b)
}

// runSingle drives a single job through the same worker-acquisition path
// as a multi-band fill, so a box fill still respects thread pool
// exhaustion accounting even though it needs no banding.
func (r *AsyncRenderer) runSingle(job func() batch.ErrorFlags) error {
	b := batch.New(r.coord.WorkerCount(), 1)
	b.Jobs.Append(job)
	return r.run(b)
}

// boxGeometry carries both the pixel-space bounding box used for
// dispatch and iteration, and the exact (possibly fractional) edges
// FillBoxU needs to compute per-pixel coverage.
type boxGeometry struct {
	box            rastercmd.Box
	x0, y0, x1, y1 float64
	aligned        bool
}

// classifyBox reports whether p is exactly one closed axis-aligned
// rectangle (as DrawRectangle/DrawRoundedRectangle-with-r=0 emit: a
// MoveTo, three LineTo corners, and a Close), clipped to pixmap's
// bounds. aligned is true when all four edges fall on integer pixel
// boundaries, allowing the cheaper FillBoxA path.
func classifyBox(p *Path, pixmap *Pixmap) (boxGeometry, bool) {
	elems := p.Elements()
	if len(elems) != 5 {
		return boxGeometry{}, false
	}
	m, isMove := elems[0].(MoveTo)
	l1, isL1 := elems[1].(LineTo)
	l2, isL2 := elems[2].(LineTo)
	l3, isL3 := elems[3].(LineTo)
	_, isClose := elems[4].(Close)
	if !isMove || !isL1 || !isL2 || !isL3 || !isClose {
		return boxGeometry{}, false
	}

	// Expect: (x0,y0) -> (x1,y0) -> (x1,y1) -> (x0,y1) -> close.
	x0, y0 := m.Point.X, m.Point.Y
	x1, y1 := l2.Point.X, l2.Point.Y
	if l1.Point.X != x1 || l1.Point.Y != y0 {
		return boxGeometry{}, false
	}
	if l3.Point.X != x0 || l3.Point.Y != y1 {
		return boxGeometry{}, false
	}
	if x0 == x1 || y0 == y1 {
		return boxGeometry{}, false
	}
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > float64(pixmap.Width()) {
		x1 = float64(pixmap.Width())
	}
	if y1 > float64(pixmap.Height()) {
		y1 = float64(pixmap.Height())
	}
	if x0 >= x1 || y0 >= y1 {
		return boxGeometry{}, false
	}

	aligned := x0 == math.Trunc(x0) && y0 == math.Trunc(y0) && x1 == math.Trunc(x1) && y1 == math.Trunc(y1)
	fx0, fy0 := math.Floor(x0), math.Floor(y0)
	fx1, fy1 := math.Ceil(x1), math.Ceil(y1)
	box := rastercmd.Box{X0: int(fx0), Y0: int(fy0), X1: int(fx1), Y1: int(fy1)}
	return boxGeometry{box: box, x0: x0, y0: y0, x1: x1, y1: y1, aligned: aligned}, true
}

// run acquires r.pool's workers, drives the jobs phase across them, and
// waits for every claimed job to finish before returning the batch's
// accumulated errors, if any.
func (r *AsyncRenderer) run(b *batch.Batch) error {
	jobCount := b.Jobs.Len()
	if jobCount == 0 {
		return nil
	}

	workers, reason := r.pool.Acquire(b.WorkerCount(), 0)
	if reason == threadpool.ReasonThreadPoolExhausted {
		b.AddError(batch.ErrThreadPoolExhausted)
	}
	defer r.pool.Release(workers)

	runnable := len(workers)
	if runnable == 0 {
		runnable = 1 // degrade to the calling goroutine alone
	}

	r.coord.Arm(jobCount)
	done := make(chan struct{}, runnable)
	for i := 0; i < runnable; i++ {
		go func() {
			r.coord.ThreadStarted()
			r.coord.RunJobsPhase(b)
			done <- struct{}{}
		}()
	}
	for i := 0; i < runnable; i++ {
		<-done
	}
	r.coord.WaitForJobsToFinish()

	if flags := b.ErrorFlags(); flags != 0 {
		return fmt.Errorf("raster2d: async fill reported errors %#x", uint32(flags))
	}
	return nil
}

// renderBand rasterizes one band's vectors and composites the resulting
// coverage into pixmap using the reference blend backend. It only
// touches rows [y0, y1), which callers must guarantee are disjoint
// across concurrently running bands.
func renderBand(pixmap *Pixmap, cmd *rastercmd.Command, width, y0, y1 int) {
	if y0 >= y1 {
		return
	}
	rz := rasterizer.New(0, width)
	rule := rasterizer.FillRuleNonZero
	if cmd.Rule == rastercmd.FillRuleEvenOdd {
		rule = rasterizer.FillRuleEvenOdd
	}
	rz.Fill(cmd.Vectors, y0, y1, rule, func(row int, coverage []uint8) {
		compositeRow(pixmap, row, coverage, cmd.Solid)
	})
}

// renderBoxA composites cmd.Solid at full coverage over every pixel in
// cmd.Box. No rasterizer pass is needed: a pixel-aligned box is either
// fully inside or fully outside, so each row is a flat-coverage span.
func renderBoxA(pixmap *Pixmap, cmd *rastercmd.Command) {
	full := make([]uint8, cmd.Box.X1-cmd.Box.X0)
	for i := range full {
		full[i] = 255
	}
	for row := cmd.Box.Y0; row < cmd.Box.Y1; row++ {
		compositeSpan(pixmap, row, cmd.Box.X0, full, cmd.Solid)
	}
}

// renderBoxU composites cmd.Solid over geo's fractional rectangle,
// scaling each edge pixel's coverage by how much of that pixel the box
// actually covers along x and y; interior pixels get full coverage.
func renderBoxU(pixmap *Pixmap, cmd *rastercmd.Command, geo boxGeometry) {
	width := cmd.Box.X1 - cmd.Box.X0
	if width <= 0 {
		return
	}
	xCov := make([]float64, width)
	for i := 0; i < width; i++ {
		px := float64(cmd.Box.X0 + i)
		xCov[i] = axisCoverage(px, px+1, geo.x0, geo.x1)
	}

	row := make([]uint8, width)
	for y := cmd.Box.Y0; y < cmd.Box.Y1; y++ {
		yCov := axisCoverage(float64(y), float64(y+1), geo.y0, geo.y1)
		if yCov <= 0 {
			continue
		}
		for i := 0; i < width; i++ {
			row[i] = uint8(clamp255(xCov[i] * yCov * 255))
		}
		compositeSpan(pixmap, y, cmd.Box.X0, row, cmd.Solid)
	}
}

// axisCoverage returns the fraction of [pixelMin,pixelMax) that lies
// within [edgeMin,edgeMax), clamped to [0,1].
func axisCoverage(pixelMin, pixelMax, edgeMin, edgeMax float64) float64 {
	lo := pixelMin
	if edgeMin > lo {
		lo = edgeMin
	}
	hi := pixelMax
	if edgeMax < hi {
		hi = edgeMax
	}
	if hi <= lo {
		return 0
	}
	return hi - lo
}

// compositeSpan composites src, scaled by each column's coverage in
// coverage, over pixmap's row starting at column x0.
func compositeSpan(pixmap *Pixmap, row, x0 int, coverage []uint8, src pixfmt.Color) {
	if row < 0 || row >= pixmap.Height() {
		return
	}
	for i, cov := range coverage {
		x := x0 + i
		if cov == 0 || x < 0 || x >= pixmap.Width() {
			continue
		}
		dst := pixfmtColorFromPixmap(pixmap, x, row)
		out := blendops.Composite(blend.BlendSourceOver, blendops.WithCoverage(src, cov), dst)
		pixmap.SetPixel(x, row, rgbaFromPixfmtColor(out).Unpremultiply())
	}
}

// compositeRow composites src, scaled by each column's coverage, over
// the existing pixmap row using the reference (non-JIT) blend backend.
func compositeRow(pixmap *Pixmap, row int, coverage []uint8, src pixfmt.Color) {
	compositeSpan(pixmap, row, 0, coverage, src)
}

func pixfmtColorFromPixmap(pixmap *Pixmap, x, y int) pixfmt.Color {
	c := pixmap.GetPixel(x, y).Premultiply()
	return pixfmt.Color{
		R: uint8(clamp255(c.R * 255)),
		G: uint8(clamp255(c.G * 255)),
		B: uint8(clamp255(c.B * 255)),
		A: uint8(clamp255(c.A * 255)),
	}
}

func rgbaFromPixfmtColor(c pixfmt.Color) RGBA {
	return RGBA{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
		A: float64(c.A) / 255,
	}
}

// solidColorFromPaint extracts the solid fill color from paint, falling
// back to opaque black for non-solid patterns (gradients and images fall
// back to the synchronous renderer until the fetch pipeline lands).
func solidColorFromPaint(paint *Paint) RGBA {
	if sb, ok := paint.GetBrush().(SolidBrush); ok {
		return sb.Color
	}
	if solid, ok := paint.Pattern.(*SolidPattern); ok {
		return solid.Color
	}
	return Black
}

// paintIsSolid reports whether paint's effective brush is a plain solid
// color, the only fetch kind this pipeline currently dispatches inline —
// every other kind (gradient, pattern, image) must go through the
// synchronous renderer's painter-based span sampling instead.
func paintIsSolid(paint *Paint) bool {
	return FetchKindForPaint(paint) == rastercmd.FetchSolid
}

// expandStrokeToFillPath expands p's stroke outline into a fillable path
// using the same stroke expander SoftwareRenderer.Stroke uses.
func expandStrokeToFillPath(p *Path, paint *Paint) *Path {
	strokeElements := convertPathToStrokeElements(p)
	strokeStyle := stroke.Stroke{
		Width:      paint.DeviceLineWidth(),
		Cap:        convertLineCap(paint.EffectiveLineCap()),
		Join:       convertLineJoin(paint.EffectiveLineJoin()),
		MiterLimit: paint.EffectiveMiterLimit(),
	}
	if strokeStyle.MiterLimit <= 0 {
		strokeStyle.MiterLimit = 4.0
	}
	expander := stroke.NewStrokeExpander(strokeStyle)
	expander.SetTolerance(0.1)
	return convertStrokeElementsToPath(expander.Expand(strokeElements))
}

// buildEdgeStorage flattens p into band-indexed edge vectors clipped to
// pixmap's bounds. ok is false for an empty path or one whose bounding
// box doesn't intersect the pixmap at all.
func buildEdgeStorage(p *Path, pixmap *Pixmap) (storage *edge.Storage, rowMin, rowMax int, ok bool) {
	elements := p.Elements()
	if len(elements) == 0 {
		return nil, 0, 0, false
	}

	clipBox := edge.Box{
		MinX: 0,
		MinY: 0,
		MaxX: fixedpoint.FromFloat(float64(pixmap.Width())),
		MaxY: fixedpoint.FromFloat(float64(pixmap.Height())),
	}
	builder := edge.NewBuilder(clipBox, asyncBandShift, 0.25)

	for _, elem := range elements {
		switch e := elem.(type) {
		case MoveTo:
			builder.MoveTo(geom.Pt(e.Point.X, e.Point.Y))
		case LineTo:
			builder.LineTo(geom.Pt(e.Point.X, e.Point.Y))
		case QuadTo:
			builder.QuadTo(geom.Pt(e.Control.X, e.Control.Y), geom.Pt(e.Point.X, e.Point.Y))
		case CubicTo:
			builder.CubicTo(
				geom.Pt(e.Control1.X, e.Control1.Y),
				geom.Pt(e.Control2.X, e.Control2.Y),
				geom.Pt(e.Point.X, e.Point.Y),
			)
		case Close:
			builder.Close()
		}
	}
	storage = builder.Done()

	box, have := storage.BoundingBox()
	if !have {
		return nil, 0, 0, false
	}
	rowMin = int(fixedpoint.ToFloat(box.MinY))
	rowMax = int(fixedpoint.ToFloat(box.MaxY)) + 1
	if rowMin < 0 {
		rowMin = 0
	}
	if rowMax > pixmap.Height() {
		rowMax = pixmap.Height()
	}
	if rowMin >= rowMax {
		return nil, 0, 0, false
	}
	return storage, rowMin, rowMax, true
}
