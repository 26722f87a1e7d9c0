package raster2d

import (
	"testing"
)

func solidPaint(c RGBA) *Paint {
	return &Paint{
		Pattern:    NewSolidPattern(c),
		LineWidth:  2,
		MiterLimit: 4,
		FillRule:   FillRuleNonZero,
	}
}

func TestAsyncRendererFillOpaqueRectangle(t *testing.T) {
	pm := NewPixmap(40, 40)
	pm.Clear(White)

	p := NewPath()
	p.Rectangle(5, 5, 20, 20)

	r := NewAsyncRenderer(4)
	if err := r.Fill(pm, p, solidPaint(Red)); err != nil {
		t.Fatalf("Fill returned error: %v", err)
	}

	inside := pm.GetPixel(15, 15)
	if !colorNear(inside, Red, 0.02) {
		t.Fatalf("inside pixel = %+v, want red", inside)
	}
	outside := pm.GetPixel(1, 1)
	if !colorNear(outside, White, 0.02) {
		t.Fatalf("outside pixel = %+v, want white (untouched)", outside)
	}
}

func TestAsyncRendererFillSpansMultipleBands(t *testing.T) {
	// Height exceeds one 64-row band so the fill must dispatch more than
	// one job and still produce a single seamless fill.
	pm := NewPixmap(20, 160)
	pm.Clear(White)

	p := NewPath()
	p.Rectangle(0, 0, 20, 160)

	r := NewAsyncRenderer(4)
	if err := r.Fill(pm, p, solidPaint(Blue)); err != nil {
		t.Fatalf("Fill returned error: %v", err)
	}

	for _, y := range []int{0, 63, 64, 100, 159} {
		got := pm.GetPixel(10, y)
		if !colorNear(got, Blue, 0.02) {
			t.Fatalf("row %d = %+v, want blue", y, got)
		}
	}
}

func TestAsyncRendererFillEmptyPathIsNoop(t *testing.T) {
	pm := NewPixmap(10, 10)
	pm.Clear(White)

	r := NewAsyncRenderer(2)
	if err := r.Fill(pm, NewPath(), solidPaint(Red)); err != nil {
		t.Fatalf("Fill returned error: %v", err)
	}
	if got := pm.GetPixel(5, 5); !colorNear(got, White, 0.001) {
		t.Fatalf("empty path changed pixmap: %+v", got)
	}
}

func TestAsyncRendererStrokeProducesCoverage(t *testing.T) {
	pm := NewPixmap(40, 40)
	pm.Clear(White)

	p := NewPath()
	p.MoveTo(5, 20)
	p.LineTo(35, 20)

	r := NewAsyncRenderer(2)
	paint := solidPaint(Black)
	paint.LineWidth = 4
	if err := r.Stroke(pm, p, paint); err != nil {
		t.Fatalf("Stroke returned error: %v", err)
	}

	got := pm.GetPixel(20, 20)
	if colorNear(got, White, 0.02) {
		t.Fatalf("stroke center pixel unchanged: %+v", got)
	}
}

func TestAsyncRendererHonorsEvenOddFillRule(t *testing.T) {
	pm := NewPixmap(40, 40)
	pm.Clear(White)

	// Two nested, identically-wound rectangles: even-odd leaves the
	// interior hole unfilled, non-zero fills it solid.
	p := NewPath()
	p.Rectangle(5, 5, 30, 30)
	p.Rectangle(12, 12, 16, 16)

	r := NewAsyncRenderer(2)
	paint := solidPaint(Black)
	paint.FillRule = FillRuleEvenOdd
	if err := r.Fill(pm, p, paint); err != nil {
		t.Fatalf("Fill returned error: %v", err)
	}

	hole := pm.GetPixel(20, 20)
	if !colorNear(hole, White, 0.02) {
		t.Fatalf("even-odd hole = %+v, want untouched white", hole)
	}
	ring := pm.GetPixel(8, 8)
	if !colorNear(ring, Black, 0.02) {
		t.Fatalf("even-odd ring = %+v, want black", ring)
	}
}

func TestNewAsyncRendererClampsWorkerCount(t *testing.T) {
	r := NewAsyncRenderer(0)
	if r.coord.WorkerCount() != 1 {
		t.Fatalf("WorkerCount() = %d, want 1", r.coord.WorkerCount())
	}
}
