package raster2d

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/gogpu/raster2d/cache"
)

// ExtendMode defines how gradients extend beyond their defined bounds.
type ExtendMode int

const (
	// ExtendPad extends edge colors beyond bounds (default behavior).
	ExtendPad ExtendMode = iota
	// ExtendRepeat repeats the gradient pattern.
	ExtendRepeat
	// ExtendReflect mirrors the gradient pattern.
	ExtendReflect
)

// ColorStop represents a color at a specific position in a gradient.
type ColorStop struct {
	Offset float64 // Position in gradient, 0.0 to 1.0
	Color  RGBA    // Color at this position
}

// sortStops returns a copy of the color stops sorted by offset. Stops with
// equal offsets are all kept.
func sortStops(stops []ColorStop) []ColorStop {
	if len(stops) == 0 {
		return stops
	}

	// Create a copy to avoid modifying the original
	sorted := make([]ColorStop, len(stops))
	copy(sorted, stops)

	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Offset < sorted[j].Offset
	})

	return sorted
}

// applyExtendMode applies the extend mode to normalize t to [0, 1].
func applyExtendMode(t float64, mode ExtendMode) float64 {
	switch mode {
	case ExtendRepeat:
		t -= math.Floor(t)
		if t < 0 {
			t++
		}
	case ExtendReflect:
		t = math.Abs(t)
		period := math.Floor(t)
		t -= period
		if int(period)%2 == 1 {
			t = 1 - t
		}
	default: // ExtendPad
		t = clamp01(t)
	}
	return t
}

// clamp01 clamps a value to [0, 1] range.
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// interpolateColorLinear performs component-wise linear interpolation
// between two colors directly in sRGB space.
func interpolateColorLinear(c1, c2 RGBA, t float64) RGBA {
	return RGBA{
		R: c1.R + t*(c2.R-c1.R),
		G: c1.G + t*(c2.G-c1.G),
		B: c1.B + t*(c2.B-c1.B),
		A: c1.A + t*(c2.A-c1.A),
	}
}

// colorAtOffset returns the interpolated color at a given offset.
// Handles edge cases: empty stops, single stop, out-of-bounds t.
//
// The [0, 1] domain (post extend-mode normalization) is served from a
// per-stops-signature lookup table rather than re-walking sorted stops on
// every call, since ColorAt is called once per covered pixel.
func colorAtOffset(stops []ColorStop, t float64, mode ExtendMode) RGBA {
	// Edge case: no stops
	if len(stops) == 0 {
		return Transparent
	}

	// Edge case: single stop
	if len(stops) == 1 {
		return stops[0].Color
	}

	t = applyExtendMode(t, mode)

	lut := gradientLUT(stops)
	idx := int(t*float64(gradientLUTSize-1) + 0.5)
	if idx < 0 {
		idx = 0
	}
	if idx >= gradientLUTSize {
		idx = gradientLUTSize - 1
	}
	return lut[idx]
}

// colorAtOffsetSorted interpolates within pre-sorted stops
// for a t already known to lie in [0, 1]. Used only by gradientLUT to build
// each table entry.
func colorAtOffsetSorted(sorted []ColorStop, t float64) RGBA {
	idx := sort.Search(len(sorted), func(i int) bool {
		return sorted[i].Offset >= t
	})

	if idx == 0 {
		return sorted[0].Color
	}
	if idx >= len(sorted) {
		return sorted[len(sorted)-1].Color
	}

	stop1 := sorted[idx-1]
	stop2 := sorted[idx]

	if stop2.Offset == stop1.Offset {
		return stop1.Color
	}

	localT := (t - stop1.Offset) / (stop2.Offset - stop1.Offset)
	return interpolateColorLinear(stop1.Color, stop2.Color, localT)
}

// gradientLUTSize is the number of samples held per cached gradient table.
// 256 matches the rasterizer's coverage resolution, so lookups never need
// to interpolate between LUT entries.
const gradientLUTSize = 256

// gradientLUTCache holds one [gradientLUTSize]RGBA table per distinct
// color-stop signature, shared across every brush using that signature
// regardless of extend mode (extend mode only maps t into [0, 1] before
// the table is indexed). Sharded rather than single-mutex, since
// AsyncRenderer's worker pool calls ColorAt concurrently from every band
// goroutine during a fill.
var gradientLUTCache = cache.NewSharded[string, *[gradientLUTSize]RGBA](64, cache.StringHasher)

// gradientLUT returns the cached lookup table for stops, building it on
// first use.
func gradientLUT(stops []ColorStop) *[gradientLUTSize]RGBA {
	sorted := sortStops(stops)
	key := gradientStopsKey(sorted)
	return gradientLUTCache.GetOrCreate(key, func() *[gradientLUTSize]RGBA {
		var lut [gradientLUTSize]RGBA
		for i := range lut {
			t := float64(i) / float64(gradientLUTSize-1)
			lut[i] = colorAtOffsetSorted(sorted, t)
		}
		return &lut
	})
}

// gradientStopsKey builds a stable cache key from already-sorted stops.
func gradientStopsKey(sorted []ColorStop) string {
	var b strings.Builder
	for _, s := range sorted {
		b.WriteString(strconv.FormatFloat(s.Offset, 'g', -1, 64))
		b.WriteByte(',')
		b.WriteString(strconv.FormatFloat(s.Color.R, 'g', -1, 64))
		b.WriteByte(',')
		b.WriteString(strconv.FormatFloat(s.Color.G, 'g', -1, 64))
		b.WriteByte(',')
		b.WriteString(strconv.FormatFloat(s.Color.B, 'g', -1, 64))
		b.WriteByte(',')
		b.WriteString(strconv.FormatFloat(s.Color.A, 'g', -1, 64))
		b.WriteByte(';')
	}
	return b.String()
}
