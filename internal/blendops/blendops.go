// Package blendops is the reference (non-JIT) pipeline backend: it maps
// a command Signature's composition-operator field onto one of the 29
// Porter-Duff, separable and non-separable compositing operators and
// applies it to a pair of premultiplied pixels. It exists as the always
// -available fallback the pipeline dispatch table uses when no faster,
// code-generated backend is selected.
package blendops

import (
	"github.com/gogpu/raster2d/internal/blend"
	"github.com/gogpu/raster2d/internal/pixfmt"
)

// CompOp identifies one of the 29 compositing operators by the same
// numbering blend.BlendMode uses, so a Signature's packed comp-op field
// can be cast straight to this type.
type CompOp = blend.BlendMode

// Count is the number of distinct composition operators this backend
// implements (14 Porter-Duff + 11 separable + 4 non-separable).
const Count = 29

// Composite applies op to src over dst, both already premultiplied, and
// returns the premultiplied result. Coverage (the rasterizer's per-pixel
// alpha) should already have been folded into src.A, matching the
// pipeline's "coverage multiplies source alpha before composition"
// contract.
func Composite(op CompOp, src, dst pixfmt.Color) pixfmt.Color {
	fn := blend.GetBlendFunc(op)
	r, g, b, a := fn(src.R, src.G, src.B, src.A, dst.R, dst.G, dst.B, dst.A)
	return pixfmt.Color{R: r, G: g, B: b, A: a}
}

// CompositeRow applies op across two equal-length premultiplied pixel
// rows in place, writing the composited result into dst. It is the
// per-scanline counterpart to Composite, used once a rasterizer row
// callback has produced a full span of coverage-folded source pixels.
func CompositeRow(op CompOp, src []pixfmt.Color, dst []pixfmt.Color) {
	fn := blend.GetBlendFunc(op)
	n := len(src)
	if len(dst) < n {
		n = len(dst)
	}
	for i := 0; i < n; i++ {
		s, d := src[i], dst[i]
		r, g, b, a := fn(s.R, s.G, s.B, s.A, d.R, d.G, d.B, d.A)
		dst[i] = pixfmt.Color{R: r, G: g, B: b, A: a}
	}
}

// WithCoverage scales a premultiplied color's alpha (and therefore its
// color channels, which must already be premultiplied) by an 8-bit
// rasterizer coverage value, producing the source color Composite
// expects.
func WithCoverage(c pixfmt.Color, coverage uint8) pixfmt.Color {
	if coverage == 255 {
		return c
	}
	scale := func(ch uint8) uint8 {
		return uint8((uint32(ch)*uint32(coverage) + 127) / 255)
	}
	return pixfmt.Color{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: scale(c.A)}
}
