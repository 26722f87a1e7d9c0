// Package rastercmd defines the render-command and fetch-data model
// that sits between the rendering context and the asynchronous worker
// coordination layer: typed command variants carrying a pipeline
// signature plus either an inline solid color or a shared,
// reference-counted fetch-data descriptor.
package rastercmd

import (
	"github.com/gogpu/raster2d/internal/edge"
	"github.com/gogpu/raster2d/internal/pixfmt"
)

// CommandType identifies which of the four fill shapes a Command
// carries.
type CommandType uint8

const (
	// FillBoxA fills a pixel-aligned box — the cheapest of the four,
	// no mask or edge data needed.
	FillBoxA CommandType = iota
	// FillBoxU fills an axis-aligned box that isn't pixel-aligned,
	// using a generated one-scanline mask at the fractional edges.
	FillBoxU
	// FillAnalytic fills an arbitrary shape via its edge chain and a
	// fill rule.
	FillAnalytic
	// FillBoxMaskA fills a pixel-aligned box through an externally
	// supplied mask image (e.g. a clip mask or glyph bitmap).
	FillBoxMaskA
)

func (t CommandType) String() string {
	switch t {
	case FillBoxA:
		return "FillBoxA"
	case FillBoxU:
		return "FillBoxU"
	case FillAnalytic:
		return "FillAnalytic"
	case FillBoxMaskA:
		return "FillBoxMaskA"
	default:
		return "Unknown"
	}
}

// Signature encodes, in one comparable value, everything the pipeline
// dispatcher needs to pick a fill function: the composition operator,
// the fetch type (solid/gradient/pattern/image), the fill type, and the
// destination pixel format. A signature may carry PendingBit until the
// style it describes is materialized.
type Signature uint32

const (
	sigCompShift   = 0
	sigFetchShift  = 8
	sigFillShift   = 16
	sigFormatShift = 20
	// PendingBit marks a signature whose fetch data hasn't been
	// materialized yet; set when a style is bound but not yet used by
	// a draw call.
	PendingBit Signature = 1 << 31
)

// NewSignature packs the four dispatch fields into one Signature.
func NewSignature(comp uint8, fetch FetchType, fill CommandType, format pixfmt.Format) Signature {
	return Signature(comp)<<sigCompShift |
		Signature(fetch)<<sigFetchShift |
		Signature(fill)<<sigFillShift |
		Signature(format)<<sigFormatShift
}

func (s Signature) CompOp() uint8         { return uint8(s >> sigCompShift) }
func (s Signature) Fetch() FetchType      { return FetchType(s >> sigFetchShift & 0xff) }
func (s Signature) Fill() CommandType     { return CommandType(s >> sigFillShift & 0xf) }
func (s Signature) Format() pixfmt.Format { return pixfmt.Format(s >> sigFormatShift & 0xf) }
func (s Signature) Pending() bool         { return s&PendingBit != 0 }

// FetchType distinguishes how a command's source color is produced.
type FetchType uint8

const (
	FetchSolid FetchType = iota
	FetchGradient
	FetchPattern
	FetchImage
)

// Box is an axis-aligned, pixel-space rectangle used by the two box
// command variants.
type Box struct {
	X0, Y0, X1, Y1 int
}

// Command is the tagged union of the four fill operations a batch can
// enqueue. Exactly one of the geometry fields is valid, selected by
// Type; exactly one of Solid/Fetch carries the style, selected by
// whether Fetch is non-nil.
type Command struct {
	Type      CommandType
	Signature Signature
	Alpha     uint8 // per-command alpha multiplier, already folded with global+style alpha

	// Box is valid for FillBoxA, FillBoxU, FillBoxMaskA.
	Box Box

	// Band/Vectors are valid for FillAnalytic: the edges making up the
	// shape, restricted to the band this command was enqueued for.
	Band    int
	Vectors []*edge.Vector
	Rule    FillRule

	// Mask is valid for FillBoxMaskA: an externally supplied coverage
	// mask the same size as Box.
	Mask []uint8

	// Solid is the inline color used when Fetch is nil.
	Solid pixfmt.Color
	Fetch *FetchData
}

// FillRule selects nonzero or even-odd winding interpretation for
// FillAnalytic commands.
type FillRule uint8

const (
	FillRuleNonZero FillRule = iota
	FillRuleEvenOdd
)
