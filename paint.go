package raster2d

// LineCap specifies the shape of line endpoints.
type LineCap int

const (
	// LineCapButt specifies a flat line cap.
	LineCapButt LineCap = iota
	// LineCapRound specifies a rounded line cap.
	LineCapRound
	// LineCapSquare specifies a square line cap.
	LineCapSquare
)

// LineJoin specifies the shape of line joins.
type LineJoin int

const (
	// LineJoinMiter specifies a sharp (mitered) join.
	LineJoinMiter LineJoin = iota
	// LineJoinRound specifies a rounded join.
	LineJoinRound
	// LineJoinBevel specifies a beveled join.
	LineJoinBevel
)

// FillRule specifies how to determine which areas are inside a path.
type FillRule int

const (
	// FillRuleNonZero uses the non-zero winding rule.
	FillRuleNonZero FillRule = iota
	// FillRuleEvenOdd uses the even-odd rule.
	FillRuleEvenOdd
)

// Paint represents the styling information for drawing.
type Paint struct {
	// Pattern is the fill or stroke pattern. Deprecated in favor of Brush
	// but kept for callers that still read it directly.
	Pattern Pattern

	// Brush is the fill or stroke brush. Takes precedence over Pattern
	// when both are set; see GetBrush and ColorAt.
	Brush Brush

	// LineWidth is the width of strokes
	LineWidth float64

	// LineCap is the shape of line endpoints
	LineCap LineCap

	// LineJoin is the shape of line joins
	LineJoin LineJoin

	// MiterLimit is the miter limit for sharp joins
	MiterLimit float64

	// FillRule is the fill rule for paths
	FillRule FillRule

	// Antialias enables anti-aliasing
	Antialias bool

	// Stroke holds the unified stroke style (width/cap/join/miter/dash)
	// when set via SetStroke or SetDash. nil means the legacy
	// LineWidth/LineCap/LineJoin/MiterLimit fields above are
	// authoritative; see GetStroke and the Effective* accessors.
	Stroke *Stroke

	// TransformScale is the uniform scale factor extracted from the
	// context's transform at stroke time. Path coordinates are already in
	// device space by the time a stroke is expanded, so LineWidth (given
	// in user space) must be multiplied by this factor first; see
	// DeviceLineWidth.
	TransformScale float64
}

// NewPaint creates a new Paint with default values.
func NewPaint() *Paint {
	return &Paint{
		Pattern:    NewSolidPattern(Black),
		Brush:      Solid(Black),
		LineWidth:  1.0,
		LineCap:    LineCapButt,
		LineJoin:   LineJoinMiter,
		MiterLimit: 10.0,
		FillRule:   FillRuleNonZero,
		Antialias:  true,
	}
}

// SetBrush sets the brush and updates Pattern to match, for callers
// still reading the legacy field.
func (p *Paint) SetBrush(b Brush) {
	p.Brush = b
	p.Pattern = PatternFromBrush(b)
}

// GetBrush returns the brush to paint with: Brush if set, otherwise one
// derived from Pattern, otherwise solid black.
func (p *Paint) GetBrush() Brush {
	if p.Brush != nil {
		return p.Brush
	}
	if p.Pattern != nil {
		return BrushFromPattern(p.Pattern)
	}
	return Solid(Black)
}

// ColorAt samples the effective brush at the given coordinates, with
// Brush taking precedence over Pattern.
func (p *Paint) ColorAt(x, y float64) RGBA {
	if p.Brush != nil {
		return p.Brush.ColorAt(x, y)
	}
	if p.Pattern != nil {
		return p.Pattern.ColorAt(x, y)
	}
	return Black
}

// SetStroke replaces the unified stroke style and syncs the legacy
// LineWidth/LineCap/LineJoin/MiterLimit fields for callers still reading
// them directly.
func (p *Paint) SetStroke(s Stroke) {
	p.Stroke = &s
	p.LineWidth = s.Width
	p.LineCap = s.Cap
	p.LineJoin = s.Join
	p.MiterLimit = s.MiterLimit
}

// GetStroke returns the current stroke style: the unified Stroke if one
// has been set, otherwise one synthesized from the legacy fields.
func (p *Paint) GetStroke() Stroke {
	if p.Stroke != nil {
		return *p.Stroke
	}
	return Stroke{
		Width:      p.LineWidth,
		Cap:        p.LineCap,
		Join:       p.LineJoin,
		MiterLimit: p.MiterLimit,
	}
}

// EffectiveLineWidth returns the stroke width that should be used,
// preferring Stroke over the legacy LineWidth field.
func (p *Paint) EffectiveLineWidth() float64 { return p.GetStroke().Width }

// DeviceLineWidth returns EffectiveLineWidth scaled by TransformScale, the
// width a stroke expander should use once the path it is expanding has
// already been transformed into device space. TransformScale of zero (an
// unset Paint never routed through Context.doStroke) is treated as 1.
func (p *Paint) DeviceLineWidth() float64 {
	scale := p.TransformScale
	if scale <= 0 {
		scale = 1
	}
	return p.EffectiveLineWidth() * scale
}

// EffectiveLineCap returns the line cap that should be used, preferring
// Stroke over the legacy LineCap field.
func (p *Paint) EffectiveLineCap() LineCap { return p.GetStroke().Cap }

// EffectiveLineJoin returns the line join that should be used,
// preferring Stroke over the legacy LineJoin field.
func (p *Paint) EffectiveLineJoin() LineJoin { return p.GetStroke().Join }

// EffectiveMiterLimit returns the miter limit that should be used,
// preferring Stroke over the legacy MiterLimit field.
func (p *Paint) EffectiveMiterLimit() float64 { return p.GetStroke().MiterLimit }

// EffectiveDash returns the dash pattern in effect, or nil for a solid
// line.
func (p *Paint) EffectiveDash() *Dash {
	if p.Stroke == nil {
		return nil
	}
	return p.Stroke.Dash
}

// IsDashed reports whether the current stroke style uses a dash
// pattern.
func (p *Paint) IsDashed() bool {
	return p.Stroke != nil && p.Stroke.IsDashed()
}

// Clone creates a copy of the Paint. Stroke (and its Dash) is deep
// copied so mutating the clone's stroke never affects the original.
func (p *Paint) Clone() *Paint {
	clone := &Paint{
		Pattern:        p.Pattern,
		Brush:          p.Brush,
		LineWidth:      p.LineWidth,
		LineCap:        p.LineCap,
		LineJoin:       p.LineJoin,
		MiterLimit:     p.MiterLimit,
		FillRule:       p.FillRule,
		Antialias:      p.Antialias,
		TransformScale: p.TransformScale,
	}
	if p.Stroke != nil {
		s := p.Stroke.Clone()
		clone.Stroke = &s
	}
	return clone
}
