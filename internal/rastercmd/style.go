package rastercmd

import "github.com/gogpu/raster2d/internal/pixfmt"

// StyleData is a fill or stroke slot's resolved style: either an
// implicit solid color stored inline, or a reference to a heap
// FetchData for gradients/patterns/images. The original user-supplied
// color is kept even when Fetch is set, so it can be read back without
// round-tripping through the fetch payload.
type StyleData struct {
	Solid        pixfmt.Color
	OriginalRGBA pixfmt.Color
	Fetch        *FetchData
}

// IsSolid reports whether this style resolves to an inline color rather
// than a fetch-data reference.
func (s *StyleData) IsSolid() bool { return s.Fetch == nil }

// SetSolid makes the slot an implicit-solid style, releasing any prior
// fetch-data reference.
func (s *StyleData) SetSolid(c pixfmt.Color) {
	if s.Fetch != nil {
		s.Fetch.Unref()
		s.Fetch = nil
	}
	s.Solid = c.Premultiply()
	s.OriginalRGBA = c
}

// SetFetch makes the slot reference fd, taking ownership of the caller's
// reference (the caller must not Unref fd itself after this call).
func (s *StyleData) SetFetch(fd *FetchData, original pixfmt.Color) {
	if s.Fetch != nil {
		s.Fetch.Unref()
	}
	s.Fetch = fd
	s.OriginalRGBA = original
}

// Release drops the slot's fetch-data reference, if any, leaving the
// slot in its zero (implicit-solid, transparent-black) state.
func (s *StyleData) Release() {
	if s.Fetch != nil {
		s.Fetch.Unref()
		s.Fetch = nil
	}
}
