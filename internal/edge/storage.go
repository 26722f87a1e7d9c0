package edge

import "github.com/gogpu/raster2d/internal/fixedpoint"

// Storage holds the edge vectors produced by a Builder, indexed by band
// so the rasterizer can process one horizontal strip of the image at a
// time without re-scanning edges that don't touch that strip. Any vector
// whose points span more than one band is chopped at the band boundary
// so every stored Vector lies entirely within a single band.
type Storage struct {
	bandHeightShift uint
	firstBand       int
	bands           [][]*Vector
	boundingBox     Box
	haveBox         bool
}

// NewStorage creates edge storage using bands of height 1<<bandHeightShift
// fixed-point units.
func NewStorage(bandHeightShift uint) *Storage {
	return &Storage{bandHeightShift: bandHeightShift}
}

func (s *Storage) bandOf(y fixedpoint.Int) int {
	return int(y >> s.bandHeightShift)
}

func (s *Storage) bandTopY(band int) fixedpoint.Int {
	return fixedpoint.Int(band) << s.bandHeightShift
}

// Add stores v, splitting it at band boundaries as needed. v is not
// retained; Add copies the point runs it needs into new Vectors.
func (s *Storage) Add(v *Vector) {
	if !v.Valid() {
		return
	}
	pts := v.Points
	band := s.bandOf(pts[0].Y)
	run := []Point{pts[0]}

	for i := 0; i+1 < len(pts); i++ {
		a, b := pts[i], pts[i+1]
		bandB := s.bandOf(b.Y)
		for band != bandB {
			boundaryY := s.bandTopY(band + 1)
			bp := Point{X: interpX(a, b, boundaryY), Y: boundaryY}
			run = append(run, bp)
			s.addToBand(band, run, v.SignBit)
			band++
			run = []Point{bp}
			a = bp
		}
		run = append(run, b)
	}
	if len(run) >= 2 {
		s.addToBand(band, run, v.SignBit)
	}
}

func (s *Storage) addToBand(band int, pts []Point, signBit bool) {
	idx := s.ensureBand(band)
	cp := append([]Point(nil), pts...)
	s.bands[idx] = append(s.bands[idx], &Vector{Points: cp, SignBit: signBit})
	for _, p := range cp {
		s.unionPoint(p)
	}
}

// ensureBand grows the band slice (in either direction) so bands[result]
// corresponds to the given band id.
func (s *Storage) ensureBand(band int) int {
	if len(s.bands) == 0 {
		s.firstBand = band
		s.bands = make([][]*Vector, 1)
		return 0
	}
	if band < s.firstBand {
		grow := s.firstBand - band
		prefix := make([][]*Vector, grow)
		s.bands = append(prefix, s.bands...)
		s.firstBand = band
		return 0
	}
	lastBand := s.firstBand + len(s.bands) - 1
	if band > lastBand {
		grow := band - lastBand
		s.bands = append(s.bands, make([][]*Vector, grow)...)
	}
	return band - s.firstBand
}

func (s *Storage) unionPoint(p Point) {
	if !s.haveBox {
		s.boundingBox = Box{MinX: p.X, MinY: p.Y, MaxX: p.X, MaxY: p.Y}
		s.haveBox = true
		return
	}
	if p.X < s.boundingBox.MinX {
		s.boundingBox.MinX = p.X
	}
	if p.X > s.boundingBox.MaxX {
		s.boundingBox.MaxX = p.X
	}
	if p.Y < s.boundingBox.MinY {
		s.boundingBox.MinY = p.Y
	}
	if p.Y > s.boundingBox.MaxY {
		s.boundingBox.MaxY = p.Y
	}
}

// BoundingBox returns the union of every point ever added.
func (s *Storage) BoundingBox() (Box, bool) { return s.boundingBox, s.haveBox }

// FirstBand returns the lowest band id that holds any vector.
func (s *Storage) FirstBand() int { return s.firstBand }

// BandCount returns the number of band slots allocated (including empty
// ones between the first and last non-empty band).
func (s *Storage) BandCount() int { return len(s.bands) }

// Band returns the vectors stored in the band at the given id, or nil if
// that band holds nothing.
func (s *Storage) Band(band int) []*Vector {
	idx := band - s.firstBand
	if idx < 0 || idx >= len(s.bands) {
		return nil
	}
	return s.bands[idx]
}

// Each calls fn once per non-empty band in increasing band-id order.
func (s *Storage) Each(fn func(band int, vectors []*Vector)) {
	for i, vecs := range s.bands {
		if len(vecs) == 0 {
			continue
		}
		fn(s.firstBand+i, vecs)
	}
}

// interpX linearly interpolates the X coordinate of the point on segment
// a->b at height y, using 64-bit intermediates so a tall segment's delta
// doesn't overflow 32-bit fixed point.
func interpX(a, b Point, y fixedpoint.Int) fixedpoint.Int {
	dy := int64(b.Y - a.Y)
	if dy == 0 {
		return a.X
	}
	dx := int64(b.X - a.X)
	t := int64(y - a.Y)
	return a.X + fixedpoint.Int((dx*t)/dy)
}
