package vertexfill

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/go-text/typesetting/font"

	"github.com/gogpu/pathcov/geom"
)

// MaxAtlasPages is the number of atlas pages a locator can address. The
// page index travels in the low bit of each atlas coordinate.
const MaxAtlasPages = 4

var (
	// ErrUnknownGlyph is returned when placing a glyph the strike never
	// digested.
	ErrUnknownGlyph = errors.New("vertexfill: unknown glyph")

	// ErrAtlasPage is returned for a locator page past MaxAtlasPages.
	ErrAtlasPage = errors.New("vertexfill: atlas page out of range")

	// ErrAtlasRect is returned when the atlas rect does not match the glyph
	// image size.
	ErrAtlasRect = errors.New("vertexfill: atlas rect does not match glyph")
)

// AtlasLocator is the position of a glyph image in the atlas.
type AtlasLocator struct {
	Page                     uint16
	Left, Top, Right, Bottom uint16
}

// Width returns the width of the atlas rect.
func (l AtlasLocator) Width() int { return int(l.Right) - int(l.Left) }

// Height returns the height of the atlas rect.
func (l AtlasLocator) Height() int { return int(l.Bottom) - int(l.Top) }

// Glyph is one glyph image of a strike. Glyphs are shared between
// goroutines; the atlas location is published atomically by Strike.Place.
type Glyph struct {
	ID font.GID
	// Bounds is the glyph image relative to the glyph origin, in strike
	// pixels.
	Bounds geom.IRect
	atlas  atomic.Pointer[AtlasLocator]
}

// Atlas returns the atlas location of the glyph, or the zero locator before
// it is placed.
func (g *Glyph) Atlas() AtlasLocator {
	if loc := g.atlas.Load(); loc != nil {
		return *loc
	}
	return AtlasLocator{}
}

// Placed reports whether the glyph has an atlas location.
func (g *Glyph) Placed() bool { return g.atlas.Load() != nil }

// BoundsFunc computes the image bounds of a glyph at the strike's size.
type BoundsFunc func(id font.GID) (geom.IRect, error)

// Strike holds the glyphs of one font at one size and transform. Digest and
// Place may be called from several goroutines.
type Strike struct {
	format MaskFormat
	bounds BoundsFunc

	mu     sync.Mutex
	glyphs map[font.GID]*Glyph
}

// NewStrike returns an empty strike whose glyphs are rasterized into an
// atlas of the given format.
func NewStrike(format MaskFormat, bounds BoundsFunc) *Strike {
	return &Strike{format: format, bounds: bounds, glyphs: make(map[font.GID]*Glyph)}
}

// Format returns the atlas format of the strike.
func (s *Strike) Format() MaskFormat { return s.format }

// Digest returns the glyphs of ids in order, computing the bounds of glyphs
// seen for the first time. The returned glyphs are shared by every caller.
func (s *Strike) Digest(ids []font.GID) ([]*Glyph, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*Glyph, len(ids))
	added := 0
	for i, id := range ids {
		g, ok := s.glyphs[id]
		if !ok {
			b, err := s.bounds(id)
			if err != nil {
				Logger().Warn("vertexfill: glyph bounds failed", "gid", id, "err", err)
				return nil, fmt.Errorf("vertexfill: digest glyph %d: %w", id, err)
			}
			g = &Glyph{ID: id, Bounds: b}
			s.glyphs[id] = g
			added++
		}
		out[i] = g
	}
	if added > 0 {
		Logger().Debug("vertexfill: digested glyphs", "new", added, "total", len(s.glyphs))
	}
	return out, nil
}

// Glyph returns the digested glyph id.
func (s *Strike) Glyph(id font.GID) (*Glyph, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.glyphs[id]
	return g, ok
}

// Place records the atlas location of glyph id.
func (s *Strike) Place(id font.GID, loc AtlasLocator) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.glyphs[id]
	if !ok {
		return fmt.Errorf("place glyph %d: %w", id, ErrUnknownGlyph)
	}
	if loc.Page >= MaxAtlasPages {
		return fmt.Errorf("place glyph %d on page %d: %w", id, loc.Page, ErrAtlasPage)
	}
	if loc.Width() != g.Bounds.Width() || loc.Height() != g.Bounds.Height() {
		return fmt.Errorf("place glyph %d: %dx%d for %dx%d image: %w",
			id, loc.Width(), loc.Height(), g.Bounds.Width(), g.Bounds.Height(), ErrAtlasRect)
	}
	g.atlas.Store(&loc)
	return nil
}

// Len returns the number of digested glyphs.
func (s *Strike) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.glyphs)
}
