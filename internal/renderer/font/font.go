// Package font provides monospace bitmap glyphs as per-row bit patterns.
//
// Glyph data comes from the faces shipped with golang.org/x/image. The
// fixed-size faces are copied from their masks; the scalable Go Mono face is
// rasterized once into a fixed cell. Each glyph is stored as a table of
// uint16 rows where bit 15-x holds pixel x of the cell.
package font

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/inconsolata"
)

var (
	// ErrUnknownFace is returned by ByName for an unsupported face name.
	ErrUnknownFace = errors.New("font: unknown face")

	// ErrMissingGlyph is returned when a face cannot draw a code point a
	// caller needs.
	ErrMissingGlyph = errors.New("font: missing glyph")
)

// MaxCellWidth is the widest cell a row pattern can describe.
const MaxCellWidth = 16

// Metrics describes the cell geometry of a face.
type Metrics struct {
	// Width is the horizontal pitch of one character cell.
	Width int

	// Height is the vertical pitch of one text line.
	Height int

	// GlyphHeight is the number of rows stored per glyph.
	GlyphHeight int
}

// Face looks up glyphs and their bitmap rows.
type Face interface {
	// Metrics returns the cell geometry.
	Metrics() Metrics

	// Index returns the glyph index for a code point, substituting a
	// replacement glyph when the face has none.
	Index(r rune) int

	// Has reports whether the face has a dedicated glyph for r.
	Has(r rune) bool

	// Row returns the bit pattern of one glyph row.
	// Rows outside the glyph are blank.
	Row(glyph, row int) uint16
}

// Bitmap is a Face backed by a table of glyph rows.
type Bitmap struct {
	metrics  Metrics
	index    map[rune]int
	rows     []uint16
	glyphs   int
	fallback int
	latin    [256]int32
}

func newBitmap(m Metrics) *Bitmap {
	return &Bitmap{metrics: m, index: make(map[rune]int)}
}

// add appends a glyph for r. rows shorter than the glyph height are padded
// with blank rows.
func (b *Bitmap) add(r rune, rows []uint16) {
	g := b.glyphs
	b.glyphs++
	b.rows = append(b.rows, make([]uint16, b.metrics.GlyphHeight)...)
	copy(b.rows[g*b.metrics.GlyphHeight:], rows)
	b.index[r] = g
}

// finish resolves the replacement glyph and the Latin-1 lookup table.
func (b *Bitmap) finish() {
	b.fallback = 0
	for _, r := range []rune{'�', '?'} {
		if g, ok := b.index[r]; ok {
			b.fallback = g
			break
		}
	}
	for r := range b.latin {
		g, ok := b.index[rune(r)]
		if !ok {
			g = b.fallback
		}
		b.latin[r] = int32(g)
	}
}

// FromBasicFace rasterizes f. cellWidth is the horizontal pitch; values
// below the glyph advance are raised to it.
func FromBasicFace(f *basicfont.Face, cellWidth int) *Bitmap {
	if cellWidth < f.Advance {
		cellWidth = f.Advance
	}
	if cellWidth > MaxCellWidth {
		cellWidth = MaxCellWidth
	}
	glyphHeight := f.Ascent + f.Descent

	glyphs := 0
	for _, rng := range f.Ranges {
		if n := rng.Offset + int(rng.High-rng.Low); n > glyphs {
			glyphs = n
		}
	}

	b := newBitmap(Metrics{
		Width:       cellWidth,
		Height:      f.Height,
		GlyphHeight: glyphHeight,
	})
	b.rows = make([]uint16, glyphs*glyphHeight)
	b.glyphs = glyphs

	bounds := f.Mask.Bounds()
	for g := 0; g < glyphs; g++ {
		for y := 0; y < glyphHeight; y++ {
			my := bounds.Min.Y + g*glyphHeight + y
			if my >= bounds.Max.Y {
				break
			}
			var bits uint16
			for x := 0; x < f.Width && x+f.Left < cellWidth; x++ {
				mx := bounds.Min.X + x
				if mx >= bounds.Max.X {
					break
				}
				if _, _, _, a := f.Mask.At(mx, my).RGBA(); a >= 0x8000 {
					bits |= 0x8000 >> uint(x+f.Left)
				}
			}
			b.rows[g*glyphHeight+y] = bits
		}
	}

	for _, rng := range f.Ranges {
		for r := rng.Low; r < rng.High; r++ {
			b.index[r] = rng.Offset + int(r-rng.Low)
		}
	}
	b.finish()
	return b
}

// Metrics returns the cell geometry.
func (b *Bitmap) Metrics() Metrics {
	return b.metrics
}

// Index returns the glyph index for r.
func (b *Bitmap) Index(r rune) int {
	if r >= 0 && r < rune(len(b.latin)) {
		return int(b.latin[r])
	}
	if g, ok := b.index[r]; ok {
		return g
	}
	return b.fallback
}

// Row returns the bit pattern of one glyph row.
func (b *Bitmap) Row(glyph, row int) uint16 {
	if glyph < 0 || glyph >= b.glyphs || row < 0 || row >= b.metrics.GlyphHeight {
		return 0
	}
	return b.rows[glyph*b.metrics.GlyphHeight+row]
}

// Has reports whether the face has a dedicated glyph for r.
func (b *Bitmap) Has(r rune) bool {
	_, ok := b.index[r]
	return ok
}

// Covers returns a wrapped ErrMissingGlyph naming the first code point in
// runes that f has no glyph for.
func Covers(f Face, runes []rune) error {
	for _, r := range runes {
		if !f.Has(r) {
			return fmt.Errorf("%w: U+%04X", ErrMissingGlyph, r)
		}
	}
	return nil
}

var (
	facesOnce sync.Once
	faces     map[string]*Bitmap
	facesErr  error
)

func loadFaces() {
	mono, err := goMono()
	if err != nil {
		facesErr = err
		return
	}
	faces = map[string]*Bitmap{
		"gomono":   mono,
		"7x13":     FromBasicFace(basicfont.Face7x13, basicfont.Face7x13.Advance),
		"8x16":     FromBasicFace(inconsolata.Regular8x16, inconsolata.Regular8x16.Advance+1),
		"8x16bold": FromBasicFace(inconsolata.Bold8x16, inconsolata.Bold8x16.Advance+1),
	}
}

// ByName returns one of the built-in faces: "gomono", "7x13", "8x16" or
// "8x16bold".
func ByName(name string) (*Bitmap, error) {
	facesOnce.Do(loadFaces)
	if facesErr != nil {
		return nil, facesErr
	}
	f, ok := faces[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFace, name)
	}
	return f, nil
}

// Names lists the built-in face names.
func Names() []string {
	return []string{"gomono", "7x13", "8x16", "8x16bold"}
}
