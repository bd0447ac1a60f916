package font

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/encoding/charmap"
)

// inkThreshold is the coverage at which an antialiased pixel counts as set.
const inkThreshold = 0x60

// Cell fixes the geometry a scalable font is rasterized into.
type Cell struct {
	Width  int
	Height int

	// Size is the font size in pixels.
	Size float64
}

// FromOpenType rasterizes the given code points of f into cell-sized
// glyphs. Code points the font has no outline for are left out, so Has
// reports false for them.
func FromOpenType(f *opentype.Font, cell Cell, runes []rune) (*Bitmap, error) {
	if cell.Width <= 0 || cell.Width > MaxCellWidth || cell.Height <= 0 {
		return nil, fmt.Errorf("font: invalid cell %dx%d", cell.Width, cell.Height)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    cell.Size,
		DPI:     72,
		Hinting: xfont.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("font: %w", err)
	}
	defer face.Close()

	b := newBitmap(Metrics{Width: cell.Width, Height: cell.Height, GlyphHeight: cell.Height})
	dot := fixed.P(0, face.Metrics().Ascent.Round())
	dst := image.NewAlpha(image.Rect(0, 0, cell.Width, cell.Height))
	rows := make([]uint16, cell.Height)

	var buf sfnt.Buffer
	for _, r := range runes {
		if b.Has(r) {
			continue
		}
		if x, err := f.GlyphIndex(&buf, r); err != nil || x == 0 {
			continue
		}
		dr, mask, mp, _, ok := face.Glyph(dot, r)
		if !ok {
			continue
		}
		clear(dst.Pix)
		draw.DrawMask(dst, dr, image.Opaque, image.Point{}, mask, mp, draw.Over)

		for y := range rows {
			var bits uint16
			for x := 0; x < cell.Width; x++ {
				if dst.AlphaAt(x, y).A >= inkThreshold {
					bits |= 0x8000 >> uint(x)
				}
			}
			rows[y] = bits
		}
		b.add(r, rows)
	}
	b.finish()
	return b, nil
}

// goMonoCell matches the 7x13 fixed face so either can drive the same
// layout.
var goMonoCell = Cell{Width: 7, Height: 13, Size: 11}

// goMono rasterizes Go Mono over printable ASCII, the upper half of code
// page 437, the suit symbols and the replacement character. Suit symbols
// the font lacks are drawn from the built-in symbol table.
func goMono() (*Bitmap, error) {
	f, err := opentype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("font: gomono: %w", err)
	}
	b, err := FromOpenType(f, goMonoCell, textRepertoire())
	if err != nil {
		return nil, err
	}
	b.addSymbols(goMonoCell.Height)
	b.finish()
	return b, nil
}

func textRepertoire() []rune {
	runes := make([]rune, 0, 256+0x20+2)
	for r := rune(0x20); r < 0x7F; r++ {
		runes = append(runes, r)
	}
	runes = append(runes, '⌂')
	for c := 0x80; c < 0x100; c++ {
		runes = append(runes, charmap.CodePage437.DecodeByte(byte(c)))
	}
	for r := rune(0x2660); r < 0x2680; r++ {
		runes = append(runes, r)
	}
	return append(runes, '�')
}
