package compose

import (
	"golang.org/x/text/encoding/charmap"

	"github.com/dshills/hexview/internal/renderer/core"
	"github.com/dshills/hexview/internal/renderer/font"
	"github.com/dshills/hexview/internal/rom"
)

const hexDigits = "0123456789ABCDEF"

// gutterText formats offset and its bank address as OOOOOOOO(BB:LLLL).
func gutterText(buf *[GutterChars]byte, offset int, a rom.Address) {
	putHex(buf[0:8], uint64(offset))
	buf[8] = '('
	putHex(buf[9:11], uint64(a.Bank))
	buf[11] = ':'
	putHex(buf[12:16], uint64(a.Local))
	buf[16] = ')'
}

func putHex(dst []byte, v uint64) {
	for i := len(dst) - 1; i >= 0; i-- {
		dst[i] = hexDigits[v&0xF]
		v >>= 4
	}
}

func (c *Compositor) renderGutter(dst []uint32, begin, glyphRow int) {
	if glyphRow >= c.geo.GlyphHeight {
		fill(dst, c.theme.Filler)
		return
	}
	var buf [GutterChars]byte
	gutterText(&buf, begin, c.layout.Resolve(begin))

	cw := c.geo.CellWidth
	for p, ch := range buf {
		putGlyph(dst[p*cw:], c.data, c.data.Index(rune(ch)), glyphRow, cw, c.theme.GutterFg, c.theme.GutterBg)
	}
}

func (c *Compositor) renderHex(dst []uint32, begin, width, glyphRow int) {
	cw := c.geo.CellWidth
	x := 0
	for p := 0; p < width; p++ {
		b := c.img.At(begin + p)
		k := (p >> 2) & 1
		fg, bg := c.theme.HexFg[k], c.theme.HexBg[k]

		putGlyph(dst[x:], c.data, c.hexGlyph[b>>4], glyphRow, cw, fg, bg)
		putGlyph(dst[x+cw:], c.data, c.hexGlyph[b&0xF], glyphRow, cw, fg, bg)
		x += 2 * cw

		gap := hexGap(p)
		fill(dst[x:x+gap], c.theme.Margin)
		x += gap
	}
	fill(dst[x:], c.theme.Unused)
}

func isAlnum(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}

var cp437 = func() (t [256]rune) {
	for b := range t {
		t[b] = charmap.CodePage437.DecodeByte(byte(b))
	}
	return t
}()

// textRune returns the code point the text pane draws for a transliterated
// byte. Control bytes become the U+2660 symbol block and NUL becomes a dot.
func textRune(b byte) rune {
	r := cp437[b]
	switch {
	case r == 0:
		return '.'
	case r < 0x20:
		return 0x2660 + r
	case r == 0x7F:
		return '⌂'
	}
	return r
}

// textGlyph returns the code point and foreground for a transliterated byte.
func (c *Compositor) textGlyph(b byte, fg core.Color) (rune, core.Color) {
	switch r := cp437[b]; {
	case isAlnum(r):
		fg = c.theme.TextAlnum
	case r < 0x20:
		fg = c.theme.TextControl
	case r >= 0x80:
		fg = c.theme.TextHigh
	}
	return textRune(b), fg
}

// CheckFace reports, as a wrapped font.ErrMissingGlyph, the first code point
// the gutter, hex or text panes can emit that f has no glyph for.
func CheckFace(f font.Face) error {
	runes := []rune(hexDigits + "():")
	for b := 0; b < 256; b++ {
		runes = append(runes, textRune(byte(b)))
	}
	return font.Covers(f, runes)
}

// renderText paints the text pane and the inline tile previews of a line
// outside the secondary region. dst is the whole row.
func (c *Compositor) renderText(dst []uint32, begin, width, glyphRow int, st *core.ViewerState) {
	g := c.geo
	cw := g.CellWidth

	fill(dst[g.TextLeft-TextLeftMargin:g.TextLeft], c.theme.Margin)
	text := dst[g.TextLeft:g.TilesLeft]
	for p := 0; p < width; p++ {
		k := (p >> 2) & 1
		r, fg := c.textGlyph(st.Transliterate(c.img.At(begin+p)), c.theme.TextFg[k])
		putGlyph(text[p*cw:], c.data, c.data.Index(r), glyphRow, cw, fg, c.theme.TextBg[k])
	}
	fill(text[width*cw:], c.theme.Margin)

	tiles := dst[g.TilesLeft:]
	if begin < c.layout.PrimaryStart() {
		fill(tiles, c.theme.Margin)
		return
	}
	c.renderPreview(tiles, begin, glyphRow, st.TallSprites)
	fill(tiles[g.TilesWidth:], c.theme.Margin)
}
