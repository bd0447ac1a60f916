package compose

// Tiles are 8x8 pixels, two bits per pixel, stored as two 8-byte bit planes:
// row r of a tile at offset o is built from bytes o+r and o+8+r.
const (
	tileBytes     = 16
	tallTileBytes = 32
)

// decodeTiles paints consecutive tile rows starting at offset into dst, one
// tile per 8*GfxScale pixels. Bytes past the image end decode as zero.
func (c *Compositor) decodeTiles(dst []uint32, offset int, tall bool) {
	scale := c.geo.GfxScale
	step := tileBytes
	if tall {
		step = tallTileBytes
		// offsets with 0x100 set move back 0x100 and forward one tile
		if offset&0x100 != 0 {
			offset = offset - 0x100 + 0x10
		}
	}

	span := 8 * scale
	for x := 0; x+span <= len(dst); x += span {
		lo, hi := c.img.At(offset), c.img.At(offset+8)
		for p := 0; p < 8; p++ {
			pix := (lo>>(7-p))&1 | ((hi>>(7-p))&1)<<1
			fill(dst[x+p*scale:x+(p+1)*scale], c.theme.Tiles[pix])
		}
		offset += step
	}
}

// renderPreview paints the two inline tile previews of a text line.
// A 32-byte line holds two tiles; consecutive line pairs are laid out so
// that each preview shows a full tile over two lines.
func (c *Compositor) renderPreview(dst []uint32, begin, glyphRow int, tall bool) {
	g := c.geo
	gx := g.miniWidth()
	fll := c.layout.Header().FirstLineLength

	size := tileBytes
	if tall {
		size = tallTileBytes
	}

	l1, l2 := glyphRow, glyphRow
	o1, o2 := begin, begin
	if (begin-fll)&size == 0 {
		if o2 >= size {
			o2 -= size
		}
	} else {
		if fll != 0 {
			l1 += g.LineHeight
			l2 += g.LineHeight
		}
		if o1 >= size {
			o1 -= size
		}
	}

	c.previewColumn(dst[:gx], o1, l1, tall)
	c.previewColumn(dst[gx:2*gx], o2, l2, tall)
}

func (c *Compositor) previewColumn(dst []uint32, offset, row int, tall bool) {
	scale := c.geo.GfxScale
	if row >= scale*8 {
		fill(dst, c.theme.Unused)
		return
	}
	c.decodeTiles(dst, offset+row/scale, tall)
}

// renderSheet paints the tile sheet beside a secondary-region line. Each
// 0x1000-byte block is drawn as a 16x16 tile grid starting at the line where
// the block begins; the lines below the grid are filled. dst starts at the
// sheet's left edge and runs to the end of the row.
func (c *Compositor) renderSheet(dst []uint32, begin, py int, tall bool) {
	g := c.geo
	size := g.SheetSize()

	base := c.layout.SecondaryStart()
	block := (begin - base) &^ 0xFFF
	blockLine := c.layout.LineForOffset(base) + block/32
	rel := py - g.LineHeight*blockLine

	if rel < 0 || rel >= size {
		fill(dst[:size], c.theme.Unused)
	} else {
		y := rel / g.GfxScale
		c.decodeTiles(dst[:size], base+block+(y/8)*SheetTiles*tileBytes+y%8, tall)
	}
	fill(dst[size:], c.theme.Margin)
}
