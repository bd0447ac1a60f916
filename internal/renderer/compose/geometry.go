package compose

import (
	"github.com/dshills/hexview/internal/renderer/font"
	"github.com/dshills/hexview/internal/rom"
)

// Fixed pane dimensions in pixels.
const (
	GutterChars     = 17
	LeftMargin      = 4
	TextLeftMargin  = 1
	TextRightMargin = 4

	// SheetTiles is the number of tiles per row and column of the tile
	// sheet shown beside secondary-region lines. One sheet covers 0x1000
	// bytes.
	SheetTiles = 16

	// DefaultGfxScale is the pixel size of one tile pixel.
	DefaultGfxScale = 2

	// DefaultHeight is the default framebuffer height.
	DefaultHeight = 480
)

// Geometry is the pixel layout of the framebuffer. It is derived once from
// the font metrics and never changes afterwards.
type Geometry struct {
	Width  int
	Height int

	// CellWidth and LineHeight are the data font pitch.
	CellWidth   int
	LineHeight  int
	GlyphHeight int

	// BarCellWidth and BarHeight are the status font pitch.
	BarCellWidth   int
	BarHeight      int
	BarGlyphHeight int

	GfxScale int

	GutterWidth int
	HexLeft     int
	HexWidth    int
	TextLeft    int
	TextWidth   int
	TilesLeft   int
	TilesWidth  int

	// StatusCols is the number of characters that fit in a status bar.
	StatusCols int
}

// NewGeometry computes the layout for the given fonts.
// Non-positive height or scale select the defaults.
func NewGeometry(data, bar font.Metrics, height, gfxScale int) Geometry {
	if height <= 0 {
		height = DefaultHeight
	}
	if gfxScale <= 0 {
		gfxScale = DefaultGfxScale
	}

	g := Geometry{
		Height:         height,
		CellWidth:      data.Width,
		LineHeight:     data.Height,
		GlyphHeight:    data.GlyphHeight,
		BarCellWidth:   bar.Width,
		BarHeight:      bar.Height,
		BarGlyphHeight: bar.GlyphHeight,
		GfxScale:       gfxScale,
	}

	g.GutterWidth = GutterChars * data.Width
	g.HexLeft = g.GutterWidth + LeftMargin
	g.HexWidth = rom.CharsPerLine*data.Width*2 + hexGapsWidth()
	g.TextLeft = g.HexLeft + g.HexWidth + TextLeftMargin
	g.TextWidth = rom.CharsPerLine * data.Width
	g.TilesLeft = g.TextLeft + g.TextWidth + TextRightMargin
	g.TilesWidth = 2 * g.miniWidth()

	g.Width = g.TilesLeft + g.TilesWidth
	if need := g.GfxLeft() + g.SheetSize(); g.Width < need {
		g.Width = need
	}
	if g.BarCellWidth > 0 {
		g.StatusCols = g.Width / g.BarCellWidth
	}
	return g
}

// hexGap returns the blank pixels following byte p of a line.
func hexGap(p int) int {
	switch {
	case (p+1)%16 == 0:
		return 5
	case (p+1)%4 == 0:
		return 3
	default:
		return 1
	}
}

// HexColumn returns the index of the byte whose digits or trailing gap
// cover pixel x of the hex pane, or -1 past the last byte.
func (g Geometry) HexColumn(x int) int {
	if x < 0 {
		return -1
	}
	start := 0
	for p := 0; p < rom.CharsPerLine; p++ {
		start += 2*g.CellWidth + hexGap(p)
		if x < start {
			return p
		}
	}
	return -1
}

func hexGapsWidth() int {
	w := 0
	for p := 0; p < rom.CharsPerLine; p++ {
		w += hexGap(p)
	}
	return w
}

// miniWidth is the width of one inline tile preview: two tiles.
func (g Geometry) miniWidth() int {
	return 16 * g.GfxScale
}

// SheetSize returns the width and height of the tile sheet in pixels.
func (g Geometry) SheetSize() int {
	return SheetTiles * 8 * g.GfxScale
}

// GfxLeft returns the x position of the secondary-region tile sheet.
func (g Geometry) GfxLeft() int {
	return g.HexLeft + g.HexWidth
}

// DataTop returns the first scanline of the dump area.
func (g Geometry) DataTop() int {
	return g.BarHeight
}

// DataBottom returns the first scanline of the bottom bar.
func (g Geometry) DataBottom() int {
	return g.Height - g.BarHeight
}

// ViewportHeight returns the number of scanlines between the bars.
func (g Geometry) ViewportHeight() int {
	if h := g.DataBottom() - g.DataTop(); h > 0 {
		return h
	}
	return 0
}
