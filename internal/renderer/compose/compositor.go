// Package compose renders single framebuffer rows of the dump view: the
// status bars, and for every data row an address gutter, a hex pane, a text
// pane and tile graphics.
//
// Every function here is a pure function of the image, the scroll position,
// the viewer state, the bar texts and the elapsed time, so a row rendered
// twice from the same inputs is pixel-identical. The change detector relies
// on that.
package compose

import (
	"time"

	"github.com/dshills/hexview/internal/renderer/core"
	"github.com/dshills/hexview/internal/renderer/font"
	"github.com/dshills/hexview/internal/rom"
)

// Frame carries the per-render inputs that change over time.
type Frame struct {
	// ScrollBegin is the pixel row of the dump shown at the top of the
	// data area.
	ScrollBegin int

	State core.ViewerState

	// Status is shown in the top bar, Detail in the bottom bar.
	Status string
	Detail string

	// Elapsed drives the bottom bar animation when Animate is set.
	Elapsed time.Duration
	Animate bool
}

// Compositor renders framebuffer rows.
type Compositor struct {
	img    *rom.Image
	layout rom.Layout
	data   font.Face
	bar    font.Face
	geo    Geometry
	theme  Theme

	hexGlyph [16]int
	bars     barCache
}

// New creates a compositor for img.
func New(img *rom.Image, data, bar font.Face, geo Geometry, theme Theme) *Compositor {
	c := &Compositor{
		img:    img,
		layout: img.Layout(),
		data:   data,
		bar:    bar,
		geo:    geo,
		theme:  theme,
	}
	for i, r := range "0123456789ABCDEF" {
		c.hexGlyph[i] = data.Index(r)
	}
	return c
}

// Geometry returns the framebuffer layout.
func (c *Compositor) Geometry() Geometry {
	return c.geo
}

// Theme returns the active palette.
func (c *Compositor) Theme() Theme {
	return c.theme
}

// SetTheme replaces the palette. Callers must repaint everything.
func (c *Compositor) SetTheme(t Theme) {
	c.theme = t
}

// RenderRow renders framebuffer row y into dst.
// dst must hold at least Geometry().Width pixels; every one of them is
// written.
func (c *Compositor) RenderRow(dst []uint32, y int, f *Frame) {
	g := c.geo
	if y < 0 || y >= g.Height || len(dst) < g.Width {
		return
	}
	dst = dst[:g.Width]

	switch {
	case y < g.DataTop():
		c.renderBar(dst, y, f.Status, c.theme.StatusFg, c.theme.StatusBg)
	case y >= g.DataBottom():
		row := y - g.DataBottom()
		c.renderBar(dst, row, f.Detail, c.theme.DetailFg, c.theme.DetailBg)
		if f.Animate {
			c.renderWalker(dst, row, f.Elapsed)
		}
	default:
		c.renderDump(dst, y-g.DataTop()+f.ScrollBegin, &f.State)
	}
}

// renderDump renders pixel row py of the scrolled dump.
func (c *Compositor) renderDump(dst []uint32, py int, st *core.ViewerState) {
	g := c.geo
	line := py / g.LineHeight
	glyphRow := py % g.LineHeight
	begin := c.layout.LineBeginOffset(line)

	if begin >= c.img.Len() {
		fill(dst, c.theme.PastEnd)
		return
	}

	width := c.layout.LineWidth(line)
	if avail := c.img.Len() - begin; width > avail {
		width = avail
	}

	c.renderGutter(dst[:g.GutterWidth], begin, glyphRow)
	fill(dst[g.GutterWidth:g.HexLeft], c.theme.Margin)
	c.renderHex(dst[g.HexLeft:g.HexLeft+g.HexWidth], begin, width, glyphRow)

	if begin < c.layout.SecondaryStart() {
		c.renderText(dst, begin, width, glyphRow, st)
	} else {
		c.renderSheet(dst[g.GfxLeft():], begin, py, st.TallSprites)
	}
}

func fill(dst []uint32, col core.Color) {
	v := uint32(col)
	for i := range dst {
		dst[i] = v
	}
}

// putGlyph paints one glyph row into the first width pixels of dst.
func putGlyph(dst []uint32, face font.Face, glyph, row, width int, fg, bg core.Color) {
	bits := face.Row(glyph, row)
	for x := 0; x < width && x < len(dst); x++ {
		if bits&(0x8000>>uint(x)) != 0 {
			dst[x] = uint32(fg)
		} else {
			dst[x] = uint32(bg)
		}
	}
}
