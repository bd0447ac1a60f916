// Package statusline builds the texts shown in the top and bottom bars.
package statusline

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/dshills/hexview/internal/renderer/compose"
	"github.com/dshills/hexview/internal/renderer/core"
	"github.com/dshills/hexview/internal/rom"
)

// Reporter derives bar texts from the image and the viewer state.
type Reporter struct {
	img     *rom.Image
	layout  rom.Layout
	geo     compose.Geometry
	message string
}

// New creates a reporter for img drawn with geometry geo.
func New(img *rom.Image, geo compose.Geometry) *Reporter {
	return &Reporter{
		img:    img,
		layout: img.Layout(),
		geo:    geo,
	}
}

// SetMessage sets a transient note appended to the status text.
// An empty message clears it.
func (r *Reporter) SetMessage(msg string) {
	r.message = msg
}

// Message returns the current note.
func (r *Reporter) Message() string {
	return r.message
}

// Status returns the top bar text: bank counts and the effect of the
// transliteration shifts on the letters 'A' and 'a'.
func (r *Reporter) Status(st core.ViewerState) string {
	h := r.layout.Header()
	upper := byte('A' - int(st.Shift))
	lower := byte('a' - int(st.Shift) - int(st.CaseShift))

	var b strings.Builder
	fmt.Fprintf(&b, "ROM size: %d x 16kB ROM, %d x 8kB VROM; 'A' is assumed to be %02X, 'a' to be %02X",
		h.PrimaryBanks, h.SecondaryBanks, upper, lower)
	if st.TallSprites {
		b.WriteString(", tall sprites")
	}
	if r.message != "" {
		b.WriteString(" | ")
		b.WriteString(r.message)
	}
	return Fit(b.String(), r.geo.StatusCols)
}

// OffsetAt maps a framebuffer position to the byte drawn there in the hex
// or text pane. scroll is the applied scroll position.
func (r *Reporter) OffsetAt(x, y, scroll int) (int, bool) {
	g := r.geo
	if y < g.DataTop() || y >= g.DataBottom() || g.LineHeight <= 0 {
		return 0, false
	}
	line := (y - g.DataTop() + scroll) / g.LineHeight

	var col int
	switch {
	case x >= g.HexLeft && x < g.HexLeft+g.HexWidth:
		col = g.HexColumn(x - g.HexLeft)
	case x >= g.TextLeft && x < g.TextLeft+g.TextWidth:
		col = (x - g.TextLeft) / g.CellWidth
	default:
		return 0, false
	}
	if col < 0 || col >= r.layout.LineWidth(line) {
		return 0, false
	}

	offset := r.layout.LineBeginOffset(line) + col
	if offset >= r.img.Len() {
		return 0, false
	}
	return offset, true
}

// Detail returns the bottom bar text for the byte under the pointer, or an
// empty string when the pointer is not over a byte.
func (r *Reporter) Detail(st core.ViewerState, scroll int) string {
	offset, ok := r.OffsetAt(st.PointerX, st.PointerY, scroll)
	if !ok {
		return ""
	}
	neighbour := func(o int) byte {
		if b, ok := r.img.Lookup(o); ok {
			return b
		}
		return 0xFF
	}
	a := r.layout.Resolve(offset)
	text := fmt.Sprintf("%08X(%s) (byte at this location: %02X %02X <%02X> %02X %02X)",
		offset, a, neighbour(offset-2), neighbour(offset-1), neighbour(offset),
		neighbour(offset+1), neighbour(offset+2))
	return Fit(text, r.geo.StatusCols)
}

// Fit truncates s to at most cols display columns without splitting a
// grapheme cluster. Non-positive cols leave s unchanged.
func Fit(s string, cols int) string {
	if cols <= 0 || uniseg.StringWidth(s) <= cols {
		return s
	}
	var b strings.Builder
	width := 0
	state := -1
	rest := s
	for len(rest) > 0 {
		var cluster string
		var w int
		cluster, rest, w, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if width+w > cols {
			break
		}
		b.WriteString(cluster)
		width += w
	}
	return b.String()
}
