package compose

import (
	"time"

	"github.com/dshills/hexview/internal/renderer/core"
)

// barCache keeps the rune form of the last two bar texts so each of the
// bar's scanlines does not convert again.
type barCache struct {
	text  [2]string
	runes [2][]rune
	next  int
}

func (b *barCache) get(s string) []rune {
	for i := range b.text {
		if b.runes[i] != nil && b.text[i] == s {
			return b.runes[i]
		}
	}
	i := b.next
	b.next = (b.next + 1) % len(b.text)
	b.text[i] = s
	b.runes[i] = []rune(s)
	return b.runes[i]
}

// renderBar paints row of a status bar showing text.
func (c *Compositor) renderBar(dst []uint32, row int, text string, fg, bg core.Color) {
	g := c.geo
	cw := g.BarCellWidth
	runes := c.bars.get(text)
	for x := 0; x < g.StatusCols; x++ {
		r := ' '
		if x < len(runes) {
			r = runes[x]
		}
		putGlyph(dst[x*cw:], c.bar, c.bar.Index(r), row, cw, fg, bg)
	}
	fill(dst[g.StatusCols*cw:], bg)
}

// Walker animation timing. The sprite enters from the left off-screen
// margin, crosses the bar and leaves on the right.
const (
	walkerEnter  = 240
	walkerExit   = 8
	walkerStride = 7
	walkerFrames = 2
	walkerSize   = 16
)

// walkerTicks converts elapsed time to animation ticks at 37.5 Hz.
func walkerTicks(elapsed time.Duration) int64 {
	return elapsed.Milliseconds() * 3 / 40 / 2
}

// renderWalker overlays the walking sprite on bottom bar row.
func (c *Compositor) renderWalker(dst []uint32, row int, elapsed time.Duration) {
	g := c.geo
	cw := g.BarCellWidth
	sub := cw - 1
	if sub < 1 || row >= walkerSize {
		return
	}

	room := g.StatusCols * sub
	span := int64(room + walkerEnter + walkerExit)
	ticks := walkerTicks(elapsed)
	frame := int((ticks / walkerStride) % walkerFrames)
	wx := int(ticks%span) - walkerEnter

	for xp := wx &^ 7; xp <= (wx+walkerSize)|7; xp++ {
		if xp < 0 || xp >= room {
			continue
		}
		i := (xp/sub)*cw + xp%sub
		switch v := walkerPixel(frame, xp-wx, row); {
		case v&2 != 0:
			col := c.theme.DetailBg
			if v&1 != 0 {
				col = c.theme.Walker
			}
			dst[i] = uint32(col)
			if xp%sub == sub-1 && i+1 < len(dst) {
				dst[i+1] = uint32(col)
			}
		case dst[i] == uint32(c.theme.DetailFg):
			dst[i] = uint32(c.theme.Walker)
		}
	}
}

// walkerSprite frames: '.' transparent, 'o' opaque background, '#' lit.
var walkerSprite = [walkerFrames][walkerSize]string{
	{
		"......####......",
		".....######.....",
		".....#o##o#.....",
		".....######.....",
		"......#oo#......",
		"....########....",
		"...##########...",
		"...#.######.#...",
		"...#.######.#...",
		".....######.....",
		".....##..##.....",
		"....##....##....",
		"....#......#....",
		"...##......##...",
		"................",
		"................",
	},
	{
		"......####......",
		".....######.....",
		".....#o##o#.....",
		".....######.....",
		"......#oo#......",
		"....########....",
		"....########....",
		"....#######.#...",
		"...#.######.....",
		".....######.....",
		".....##..##.....",
		".....##..##.....",
		".....##..##.....",
		"....###..###....",
		"................",
		"................",
	},
}

// walkerPixel returns the 2-bit sprite value at (x, y): bit 1 set means
// opaque, bit 0 set means lit.
func walkerPixel(frame, x, y int) byte {
	if x < 0 || x >= walkerSize || y < 0 || y >= walkerSize {
		return 0
	}
	switch walkerSprite[frame][y][x] {
	case '#':
		return 3
	case 'o':
		return 2
	default:
		return 0
	}
}
