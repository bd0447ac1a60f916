package viewport

import "github.com/dshills/hexview/internal/rom"

// Page sizes in bytes. Primary-region pages follow program bank structure,
// secondary-region pages follow the 0x1000-byte tile sheets.
const (
	primaryPage      = 0x400
	secondaryPage    = 0x1000
	primaryBigPage   = rom.PrimaryBankSize
	secondaryBigPage = rom.SecondaryBankSize

	// WheelLines is the number of lines one wheel notch scrolls.
	WheelLines = 32
)

// LineUp moves the aim up by one line.
func (c *Controller) LineUp() {
	c.aim -= float64(c.lineHeight)
	c.clamp()
}

// LineDown moves the aim down by one line.
func (c *Controller) LineDown() {
	c.aim += float64(c.lineHeight)
	c.clamp()
}

// relativeOffset returns the aimed offset measured from the first byte
// after the header, and the start of the secondary region on that scale.
func (c *Controller) relativeOffset() (offset, secondary int) {
	offset = c.AimOffset()
	fll := c.layout.Header().FirstLineLength
	if offset >= fll {
		offset -= fll
	}
	return offset, c.layout.SecondaryStart() - fll
}

// aimRelative aims at a header-relative offset.
func (c *Controller) aimRelative(offset int) {
	lh := float64(c.lineHeight)
	c.aim = float64(offset)*lh/rom.CharsPerLine + float64(c.layout.Header().Lines)*lh
	c.clamp()
}

func alignDown(offset, page int) int {
	return offset &^ (page - 1)
}

func nextPage(offset, page int) int {
	return alignDown(offset+page, page)
}

func prevPage(offset, page int) int {
	if offset&(page-1) != 0 {
		return alignDown(offset, page)
	}
	return offset - page
}

// PageDown aims at the next page boundary.
func (c *Controller) PageDown() {
	o, secondary := c.relativeOffset()
	if o >= secondary {
		c.aimRelative(nextPage(o, secondaryPage))
	} else {
		c.aimRelative(nextPage(o, primaryPage))
	}
}

// PageUp aims at the previous page boundary.
func (c *Controller) PageUp() {
	o, secondary := c.relativeOffset()
	if o > secondary {
		c.aimRelative(prevPage(o, secondaryPage))
	} else {
		c.aimRelative(prevPage(o, primaryPage))
	}
}

// BigPageDown aims at the next bank boundary.
func (c *Controller) BigPageDown() {
	o, secondary := c.relativeOffset()
	if o >= secondary {
		c.aimRelative(nextPage(o, secondaryBigPage))
	} else {
		c.aimRelative(nextPage(o, primaryBigPage))
	}
}

// BigPageUp aims at the previous bank boundary.
func (c *Controller) BigPageUp() {
	o, secondary := c.relativeOffset()
	if o > secondary {
		c.aimRelative(prevPage(o, secondaryBigPage))
	} else {
		c.aimRelative(prevPage(o, primaryBigPage))
	}
}

// Home aims at the start of the region holding the aim, or at the previous
// region when the aim is already at a region start.
func (c *Controller) Home() {
	o := c.AimOffset()
	primary := c.layout.PrimaryStart()
	secondary := c.layout.SecondaryStart()
	switch {
	case o > secondary:
		c.aim = c.rowOf(secondary)
	case o > primary:
		c.aim = c.rowOf(primary)
	default:
		c.aim = 0
	}
	c.clamp()
}

// pageEnding returns the aim that shows offset end-1 on the last visible line.
func (c *Controller) pageEnding(end int) float64 {
	if end <= 0 {
		return 0
	}
	bottom := float64(c.lineHeight * (c.layout.LineForOffset(end-1) + 1))
	if r := bottom - float64(c.viewport); r > 0 {
		return r
	}
	return 0
}

// End aims so that the primary region ends at the bottom of the view, or,
// when that is already visible, so that the image ends there.
func (c *Controller) End() {
	below := c.layout.LineBeginOffset(int((c.aim+float64(c.viewport))/float64(c.lineHeight)) + 1)
	secondary := c.layout.SecondaryStart()
	if below < secondary {
		c.aim = c.pageEnding(secondary)
	} else {
		c.aim = c.pageEnding(c.length)
	}
	c.clamp()
}

// Drag moves the view with the pointer: dragging down by dy pixels scrolls
// the dump up by dy rows.
func (c *Controller) Drag(dy int) {
	c.aim -= float64(dy)
	c.clamp()
}

// Wheel scrolls WheelLines lines per notch from the applied position.
// Positive notches scroll towards the start.
func (c *Controller) Wheel(notches int) {
	c.aim = float64(c.applied - notches*c.lineHeight*WheelLines)
	c.clamp()
}

// JumpTo aims at the line holding offset.
func (c *Controller) JumpTo(offset int) {
	if offset < 0 {
		offset = 0
	}
	c.aim = c.rowOf(offset)
	c.clamp()
}
