// Package viewport converts navigation intents into a scroll position
// measured in pixel rows of the dump.
package viewport

import "github.com/dshills/hexview/internal/rom"

// Controller tracks where the view is aimed and where it was last drawn.
//
// The aim may be fractional and is moved by navigation commands; Commit
// copies it into the applied position, which is what the compositor draws.
type Controller struct {
	layout     rom.Layout
	length     int
	lineHeight int
	viewport   int

	aim     float64
	applied int
}

// NewController creates a controller for an image of the given length.
// lineHeight is the pixel height of one display line and viewportHeight the
// number of visible pixel rows. Both are clamped to a minimum of 1.
func NewController(layout rom.Layout, length, lineHeight, viewportHeight int) *Controller {
	if lineHeight < 1 {
		lineHeight = 1
	}
	if viewportHeight < 1 {
		viewportHeight = 1
	}
	if length < 0 {
		length = 0
	}
	return &Controller{
		layout:     layout,
		length:     length,
		lineHeight: lineHeight,
		viewport:   viewportHeight,
	}
}

// State is a snapshot of the scroll position.
type State struct {
	Aim     float64
	Applied int
}

// State returns the current scroll position.
func (c *Controller) State() State {
	return State{Aim: c.aim, Applied: c.applied}
}

// Applied returns the committed pixel row drawn at the top of the view.
func (c *Controller) Applied() int {
	return c.applied
}

// Aim returns the target pixel row.
func (c *Controller) Aim() float64 {
	return c.aim
}

// SetAim moves the target to an absolute pixel row.
func (c *Controller) SetAim(row float64) {
	c.aim = row
	c.clamp()
}

// Pending reports whether the aim differs from the applied position.
func (c *Controller) Pending() bool {
	return int(c.aim) != c.applied
}

// Commit applies the aim and reports whether the applied position changed.
func (c *Controller) Commit() bool {
	c.clamp()
	next := int(c.aim)
	if next == c.applied {
		return false
	}
	c.applied = next
	return true
}

// AimOffset returns the offset of the line nearest the aim.
func (c *Controller) AimOffset() int {
	return c.layout.LineBeginOffset(c.lineAt(c.aim))
}

// AppliedOffset returns the offset of the first line drawn.
func (c *Controller) AppliedOffset() int {
	return c.layout.LineBeginOffset(c.applied / c.lineHeight)
}

// maxAim is the row that puts the last line at the top of the view.
func (c *Controller) maxAim() float64 {
	if c.length == 0 {
		return 0
	}
	return float64(c.lineHeight * c.layout.LineForOffset(c.length-1))
}

func (c *Controller) clamp() {
	if c.aim < 0 {
		c.aim = 0
	}
	if m := c.maxAim(); c.aim > m {
		c.aim = m
	}
}

func (c *Controller) lineAt(row float64) int {
	return int(row/float64(c.lineHeight) + 0.5)
}

// rowOf returns the pixel row of the line holding offset.
func (c *Controller) rowOf(offset int) float64 {
	return float64(c.lineHeight * c.layout.LineForOffset(offset))
}
