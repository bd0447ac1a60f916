// Package core provides shared types for the renderer subsystem.
// This package breaks import cycles between renderer and backend.
package core

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a packed 0xRRGGBB pixel value.
// The top byte is ignored.
type Color uint32

// Common colors.
const (
	ColorBlack Color = 0x000000
	ColorWhite Color = 0xFFFFFF
)

// ColorFromRGB creates a color from RGB components.
func ColorFromRGB(r, g, b uint8) Color {
	return Color(uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// ColorFromHex parses "#RRGGBB" or "#RGB".
func ColorFromHex(hex string) (Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		// colorful only accepts the leading '#' form
		if len(hex) > 0 && hex[0] != '#' {
			c, err = colorful.Hex("#" + hex)
		}
		if err != nil {
			return 0, fmt.Errorf("invalid hex color: %s", hex)
		}
	}
	r, g, b := c.RGB255()
	return ColorFromRGB(r, g, b), nil
}

// RGB returns the color components.
func (c Color) RGB() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// String returns the color as #RRGGBB.
func (c Color) String() string {
	r, g, b := c.RGB()
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}
