package compose

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dshills/hexview/internal/renderer/core"
)

// ErrUnknownColor is returned for a theme override naming no palette entry.
var ErrUnknownColor = errors.New("unknown theme color")

// Theme holds every color the compositor paints with.
type Theme struct {
	PastEnd core.Color
	Unused  core.Color
	Filler  core.Color
	Margin  core.Color

	GutterFg core.Color
	GutterBg core.Color

	// HexFg and HexBg alternate every four bytes.
	HexFg [2]core.Color
	HexBg [2]core.Color

	// TextFg and TextBg alternate every four bytes.
	TextFg      [2]core.Color
	TextBg      [2]core.Color
	TextAlnum   core.Color
	TextControl core.Color
	TextHigh    core.Color

	// Tiles maps 2-bit pixel values to colors.
	Tiles [4]core.Color

	StatusFg core.Color
	StatusBg core.Color
	DetailFg core.Color
	DetailBg core.Color
	Walker   core.Color
}

// DefaultTheme returns the stock palette.
func DefaultTheme() Theme {
	return Theme{
		PastEnd: 0x488888,
		Unused:  0x888888,
		Filler:  0x404040,
		Margin:  0x000000,

		GutterFg: 0xFFFFFF,
		GutterBg: 0x000000,

		HexFg: [2]core.Color{0xD0D0D0, 0xCCCCCC},
		HexBg: [2]core.Color{0x000000, 0x000028},

		TextFg:      [2]core.Color{0xD0D0D0, 0xCCCCCC},
		TextBg:      [2]core.Color{0x000000, 0x000050},
		TextAlnum:   0xF0F055,
		TextControl: 0xA07010,
		TextHigh:    0xA050EF,

		Tiles: [4]core.Color{0x000000, 0xFF556B, 0xFFFFFF, 0x3333FF},

		StatusFg: 0xAAAAAA,
		StatusBg: 0x0000AA,
		DetailFg: 0x000000,
		DetailBg: 0x00AAAA,
		Walker:   0x555555,
	}
}

// themeSlots maps the names accepted by WithOverrides to palette entries.
func (t *Theme) themeSlots() map[string]*core.Color {
	return map[string]*core.Color{
		"pastEnd":     &t.PastEnd,
		"unused":      &t.Unused,
		"filler":      &t.Filler,
		"margin":      &t.Margin,
		"gutterFg":    &t.GutterFg,
		"gutterBg":    &t.GutterBg,
		"hexFg":       &t.HexFg[0],
		"hexFgAlt":    &t.HexFg[1],
		"hexBg":       &t.HexBg[0],
		"hexBgAlt":    &t.HexBg[1],
		"textFg":      &t.TextFg[0],
		"textFgAlt":   &t.TextFg[1],
		"textBg":      &t.TextBg[0],
		"textBgAlt":   &t.TextBg[1],
		"textAlnum":   &t.TextAlnum,
		"textControl": &t.TextControl,
		"textHigh":    &t.TextHigh,
		"tile0":       &t.Tiles[0],
		"tile1":       &t.Tiles[1],
		"tile2":       &t.Tiles[2],
		"tile3":       &t.Tiles[3],
		"statusFg":    &t.StatusFg,
		"statusBg":    &t.StatusBg,
		"detailFg":    &t.DetailFg,
		"detailBg":    &t.DetailBg,
		"walker":      &t.Walker,
	}
}

// ThemeColorNames lists the names accepted by WithOverrides.
func ThemeColorNames() []string {
	var t Theme
	names := make([]string, 0, 32)
	for name := range t.themeSlots() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WithOverrides returns a copy of t with the named colors replaced.
// Colors are "#RRGGBB" or "#RGB". Unknown names and bad colors are
// reported together; valid entries are applied regardless.
func (t Theme) WithOverrides(colors map[string]string) (Theme, error) {
	slots := t.themeSlots()
	var errs []error
	for name, value := range colors {
		slot, ok := slots[name]
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownColor, name))
			continue
		}
		c, err := core.ColorFromHex(value)
		if err != nil {
			errs = append(errs, fmt.Errorf("theme.%s: %w", name, err))
			continue
		}
		*slot = c
	}
	return t, errors.Join(errs...)
}
