package key

import "strings"

// Modifier is a set of modifier keys held with a key.
type Modifier uint8

// Modifier bits. ModAlt is Option on macOS.
const (
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt

	ModNone Modifier = 0
)

// modifierNames is the order String writes modifiers in.
var modifierNames = [...]struct {
	mod  Modifier
	name string
}{
	{ModCtrl, "Ctrl"},
	{ModAlt, "Alt"},
	{ModShift, "Shift"},
}

// modifierAliases holds every accepted spelling, lower-cased. The one
// letter forms are the angle-bracket notation's.
var modifierAliases = map[string]Modifier{
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"c":       ModCtrl,
	"alt":     ModAlt,
	"option":  ModAlt,
	"meta":    ModAlt,
	"a":       ModAlt,
	"m":       ModAlt,
	"shift":   ModShift,
	"s":       ModShift,
}

// Has reports whether every modifier in mod is held.
func (m Modifier) Has(mod Modifier) bool {
	return mod != ModNone && m&mod == mod
}

// String renders the set as "Ctrl+Alt+Shift", omitting absent modifiers.
func (m Modifier) String() string {
	var b strings.Builder
	for _, n := range modifierNames {
		if !m.Has(n.mod) {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('+')
		}
		b.WriteString(n.name)
	}
	return b.String()
}

// ParseModifier returns the modifier spelled name, ignoring case and
// surrounding space.
func ParseModifier(name string) (Modifier, bool) {
	m, ok := modifierAliases[strings.ToLower(strings.TrimSpace(name))]
	return m, ok
}
