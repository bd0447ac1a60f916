package key

// Event is one key press. Normalized events are comparable, which lets
// keymaps use them as map keys.
type Event struct {
	Key       Key
	Rune      rune // set for KeyRune
	Modifiers Modifier
}

func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}
}

func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// IsRune reports whether e carries a character.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// Normalize drops Shift from character events: "+" and "Shift++" are the
// same press on most layouts.
func (e Event) Normalize() Event {
	if e.IsRune() {
		e.Modifiers &^= ModShift
	}
	return e
}

// String returns the canonical specification of e, which Parse reads
// back: "a", "Space", "Ctrl+r", "Shift+PageDown".
func (e Event) String() string {
	e = e.Normalize()
	name := e.Key.String()
	if e.Key == KeyRune {
		name = string(e.Rune)
		if e.Rune == ' ' {
			name = "Space"
		}
	}
	if e.Modifiers == ModNone {
		return name
	}
	return e.Modifiers.String() + "+" + name
}
