package key

import (
	"fmt"
	"strings"
)

// Key identifies a non-character key. Characters are KeyRune with the
// character carried in Event.Rune.
type Key uint8

const (
	KeyNone Key = iota
	KeyRune
	KeyEscape
	KeyEnter
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	keyCount
)

var keyNames = [keyCount]string{
	KeyNone:     "None",
	KeyRune:     "Rune",
	KeyEscape:   "Escape",
	KeyEnter:    "Enter",
	KeyHome:     "Home",
	KeyEnd:      "End",
	KeyPageUp:   "PageUp",
	KeyPageDown: "PageDown",
	KeyUp:       "Up",
	KeyDown:     "Down",
	KeyLeft:     "Left",
	KeyRight:    "Right",
}

// keyAliases are the short spellings accepted besides the names above.
var keyAliases = map[string]Key{
	"esc":    KeyEscape,
	"return": KeyEnter,
	"cr":     KeyEnter,
	"pgup":   KeyPageUp,
	"pgdn":   KeyPageDown,
}

func (k Key) String() string {
	if k < keyCount {
		return keyNames[k]
	}
	return fmt.Sprintf("Key(%d)", k)
}

// Named returns the special key called name, ignoring case and surrounding
// space. KeyNone and KeyRune have no name.
func Named(name string) (Key, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if k, ok := keyAliases[name]; ok {
		return k, true
	}
	for k := KeyEscape; k < keyCount; k++ {
		if strings.ToLower(keyNames[k]) == name {
			return k, true
		}
	}
	return KeyNone, false
}
