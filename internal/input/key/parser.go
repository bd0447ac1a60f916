package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// runeNames spell characters that are awkward inside a specification.
var runeNames = map[string]rune{
	"space": ' ',
	"lt":    '<',
	"gt":    '>',
	"plus":  '+',
	"minus": '-',
}

// Parse reads a key specification. A lone character always stands for
// itself, so "+", "<" and "-" need no escaping. Modifiers are joined with
// '+' ("Ctrl+r", "Alt+PageDown", "Ctrl++") or, inside angle brackets, with
// '-' ("<C-r>", "<Esc>", "<C-->").
func Parse(spec string) (Event, error) {
	if spec == " " {
		return NewRuneEvent(' ', ModNone), nil
	}
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}
	if utf8.RuneCountInString(spec) == 1 {
		r, _ := utf8.DecodeRuneInString(spec)
		return NewRuneEvent(r, ModNone), nil
	}

	sep := "+"
	if len(spec) > 2 && spec[0] == '<' && spec[len(spec)-1] == '>' {
		spec, sep = spec[1:len(spec)-1], "-"
	}
	mods, name, err := splitModifiers(spec, sep)
	if err != nil {
		return Event{}, err
	}
	return parseKey(name, mods)
}

// splitModifiers separates the modifier names in front of the key name.
// A doubled trailing separator names the separator itself.
func splitModifiers(spec, sep string) (Modifier, string, error) {
	var head, name string
	if strings.HasSuffix(spec, sep+sep) {
		head, name = spec[:len(spec)-2], sep
	} else {
		i := strings.LastIndex(spec, sep)
		if i <= 0 {
			return ModNone, spec, nil
		}
		head, name = spec[:i], spec[i+1:]
	}

	var mods Modifier
	for _, part := range strings.Split(head, sep) {
		m, ok := ParseModifier(part)
		if !ok {
			return ModNone, "", fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, part)
		}
		mods |= m
	}
	return mods, name, nil
}

func parseKey(name string, mods Modifier) (Event, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Event{}, ErrInvalidSpec
	}
	if r, ok := runeNames[strings.ToLower(name)]; ok {
		return NewRuneEvent(r, mods), nil
	}
	if k, ok := Named(name); ok {
		return NewSpecialEvent(k, mods), nil
	}
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		// backends report control letters in lower case
		if mods.Has(ModCtrl) {
			r = unicode.ToLower(r)
		}
		return NewRuneEvent(r, mods), nil
	}
	return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, name)
}
