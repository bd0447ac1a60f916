package keymap

import (
	"fmt"

	"github.com/dshills/hexview/internal/input"
	"github.com/dshills/hexview/internal/input/key"
)

// Binding represents a single key-to-command mapping.
type Binding struct {
	// Keys is the key specification, e.g. "+", "PageDown", "Ctrl+C".
	Keys string

	// Command is the command executed.
	Command input.Command

	// Source indicates where the binding was defined.
	// Examples: "default", "config", "script"
	Source string
}

// NewBinding creates a new binding with the given keys and command.
func NewBinding(keys string, cmd input.Command) Binding {
	return Binding{Keys: keys, Command: cmd}
}

// WithSource sets the source for this binding.
func (b Binding) WithSource(source string) Binding {
	b.Source = source
	return b
}

// Parse returns the normalized key event of the binding.
func (b Binding) Parse() (key.Event, error) {
	ev, err := key.Parse(b.Keys)
	if err != nil {
		return key.Event{}, fmt.Errorf("binding %q: %w", b.Keys, err)
	}
	return ev.Normalize(), nil
}
