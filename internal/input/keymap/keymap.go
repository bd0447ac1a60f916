package keymap

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dshills/hexview/internal/input"
	"github.com/dshills/hexview/internal/input/key"
)

// Keymap holds key bindings.
// It is not safe for concurrent use.
type Keymap struct {
	bindings map[key.Event]Binding
}

// New creates an empty keymap.
func New() *Keymap {
	return &Keymap{bindings: make(map[key.Event]Binding)}
}

// Add adds a binding, replacing any binding for the same key.
// A binding to input.CmdNone removes the key.
func (k *Keymap) Add(b Binding) error {
	ev, err := b.Parse()
	if err != nil {
		return err
	}
	if b.Command == input.CmdNone {
		delete(k.bindings, ev)
		return nil
	}
	k.bindings[ev] = b
	return nil
}

// Bind binds a key specification to a command name.
func (k *Keymap) Bind(keys, command, source string) error {
	cmd := input.CmdNone
	if command != "none" && command != "" {
		c, err := input.ParseCommand(command)
		if err != nil {
			return fmt.Errorf("binding %q: %w", keys, err)
		}
		cmd = c
	}
	return k.Add(NewBinding(keys, cmd).WithSource(source))
}

// BindAll binds every entry of m (key specification to command name).
// Every entry is tried; the returned error joins all failures.
func (k *Keymap) BindAll(m map[string]string, source string) error {
	specs := make([]string, 0, len(m))
	for s := range m {
		specs = append(specs, s)
	}
	sort.Strings(specs)

	var errs []error
	for _, s := range specs {
		if err := k.Bind(s, m[s], source); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Lookup returns the command bound to ev.
func (k *Keymap) Lookup(ev key.Event) (input.Command, bool) {
	b, ok := k.bindings[ev.Normalize()]
	if !ok {
		return input.CmdNone, false
	}
	return b.Command, true
}

// Len returns the number of bound keys.
func (k *Keymap) Len() int {
	return len(k.bindings)
}

// Bindings returns every binding sorted by key specification.
func (k *Keymap) Bindings() []Binding {
	out := make([]Binding, 0, len(k.bindings))
	for _, b := range k.bindings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Keys < out[j].Keys })
	return out
}

// Clone creates a copy of the keymap.
func (k *Keymap) Clone() *Keymap {
	clone := New()
	for ev, b := range k.bindings {
		clone.bindings[ev] = b
	}
	return clone
}
