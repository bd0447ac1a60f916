package keymap

import "github.com/dshills/hexview/internal/input"

// defaultBindings is the classic viewer layout.
var defaultBindings = []Binding{
	// Transliteration
	{Keys: "+", Command: input.CmdShiftUp},
	{Keys: "-", Command: input.CmdShiftDown},
	{Keys: "(", Command: input.CmdCaseShiftUp},
	{Keys: ")", Command: input.CmdCaseShiftDown},
	{Keys: "*", Command: input.CmdShiftReset},
	{Keys: "t", Command: input.CmdToggleTall},

	// Movement
	{Keys: "w", Command: input.CmdLineUp},
	{Keys: "Up", Command: input.CmdLineUp},
	{Keys: "s", Command: input.CmdLineDown},
	{Keys: "Down", Command: input.CmdLineDown},
	{Keys: "u", Command: input.CmdPageUp},
	{Keys: "PageUp", Command: input.CmdPageUp},
	{Keys: "v", Command: input.CmdPageDown},
	{Keys: "Space", Command: input.CmdPageDown},
	{Keys: "PageDown", Command: input.CmdPageDown},
	{Keys: "<", Command: input.CmdBigPageUp},
	{Keys: ">", Command: input.CmdBigPageDown},
	{Keys: "a", Command: input.CmdHome},
	{Keys: "Home", Command: input.CmdHome},
	{Keys: "e", Command: input.CmdEnd},
	{Keys: "End", Command: input.CmdEnd},

	{Keys: "Ctrl+r", Command: input.CmdReloadConfig},
	{Keys: "Escape", Command: input.CmdQuit},
	{Keys: "Ctrl+c", Command: input.CmdQuit},
}

// Default returns a keymap holding the default bindings.
func Default() *Keymap {
	km := New()
	for _, b := range defaultBindings {
		// default specs are known to parse
		_ = km.Add(b.WithSource("default"))
	}
	return km
}
