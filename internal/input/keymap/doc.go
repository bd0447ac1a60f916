// Package keymap maps key presses to viewer commands.
//
// A Keymap starts from the default bindings and is layered with user
// overrides from the configuration file and the startup script. Later
// bindings replace earlier ones for the same key; binding a key to "none"
// removes it.
package keymap
