// Package key describes single key presses and parses the key
// specifications used in configuration files and startup scripts.
//
// A specification is a lone character ("a", "+", "<"), a key name
// ("PageDown", "Esc", "Space"), either of those behind modifiers
// ("Ctrl+r", "Alt+PageDown"), or the angle-bracket form ("<C-r>", "<Esc>").
package key
