// Package input turns user input into viewer commands.
//
// Key presses are looked up in a keymap (package keymap) that binds key
// specifications (package key) to Command values. Pointer motion is
// classified by package mouse into hover updates and drags.
//
// The default bindings follow the classic viewer layout:
//
//	+ -        transliteration shift
//	( )        lowercase shift
//	*          reset the transliteration shift
//	t          toggle tall sprites
//	w s        line up / down (also Up / Down)
//	u v Space  page up / down (also PageUp / PageDown)
//	< >        bank up / down
//	a e        home / end (also Home / End)
//	Escape     quit
package input
