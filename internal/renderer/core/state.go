package core

// ViewerState holds the user-adjustable rendering parameters.
// It is owned by the renderer and passed explicitly to every stage that
// depends on it.
type ViewerState struct {
	// Shift is added to every byte before transliteration.
	Shift uint8

	// CaseShift is added on top of Shift when the result lands in 'a'..'z'.
	CaseShift uint8

	// TallSprites selects 8x16 tile pairs in the graphics views.
	TallSprites bool

	// PointerX and PointerY are the last known pointer position in
	// framebuffer pixels.
	PointerX int
	PointerY int
}

// AdjustShift adds delta to Shift, wrapping at 256.
func (s *ViewerState) AdjustShift(delta int) {
	s.Shift = uint8(int(s.Shift) + delta)
}

// AdjustCaseShift adds delta to CaseShift, wrapping at 256.
func (s *ViewerState) AdjustCaseShift(delta int) {
	s.CaseShift = uint8(int(s.CaseShift) + delta)
}

// Transliterate maps a raw byte to the code point index shown in the text pane.
// The result is always in 0..255.
func (s ViewerState) Transliterate(b byte) byte {
	c := (int(b) + int(s.Shift)) & 0xFF
	if lc := c + int(s.CaseShift); lc >= 'a' && lc <= 'z' {
		c = lc
	}
	return byte(c)
}
