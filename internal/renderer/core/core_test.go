package core

import "testing"

func TestColorFromHex(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"#FF556B", 0xFF556B, false},
		{"3333FF", 0x3333FF, false},
		{"#fff", 0xFFFFFF, false},
		{"#12", 0, true},
		{"zzzzzz", 0, true},
	}

	for _, tt := range tests {
		got, err := ColorFromHex(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ColorFromHex(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ColorFromHex(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestColorRGB(t *testing.T) {
	c := ColorFromRGB(0x12, 0x34, 0x56)
	r, g, b := c.RGB()
	if r != 0x12 || g != 0x34 || b != 0x56 {
		t.Errorf("RGB() = %x %x %x, want 12 34 56", r, g, b)
	}
	if c.String() != "#123456" {
		t.Errorf("String() = %q, want #123456", c.String())
	}
}

func TestFramebufferRows(t *testing.T) {
	fb := NewFramebuffer(4, 3)

	row := fb.Row(1)
	if len(row) != 4 {
		t.Fatalf("len(Row(1)) = %d, want 4", len(row))
	}
	row[2] = 0xABCDEF
	if fb.At(2, 1) != 0xABCDEF {
		t.Errorf("At(2, 1) = %v, want #ABCDEF", fb.At(2, 1))
	}
	if fb.Row(3) != nil || fb.Row(-1) != nil {
		t.Error("out of range rows should be nil")
	}
	if fb.At(9, 9) != 0 {
		t.Error("out of range pixel should be 0")
	}
}

func TestTransliterate(t *testing.T) {
	tests := []struct {
		name  string
		state ViewerState
		in    byte
		want  byte
	}{
		{"identity", ViewerState{}, 'A', 'A'},
		{"shift", ViewerState{Shift: 0x20}, 0x21, 0x41},
		{"wrap", ViewerState{Shift: 0x10}, 0xF8, 0x08},
		{"case shift lands in lowercase", ViewerState{Shift: 0, CaseShift: 0x20}, 'A', 'a'},
		{"case shift misses lowercase", ViewerState{CaseShift: 0x20}, '0', '0'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.Transliterate(tt.in); got != tt.want {
				t.Errorf("Transliterate(%#x) = %#x, want %#x", tt.in, got, tt.want)
			}
		})
	}
}

func TestAdjustShiftWraps(t *testing.T) {
	var s ViewerState
	s.AdjustShift(-1)
	if s.Shift != 0xFF {
		t.Errorf("Shift = %#x, want 0xFF", s.Shift)
	}
	s.AdjustCaseShift(257)
	if s.CaseShift != 1 {
		t.Errorf("CaseShift = %d, want 1", s.CaseShift)
	}
}
