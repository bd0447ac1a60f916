package key

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		spec string
		want Event
	}{
		{"a", NewRuneEvent('a', ModNone)},
		{"+", NewRuneEvent('+', ModNone)},
		{"-", NewRuneEvent('-', ModNone)},
		{"<", NewRuneEvent('<', ModNone)},
		{" ", NewRuneEvent(' ', ModNone)},
		{"Space", NewRuneEvent(' ', ModNone)},
		{"Escape", NewSpecialEvent(KeyEscape, ModNone)},
		{"pgdn", NewSpecialEvent(KeyPageDown, ModNone)},
		{"Ctrl+C", NewRuneEvent('c', ModCtrl)},
		{"Ctrl++", NewRuneEvent('+', ModCtrl)},
		{"Alt+PageDown", NewSpecialEvent(KeyPageDown, ModAlt)},
		{"<C-c>", NewRuneEvent('c', ModCtrl)},
		{"<C-->", NewRuneEvent('-', ModCtrl)},
		{"<Esc>", NewSpecialEvent(KeyEscape, ModNone)},
		{"<lt>", NewRuneEvent('<', ModNone)},
		{"plus", NewRuneEvent('+', ModNone)},
		{"<M-Home>", NewSpecialEvent(KeyHome, ModAlt)},
		{"Ctrl+Alt+Left", NewSpecialEvent(KeyLeft, ModCtrl|ModAlt)},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := Parse(tt.spec)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.spec, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		spec string
		want error
	}{
		{"", ErrEmptySpec},
		{"   ", ErrEmptySpec},
		{"<>", ErrInvalidSpec},
		{"Hyper+a", ErrInvalidSpec},
		{"<X-a>", ErrInvalidSpec},
		{"notakey", ErrInvalidSpec},
	}
	for _, tt := range tests {
		if _, err := Parse(tt.spec); !errors.Is(err, tt.want) {
			t.Errorf("Parse(%q) error = %v, want %v", tt.spec, err, tt.want)
		}
	}
}

func TestParseRoundTrip(t *testing.T) {
	for _, spec := range []string{"a", "+", "Space", "Ctrl+c", "PageDown", "Shift+Home"} {
		ev, err := Parse(spec)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", spec, err)
		}
		back, err := Parse(ev.String())
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", ev.String(), err)
		}
		if back != ev {
			t.Errorf("round trip of %q = %+v, want %+v", spec, back, ev)
		}
	}
}
