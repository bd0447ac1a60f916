package rom

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func headerBytes(prg, chr byte) []byte {
	h := make([]byte, HeaderLength)
	copy(h, Magic[:])
	h[4] = prg
	h[5] = chr
	return h
}

func TestParseHeader(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Header
	}{
		{"empty", nil, Header{}},
		{"short", []byte{'N', 'E', 'S'}, Header{}},
		{"wrong magic", []byte{'N', 'E', 'X', 0x1A, 2, 1}, Header{}},
		{"valid", headerBytes(2, 1), Header{PrimaryBanks: 2, SecondaryBanks: 1, Length: 16, FirstLineLength: 16, Lines: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseHeader(tt.data)
			if got != tt.want {
				t.Errorf("ParseHeader() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLayoutRegions(t *testing.T) {
	tests := []struct {
		name      string
		header    Header
		primary   int
		secondary int
		end       int
	}{
		{"2 and 1 banks", ParseHeader(headerBytes(2, 1)), 16, 16 + 32768, 41216},
		{"1 and 0 banks", ParseHeader(headerBytes(1, 0)), 16, 16 + 16384, 16 + 16384},
		{"no header", Header{}, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLayout(tt.header)
			if got := l.PrimaryStart(); got != tt.primary {
				t.Errorf("PrimaryStart() = %d, want %d", got, tt.primary)
			}
			if got := l.SecondaryStart(); got != tt.secondary {
				t.Errorf("SecondaryStart() = %d, want %d", got, tt.secondary)
			}
			if got := l.End(); got != tt.end {
				t.Errorf("End() = %d, want %d", got, tt.end)
			}
		})
	}
}

func TestLineBeginOffset(t *testing.T) {
	withHeader := NewLayout(Header{PrimaryBanks: 2, SecondaryBanks: 1, Length: 16, FirstLineLength: 16, Lines: 1})
	noHeader := NewLayout(Header{})

	tests := []struct {
		layout Layout
		line   int
		want   int
	}{
		{withHeader, 0, 0},
		{withHeader, 1, 16},
		{withHeader, 2, 48},
		{withHeader, 10, 16 + 9*32},
		{noHeader, 0, 0},
		{noHeader, 1, 32},
		{noHeader, 5, 160},
	}

	for _, tt := range tests {
		if got := tt.layout.LineBeginOffset(tt.line); got != tt.want {
			t.Errorf("LineBeginOffset(%d) = %d, want %d", tt.line, got, tt.want)
		}
	}
}

func TestLineForOffsetRoundTrip(t *testing.T) {
	layouts := []Layout{
		NewLayout(Header{PrimaryBanks: 2, SecondaryBanks: 1, Length: 16, FirstLineLength: 16, Lines: 1}),
		NewLayout(Header{}),
	}
	for _, l := range layouts {
		for n := 0; n < 2000; n++ {
			off := l.LineBeginOffset(n)
			if got := l.LineForOffset(off); got != n {
				t.Fatalf("LineForOffset(LineBeginOffset(%d)) = %d", n, got)
			}
			if n > 0 {
				if got := l.LineForOffset(off + 31); got != n {
					t.Fatalf("LineForOffset(%d) = %d, want %d", off+31, got, n)
				}
			}
		}
	}
}

func TestResolve(t *testing.T) {
	l := NewLayout(ParseHeader(headerBytes(2, 1)))

	tests := []struct {
		offset int
		want   Address
	}{
		{0, Address{RegionHeader, 0, 0}},
		{5, Address{RegionHeader, 0, 5}},
		{16, Address{RegionPrimary, 0, 0x8000}},
		{16 + 0x100, Address{RegionPrimary, 0, 0x8100}},
		{16 + 16384, Address{RegionPrimary, 1, 0xC000}},
		{16 + 16384 + 0x3FFF, Address{RegionPrimary, 1, 0xFFFF}},
		{16 + 32768, Address{RegionSecondary, 0, 0}},
		{16 + 32768 + 0x1234, Address{RegionSecondary, 0, 0x1234}},
		{16 + 32768 + 8192, Address{RegionSecondary, 1, 0}},
	}

	for _, tt := range tests {
		if got := l.Resolve(tt.offset); got != tt.want {
			t.Errorf("Resolve(%#x) = %+v, want %+v", tt.offset, got, tt.want)
		}
	}
}

func TestResolveSingleBankUsesUpperBase(t *testing.T) {
	l := NewLayout(ParseHeader(headerBytes(1, 1)))

	got := l.Resolve(16)
	if got.Local != 0xC000 {
		t.Errorf("Resolve(16).Local = %#x, want 0xC000", got.Local)
	}
}

func TestResolveNoHeader(t *testing.T) {
	l := NewLayout(Header{})

	if got := l.Resolve(0); got != (Address{RegionHeader, 0, 0}) {
		t.Errorf("Resolve(0) = %+v, want header sentinel", got)
	}
	got := l.Resolve(8192 + 5)
	want := Address{RegionSecondary, 1, 5}
	if got != want {
		t.Errorf("Resolve(8197) = %+v, want %+v", got, want)
	}
}

func TestResolveRoundTrip(t *testing.T) {
	l := NewLayout(ParseHeader(headerBytes(3, 2)))
	for off := 1; off < l.End()+100; off += 37 {
		a := l.Resolve(off)
		if got := l.Offset(a); got != off {
			t.Fatalf("Offset(Resolve(%#x)) = %#x (address %+v)", off, got, a)
		}
	}
}

func TestAddressString(t *testing.T) {
	a := Address{Region: RegionPrimary, Bank: 1, Local: 0xC123}
	if got := a.String(); got != "01:C123" {
		t.Errorf("String() = %q, want %q", got, "01:C123")
	}
}

func TestRegionOf(t *testing.T) {
	l := NewLayout(ParseHeader(headerBytes(1, 1)))

	tests := []struct {
		offset int
		want   Region
	}{
		{0, RegionHeader},
		{15, RegionHeader},
		{16, RegionPrimary},
		{16 + 16383, RegionPrimary},
		{16 + 16384, RegionSecondary},
	}
	for _, tt := range tests {
		if got := l.RegionOf(tt.offset); got != tt.want {
			t.Errorf("RegionOf(%d) = %v, want %v", tt.offset, got, tt.want)
		}
	}
}

func TestImageAccessors(t *testing.T) {
	data := append(headerBytes(1, 0), make([]byte, 40)...)
	data[16] = 0xAB
	img := New(data)

	if img.Len() != 56 {
		t.Errorf("Len() = %d, want 56", img.Len())
	}
	if img.At(16) != 0xAB {
		t.Errorf("At(16) = %#x, want 0xAB", img.At(16))
	}
	if img.At(1000) != 0 {
		t.Errorf("At(1000) = %#x, want 0", img.At(1000))
	}
	if _, ok := img.Lookup(-1); ok {
		t.Error("Lookup(-1) should fail")
	}
	// header line + 40 bytes over two lines
	if img.Lines() != 3 {
		t.Errorf("Lines() = %d, want 3", img.Lines())
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.nes")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(empty); !errors.Is(err, ErrEmptyImage) {
		t.Errorf("Load(empty) error = %v, want ErrEmptyImage", err)
	}

	full := filepath.Join(dir, "game.nes")
	if err := os.WriteFile(full, headerBytes(1, 1), 0o644); err != nil {
		t.Fatal(err)
	}
	img, err := Load(full)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if img.Layout().Header().PrimaryBanks != 1 {
		t.Errorf("PrimaryBanks = %d, want 1", img.Layout().Header().PrimaryBanks)
	}

	if _, err := Load(filepath.Join(dir, "missing.nes")); err == nil {
		t.Error("Load(missing) should fail")
	}
}
