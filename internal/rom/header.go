// Package rom models a cartridge image as a linear byte sequence split into a
// header, primary (program) banks and secondary (tile) banks, and translates
// between linear offsets, display lines and bank-relative addresses.
package rom

// Bank and line geometry shared by every layout.
const (
	// PrimaryBankSize is the size of one program bank in bytes.
	PrimaryBankSize = 16384

	// SecondaryBankSize is the size of one tile bank in bytes.
	SecondaryBankSize = 8192

	// CharsPerLine is the number of bytes shown on a regular display line.
	CharsPerLine = 32

	// HeaderLength is the size of a recognized header in bytes.
	HeaderLength = 16
)

// Magic identifies an image carrying a bank-count header.
var Magic = [4]byte{'N', 'E', 'S', 0x1A}

// Header describes the optional prefix of an image.
type Header struct {
	// PrimaryBanks is the number of 16 KiB program banks.
	PrimaryBanks int

	// SecondaryBanks is the number of 8 KiB tile banks.
	SecondaryBanks int

	// Length is the number of header bytes, 0 if no header was recognized.
	Length int

	// FirstLineLength is the number of bytes displayed on line 0.
	// Zero means line 0 is a regular line.
	FirstLineLength int

	// Lines is the number of display lines occupied by the header.
	Lines int
}

// ParseHeader detects a header at the start of data.
// Data that does not start with Magic, or is too short to hold the bank
// counts, yields the zero Header.
func ParseHeader(data []byte) Header {
	if len(data) < 6 {
		return Header{}
	}
	for i, b := range Magic {
		if data[i] != b {
			return Header{}
		}
	}
	return Header{
		PrimaryBanks:    int(data[4]),
		SecondaryBanks:  int(data[5]),
		Length:          HeaderLength,
		FirstLineLength: HeaderLength,
		Lines:           1,
	}
}

// Present reports whether a header was recognized.
func (h Header) Present() bool {
	return h.Length > 0
}
