package rom

// Layout fixes the region boundaries of an image.
// It is immutable after construction.
type Layout struct {
	header Header
}

// NewLayout creates a layout from a parsed header.
func NewLayout(h Header) Layout {
	return Layout{header: h}
}

// Header returns the header the layout was built from.
func (l Layout) Header() Header {
	return l.header
}

func (l Layout) primarySize() int {
	return l.header.PrimaryBanks * PrimaryBankSize
}

// PrimaryStart returns the offset of the first program byte.
func (l Layout) PrimaryStart() int {
	return l.header.FirstLineLength
}

// SecondaryStart returns the offset of the first tile byte.
func (l Layout) SecondaryStart() int {
	return l.header.FirstLineLength + l.primarySize()
}

// End returns the offset just past the last byte the header accounts for.
func (l Layout) End() int {
	return l.SecondaryStart() + l.header.SecondaryBanks*SecondaryBankSize
}

// RegionOf returns the region containing offset.
func (l Layout) RegionOf(offset int) Region {
	switch {
	case offset < l.header.FirstLineLength:
		return RegionHeader
	case offset < l.SecondaryStart():
		return RegionPrimary
	default:
		return RegionSecondary
	}
}

// LineWidth returns the number of bytes on the given display line.
func (l Layout) LineWidth(line int) int {
	if line == 0 && l.header.FirstLineLength > 0 {
		return l.header.FirstLineLength
	}
	return CharsPerLine
}

// LineBeginOffset returns the offset of the first byte on a display line.
func (l Layout) LineBeginOffset(line int) int {
	if line <= 0 {
		return 0
	}
	return l.header.FirstLineLength + (line-l.header.Lines)*CharsPerLine
}

// LineForOffset returns the display line holding offset.
func (l Layout) LineForOffset(offset int) int {
	if offset < l.header.FirstLineLength || offset <= 0 {
		return 0
	}
	return l.header.Lines + (offset-l.header.FirstLineLength)/CharsPerLine
}
