// Package dirty tracks which framebuffer scanlines need recomputation and
// hands them out one at a time in round-robin order.
package dirty

// Region is a span of whole scanlines.
type Region struct {
	// StartLine is the first scanline of the region (inclusive).
	StartLine int

	// EndLine is the last scanline of the region (inclusive).
	EndLine int
}

// NewLineRegion creates a region covering scanlines start through end.
func NewLineRegion(start, end int) Region {
	if end < start {
		start, end = end, start
	}
	return Region{StartLine: start, EndLine: end}
}

// NewSingleLine creates a region for a single scanline.
func NewSingleLine(line int) Region {
	return Region{StartLine: line, EndLine: line}
}

// IsEmpty returns true if the region covers no scanline.
func (r Region) IsEmpty() bool {
	return r.StartLine > r.EndLine
}

// LineCount returns the number of scanlines covered by the region.
func (r Region) LineCount() int {
	if r.IsEmpty() {
		return 0
	}
	return r.EndLine - r.StartLine + 1
}

// ContainsLine returns true if the region covers the given scanline.
func (r Region) ContainsLine(line int) bool {
	return line >= r.StartLine && line <= r.EndLine
}

// Overlaps returns true if two regions share a scanline.
func (r Region) Overlaps(other Region) bool {
	if r.IsEmpty() || other.IsEmpty() {
		return false
	}
	return r.StartLine <= other.EndLine && other.StartLine <= r.EndLine
}

// Clip returns the part of the region inside [0, height).
func (r Region) Clip(height int) Region {
	if r.StartLine < 0 {
		r.StartLine = 0
	}
	if r.EndLine > height-1 {
		r.EndLine = height - 1
	}
	return r
}
