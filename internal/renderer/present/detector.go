// Package present decides which framebuffer rows changed and when the
// accumulated changes should be handed to the presentation surface.
package present

import (
	"encoding/binary"
	"hash/crc32"
	"time"
)

// Checksum digests the bytes of one framebuffer row.
type Checksum func([]byte) uint32

// DefaultChecksum is CRC-32 with the IEEE polynomial.
func DefaultChecksum(b []byte) uint32 {
	return crc32.ChecksumIEEE(b)
}

// Detector compares each row before and after it is re-rendered and keeps a
// per-row bitmap of rows that need presenting.
type Detector struct {
	sum     Checksum
	scratch []byte
	pending []bool
	count   int
}

// NewDetector creates a detector for a framebuffer of the given height.
// A nil checksum selects DefaultChecksum.
func NewDetector(height int, sum Checksum) *Detector {
	if sum == nil {
		sum = DefaultChecksum
	}
	if height < 0 {
		height = 0
	}
	return &Detector{
		sum:     sum,
		pending: make([]bool, height),
	}
}

// Digest checksums a row of pixels.
func (d *Detector) Digest(row []uint32) uint32 {
	n := len(row) * 4
	if cap(d.scratch) < n {
		d.scratch = make([]byte, n)
	}
	buf := d.scratch[:n]
	for i, p := range row {
		binary.LittleEndian.PutUint32(buf[i*4:], p)
	}
	return d.sum(buf)
}

// Render runs render, which must redraw row y into row, and marks the row
// pending when its content changed. It reports whether the row changed.
func (d *Detector) Render(y int, row []uint32, render func()) bool {
	before := d.Digest(row)
	render()
	if d.Digest(row) == before {
		return false
	}
	d.Mark(y)
	return true
}

// Mark flags row y as needing presentation.
func (d *Detector) Mark(y int) {
	if y < 0 || y >= len(d.pending) || d.pending[y] {
		return
	}
	d.pending[y] = true
	d.count++
}

// MarkAll flags every row.
func (d *Detector) MarkAll() {
	for y := range d.pending {
		d.pending[y] = true
	}
	d.count = len(d.pending)
}

// Pending returns the presentation bitmap. The slice is owned by the
// detector and is reset by Clear.
func (d *Detector) Pending() []bool {
	return d.pending
}

// Any reports whether any row is pending.
func (d *Detector) Any() bool {
	return d.count > 0
}

// Count returns the number of pending rows.
func (d *Detector) Count() int {
	return d.count
}

// Clear resets the presentation bitmap.
func (d *Detector) Clear() {
	for y := range d.pending {
		d.pending[y] = false
	}
	d.count = 0
}

// DefaultFlushInterval bounds how long rendered rows may wait before being
// presented while a redraw sweep is still in progress.
const DefaultFlushInterval = 200 * time.Millisecond

// Policy decides when rendered rows are flushed to the presenter.
type Policy struct {
	interval time.Duration
	last     time.Time
	fresh    bool
}

// NewPolicy creates a flush policy. Non-positive intervals select
// DefaultFlushInterval.
func NewPolicy(interval time.Duration, now time.Time) *Policy {
	if interval <= 0 {
		interval = DefaultFlushInterval
	}
	return &Policy{interval: interval, last: now, fresh: true}
}

// Rendered records that at least one row was redrawn since the last flush.
func (p *Policy) Rendered() {
	p.fresh = false
}

// Due reports whether a flush should happen now.
// Nothing is flushed until a row has been rendered; after that a flush is
// due once the sweep is clean or the interval has elapsed.
func (p *Policy) Due(clean bool, now time.Time) bool {
	if p.fresh {
		return false
	}
	return clean || now.Sub(p.last) > p.interval
}

// Flushed records a completed flush.
func (p *Policy) Flushed(now time.Time) {
	p.last = now
	p.fresh = true
}
