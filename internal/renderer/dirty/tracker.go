package dirty

// State is the scheduler state of a Tracker.
type State uint8

const (
	// StateClean means no scanline is waiting to be redrawn.
	StateClean State = iota

	// StateScanning means at least one scanline may still be dirty.
	StateScanning
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateClean:
		return "clean"
	case StateScanning:
		return "scanning"
	default:
		return "unknown"
	}
}

// Tracker holds one dirty flag per scanline and a round-robin cursor.
//
// Next scans forward from the cursor and wraps around, so a burst of marks
// is drained in screen order starting wherever the previous sweep stopped.
// The clean streak counts scanlines examined since the last hit; a full
// screen of misses settles the tracker.
//
// Tracker is not safe for concurrent use; it belongs to the render loop.
type Tracker struct {
	dirty   []bool
	cursor  int
	streak  int
	pending int
	state   State
}

// NewTracker creates a clean tracker for the given number of scanlines.
// Negative heights are treated as zero.
func NewTracker(height int) *Tracker {
	if height < 0 {
		height = 0
	}
	return &Tracker{
		dirty:  make([]bool, height),
		streak: height,
		state:  StateClean,
	}
}

// Height returns the number of scanlines tracked.
func (t *Tracker) Height() int {
	return len(t.dirty)
}

// State returns the scheduler state.
func (t *Tracker) State() State {
	return t.state
}

// IsClean returns true if no scanline needs redrawing.
func (t *Tracker) IsClean() bool {
	return t.state == StateClean
}

// Pending returns the number of dirty scanlines.
func (t *Tracker) Pending() int {
	return t.pending
}

// IsLineDirty returns true if the scanline is flagged.
func (t *Tracker) IsLineDirty(line int) bool {
	if line < 0 || line >= len(t.dirty) {
		return false
	}
	return t.dirty[line]
}

// MarkAll flags every scanline.
func (t *Tracker) MarkAll() {
	for i := range t.dirty {
		t.dirty[i] = true
	}
	t.pending = len(t.dirty)
	t.touch()
}

// MarkLine flags a single scanline. Out of range lines are ignored.
func (t *Tracker) MarkLine(line int) {
	t.MarkRegion(NewSingleLine(line))
}

// MarkLines flags scanlines start through end inclusive.
func (t *Tracker) MarkLines(start, end int) {
	t.MarkRegion(NewLineRegion(start, end))
}

// MarkRegion flags every scanline of the region that lies on screen.
func (t *Tracker) MarkRegion(r Region) {
	r = r.Clip(len(t.dirty))
	if r.IsEmpty() {
		return
	}
	for i := r.StartLine; i <= r.EndLine; i++ {
		if !t.dirty[i] {
			t.dirty[i] = true
			t.pending++
		}
	}
	t.touch()
}

func (t *Tracker) touch() {
	if t.pending == 0 {
		return
	}
	t.streak = 0
	t.state = StateScanning
}

// Next returns the next dirty scanline at or after the cursor and clears it.
// It returns false once the tracker is clean.
func (t *Tracker) Next() (int, bool) {
	height := len(t.dirty)
	if t.state == StateClean || height == 0 {
		return 0, false
	}
	for !t.dirty[t.cursor] {
		if t.streak >= height {
			t.settle()
			return 0, false
		}
		t.streak++
		t.cursor = (t.cursor + 1) % height
	}

	line := t.cursor
	t.dirty[line] = false
	t.pending--
	t.cursor = (t.cursor + 1) % height
	t.streak = 1
	if t.pending <= 0 {
		t.settle()
	}
	return line, true
}

func (t *Tracker) settle() {
	t.pending = 0
	t.streak = len(t.dirty)
	t.state = StateClean
}
