package renderer

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/dshills/hexview/internal/input"
	"github.com/dshills/hexview/internal/renderer/backend"
	"github.com/dshills/hexview/internal/renderer/font"
	"github.com/dshills/hexview/internal/rom"
)

func testImage() *rom.Image {
	data := make([]byte, 16+rom.PrimaryBankSize+rom.SecondaryBankSize)
	copy(data, rom.Magic[:])
	data[4] = 1
	data[5] = 1
	for i := 16; i < len(data); i++ {
		data[i] = byte(i)
	}
	return rom.New(data)
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Debug(msg string, args ...any) {
	l.lines = append(l.lines, fmt.Sprintf(msg, args...))
}

func newTestRenderer(t *testing.T) (*Renderer, *backend.NullBackend, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Unix(1000, 0)}
	b := backend.NewNullBackend()

	opts := DefaultOptions()
	opts.Clock = clock.Now
	r, err := New(testImage(), b, opts)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := b.Init(r.Size()); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return r, b, clock
}

func sweep(t *testing.T, r *Renderer) int {
	t.Helper()
	n, err := r.RefreshBatch(r.Geometry().Height * 2)
	if err != nil {
		t.Fatalf("RefreshBatch failed: %v", err)
	}
	return n
}

func TestNewErrors(t *testing.T) {
	b := backend.NewNullBackend()

	if _, err := New(testImage(), nil, DefaultOptions()); !errors.Is(err, ErrNoPresenter) {
		t.Errorf("New(nil presenter) = %v, want ErrNoPresenter", err)
	}

	opts := DefaultOptions()
	opts.DataFont = "12x24"
	if _, err := New(testImage(), b, opts); !errors.Is(err, font.ErrUnknownFace) {
		t.Errorf("New(bad font) = %v, want ErrUnknownFace", err)
	}

	opts = DefaultOptions()
	opts.DataFont = "7x13"
	if _, err := New(testImage(), b, opts); !errors.Is(err, font.ErrMissingGlyph) {
		t.Errorf("New(7x13 data font) = %v, want ErrMissingGlyph", err)
	}
}

func TestNewStartsClean(t *testing.T) {
	r, _, _ := newTestRenderer(t)

	w, h := r.Size()
	if w != r.Geometry().Width || h != 480 {
		t.Errorf("Size() = %d, %d, want %d, 480", w, h, r.Geometry().Width)
	}
	if !r.Settled() {
		t.Error("Settled() = false for a new renderer")
	}
	if !strings.Contains(r.StatusText(), "1 x 16kB ROM, 1 x 8kB VROM") {
		t.Errorf("StatusText() = %q", r.StatusText())
	}
}

func TestFirstSweepPresentsEveryRow(t *testing.T) {
	r, b, _ := newTestRenderer(t)

	r.MarkAllDirty()
	if r.Settled() {
		t.Error("Settled() = true after MarkAllDirty")
	}
	if n := sweep(t, r); n != 480 {
		t.Errorf("sweep drew %d rows, want 480", n)
	}
	if !r.Settled() {
		t.Error("Settled() = false after a full sweep")
	}

	calls, rows := b.Uploads()
	if calls != 1 || rows != 480 {
		t.Errorf("Uploads() = %d, %d, want 1, 480", calls, rows)
	}
	if b.Presents() != 1 {
		t.Errorf("Presents() = %d, want 1", b.Presents())
	}

	fb := r.Framebuffer()
	points := [][2]int{{0, 0}, {r.Geometry().HexLeft, 100}, {r.Geometry().Width - 1, 479}}
	for _, p := range points {
		if got, want := b.At(p[0], p[1]), fb.At(p[0], p[1]); got != want {
			t.Errorf("presented (%d, %d) = %v, want %v", p[0], p[1], got, want)
		}
	}
}

func TestBatchStopsWhenClean(t *testing.T) {
	r, b, _ := newTestRenderer(t)
	r.MarkAllDirty()
	sweep(t, r)

	n, err := r.RefreshBatch(32)
	if err != nil || n != 0 {
		t.Errorf("RefreshBatch on a clean tracker = %d, %v, want 0, nil", n, err)
	}
	if calls, _ := b.Uploads(); calls != 1 {
		t.Errorf("Uploads() calls = %d, want 1", calls)
	}
}

func TestUnchangedRepaintIsNotPresented(t *testing.T) {
	r, b, _ := newTestRenderer(t)
	r.MarkAllDirty()
	sweep(t, r)

	r.MarkAllDirty()
	if n := sweep(t, r); n != 480 {
		t.Errorf("second sweep drew %d rows, want 480", n)
	}
	if calls, _ := b.Uploads(); calls != 1 {
		t.Errorf("Uploads() calls = %d, want 1 for identical frames", calls)
	}
	if b.Presents() != 1 {
		t.Errorf("Presents() = %d, want 1", b.Presents())
	}
}

func TestInvalidateUploadsEveryRow(t *testing.T) {
	r, b, _ := newTestRenderer(t)
	r.MarkAllDirty()
	sweep(t, r)

	r.Invalidate()
	sweep(t, r)
	calls, rows := b.Uploads()
	if calls != 2 || rows != 960 {
		t.Errorf("Uploads() = %d, %d, want 2, 960", calls, rows)
	}
}

func TestFlushWaitsForInterval(t *testing.T) {
	r, b, clock := newTestRenderer(t)
	r.MarkAllDirty()

	if _, err := r.Refresh(); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if calls, _ := b.Uploads(); calls != 0 {
		t.Errorf("Uploads() calls = %d, want 0 before the interval", calls)
	}

	clock.Advance(250 * time.Millisecond)
	if _, err := r.Refresh(); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	calls, rows := b.Uploads()
	if calls != 1 || rows != 480 {
		t.Errorf("Uploads() = %d, %d, want 1, 480 for the first flush", calls, rows)
	}
}

func TestPresenterErrorIsReturned(t *testing.T) {
	r, b, _ := newTestRenderer(t)
	boom := errors.New("boom")
	b.SetError(boom)

	r.MarkAllDirty()
	_, err := r.RefreshBatch(1000)
	if !errors.Is(err, boom) {
		t.Errorf("RefreshBatch() = %v, want %v", err, boom)
	}
}

func TestApplyViewerCommands(t *testing.T) {
	tests := []struct {
		name   string
		cmds   []input.Command
		shift  uint8
		cshift uint8
		tall   bool
	}{
		{"shift up", []input.Command{input.CmdShiftUp}, 0xFF, 0, false},
		{"shift down", []input.Command{input.CmdShiftDown, input.CmdShiftDown}, 2, 0, false},
		{"case shift", []input.Command{input.CmdCaseShiftUp}, 0, 0xFF, false},
		{"reset keeps case shift", []input.Command{input.CmdShiftDown, input.CmdCaseShiftDown, input.CmdShiftReset}, 0, 1, false},
		{"tall", []input.Command{input.CmdToggleTall}, 0, 0, true},
		{"tall twice", []input.Command{input.CmdToggleTall, input.CmdToggleTall}, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, _ := newTestRenderer(t)
			for _, c := range tt.cmds {
				if !r.Apply(c) {
					t.Fatalf("Apply(%v) = false", c)
				}
			}
			st := r.State()
			if st.Shift != tt.shift || st.CaseShift != tt.cshift || st.TallSprites != tt.tall {
				t.Errorf("State() = %+v, want shift %#x case %#x tall %v", st, tt.shift, tt.cshift, tt.tall)
			}
			if got := r.Tracker().Pending(); got != 480 {
				t.Errorf("Pending() = %d, want 480", got)
			}
		})
	}
}

func TestApplyShiftUpdatesStatus(t *testing.T) {
	r, b, _ := newTestRenderer(t)
	r.MarkAllDirty()
	sweep(t, r)

	r.Apply(input.CmdShiftUp)
	if !strings.Contains(r.StatusText(), "'A' is assumed to be 42") {
		t.Errorf("StatusText() = %q, want 'A' at 42", r.StatusText())
	}
	sweep(t, r)
	if calls, _ := b.Uploads(); calls != 2 {
		t.Errorf("Uploads() calls = %d, want 2", calls)
	}
}

func TestApplyUnhandled(t *testing.T) {
	r, _, _ := newTestRenderer(t)
	for _, c := range []input.Command{input.CmdNone, input.CmdQuit, input.CmdReloadConfig} {
		if r.Apply(c) {
			t.Errorf("Apply(%v) = true, want false", c)
		}
	}
	if !r.Settled() {
		t.Error("unhandled commands must not dirty the view")
	}
}

func TestNavigation(t *testing.T) {
	r, _, _ := newTestRenderer(t)
	log := &recordingLogger{}
	r.log = log

	r.Apply(input.CmdPageDown)
	if got, want := r.ScrollOffset(), 16+0x400; got != want {
		t.Errorf("ScrollOffset() = %#x, want %#x", got, want)
	}
	if got := r.Tracker().Pending(); got != 480 {
		t.Errorf("Pending() = %d, want 480 after scrolling", got)
	}
	if len(log.lines) != 1 || log.lines[0] != "At 00000000, aiming for 00000410" {
		t.Errorf("log = %q", log.lines)
	}

	r.JumpTo(16 + 0x800)
	if got, want := r.ScrollOffset(), 16+0x800; got != want {
		t.Errorf("JumpTo: ScrollOffset() = %#x, want %#x", got, want)
	}

	// Home steps back one region at a time
	r.Apply(input.CmdHome)
	if got := r.ScrollOffset(); got != 16 {
		t.Errorf("Home: ScrollOffset() = %#x, want 0x10", got)
	}
	r.Apply(input.CmdHome)
	if got := r.ScrollOffset(); got != 0 {
		t.Errorf("second Home: ScrollOffset() = %#x, want 0", got)
	}
}

func TestDragAndWheel(t *testing.T) {
	r, _, _ := newTestRenderer(t)

	r.Drag(-130)
	if got := r.Scroll().Applied(); got != 130 {
		t.Errorf("Drag: Applied() = %d, want 130", got)
	}
	if got, want := r.ScrollOffset(), 16+9*32; got != want {
		t.Errorf("Drag: ScrollOffset() = %#x, want %#x", got, want)
	}

	r.Wheel(-1)
	if got := r.Scroll().Applied(); got != 130+13*32 {
		t.Errorf("Wheel: Applied() = %d, want %d", got, 130+13*32)
	}

	r.Drag(10000)
	if got := r.Scroll().Applied(); got != 0 {
		t.Errorf("Drag past start: Applied() = %d, want 0", got)
	}
}

func TestPointerUpdatesDetail(t *testing.T) {
	r, _, _ := newTestRenderer(t)
	g := r.Geometry()

	r.Pointer(g.HexLeft, g.DataTop())
	if got := r.DetailText(); !strings.HasPrefix(got, "00000000(00:0000)") {
		t.Errorf("DetailText() = %q", got)
	}
	if got, want := r.Tracker().Pending(), 2*g.BarHeight; got != want {
		t.Errorf("Pending() = %d, want %d bar rows", got, want)
	}

	r.Pointer(0, 0)
	if got := r.DetailText(); got != "" {
		t.Errorf("DetailText() over the status bar = %q, want empty", got)
	}
}

func TestAnimationDirty(t *testing.T) {
	r, _, _ := newTestRenderer(t)
	g := r.Geometry()

	r.MarkAnimationDirty(time.Second)
	if got := r.Tracker().Pending(); got != g.BarHeight {
		t.Errorf("Pending() = %d, want %d", got, g.BarHeight)
	}
	sweep(t, r)

	r.SetAnimation(false)
	sweep(t, r)
	r.MarkAnimationDirty(2 * time.Second)
	if !r.Settled() {
		t.Error("MarkAnimationDirty with the animation off dirtied the view")
	}
}

func TestSetMessageMarksTopBar(t *testing.T) {
	r, _, _ := newTestRenderer(t)

	r.SetMessage("reloaded")
	if !strings.HasSuffix(r.StatusText(), "| reloaded") {
		t.Errorf("StatusText() = %q", r.StatusText())
	}
	if got, want := r.Tracker().Pending(), r.Geometry().BarHeight; got != want {
		t.Errorf("Pending() = %d, want %d", got, want)
	}
}
