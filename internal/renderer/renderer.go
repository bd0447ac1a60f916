package renderer

import (
	"fmt"
	"time"

	"github.com/dshills/hexview/internal/input"
	"github.com/dshills/hexview/internal/renderer/backend"
	"github.com/dshills/hexview/internal/renderer/compose"
	"github.com/dshills/hexview/internal/renderer/core"
	"github.com/dshills/hexview/internal/renderer/dirty"
	"github.com/dshills/hexview/internal/renderer/font"
	"github.com/dshills/hexview/internal/renderer/present"
	"github.com/dshills/hexview/internal/renderer/statusline"
	"github.com/dshills/hexview/internal/renderer/viewport"
	"github.com/dshills/hexview/internal/rom"
)

// Logger receives debug output from the renderer.
type Logger interface {
	Debug(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}

// Options configures the renderer.
type Options struct {
	// Fonts, by built-in face name.
	DataFont   string
	StatusFont string

	// Framebuffer height and tile pixel size. Zero selects the defaults.
	Height   int
	GfxScale int

	// FlushInterval bounds how long rendered rows wait before being
	// presented during a sweep.
	FlushInterval time.Duration

	// Animation enables the bottom bar walker.
	Animation bool

	Theme compose.Theme
	State core.ViewerState

	// Checksum digests framebuffer rows. Nil selects CRC-32.
	Checksum present.Checksum

	// Clock returns the current time. Nil selects time.Now.
	Clock func() time.Time

	Logger Logger
}

// DefaultOptions returns the stock configuration.
func DefaultOptions() Options {
	return Options{
		DataFont:      "gomono",
		StatusFont:    "8x16",
		Height:        compose.DefaultHeight,
		GfxScale:      compose.DefaultGfxScale,
		FlushInterval: present.DefaultFlushInterval,
		Animation:     true,
		Theme:         compose.DefaultTheme(),
	}
}

// Renderer is the incremental redraw engine.
type Renderer struct {
	img       *rom.Image
	geo       compose.Geometry
	fb        *core.Framebuffer
	comp      *compose.Compositor
	tracker   *dirty.Tracker
	detector  *present.Detector
	policy    *present.Policy
	scroll    *viewport.Controller
	status    *statusline.Reporter
	presenter backend.Presenter

	state   core.ViewerState
	animate bool
	clock   func() time.Time
	log     Logger

	statusText string
	detailText string
	elapsed    time.Duration
	presented  bool
}

// New creates a renderer for img that presents through p.
// Everything starts clean; call MarkAllDirty to draw the first frame.
func New(img *rom.Image, p backend.Presenter, opts Options) (*Renderer, error) {
	if img == nil {
		return nil, rom.ErrEmptyImage
	}
	if p == nil {
		return nil, ErrNoPresenter
	}
	data, err := font.ByName(opts.DataFont)
	if err != nil {
		return nil, fmt.Errorf("data font: %w", err)
	}
	if err := compose.CheckFace(data); err != nil {
		return nil, fmt.Errorf("data font %q: %w", opts.DataFont, err)
	}
	bar, err := font.ByName(opts.StatusFont)
	if err != nil {
		return nil, fmt.Errorf("status font: %w", err)
	}

	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	log := opts.Logger
	if log == nil {
		log = nopLogger{}
	}

	geo := compose.NewGeometry(data.Metrics(), bar.Metrics(), opts.Height, opts.GfxScale)
	r := &Renderer{
		img:       img,
		geo:       geo,
		fb:        core.NewFramebuffer(geo.Width, geo.Height),
		comp:      compose.New(img, data, bar, geo, opts.Theme),
		tracker:   dirty.NewTracker(geo.Height),
		detector:  present.NewDetector(geo.Height, opts.Checksum),
		policy:    present.NewPolicy(opts.FlushInterval, clock()),
		scroll:    viewport.NewController(img.Layout(), img.Len(), geo.LineHeight, geo.ViewportHeight()),
		status:    statusline.New(img, geo),
		presenter: p,
		state:     opts.State,
		animate:   opts.Animation,
		clock:     clock,
		log:       log,
	}
	r.statusText = r.status.Status(r.state)
	return r, nil
}

// Geometry returns the framebuffer layout.
func (r *Renderer) Geometry() compose.Geometry {
	return r.geo
}

// Size returns the framebuffer dimensions.
func (r *Renderer) Size() (width, height int) {
	return r.geo.Width, r.geo.Height
}

// Framebuffer returns the framebuffer. It is owned by the renderer.
func (r *Renderer) Framebuffer() *core.Framebuffer {
	return r.fb
}

// Image returns the image being viewed.
func (r *Renderer) Image() *rom.Image {
	return r.img
}

// State returns the viewer state.
func (r *Renderer) State() core.ViewerState {
	return r.state
}

// SetState replaces the viewer state and repaints everything.
func (r *Renderer) SetState(st core.ViewerState) {
	r.state = st
	r.MarkAllDirty()
}

// StatusText returns the current top bar text.
func (r *Renderer) StatusText() string {
	return r.statusText
}

// DetailText returns the current bottom bar text.
func (r *Renderer) DetailText() string {
	return r.detailText
}

// Scroll returns the scroll controller.
func (r *Renderer) Scroll() *viewport.Controller {
	return r.scroll
}

// Tracker returns the dirty scanline tracker.
func (r *Renderer) Tracker() *dirty.Tracker {
	return r.tracker
}

// SetTheme replaces the palette and repaints everything.
func (r *Renderer) SetTheme(t compose.Theme) {
	r.comp.SetTheme(t)
	r.MarkAllDirty()
}

// SetAnimation turns the bottom bar walker on or off.
func (r *Renderer) SetAnimation(on bool) {
	if r.animate == on {
		return
	}
	r.animate = on
	r.markBottomBar()
}

// SetMessage sets a note shown in the top bar.
func (r *Renderer) SetMessage(msg string) {
	r.status.SetMessage(msg)
	r.statusText = r.status.Status(r.state)
	r.markTopBar()
}

// MarkAllDirty recomputes the status text and marks every scanline.
func (r *Renderer) MarkAllDirty() {
	r.statusText = r.status.Status(r.state)
	r.tracker.MarkAll()
}

// Invalidate forgets what the presenter shows, for example after the
// terminal was resized. The next flush uploads every row.
func (r *Renderer) Invalidate() {
	r.presented = false
	r.MarkAllDirty()
}

// MarkStatusDirty recomputes both bar texts and marks both bars.
func (r *Renderer) MarkStatusDirty() {
	r.statusText = r.status.Status(r.state)
	r.detailText = r.status.Detail(r.state, r.scroll.Applied())
	r.markTopBar()
	r.markBottomBar()
}

// MarkAnimationDirty advances the walker to elapsed and marks the bottom
// bar. It does nothing while the animation is off.
func (r *Renderer) MarkAnimationDirty(elapsed time.Duration) {
	if !r.animate {
		return
	}
	r.elapsed = elapsed
	r.markBottomBar()
}

func (r *Renderer) markTopBar() {
	r.tracker.MarkLines(0, r.geo.DataTop()-1)
}

func (r *Renderer) markBottomBar() {
	r.tracker.MarkLines(r.geo.DataBottom(), r.geo.Height-1)
}

// Settled reports whether nothing is left to draw and no scroll is pending.
func (r *Renderer) Settled() bool {
	return r.tracker.IsClean() && !r.scroll.Pending()
}

// Refresh redraws at most one dirty scanline and flushes when due.
// It reports whether a scanline was redrawn.
func (r *Renderer) Refresh() (bool, error) {
	y, ok := r.tracker.Next()
	if ok {
		r.renderRow(y)
	}
	return ok, r.flush()
}

// RefreshBatch runs up to n Refresh steps, stopping early once the tracker
// is clean. It returns the number of scanlines redrawn.
func (r *Renderer) RefreshBatch(n int) (int, error) {
	drawn := 0
	for i := 0; i < n; i++ {
		ok, err := r.Refresh()
		if ok {
			drawn++
		}
		if err != nil {
			return drawn, err
		}
		if r.tracker.IsClean() {
			break
		}
	}
	return drawn, nil
}

func (r *Renderer) renderRow(y int) {
	frame := compose.Frame{
		ScrollBegin: r.scroll.Applied(),
		State:       r.state,
		Status:      r.statusText,
		Detail:      r.detailText,
		Elapsed:     r.elapsed,
		Animate:     r.animate,
	}
	row := r.fb.Row(y)
	r.detector.Render(y, row, func() {
		r.comp.RenderRow(row, y, &frame)
	})
	r.policy.Rendered()
}

// flush hands the changed rows to the presenter once the sweep is clean or
// the flush interval has passed. The first flush uploads every row.
func (r *Renderer) flush() error {
	now := r.clock()
	if !r.policy.Due(r.tracker.IsClean(), now) {
		return nil
	}
	r.policy.Flushed(now)

	if !r.presented {
		r.detector.MarkAll()
	}
	if !r.detector.Any() {
		return nil
	}
	defer r.detector.Clear()

	if err := r.presenter.Upload(r.fb, r.detector.Pending()); err != nil {
		return fmt.Errorf("upload: %w", err)
	}
	if err := r.presenter.Present(); err != nil {
		return fmt.Errorf("present: %w", err)
	}
	r.presented = true
	return nil
}

// Apply executes a viewer command. It reports whether the command was
// handled; commands owned by the application, such as quit, are not.
func (r *Renderer) Apply(cmd input.Command) bool {
	switch cmd {
	case input.CmdShiftUp:
		r.state.AdjustShift(-1)
	case input.CmdShiftDown:
		r.state.AdjustShift(1)
	case input.CmdShiftReset:
		r.state.Shift = 0
	case input.CmdCaseShiftUp:
		r.state.AdjustCaseShift(-1)
	case input.CmdCaseShiftDown:
		r.state.AdjustCaseShift(1)
	case input.CmdToggleTall:
		r.state.TallSprites = !r.state.TallSprites
	case input.CmdLineUp:
		r.scroll.LineUp()
	case input.CmdLineDown:
		r.scroll.LineDown()
	case input.CmdPageUp:
		r.scroll.PageUp()
	case input.CmdPageDown:
		r.scroll.PageDown()
	case input.CmdBigPageUp:
		r.scroll.BigPageUp()
	case input.CmdBigPageDown:
		r.scroll.BigPageDown()
	case input.CmdHome:
		r.scroll.Home()
	case input.CmdEnd:
		r.scroll.End()
	default:
		return false
	}

	if cmd.IsNavigation() {
		r.commit()
	} else {
		r.MarkAllDirty()
	}
	return true
}

// Pointer records the pointer position and refreshes the detail text.
func (r *Renderer) Pointer(x, y int) {
	r.state.PointerX = x
	r.state.PointerY = y
	r.MarkStatusDirty()
}

// Drag scrolls by dy pixels of pointer motion.
func (r *Renderer) Drag(dy int) {
	r.scroll.Drag(dy)
	r.commit()
}

// Wheel scrolls by wheel notches; positive values move towards the start.
func (r *Renderer) Wheel(notches int) {
	r.scroll.Wheel(notches)
	r.commit()
}

// JumpTo scrolls so the line holding offset is at the top.
func (r *Renderer) JumpTo(offset int) {
	r.scroll.JumpTo(offset)
	r.commit()
}

// ScrollOffset returns the offset of the first line drawn.
func (r *Renderer) ScrollOffset() int {
	return r.scroll.AppliedOffset()
}

func (r *Renderer) commit() {
	from := r.scroll.AppliedOffset()
	if r.scroll.Commit() {
		r.log.Debug("At %08X, aiming for %08X", from, r.scroll.AimOffset())
		r.MarkAllDirty()
	}
}
