package backend

import (
	"os"
	"sync"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/dshills/hexview/internal/renderer/core"
)

// halfBlock draws the upper pixel as foreground and the lower as background.
const halfBlock = '▀'

// Terminal implements Backend using tcell for terminal output.
// Each character cell shows two vertically stacked pixels sampled from the
// framebuffer; the sampling step shrinks the framebuffer to fit the screen.
type Terminal struct {
	screen   tcell.Screen
	checkTTY bool
	surface  *Surface

	mu   sync.Mutex
	cols int
	rows int
	step int
	full bool
}

// NewTerminal creates a new terminal backend on the controlling terminal.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen, checkTTY: true}, nil
}

// NewTerminalWithScreen creates a terminal backend on an existing screen,
// typically a tcell simulation screen.
func NewTerminalWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

func (t *Terminal) Init(width, height int) error {
	if t.checkTTY && !term.IsTerminal(int(os.Stdout.Fd())) {
		return ErrNotTerminal
	}
	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnableMouse()
	t.screen.HideCursor()
	t.screen.Clear()

	t.surface = NewSurface(width, height)
	cols, rows := t.screen.Size()
	t.resize(cols, rows)
	return nil
}

func (t *Terminal) Shutdown() {
	t.screen.Fini()
}

func (t *Terminal) Upload(fb *core.Framebuffer, rows []bool) error {
	if t.surface == nil {
		return ErrNotInitialized
	}
	t.surface.Upload(fb, rows)
	return nil
}

func (t *Terminal) Present() error {
	if t.surface == nil {
		return ErrNotInitialized
	}
	t.surface.Swap()
	t.draw(t.surface.Changed())
	t.screen.Show()
	return nil
}

// Step returns the number of framebuffer pixels per sampled pixel.
func (t *Terminal) Step() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.step
}

func (t *Terminal) resize(cols, rows int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	w, h := t.surface.Size()
	t.cols, t.rows = cols, rows
	t.step = cellStep(w, h, cols, rows)
	t.full = true
}

// cellStep returns the smallest sampling step that fits a width×height
// framebuffer into cols×rows half-block cells.
func cellStep(width, height, cols, rows int) int {
	if cols <= 0 || rows <= 0 {
		return 1
	}
	sx := (width + cols - 1) / cols
	sy := (height + 2*rows - 1) / (2 * rows)
	return max(sx, sy, 1)
}

// draw repaints the cells covering changed framebuffer rows.
func (t *Terminal) draw(changed []bool) {
	t.mu.Lock()
	cols, rows, step, full := t.cols, t.rows, t.step, t.full
	t.full = false
	t.mu.Unlock()

	w, h := t.surface.Size()
	blank := tcell.StyleDefault
	for cy := 0; cy < rows; cy++ {
		top := 2 * cy * step
		bottom := top + step
		if !full && !anyRow(changed, top, top+2*step) {
			continue
		}
		for cx := 0; cx < cols; cx++ {
			px := cx * step
			if px >= w || top >= h {
				t.screen.SetContent(cx, cy, ' ', nil, blank)
				continue
			}
			lower := core.ColorBlack
			if bottom < h {
				lower = t.surface.At(px, bottom)
			}
			style := tcell.StyleDefault.
				Foreground(tcellColor(t.surface.At(px, top))).
				Background(tcellColor(lower))
			t.screen.SetContent(cx, cy, halfBlock, nil, style)
		}
	}
}

func anyRow(rows []bool, from, to int) bool {
	for y := max(from, 0); y < to && y < len(rows); y++ {
		if rows[y] {
			return true
		}
	}
	return false
}

func tcellColor(c core.Color) tcell.Color {
	r, g, b := c.RGB()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func (t *Terminal) PollEvent() Event {
	ev := t.screen.PollEvent()
	if ev == nil {
		// screen finalized
		return Event{Type: EventQuit}
	}
	return t.convertEvent(ev)
}

func (t *Terminal) PostEvent(event Event) {
	var ev tcell.Event
	switch event.Type {
	case EventKey:
		ev = tcell.NewEventKey(convertToTcellKey(event.Key), event.Rune, convertToTcellMod(event.Mod))
	case EventQuit:
		ev = tcell.NewEventInterrupt(event)
	default:
		return
	}
	_ = t.screen.PostEvent(ev) // best-effort; event queue may be full
}

// convertEvent converts tcell events to our Event type.
func (t *Terminal) convertEvent(ev tcell.Event) Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		if r, ok := ctrlLetter(e.Key()); ok {
			return Event{
				Type: EventKey,
				Key:  KeyRune,
				Rune: r,
				Mod:  convertMod(e.Modifiers()) | ModCtrl,
			}
		}
		return Event{
			Type: EventKey,
			Key:  convertKey(e.Key()),
			Rune: e.Rune(),
			Mod:  convertMod(e.Modifiers()),
		}

	case *tcell.EventMouse:
		cx, cy := e.Position()
		step := t.Step()
		out := Event{
			X:   cx * step,
			Y:   2 * cy * step,
			Mod: convertMod(e.Modifiers()),
		}
		buttons := e.Buttons()
		switch {
		case buttons&tcell.WheelUp != 0:
			out.Type = EventWheel
			out.Wheel = 1
		case buttons&tcell.WheelDown != 0:
			out.Type = EventWheel
			out.Wheel = -1
		default:
			out.Type = EventMouse
			out.Buttons = convertButtons(buttons)
		}
		return out

	case *tcell.EventResize:
		cols, rows := e.Size()
		if t.surface != nil {
			t.resize(cols, rows)
		}
		return Event{
			Type:   EventResize,
			Width:  cols,
			Height: rows,
		}

	case *tcell.EventInterrupt:
		if q, ok := e.Data().(Event); ok && q.Type == EventQuit {
			return q
		}
		return Event{Type: EventNone}

	default:
		return Event{Type: EventNone}
	}
}

// convertKey converts tcell key to our Key type.
func convertKey(k tcell.Key) Key {
	switch k {
	case tcell.KeyRune:
		return KeyRune
	case tcell.KeyEscape:
		return KeyEscape
	case tcell.KeyEnter:
		return KeyEnter
	case tcell.KeyHome:
		return KeyHome
	case tcell.KeyEnd:
		return KeyEnd
	case tcell.KeyPgUp:
		return KeyPageUp
	case tcell.KeyPgDn:
		return KeyPageDown
	case tcell.KeyUp:
		return KeyUp
	case tcell.KeyDown:
		return KeyDown
	case tcell.KeyLeft:
		return KeyLeft
	case tcell.KeyRight:
		return KeyRight
	default:
		return KeyNone
	}
}

// ctrlLetter returns the letter for a control key. Keys that double as
// Backspace, Tab, line feed and Enter are not letters.
func ctrlLetter(k tcell.Key) (rune, bool) {
	if k < tcell.KeyCtrlA || k > tcell.KeyCtrlZ {
		return 0, false
	}
	switch k {
	case tcell.KeyCtrlH, tcell.KeyCtrlI, tcell.KeyCtrlJ, tcell.KeyCtrlM:
		return 0, false
	}
	return 'a' + rune(k-tcell.KeyCtrlA), true
}

// convertToTcellKey converts our Key to tcell.Key.
func convertToTcellKey(k Key) tcell.Key {
	switch k {
	case KeyEscape:
		return tcell.KeyEscape
	case KeyEnter:
		return tcell.KeyEnter
	case KeyHome:
		return tcell.KeyHome
	case KeyEnd:
		return tcell.KeyEnd
	case KeyPageUp:
		return tcell.KeyPgUp
	case KeyPageDown:
		return tcell.KeyPgDn
	case KeyUp:
		return tcell.KeyUp
	case KeyDown:
		return tcell.KeyDown
	case KeyLeft:
		return tcell.KeyLeft
	case KeyRight:
		return tcell.KeyRight
	default:
		return tcell.KeyRune
	}
}

// convertMod converts tcell modifier mask to our ModMask.
func convertMod(m tcell.ModMask) ModMask {
	var result ModMask
	if m&tcell.ModShift != 0 {
		result |= ModShift
	}
	if m&tcell.ModCtrl != 0 {
		result |= ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		result |= ModAlt
	}
	if m&tcell.ModMeta != 0 {
		result |= ModMeta
	}
	return result
}

// convertToTcellMod converts our ModMask to tcell.ModMask.
func convertToTcellMod(m ModMask) tcell.ModMask {
	var result tcell.ModMask
	if m&ModShift != 0 {
		result |= tcell.ModShift
	}
	if m&ModCtrl != 0 {
		result |= tcell.ModCtrl
	}
	if m&ModAlt != 0 {
		result |= tcell.ModAlt
	}
	if m&ModMeta != 0 {
		result |= tcell.ModMeta
	}
	return result
}

// convertButtons converts tcell button mask to our ButtonMask.
// tcell numbers buttons primary, secondary, middle.
func convertButtons(b tcell.ButtonMask) ButtonMask {
	var result ButtonMask
	if b&tcell.Button1 != 0 {
		result |= ButtonLeft
	}
	if b&tcell.Button2 != 0 {
		result |= ButtonRight
	}
	if b&tcell.Button3 != 0 {
		result |= ButtonMiddle
	}
	return result
}
