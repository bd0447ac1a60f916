//go:build !headless

package backend

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/dshills/hexview/internal/renderer/core"
)

// Window implements Backend with an ebiten window. The ebiten game loop
// runs on its own goroutine; it reads the published surface in Draw and
// turns input into events in Update.
type Window struct {
	title string
	scale int

	surface *Surface
	width   int
	height  int
	rgba    []byte
	image   *ebiten.Image

	events   chan Event
	ready    chan struct{}
	done     chan struct{}
	once     sync.Once
	stopping atomic.Bool
	err      atomic.Value

	// Update goroutine state
	lastX, lastY int
	buttons      ButtonMask
	wheel        float64
}

// NewWindow creates a window backend. scale is the window pixels per
// framebuffer pixel.
func NewWindow(title string, scale int) (Backend, error) {
	if scale < 1 {
		scale = 1
	}
	return &Window{
		title:  title,
		scale:  scale,
		events: make(chan Event, 256),
		ready:  make(chan struct{}),
		done:   make(chan struct{}),
		lastX:  -1,
		lastY:  -1,
	}, nil
}

func (w *Window) Init(width, height int) error {
	w.surface = NewSurface(width, height)
	w.width, w.height = w.surface.Size()
	w.rgba = make([]byte, w.width*w.height*4)

	ebiten.SetWindowSize(w.width*w.scale, w.height*w.scale)
	ebiten.SetWindowTitle(w.title)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetRunnableOnUnfocused(true)

	go func() {
		defer w.once.Do(func() { close(w.done) })
		if err := ebiten.RunGame(w); err != nil {
			w.err.Store(err)
		}
	}()

	// Wait for the first Draw call to ensure ebiten is ready
	select {
	case <-w.ready:
		return nil
	case <-w.done:
		if err, ok := w.err.Load().(error); ok {
			return fmt.Errorf("window: %w", err)
		}
		return fmt.Errorf("window: %w", ErrNoWindow)
	}
}

func (w *Window) Shutdown() {
	w.stopping.Store(true)
}

func (w *Window) Upload(fb *core.Framebuffer, rows []bool) error {
	if w.surface == nil {
		return ErrNotInitialized
	}
	w.surface.Upload(fb, rows)
	return nil
}

func (w *Window) Present() error {
	if w.surface == nil {
		return ErrNotInitialized
	}
	if err, ok := w.err.Load().(error); ok {
		return err
	}
	w.surface.Swap()
	return nil
}

func (w *Window) PollEvent() Event {
	select {
	case ev := <-w.events:
		return ev
	case <-w.done:
		return Event{Type: EventQuit}
	}
}

func (w *Window) PostEvent(event Event) {
	select {
	case w.events <- event:
	default:
	}
}

// Update implements ebiten.Game.
func (w *Window) Update() error {
	if ebiten.IsWindowBeingClosed() || w.stopping.Load() {
		w.PostEvent(Event{Type: EventQuit})
		return ebiten.Termination
	}
	w.pollKeys()
	w.pollMouse()
	return nil
}

var windowKeys = []struct {
	key ebiten.Key
	out Key
}{
	{ebiten.KeyEscape, KeyEscape},
	{ebiten.KeyEnter, KeyEnter},
	{ebiten.KeyHome, KeyHome},
	{ebiten.KeyEnd, KeyEnd},
	{ebiten.KeyPageUp, KeyPageUp},
	{ebiten.KeyPageDown, KeyPageDown},
	{ebiten.KeyArrowUp, KeyUp},
	{ebiten.KeyArrowDown, KeyDown},
	{ebiten.KeyArrowLeft, KeyLeft},
	{ebiten.KeyArrowRight, KeyRight},
}

func (w *Window) pollKeys() {
	var mod ModMask
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mod |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mod |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mod |= ModAlt
	}

	if mod.Has(ModCtrl) {
		for k := ebiten.KeyA; k <= ebiten.KeyZ; k++ {
			if inpututil.IsKeyJustPressed(k) {
				w.PostEvent(Event{Type: EventKey, Key: KeyRune, Rune: 'a' + rune(k-ebiten.KeyA), Mod: mod})
			}
		}
	}
	for _, r := range ebiten.AppendInputChars(nil) {
		w.PostEvent(Event{Type: EventKey, Key: KeyRune, Rune: r, Mod: mod})
	}
	for _, k := range windowKeys {
		if inpututil.IsKeyJustPressed(k.key) {
			w.PostEvent(Event{Type: EventKey, Key: k.out, Mod: mod})
		}
	}
}

func (w *Window) pollMouse() {
	x, y := ebiten.CursorPosition()

	var buttons ButtonMask
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		buttons |= ButtonLeft
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle) {
		buttons |= ButtonMiddle
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		buttons |= ButtonRight
	}

	if x != w.lastX || y != w.lastY || buttons != w.buttons {
		w.lastX, w.lastY, w.buttons = x, y, buttons
		w.PostEvent(Event{Type: EventMouse, X: x, Y: y, Buttons: buttons})
	}

	_, dy := ebiten.Wheel()
	w.wheel += dy
	if n := int(w.wheel); n != 0 {
		w.wheel -= float64(n)
		w.PostEvent(Event{Type: EventWheel, X: x, Y: y, Wheel: n})
	}
}

// Draw implements ebiten.Game.
func (w *Window) Draw(screen *ebiten.Image) {
	if w.image == nil {
		w.image = ebiten.NewImage(w.width, w.height)
	}
	w.surface.CopyRGBA(w.rgba)
	w.image.WritePixels(w.rgba)
	screen.DrawImage(w.image, nil)

	select {
	case <-w.ready:
	default:
		close(w.ready)
	}
}

// Layout implements ebiten.Game. The logical screen is the framebuffer.
func (w *Window) Layout(_, _ int) (int, int) {
	return w.width, w.height
}
