// Package backend presents framebuffers and delivers input events.
package backend

import (
	"errors"
	"sync"

	"github.com/dshills/hexview/internal/renderer/core"
)

// Backend errors.
var (
	// ErrNotTerminal is returned when the terminal backend is started
	// without a terminal on stdout.
	ErrNotTerminal = errors.New("stdout is not a terminal")

	// ErrNoWindow is returned when the binary was built without window
	// support.
	ErrNoWindow = errors.New("window backend not available in this build")

	// ErrNotInitialized is returned by presenter calls made before Init.
	ErrNotInitialized = errors.New("backend not initialized")
)

// EventType identifies the type of input event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventMouse
	EventWheel
	EventResize
	EventQuit
)

// String returns the event type name.
func (t EventType) String() string {
	switch t {
	case EventKey:
		return "key"
	case EventMouse:
		return "mouse"
	case EventWheel:
		return "wheel"
	case EventResize:
		return "resize"
	case EventQuit:
		return "quit"
	default:
		return "none"
	}
}

// Event is an input event. Pointer positions are framebuffer pixels.
type Event struct {
	Type EventType

	// Key event fields
	Key  Key
	Rune rune
	Mod  ModMask

	// Mouse and wheel event fields
	X, Y    int
	Buttons ButtonMask

	// Wheel is the number of notches; positive scrolls towards the start.
	Wheel int

	// Resize event fields
	Width, Height int
}

// Key represents a keyboard key. Control letters arrive as KeyRune events
// with ModCtrl set.
type Key int

// Key constants for special keys.
const (
	KeyNone Key = iota
	KeyRune     // Regular character (use Rune field)
	KeyEscape
	KeyEnter
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
)

// ModMask represents modifier key state.
type ModMask int

const (
	ModNone  ModMask = 0
	ModShift ModMask = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Has returns true if the mask contains the given modifier.
func (m ModMask) Has(mod ModMask) bool {
	return m&mod != 0
}

// ButtonMask is the set of mouse buttons held during a mouse event.
type ButtonMask int

const (
	ButtonNone  ButtonMask = 0
	ButtonLeft  ButtonMask = 1 << (iota - 1)
	ButtonMiddle
	ButtonRight
)

// Has returns true if the mask contains the given button.
func (m ButtonMask) Has(b ButtonMask) bool {
	return m&b != 0
}

// Presenter shows framebuffer contents.
type Presenter interface {
	// Upload copies the rows flagged in rows from fb. A nil rows slice
	// uploads every row.
	Upload(fb *core.Framebuffer, rows []bool) error

	// Present makes the uploaded rows visible.
	Present() error
}

// Backend is a presenter that also owns an input source.
type Backend interface {
	Presenter

	// Init prepares the backend for a framebuffer of the given size.
	// Must be called before any other methods.
	Init(width, height int) error

	// Shutdown releases backend resources and restores terminal state.
	Shutdown()

	// PollEvent waits for and returns the next event.
	// This is a blocking call; it returns an EventQuit after Shutdown.
	PollEvent() Event

	// PostEvent posts a synthetic event to the event queue.
	PostEvent(event Event)
}

// NullBackend is a recording backend for testing.
type NullBackend struct {
	mu       sync.Mutex
	surface  *Surface
	uploads  int
	presents int
	rows     int
	err      error
	events   chan Event
	closed   chan struct{}
	once     sync.Once
}

// NewNullBackend creates a null backend.
func NewNullBackend() *NullBackend {
	return &NullBackend{
		events: make(chan Event, 100),
		closed: make(chan struct{}),
	}
}

func (b *NullBackend) Init(width, height int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.surface = NewSurface(width, height)
	return nil
}

func (b *NullBackend) Shutdown() {
	b.once.Do(func() { close(b.closed) })
}

func (b *NullBackend) Upload(fb *core.Framebuffer, rows []bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return b.err
	}
	if b.surface == nil {
		return ErrNotInitialized
	}
	b.uploads++
	b.rows += b.surface.Upload(fb, rows)
	return nil
}

func (b *NullBackend) Present() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return b.err
	}
	if b.surface == nil {
		return ErrNotInitialized
	}
	b.presents++
	b.surface.Swap()
	return nil
}

func (b *NullBackend) PollEvent() Event {
	select {
	case ev := <-b.events:
		return ev
	case <-b.closed:
		return Event{Type: EventQuit}
	}
}

func (b *NullBackend) PostEvent(event Event) {
	select {
	case b.events <- event:
	default:
		// Event dropped if queue is full (non-blocking for testing)
	}
}

// SetError makes subsequent Upload and Present calls fail with err.
func (b *NullBackend) SetError(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.err = err
}

// Uploads returns the number of Upload calls and the total rows copied.
func (b *NullBackend) Uploads() (calls, rows int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.uploads, b.rows
}

// Presents returns the number of Present calls.
func (b *NullBackend) Presents() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.presents
}

// At returns the presented pixel at (x, y).
func (b *NullBackend) At(x, y int) core.Color {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.surface == nil {
		return 0
	}
	return b.surface.At(x, y)
}
