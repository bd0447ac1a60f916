package mouse

// Action represents the type of pointer action.
type Action uint8

const (
	// ActionNone indicates no action.
	ActionNone Action = iota
	// ActionPress indicates the left button went down.
	ActionPress
	// ActionRelease indicates the left button went up.
	ActionRelease
	// ActionMove indicates pointer movement with no button held.
	ActionMove
	// ActionDrag indicates pointer movement with the left button held.
	ActionDrag
)

var actionNames = [...]string{"none", "press", "release", "move", "drag"}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "none"
}

// Position is a framebuffer coordinate.
type Position struct {
	X, Y int
}

// Event is one pointer sample.
type Event struct {
	X, Y int

	// Left reports whether the left button is held.
	Left bool
}

// Result is the classification of a pointer sample.
type Result struct {
	Action Action
	Pos    Position

	// DeltaY is the vertical motion since the previous sample of a drag.
	DeltaY int
}

// Handler tracks pointer state across samples.
// It is not safe for concurrent use.
type Handler struct {
	drag DragState
	last Position
}

// NewHandler creates a pointer handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Handle classifies a pointer sample.
func (h *Handler) Handle(ev Event) Result {
	pos := Position{X: ev.X, Y: ev.Y}
	h.last = pos

	switch {
	case ev.Left && h.drag.Active:
		return Result{Action: ActionDrag, Pos: pos, DeltaY: h.drag.follow(pos)}
	case ev.Left:
		h.drag = DragState{Active: true, Origin: pos, Current: pos}
		return Result{Action: ActionPress, Pos: pos}
	case h.drag.Active:
		h.drag = DragState{}
		return Result{Action: ActionRelease, Pos: pos}
	default:
		return Result{Action: ActionMove, Pos: pos}
	}
}

// IsDragging reports whether the left button is held.
func (h *Handler) IsDragging() bool {
	return h.drag.Active
}

// Last returns the position of the latest sample.
func (h *Handler) Last() Position {
	return h.last
}

// Drag returns the current drag.
func (h *Handler) Drag() DragState {
	return h.drag
}

// Reset forgets the drag and the last position.
func (h *Handler) Reset() {
	h.drag = DragState{}
	h.last = Position{}
}
