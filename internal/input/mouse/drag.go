package mouse

// DragState describes a left-button drag. The zero value is no drag.
type DragState struct {
	Active bool

	// Origin is where the button went down, Current the latest sample.
	Origin  Position
	Current Position
}

// Delta is the total motion since the button went down.
func (d DragState) Delta() Position {
	if !d.Active {
		return Position{}
	}
	return Position{X: d.Current.X - d.Origin.X, Y: d.Current.Y - d.Origin.Y}
}

// follow moves the drag to pos and returns the vertical step taken.
func (d *DragState) follow(pos Position) int {
	dy := pos.Y - d.Current.Y
	d.Current = pos
	return dy
}
