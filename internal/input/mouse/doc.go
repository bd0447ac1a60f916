// Package mouse classifies pointer samples into hover moves and drags.
//
// Backends report the pointer position and the held buttons on every
// change. A Handler keeps the drag state between samples and turns each
// sample into an Action:
//
//	h := mouse.NewHandler()
//	r := h.Handle(mouse.Event{X: 100, Y: 50, Left: true})
//	if r.Action == mouse.ActionDrag {
//	    scroll(r.DeltaY)
//	}
package mouse
