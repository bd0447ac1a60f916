// Package renderer drives the incremental redraw of the dump view.
//
// The Renderer owns every piece of view state: the image and its layout,
// the framebuffer, the row compositor, the dirty scanline tracker, the
// change detector and the scroll controller. Work is done one scanline at a
// time so a caller can interleave input handling with redrawing:
//
//	┌───────────────────────────────────────────┐
//	│  viewport.Controller   (scroll aim)       │
//	├───────────────────────────────────────────┤
//	│  dirty.Tracker         (which scanline)   │
//	│  compose.Compositor    (render the row)   │
//	│  present.Detector      (did it change)    │
//	├───────────────────────────────────────────┤
//	│  backend.Presenter     (upload, present)  │
//	└───────────────────────────────────────────┘
//
// Usage:
//
//	r, err := renderer.New(img, presenter, renderer.DefaultOptions())
//	r.MarkAllDirty()
//	for !r.Settled() {
//	    if _, err := r.RefreshBatch(32); err != nil {
//	        return err
//	    }
//	}
//
// A Renderer is not safe for concurrent use. It belongs to the goroutine
// running the event loop.
package renderer
