//go:build headless

package backend

// NewWindow reports that window support was compiled out.
func NewWindow(string, int) (Backend, error) {
	return nil, ErrNoWindow
}
