package renderer

import "errors"

// ErrNoPresenter is returned when a renderer is created without a presenter.
var ErrNoPresenter = errors.New("renderer: no presenter")
