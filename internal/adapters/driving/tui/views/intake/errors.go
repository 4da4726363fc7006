package intake

import "errors"

// ErrNoIntakeService is returned when the view has no intake service wired.
var ErrNoIntakeService = errors.New("no intake service configured")
