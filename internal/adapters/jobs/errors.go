package jobs

import "errors"

// Sentinel kinds for job errors.
var (
	ErrShutdownTimeout = errors.New("shutdown timed out")
)
