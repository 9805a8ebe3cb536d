package garmin

import "errors"

// Sentinel kinds for tracker client errors.
var (
	ErrNoToken      = errors.New("no tracker token configured")
	ErrUnauthorized = errors.New("tracker rejected credentials")
	ErrFetch        = errors.New("tracker fetch failed")
	ErrBadResponse  = errors.New("unexpected tracker response")
)
