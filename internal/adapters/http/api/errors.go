package api

import "errors"

var (
	// ErrMissingFileName indicates a raw-body upload without a ?name= parameter.
	ErrMissingFileName = errors.New("missing file name")
	// ErrUnknownMetric indicates an unrecognized basis metric name.
	ErrUnknownMetric = errors.New("unknown metric")
	// ErrBackpressure indicates the sync job queue is full.
	ErrBackpressure = errors.New("sync queue full, retry later")
)
