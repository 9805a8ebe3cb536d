package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrMissingClubColumn = errors.New("missing club column")
	ErrUnsupportedFile   = errors.New("unsupported file type")
	ErrEmptyRound        = errors.New("round has no holes")
)
