package features

import "errors"

var (
	ErrMalformedTimestamp = errors.New("malformed timestamp")
	ErrMalformedDate      = errors.New("malformed date")
	ErrUnmappedCode       = errors.New("unmapped categorical code")
	ErrEmptyRange         = errors.New("no values to bin")
	ErrInvalidBinCount    = errors.New("bin count must be positive")
)
