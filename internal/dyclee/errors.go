package dyclee

import "errors"

var (
	// ErrBadConfig indicates an invalid engine configuration (phi out of
	// range, malformed context bounds, or disagreeing dimensions).
	ErrBadConfig = errors.New("dyclee: bad config")

	// ErrOutOfOrder indicates an Ingest call with a timestamp smaller
	// than a previously ingested one.
	ErrOutOfOrder = errors.New("dyclee: sample timestamp out of order")

	// ErrDimensionMismatch indicates a sample whose length does not
	// match the configured dimensionality.
	ErrDimensionMismatch = errors.New("dyclee: sample dimension mismatch")
)
