package domain

import "errors"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCandidate signals a candidate that failed validation.
	ErrInvalidCandidate = errors.New("invalid candidate")
	// ErrInvalidQuery signals a query rejected at the transport edge.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrInvalidFilter signals an invalid explicit filter.
	ErrInvalidFilter = errors.New("invalid filter")
	// ErrRecognizerUnavailable signals an entity recognizer failure.
	ErrRecognizerUnavailable = errors.New("entity recognizer unavailable")
	// ErrSourceUnavailable signals that the candidate source could not be read.
	ErrSourceUnavailable = errors.New("candidate source unavailable")
)
