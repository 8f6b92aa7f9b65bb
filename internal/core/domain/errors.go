package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDecodeFailure indicates the document could not be decoded into a tree
	// at all: not well-formed, or missing the expected root element.
	// The whole load fails.
	ErrDecodeFailure = errors.New("document decode failed")

	// ErrMalformedUnit indicates a translation unit without any variants.
	// The unit is skipped and loading continues.
	ErrMalformedUnit = errors.New("malformed translation unit")

	// ErrNoDocument indicates an operation needs a loaded document.
	ErrNoDocument = errors.New("no document loaded")

	// ErrEngineStopped indicates the search engine is no longer running.
	ErrEngineStopped = errors.New("search engine stopped")
)
