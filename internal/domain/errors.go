package domain

import "errors"

var (
	// ErrSourceFailed marks a retailer scrape that errored or returned
	// zero offers. Fatal to the run, never retried within it.
	ErrSourceFailed = errors.New("retailer source failed")
	// ErrDuplicateSnapshot is benign: the observation already exists.
	ErrDuplicateSnapshot = errors.New("duplicate price snapshot")
	// ErrAmbiguousMatch is the PENDING_REVIEW band, a queued-for-review
	// state rather than a failure.
	ErrAmbiguousMatch = errors.New("ambiguous product match")
	// ErrConstraintViolation means a schema invariant rejected a write.
	ErrConstraintViolation = errors.New("constraint violation")
	// ErrMissingReference means a required foreign key was absent.
	ErrMissingReference = errors.New("missing referenced entity")
	ErrNotFound          = errors.New("not found")
)
