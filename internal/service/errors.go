package service

import "errors"

// Sentinel errors surfaced by the service layer. Handlers translate
// these into RFC 9457 problem responses.
var (
	// ErrNotFound covers both genuinely missing resources and resources
	// owned by a different user. The two cases are indistinguishable to
	// the caller on purpose.
	ErrNotFound = errors.New("resource not found")

	// ErrDuplicateEntry means the user already has a journal entry for
	// that calendar day.
	ErrDuplicateEntry = errors.New("entry already exists for this date")

	// ErrUnknownActivity means a finalize request referenced an activity
	// key that is not in the catalog.
	ErrUnknownActivity = errors.New("unknown activity key")

	// ErrThresholdOutOfRange means an intervention threshold outside the
	// supported range.
	ErrThresholdOutOfRange = errors.New("intervention threshold out of range")

	// ErrInvalidRange means an analytics filter with a month but no year.
	ErrInvalidRange = errors.New("month filter requires a year")

	// ErrClassifierUnavailable means the emotion classification service
	// could not analyze the recording.
	ErrClassifierUnavailable = errors.New("emotion classifier unavailable")
)
