package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. transfer endpoints are the same, duplicate outgoing
// link). Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrInvalidRange is returned when a trip's end date is before its start
// date. Kept as its own sentinel (rather than folding into ErrValidation)
// so day scheduling callers can distinguish range problems from field-level
// validation. It unwraps to ErrValidation for handler mapping.
var ErrInvalidRange = errors.New("end date is before start date")

// ErrAmbiguousReassignment is returned by the stay deletion flow when more
// than one candidate stay could absorb the deleted stay's days and the
// caller did not pick one. The service returns the candidate list alongside
// it; nothing is mutated. Handlers should map this to HTTP 409 Conflict.
var ErrAmbiguousReassignment = errors.New("multiple candidate stays, explicit choice required")
