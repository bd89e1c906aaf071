package assess

import "errors"

// ErrSubmissionTooShort indicates the submission failed the minimum-length
// precondition. Raised before any external call and surfaced to the caller
// as a user-correctable validation error.
var ErrSubmissionTooShort = errors.New("submission is too short to assess")

// ErrMalformedReply indicates the generation service replied but the shape
// of its output cannot be trusted. Recovered locally via fallback grading,
// never surfaced.
var ErrMalformedReply = errors.New("generation reply is malformed")

// ErrServiceUnavailable indicates a transport failure or timeout talking to
// the generation service. Recovered locally via fallback grading, never
// surfaced.
var ErrServiceUnavailable = errors.New("generation service unavailable")
