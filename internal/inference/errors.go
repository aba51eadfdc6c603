package inference

import "errors"

// Sentinel errors classifying inference failures. Runtimes must wrap every
// error they return with exactly one of these.
var (
	// ErrTransient marks throttling, timeouts and 5xx-equivalent failures.
	// The gateway retries these up to its attempt budget.
	ErrTransient = errors.New("transient inference failure")

	// ErrFatal marks auth/permission denials and malformed requests.
	// These short-circuit without consuming the retry budget.
	ErrFatal = errors.New("inference request rejected")
)
