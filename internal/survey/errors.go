package survey

import (
	"errors"
	"fmt"
)

// Errors returned by the loader and the estimator.
var (
	ErrSourceUnavailable  = errors.New("source unavailable")
	ErrMalformedRow       = errors.New("malformed row")
	ErrEmptyDataset       = errors.New("empty dataset")
	ErrCapacityExceeded   = errors.New("capacity exceeded")
	ErrNoPopulation       = errors.New("no population")
	ErrInsufficientSample = errors.New("insufficient sample")
	ErrInvalidFrame       = errors.New("invalid frame")
)

// ErrInvalidConfig marks configuration failures: bad environment values,
// flags, frame files or load options.
var ErrInvalidConfig = errors.New("invalid config")

// LoadError describes a load failure and where it happened.
// Line is 1-based and zero when the failure is not tied to a line.
type LoadError struct {
	Path    string
	Line    int
	Column  string // Field name for conversion failures
	Value   string // Offending cell value
	Message string
	Err     error // One of the sentinel errors above
}

func (e *LoadError) Error() string {
	msg := e.Err.Error()
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Column != "" {
		msg = fmt.Sprintf("%s (%s=%q)", msg, e.Column, e.Value)
	}
	if e.Line > 0 {
		msg = fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	if e.Path != "" {
		msg = e.Path + ": " + msg
	}
	return msg
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
