package http

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidURL matches every *InvalidURLError via errors.Is.
	ErrInvalidURL = errors.New("invalid url")

	// ErrUnsupportedValue is returned when a query parameter value is not a scalar
	// (string, integer, float or bool).
	ErrUnsupportedValue = errors.New("unsupported query parameter value")
)

// InvalidURLError reports that the composed base URL or the resolved path
// could not be parsed into a valid absolute URL.
type InvalidURLError struct {
	Input string
	Err   error
}

func (e *InvalidURLError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("invalid url %q", e.Input)
	}
	return fmt.Sprintf("invalid url %q: %v", e.Input, e.Err)
}

func (e *InvalidURLError) Unwrap() error {
	return e.Err
}

func (e *InvalidURLError) Is(target error) bool {
	return target == ErrInvalidURL
}
