package har

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument matches any converter input rejection via errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")

// InvalidArgumentError reports a converter input that violates a
// precondition, such as a zero start timestamp or an unparseable URL.
type InvalidArgumentError struct {
	Field  string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *InvalidArgumentError) Unwrap() error {
	return ErrInvalidArgument
}
