package trace

import (
	"errors"
	"fmt"
)

// ErrResourceUnavailable matches any trace-file open/write/close failure via
// errors.Is.
var ErrResourceUnavailable = errors.New("trace file unavailable")

// ErrClosed is returned when an operation is attempted on a closed Writer.
// It is a usage error, not an I/O condition.
var ErrClosed = errors.New("trace writer is closed")

// PathError reports a failed file operation on the trace file.
type PathError struct {
	Op   string
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("trace %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// Is makes PathError match ErrResourceUnavailable while Unwrap still
// exposes the underlying OS error.
func (e *PathError) Is(target error) bool {
	return target == ErrResourceUnavailable
}
