package pointer

import "errors"

var (
	// ErrNullArgument is returned when a required handle, window or
	// callback is missing
	ErrNullArgument = errors.New("null argument")
	// ErrAPIFailure is returned when an OS call needed for setup fails
	ErrAPIFailure = errors.New("api failure")
	// ErrUnsupported is returned when a platform feature is missing or too old
	ErrUnsupported = errors.New("unsupported")
	// ErrDuplicateItem is returned when a handler already exists for a window
	ErrDuplicateItem = errors.New("duplicate item")
)

// Result is the status code handed across the C boundary.
type Result int32

const (
	ResultOK            Result = 0
	ResultNullArgument  Result = -101
	ResultAPIFailure    Result = -102
	ResultUnsupported   Result = -103
	ResultDuplicateItem Result = -104
)

func (r Result) String() string {
	switch r {
	case ResultOK:
		return "ok"
	case ResultNullArgument:
		return "null argument"
	case ResultAPIFailure:
		return "api failure"
	case ResultUnsupported:
		return "unsupported"
	case ResultDuplicateItem:
		return "duplicate item"
	default:
		return "unknown"
	}
}

// ResultOf maps an error, possibly wrapped, onto its result code. Errors
// outside the taxonomy count as API failures.
func ResultOf(err error) Result {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, ErrNullArgument):
		return ResultNullArgument
	case errors.Is(err, ErrUnsupported):
		return ResultUnsupported
	case errors.Is(err, ErrDuplicateItem):
		return ResultDuplicateItem
	default:
		return ResultAPIFailure
	}
}
