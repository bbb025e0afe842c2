package verilated

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrNativeAllocation is the panic value of generated constructors when the
	// native model could not be allocated.
	ErrNativeAllocation = errors.New("native model allocation failed")

	ErrTimeRegression = errors.New("simulation time moved backwards")
	ErrNotOpen        = errors.New("trace is not open")
	ErrAlreadyOpen    = errors.New("trace is already open")
	ErrClosed         = errors.New("trace is closed")
	ErrUnsupported    = errors.New("operation not supported by the trace sink")
	ErrNoSink         = errors.New("no trace sink registered")
	ErrFinished       = errors.New("test bench has finished")
	ErrArgsAfterModel = errors.New("command arguments must be set before the first model is constructed")
)

// OpenError is returned when a trace file could not be opened. The native
// layer only reports that the file did not become open, so Err is usually nil.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to open trace '%s': %s", e.Path, e.Err)
	}
	return fmt.Sprintf("failed to open trace '%s'", e.Path)
}

func (e *OpenError) Unwrap() error {
	return e.Err
}

// MissingPortError is returned by clock and reset methods of a model that has
// no port with that role.
type MissingPortError struct {
	Module string
	Role   string
	Method string
}

func (e *MissingPortError) Error() string {
	return fmt.Sprintf("%s.%s: module has no %s port", e.Module, e.Method, e.Role)
}
