package port

import (
	"fmt"
	"go/token"

	"github.com/pkg/errors"
)

// Kinds of configuration errors. A *ConfigurationError wraps exactly one of them,
// so callers can test for a kind with errors.Is.
var (
	ErrDuplicateRole          = errors.New("duplicate port role")
	ErrUnsupportedType        = errors.New("unsupported port type")
	ErrMissingRoleArgument    = errors.New("port role marker needs exactly one known role")
	ErrWidthOverflow          = errors.New("port width out of range 1..64")
	ErrInvalidWidthExpression = errors.New("port width is not an integer literal")
	ErrInvalidName            = errors.New("invalid port name")
	ErrDuplicateModule        = errors.New("duplicate module name")
	ErrInvalidDirective       = errors.New("malformed module directive")
)

// ConfigurationError reports an invalid module declaration. It is always fatal
// for the generation pass.
type ConfigurationError struct {
	Pos    token.Position
	Type   string
	Field  string
	Detail string
	Err    error
}

func (e *ConfigurationError) Error() string {
	where := e.Type
	if e.Field != "" {
		where += "." + e.Field
	}
	msg := fmt.Sprintf("%s: %s", where, e.Err)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Pos.IsValid() {
		msg = e.Pos.String() + ": " + msg
	}
	return msg
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
