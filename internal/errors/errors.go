package errors

import (
	"errors"
	"fmt"
)

// Code is a stable, machine-readable error type mapped to process exit codes.
type Code int

const (
	CodeSuccess        Code = 0
	CodeInternal       Code = 1
	CodeUsage          Code = 2
	CodeUnknownContext Code = 10
	CodeUnknownMethod  Code = 11
	CodeInsufficient   Code = 12
	CodeInvalidField   Code = 13
	CodeNoCredential   Code = 14
	CodeDuplicate      Code = 15
	CodeHandler        Code = 16
	CodeUnavailable    Code = 17
	CodeBlocked        Code = 18
)

// Error is a typed CLI error that carries a stable error code.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

func As(err error) (*Error, bool) {
	var target *Error
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

func ExitCode(err error) int {
	if err == nil {
		return int(CodeSuccess)
	}
	if cliErr, ok := As(err); ok {
		return int(cliErr.Code)
	}
	return int(CodeInternal)
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	cliErr, ok := As(err)
	return ok && cliErr.Code == code
}

func UnknownContext(name string) *Error {
	return New(CodeUnknownContext, fmt.Sprintf("unknown context %q", name))
}

func UnknownMethod(context, name string) *Error {
	return New(CodeUnknownMethod, fmt.Sprintf("unknown method %q in context %q", name, context))
}

func InsufficientArguments(want, got int) *Error {
	return New(CodeInsufficient, fmt.Sprintf("insufficient arguments: need %d, got %d", want, got))
}

// InvalidFieldValue names the field and the raw text that failed coercion.
func InvalidFieldValue(field, raw string, cause error) *Error {
	return Wrap(CodeInvalidField, fmt.Sprintf("invalid value %q for field %q", raw, field), cause)
}

func NoActiveCredential(field string) *Error {
	return New(CodeNoCredential, fmt.Sprintf("no active credential for field %q; run keystore setUser first", field))
}

func DuplicateCommand(context, name string) *Error {
	return New(CodeDuplicate, fmt.Sprintf("duplicate command %s.%s", context, name))
}
