// Package errors carries the coded errors shared by the site and MCP
// surfaces. A code picks the transport status and the catalog message; the
// internal message only reaches logs.
package errors

import (
	"errors"
	"maps"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/status"
)

// Domain tags ErrorInfo details produced by this package.
const Domain = "github.com/atelierfolio/atelier"

// Error pairs a Code with an internal message, catalog template values and
// an optional cause.
type Error struct {
	Code     Code
	Message  string
	Metadata map[string]string
	Cause    error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Cause }

// Is matches any *Error with the same code, so callers can compare against
// a bare New(code, "").
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	return ok && other.Code == e.Code
}

func build(code Code, message string, metadata map[string]string, cause error) *Error {
	return &Error{Code: code, Message: message, Metadata: maps.Clone(metadata), Cause: cause}
}

func New(code Code, message string) *Error {
	return build(code, message, nil, nil)
}

// WithMetadata attaches catalog template values such as {"Room": "attic"}.
func WithMetadata(code Code, message string, metadata map[string]string) *Error {
	return build(code, message, metadata, nil)
}

func Wrap(code Code, message string, cause error) *Error {
	return build(code, message, nil, cause)
}

func WrapWithMetadata(code Code, message string, metadata map[string]string, cause error) *Error {
	return build(code, message, metadata, cause)
}

// Status renders e as a status carrying ErrorInfo and the localized
// userMessage. When details cannot be attached the bare status is returned.
func (e *Error) Status(locale, userMessage string) *status.Status {
	base := status.New(e.Code.GRPCCode(), e.Message)
	detailed, err := base.WithDetails(
		&errdetails.ErrorInfo{Reason: string(e.Code), Domain: Domain, Metadata: e.Metadata},
		&errdetails.LocalizedMessage{Locale: locale, Message: userMessage},
	)
	if err != nil {
		return base
	}
	return detailed
}

// As finds the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var coded *Error
	ok := errors.As(err, &coded)
	return coded, ok
}

// CodeOf reports the code carried by err, CodeUnknown when there is none.
func CodeOf(err error) Code {
	if coded, ok := As(err); ok {
		return coded.Code
	}
	return CodeUnknown
}
