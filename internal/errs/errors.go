// Package errs defines the error kinds the workbench reports. The engine's
// own message is always kept intact in the cause chain so the UI can show
// it verbatim.
package errs

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown       Kind = iota
	KindIntrospection      // a catalog query failed during refresh
	KindExecution          // the engine rejected a statement
	KindExportPartial      // one or more tables were skipped during export
	KindStorage            // workspace/history store failure
	KindInvalid            // bad input from the caller
)

func (k Kind) String() string {
	switch k {
	case KindIntrospection:
		return "introspection_failed"
	case KindExecution:
		return "execution_failed"
	case KindExportPartial:
		return "export_partial"
	case KindStorage:
		return "storage_failed"
	case KindInvalid:
		return "invalid_input"
	default:
		return "unknown"
	}
}

type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func Wrap(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

func Wrapf(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// IsIntrospection reports whether err came out of a catalog refresh.
func IsIntrospection(err error) bool {
	return kindOf(err) == KindIntrospection
}

// IsExecution reports whether err is an engine statement failure.
func IsExecution(err error) bool {
	return kindOf(err) == KindExecution
}

// IsExportPartial reports whether err marks an export that skipped tables.
func IsExportPartial(err error) bool {
	return kindOf(err) == KindExportPartial
}

// IsStorage reports whether err came from the workspace store.
func IsStorage(err error) bool {
	return kindOf(err) == KindStorage
}

// IsInvalid reports whether err was caused by bad caller input.
func IsInvalid(err error) bool {
	return kindOf(err) == KindInvalid
}

func kindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
