package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by stores when no record matches the requested id.
var ErrNotFound = errors.New("record not found")

type ErrorKind string

const (
	KindValidation ErrorKind = "VALIDATION"
	KindAuthFailed ErrorKind = "AUTH_FAILED"
	KindNotFound   ErrorKind = "NOT_FOUND"
	KindInternal   ErrorKind = "INTERNAL"
)

// Error is a user-safe error. Its message is shown to API clients as is.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Extensions is picked up by the GraphQL executor and reported under "extensions".
func (e *Error) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": string(e.Kind)}
}

func NewError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of a domain error, or KindInternal for anything else.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	if errors.Is(err, ErrNotFound) {
		return KindNotFound
	}
	return KindInternal
}
