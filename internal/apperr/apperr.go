package apperr

import (
	"errors"
	"net/http"
)

// Error is the classified failure of a single operation. Status picks the
// HTTP status code, Code is the stable machine-readable internalCode exposed
// to clients, Message is the human-readable text. Nothing beyond the triple
// ever reaches a response body.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func New(status int, code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

func Validation(code, message string) *Error {
	return New(http.StatusBadRequest, code, message)
}

func NotFound(code, message string) *Error {
	return New(http.StatusNotFound, code, message)
}

func Conflict(code, message string) *Error {
	return New(http.StatusConflict, code, message)
}

func Unauthorized(code, message string) *Error {
	return New(http.StatusUnauthorized, code, message)
}

func Internal(code, message string) *Error {
	return New(http.StatusInternalServerError, code, message)
}

// From unwraps err into an *Error, falling back to a generic internal error
// so unexpected failures never leak their details to the client.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("INTERNAL_ERROR", "An error occurred")
}
