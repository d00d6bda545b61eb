package api

import (
	"errors"
	"net/http"
	"strings"
)

// Error is a non-2xx response from the planning service.
type Error struct {
	StatusCode int
	Method     string
	Path       string

	// Message is the response body text, or the HTTP status text when the
	// body was empty.
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(code int, method, path string, body []byte) *Error {
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = http.StatusText(code)
	}
	return &Error{
		StatusCode: code,
		Method:     method,
		Path:       path,
		Message:    msg,
	}
}

// IsStatus reports whether err (or any error in its chain) is a service
// response with the given status code.
func IsStatus(err error, code int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}
