package client

import (
	"errors"
	"fmt"
)

var (
	// ErrNetwork marks failures to reach the server or read its reply.
	ErrNetwork = errors.New("network error")
	// ErrDecode marks a list response that is not a JSON array of tasks.
	ErrDecode = errors.New("malformed response")
)

// RequestError wraps a transport or decode failure. It matches both its
// kind (ErrNetwork, ErrDecode) and the underlying cause with errors.Is.
type RequestError struct {
	Op   string
	URL  string
	Kind error
	Err  error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s %s: %v: %v", e.Op, e.URL, e.Kind, e.Err)
}

func (e *RequestError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// StatusError is returned when the server answers with a non-2xx status.
type StatusError struct {
	Op   string
	URL  string
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: unexpected status %d", e.Op, e.URL, e.Code)
	}
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Op, e.URL, e.Code, e.Body)
}

// ErrorHandler receives every failed operation together with the step that
// failed ("list", "create", "delete" or "complete").
type ErrorHandler func(op string, err error)
