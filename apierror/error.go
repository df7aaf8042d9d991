// Package apierror carries the HTTP status of a failed web service request
// alongside the error message, so that callers can distinguish permanent
// failures, such as a nonexistent identifier, from transient ones.
package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error is the type of error returned for a failed request to the remote
// service. It contains the HTTP status code so that callers can interpret
// the failure.
type Error struct {
	err    error
	status int
}

func New(err error, status int) *Error {
	return &Error{
		err:    err,
		status: status,
	}
}

// FromResponse builds an error from a non-OK response status and body. The
// service reports failures as plain text or HTML; the trimmed body is kept
// as the message when present.
func FromResponse(status int, body []byte) error {
	var err error
	text := strings.TrimSpace(string(body))
	if text != "" {
		err = errors.New(text)
	}
	if status == 0 {
		return err
	}
	return New(err, status)
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	if e.status == 0 {
		return ""
	}
	// If there is only status, then return status text
	if text := http.StatusText(e.status); text != "" {
		return fmt.Sprintf("%d %s", e.status, text)
	}
	return fmt.Sprintf("%d", e.status)
}

func (e *Error) Status() int {
	return e.status
}

func (e *Error) Unwrap() error {
	return e.err
}

// IsStatus reports whether err is, or wraps, an Error with the given HTTP
// status.
func IsStatus(err error, status int) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.status == status
}

// Transient reports whether err looks retryable: a server-side or
// rate-limiting status, as opposed to a client error such as 404.
func Transient(err error) bool {
	var ae *Error
	if !errors.As(err, &ae) {
		return false
	}
	return ae.status >= http.StatusInternalServerError || ae.status == http.StatusTooManyRequests
}
