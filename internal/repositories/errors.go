package repositories

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by storage-backed repositories when no product has
// the requested ID.
var ErrNotFound = errors.New("product not found")

// ErrRequestFailed matches every RequestFailedError.
var ErrRequestFailed = errors.New("request failed")

// RequestFailedError reports a backend call that did not succeed: the request
// could not be sent, the backend answered with a non-2xx status, or the body
// could not be decoded. StatusCode is 0 when no response was received.
type RequestFailedError struct {
	Method     string
	URL        string
	StatusCode int
	Err        error
}

func (e *RequestFailedError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: backend returned status %d: %v", e.Method, e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *RequestFailedError) Unwrap() error { return e.Err }

func (e *RequestFailedError) Is(target error) bool { return target == ErrRequestFailed }

// StatusOf returns the backend status carried by err, or 0.
func StatusOf(err error) int {
	var rf *RequestFailedError
	if errors.As(err, &rf) {
		return rf.StatusCode
	}
	return 0
}
