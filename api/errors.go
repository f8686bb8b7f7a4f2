// SPDX-License-Identifier: MIT

package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors.
var (
	// ErrNotFound matches any *Error with status 404.
	ErrNotFound = errors.New("api: not found")
	// ErrUnknownAlgorithm is returned for names outside the closed algorithm set.
	ErrUnknownAlgorithm = errors.New("api: unknown algorithm")
	// ErrBadPayload is returned when a stored graph cannot be rebuilt as a document.
	ErrBadPayload = errors.New("api: bad graph payload")
)

// Error is a non-2xx answer from the service. Message is the service's
// own "error" field when present, else the raw body.
type Error struct {
	StatusCode int
	Method     string
	Path       string
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %s %s: %d %s: %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode), e.Message)
}

// Is lets errors.Is(err, ErrNotFound) match 404 answers.
func (e *Error) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}
