// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers for talking to external APIs.
package httputil

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxErrorBody caps how much of a failed response body is kept in a
// StatusError.
const maxErrorBody = 4 << 10

var (
	// ErrUnauthorized indicates the API rejected the credentials (401/403).
	ErrUnauthorized = errors.New("authentication rejected")

	// ErrRateLimited indicates the API quota or rate limit was hit (429).
	ErrRateLimited = errors.New("rate limit exceeded")
)

// StatusError is a non-2xx response from an external API.
type StatusError struct {
	Source     string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s API returned HTTP %d", e.Source, e.StatusCode)
	}
	return fmt.Sprintf("%s API returned HTTP %d: %s", e.Source, e.StatusCode, e.Body)
}

// Unwrap maps auth and rate limit statuses onto their sentinel errors so
// callers can use errors.Is.
func (e *StatusError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusTooManyRequests:
		return ErrRateLimited
	}
	return nil
}

// CheckStatus returns nil for a 2xx response. Otherwise it drains up to
// maxErrorBody bytes of the body into a *StatusError. The caller still
// owns resp.Body and must close it.
func CheckStatus(resp *http.Response, source string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{
		Source:     source,
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(body)),
	}
}

// IsAuthError reports whether err is an authentication failure.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsRateLimited reports whether err is a rate limit response.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}
