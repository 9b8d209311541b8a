// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scopus

import (
	"errors"

	"github.com/pdiddy/scopus-scraper/internal/httputil"
)

// Errors returned by the executor, the accumulator, and the count probe.
var (
	// ErrEmptyQuery indicates a blank search query.
	ErrEmptyQuery = errors.New("query is empty")

	// ErrNegativeOffset indicates a start offset below zero.
	ErrNegativeOffset = errors.New("start offset must be >= 0")

	// ErrMissingAPIKey indicates the client has no API key.
	ErrMissingAPIKey = errors.New("Scopus API key is missing")

	// ErrInvalidResponse indicates a response body that is not JSON or
	// lacks a field the caller depends on.
	ErrInvalidResponse = errors.New("invalid response from Scopus")

	// ErrNothingToFetch indicates a fetch was asked for zero items.
	ErrNothingToFetch = errors.New("number of items to fetch must be > 0")

	// ErrNoAuthors marks a record without usable author data. The
	// accumulator drops such records.
	ErrNoAuthors = errors.New("record has no authors")

	// ErrMissingField indicates a required record field is absent.
	ErrMissingField = errors.New("required field missing")

	// ErrMalformedField indicates a required record field has an
	// unexpected shape.
	ErrMalformedField = errors.New("malformed field")

	// ErrYearNotFound indicates the cover display date has no four-digit
	// year.
	ErrYearNotFound = errors.New("no four-digit year in cover date")
)

// IsAuthError reports whether err is a 401/403 rejection from Scopus.
func IsAuthError(err error) bool { return httputil.IsAuthError(err) }

// IsRateLimited reports whether err is a 429 response from Scopus.
func IsRateLimited(err error) bool { return httputil.IsRateLimited(err) }
