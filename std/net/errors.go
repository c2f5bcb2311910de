package net

import "github.com/pkg/errors"

var (
	// ErrMalformedURL is returned for unsupported schemes and broken data: URLs.
	ErrMalformedURL = errors.New("malformed url")
	// ErrNotFound is returned when a file: URL points at a missing file.
	ErrNotFound = errors.New("not found")
	// ErrTooManyRedirects is returned once the redirect budget is exhausted.
	ErrTooManyRedirects = errors.New("too many redirects")
	// ErrBadStatusLine is returned when the status line cannot be parsed after the retry.
	ErrBadStatusLine = errors.New("bad status line")
	// ErrUnsupportedEncoding is returned for a Content-Encoding we cannot decode.
	ErrUnsupportedEncoding = errors.New("unsupported content-encoding")
	// ErrMalformedResponse covers broken chunk sizes and truncated bodies.
	ErrMalformedResponse = errors.New("malformed response")
)
