// Package common defines shared constants and sentinel errors used across
// client and server layers of softhub. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// ErrConfiguration means the server is missing required settings
	// (e.g. the upload secret) and cannot serve the request.
	ErrConfiguration = errors.New("server configuration error")

	// ErrUnauthorized is returned for a missing or mismatching upload token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrValidation covers bad extensions, missing required fields and
	// unsafe filenames.
	ErrValidation = errors.New("validation error")

	// ErrSizeLimit is returned when an uploaded payload exceeds the limit.
	ErrSizeLimit = errors.New("file too large")

	// ErrNotFound is returned for missing payloads and frontend entries.
	ErrNotFound = errors.New("not found")

	// ErrStorage wraps unexpected filesystem or metadata failures.
	ErrStorage = errors.New("storage error")

	// ErrUnavailable is reported by the client when the server cannot be reached.
	ErrUnavailable = errors.New("server unavailable")
)
