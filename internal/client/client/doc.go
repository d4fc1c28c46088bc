// Package client talks to the softhub HTTP API.
//
// # Overview
//
// Client is the transport-agnostic contract used by the CLI; HTTPClient is
// the implementation over net/http. Uploads are streamed from disk as
// multipart/form-data, downloads are streamed to a temporary file in the
// target directory and renamed once complete.
//
// # Error Handling
//
// Non-success responses are mapped to the sentinels of internal/common
// (ErrUnauthorized, ErrValidation, ErrSizeLimit, ErrNotFound,
// ErrConfiguration, ErrStorage) with the server's message preserved;
// connection failures are reported as common.ErrUnavailable. Match them
// with errors.Is.
package client
