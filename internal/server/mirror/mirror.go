// Package mirror copies stored payloads to off-site object storage.
// Mirroring is best-effort: a failed copy is logged by the caller and never
// fails the upload that produced the payload.
package mirror

import "context"

// Mirror receives a copy of every payload that got a metadata record.
type Mirror interface {
	// Put uploads the file at path under key.
	Put(ctx context.Context, key string, path string) error
}
