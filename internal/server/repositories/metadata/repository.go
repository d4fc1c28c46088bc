// Package metadata persists software records as one flat JSON array file.
//
// There is no partial-update API: every change is read-all, modify in
// memory, write-all. Append runs that cycle under a lock so uploads served
// by the same process never lose each other's records.
package metadata

import (
	"context"

	"github.com/dmitrijs2005/softhub/internal/server/models"
)

type Repository interface {
	// ReadAll returns every record in insertion order. A missing file is
	// an empty store, not an error.
	ReadAll(ctx context.Context) ([]models.SoftwareRecord, error)
	// WriteAll replaces the whole file with records.
	WriteAll(ctx context.Context, records []models.SoftwareRecord) error
	// Append adds one record at the end of the store.
	Append(ctx context.Context, record models.SoftwareRecord) error
}
