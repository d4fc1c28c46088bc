// Package notify publishes upload events to external consumers.
package notify

import (
	"context"
	"time"

	"github.com/dmitrijs2005/softhub/internal/server/models"
)

// Notifier is told about every upload that got a metadata record.
type Notifier interface {
	SoftwareUploaded(ctx context.Context, record models.SoftwareRecord) error
}

// EventSoftwareUploaded is the event type of an upload notification.
const EventSoftwareUploaded = "software.uploaded"

// UploadEvent is the message body sent for a finished upload.
type UploadEvent struct {
	Type           string    `json:"type"`
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Version        string    `json:"version,omitempty"`
	ServerFilename string    `json:"serverFilename"`
	Size           int64     `json:"size"`
	SHA256         string    `json:"sha256,omitempty"`
	UploadedAt     time.Time `json:"uploadedAt"`
}

func newUploadEvent(r models.SoftwareRecord) UploadEvent {
	return UploadEvent{
		Type:           EventSoftwareUploaded,
		ID:             r.ID,
		Name:           r.Name,
		Version:        r.Version,
		ServerFilename: r.ServerFilename,
		Size:           r.Size,
		SHA256:         r.SHA256,
		UploadedAt:     r.UploadedAt,
	}
}
