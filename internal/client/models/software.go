// Package models defines the client-side view of softhub resources.
package models

import "time"

// Software is a catalogue entry as returned by the server.
type Software struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Version          string    `json:"version"`
	Description      string    `json:"description"`
	OriginalFilename string    `json:"originalFilename"`
	ServerFilename   string    `json:"serverFilename"`
	UploadedAt       time.Time `json:"uploadedAt"`
	Size             int64     `json:"size"`
	SHA256           string    `json:"sha256,omitempty"`
}

// Upload describes a local file to publish.
type Upload struct {
	Path        string
	Name        string
	Version     string
	Description string
}
