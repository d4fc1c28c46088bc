// Package models defines server-side data models persisted by softhub.
package models

import "time"

// SoftwareRecord describes one uploaded package. Records are created once,
// as the last step of a successful upload, and never modified afterwards.
type SoftwareRecord struct {
	// ID is a server-generated unique identifier.
	ID string `json:"id"`
	// Name is the user-supplied display name (required).
	Name string `json:"name"`
	// Version is optional and may be empty.
	Version string `json:"version"`
	// Description is optional and may be empty.
	Description string `json:"description"`
	// OriginalFilename is the uploader's filename, used for download naming only.
	OriginalFilename string `json:"originalFilename"`
	// ServerFilename is the on-disk key: a random token plus the original extension.
	ServerFilename string `json:"serverFilename"`
	// UploadedAt is set at creation.
	UploadedAt time.Time `json:"uploadedAt"`
	// Size is the stored payload size in bytes.
	Size int64 `json:"size"`
	// SHA256 is the hex digest of the stored payload.
	SHA256 string `json:"sha256,omitempty"`
}

// SoftwareMeta carries the descriptive fields submitted with an upload.
type SoftwareMeta struct {
	Name        string
	Version     string
	Description string
}

// StoredPayload describes a payload written to the upload directory that
// has no metadata record yet.
type StoredPayload struct {
	OriginalFilename string
	ServerFilename   string
	Size             int64
	SHA256           string
}

// Download is a resolved payload ready to be streamed back.
type Download struct {
	// Path is the absolute path of the payload on disk.
	Path string
	// Filename is the name offered to the client.
	Filename string
	// Size of the payload in bytes.
	Size int64
}
