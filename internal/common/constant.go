// Package common contains shared constants and sentinel errors used across
// softhub components.
package common

// UploadTokenHeaderName is the HTTP header carrying the shared upload secret.
const UploadTokenHeaderName = "x-upload-token"

// Multipart form field names of the upload endpoint.
const (
	FormFieldFile        = "softwareFile"
	FormFieldName        = "softwareName"
	FormFieldVersion     = "softwareVersion"
	FormFieldDescription = "softwareDescription"
)
