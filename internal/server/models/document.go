package models

import "time"

// Document describes an uploaded file attached to a project. The bytes live
// in blob storage under StorageKey; FileSize always reflects the bytes
// actually persisted there.
type Document struct {
	ID                int64
	OriginalFilename  string
	GeneratedFilename string
	StorageKey        string
	FileSize          int64
	ContentType       string
	ProjectID         int64
	UploadedBy        int64
	UploadedAt        time.Time
}

// DocumentMetadata is the read-only projection exposed to callers that do
// not need the storage key.
type DocumentMetadata struct {
	Filename    string    `json:"filename"`
	FileSize    int64     `json:"file_size"`
	ContentType string    `json:"content_type"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// Metadata returns the caller-facing metadata for this document.
func (d *Document) Metadata() DocumentMetadata {
	return DocumentMetadata{
		Filename:    d.OriginalFilename,
		FileSize:    d.FileSize,
		ContentType: d.ContentType,
		UploadedAt:  d.UploadedAt,
	}
}
