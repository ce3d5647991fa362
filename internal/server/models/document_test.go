package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDocument_Metadata(t *testing.T) {
	uploaded := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	d := &Document{
		ID:                7,
		OriginalFilename:  "report.pdf",
		GeneratedFilename: "3f1b...pdf",
		StorageKey:        "projects/1/3f1b...pdf",
		FileSize:          2048,
		ContentType:       "application/pdf",
		ProjectID:         1,
		UploadedBy:        2,
		UploadedAt:        uploaded,
	}

	m := d.Metadata()
	assert.Equal(t, "report.pdf", m.Filename)
	assert.Equal(t, int64(2048), m.FileSize)
	assert.Equal(t, "application/pdf", m.ContentType)
	assert.Equal(t, uploaded, m.UploadedAt)
}
