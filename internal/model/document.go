package model

import "time"

// Document is the metadata for one uploaded item. Only the metadata and the
// extracted text are ever persisted; the original upload bytes are processed
// in memory and discarded.
// This is a pure domain model with no database-specific dependencies or tags.
// It can be used across layers (HTTP, service, storage) without coupling to persistence.
type Document struct {
	ID         string    `json:"document_id"`
	Filename   string    `json:"filename"`
	Size       int64     `json:"file_size"`
	UploadedAt time.Time `json:"upload_date"`
}
