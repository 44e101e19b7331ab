package model

import "time"

// IngestedDocument represents an uploaded file whose bytes live in object storage
// and whose metadata lives in PostgreSQL.
type IngestedDocument struct {
	ID           string    `json:"id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"original_name"`
	StoragePath  string    `json:"storage_path"`
	Size         int64     `json:"size"`
	ContentType  string    `json:"content_type"`
	CreatedAt    time.Time `json:"created_at"`
	// DownloadURL is a short-lived signed URL; it is never persisted.
	DownloadURL string `json:"download_url,omitempty"`
}
