// Package storage holds the object store used for ingested invoice files and
// the local snapshot files exported from the lake.
package storage

import (
	"context"
	"io"
	"time"
)

// PutObjectOptions describe an upload. Size is the exact byte count, or -1
// when unknown and the backend has to chunk.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo is what the store reports back after an upload.
type ObjectInfo struct {
	Key         string
	Size        int64
	ETag        string
	ContentType string
}

// Storage is an S3-compatible object store. Uploads stream from the reader;
// downloads happen out of band through signed URLs.
type Storage interface {
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	Delete(ctx context.Context, key string) error
	// PresignGet returns a time-limited download URL. A non-empty downloadName
	// is sent back to the browser as the attachment file name.
	PresignGet(ctx context.Context, key, downloadName string, expiry time.Duration) (string, error)
}
