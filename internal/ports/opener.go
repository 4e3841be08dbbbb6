package ports

import (
	"context"
	"io"
)

// Meta describes where an ingestion source came from, as far as the
// opener could tell.
type Meta struct {
	Source      string
	Name        string
	ContentType string
	Size        int64
	Bucket      string
	Key         string
}

// FileOpener resolves a CLI source path (local file, https URL or
// s3://bucket/key) into a readable stream.
type FileOpener interface {
	Open(ctx context.Context, path string) (io.ReadCloser, Meta, error)
}
