package port

import (
	"context"
	"io"
)

// UploadInput carries one scan document into object storage. Size is
// advisory; the store reads Body to completion regardless.
type UploadInput struct {
	Bucket      string
	Key         string
	Body        io.Reader
	ContentType string
	Size        int64
}

// UploadOutput reports where the stored document landed.
type UploadOutput struct {
	Location string
	ETag     string
}

// ObjectStorage holds the original uploaded documents. Scans keep only
// metadata and extraction results in the database; the document itself lives
// here, keyed by bucket and scan-scoped key. Download exists so re-extraction
// can replay a stored document through OCR and the engine.
type ObjectStorage interface {
	Upload(ctx context.Context, input UploadInput) (*UploadOutput, error)
	Download(ctx context.Context, bucket, key string) ([]byte, error)
	Delete(ctx context.Context, bucket, key string) error
	GetPresignedURL(ctx context.Context, bucket, key string, expirySeconds int64) (string, error)
}
