package storage

import (
	"context"
	"io"
	"time"
)

// StorageInterface defines the interface for attachment storage backends.
// Supports a mock (local filesystem) backend; cloud backends plug in here.
type StorageInterface interface {
	// GeneratePresignedUploadURL generates a presigned URL for uploading
	// key: storage path/key for the file
	// contentType: MIME type (e.g., "application/pdf")
	// expiresIn: how long the URL should be valid
	GeneratePresignedUploadURL(ctx context.Context, key string, contentType string, expiresIn time.Duration) (string, error)

	// GeneratePresignedDownloadURL generates a presigned URL for downloading
	GeneratePresignedDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error)

	// FileExists checks if a file exists and returns its size
	FileExists(ctx context.Context, key string) (exists bool, size int64, err error)

	// DeleteFile removes a file from storage
	DeleteFile(ctx context.Context, key string) error

	// SaveFile saves a file (used by the mock storage HTTP handler)
	SaveFile(key string, reader io.Reader) error

	// ReadFile opens a file for reading (used by the mock storage HTTP handler)
	ReadFile(key string) (io.ReadCloser, error)
}

// NewAttachmentKey builds the bucket-relative path an application attachment
// is stored under.
func NewAttachmentKey(volunteerID int32, token, filename string) string {
	return attachmentKey(volunteerID, token, filename)
}
