package catalog

import (
	"context"
	"time"
)

// ObjectStorageService defines the interface for object storage operations.
// This interface is implemented by the infrastructure layer (S3, stub).
type ObjectStorageService interface {
	// Upload stores raw bytes under the given key
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) error

	// GenerateDownloadURL generates a presigned URL for downloading an object
	// Returns the download URL and expiration time
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// DeleteObject deletes an object from storage
	DeleteObject(ctx context.Context, storageKey string) error

	// ObjectExists checks if an object exists in storage
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}

// CoverFetcher retrieves cover image bytes from a remote URL during sync
type CoverFetcher interface {
	Fetch(ctx context.Context, url string) (data []byte, contentType string, err error)
}
