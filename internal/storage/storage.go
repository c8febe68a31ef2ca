package storage

import (
	"context"
	"time"
)

// ObjectStorage archives generated artifacts (report snapshots, exports) in a
// bucket. Implementations must be safe for concurrent use.
type ObjectStorage interface {
	Upload(ctx context.Context, objectName string, payload []byte, contentType string) (string, error)
	Download(ctx context.Context, objectName string) ([]byte, error)
	PresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
	Remove(ctx context.Context, objectName string) error
}

// Noop discards uploads; used when object storage is disabled.
type Noop struct{}

func (Noop) Upload(ctx context.Context, objectName string, payload []byte, contentType string) (string, error) {
	return "", nil
}

func (Noop) Download(ctx context.Context, objectName string) ([]byte, error) {
	return nil, nil
}

func (Noop) PresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	return "", nil
}

func (Noop) Remove(ctx context.Context, objectName string) error {
	return nil
}
