package common

import (
	"context"
	"errors"
	"io"
)

// ErrRateLimited is returned by an ObjectStore when the backing platform is
// throttling writes. The upload pipeline retries on this error only.
var ErrRateLimited = errors.New("object store rate limited")

// ObjectStore is the blob storage contract the guestbook depends on.
// Blobs are addressed by path and exposed to guests through public URLs.
type ObjectStore interface {
	Upload(ctx context.Context, path string, content io.Reader) error
	Open(ctx context.Context, path string) (io.ReadCloser, error)

	// Remove deletes every path it can and reports the paths it could not.
	// Callers treat cleanup as best effort.
	Remove(ctx context.Context, paths []string) error

	PublicURL(path string) string

	// PathFromURL recovers the storage path from a public URL previously
	// handed out by PublicURL. Returns false for foreign URLs.
	PathFromURL(url string) (string, bool)
}
