package dbmongo

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"guestbook/internal/common"
)

// MediaStorage is the GridFS-backed object store. Blobs are addressed by
// their storage path (stored as the GridFS filename) and exposed to guests
// as public URLs under the media server's base URL.
type MediaStorage struct {
	gridFS  *gridfs.Bucket
	baseURL string // e.g. http://localhost:8080/media
}

func NewMediaStorage(mongoClient *MongoClient, baseURL string) *MediaStorage {
	return &MediaStorage{
		gridFS:  mongoClient.GridFS,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// StoredFile describes one blob for callers that stream it back out.
type StoredFile struct {
	Path       string    `json:"path"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploaded_at"`
}

func (ms *MediaStorage) Upload(ctx context.Context, path string, content io.Reader) error {
	metadata := bson.M{
		"uploaded_at": time.Now(),
	}

	opts := options.GridFSUpload().SetMetadata(metadata)
	stream, err := ms.gridFS.OpenUploadStream(path, opts)
	if err != nil {
		return fmt.Errorf("upload failed: %w", translateStoreErr(err))
	}
	defer stream.Close()

	if _, err := io.Copy(stream, content); err != nil {
		return fmt.Errorf("file copy failed: %w", translateStoreErr(err))
	}
	return nil
}

func (ms *MediaStorage) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	stream, err := ms.gridFS.OpenDownloadStreamByName(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return stream, nil
}

// Download opens a blob and returns its stored description alongside the
// stream. Used by the media server to set response headers.
func (ms *MediaStorage) Download(ctx context.Context, path string) (io.ReadCloser, *StoredFile, error) {
	stream, err := ms.gridFS.OpenDownloadStreamByName(path)
	if err != nil {
		return nil, nil, fmt.Errorf("download failed: %w", err)
	}

	fileInfo := stream.GetFile()
	stored := &StoredFile{
		Path:       fileInfo.Name,
		Size:       fileInfo.Length,
		UploadedAt: fileInfo.UploadDate,
	}

	return stream, stored, nil
}

// Remove deletes every path it can. Failures are collected, not fatal per
// path, so a half-missing record can still be cleaned up.
func (ms *MediaStorage) Remove(ctx context.Context, paths []string) error {
	var failed []string
	for _, path := range paths {
		if err := ms.removeOne(ctx, path); err != nil {
			failed = append(failed, path)
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("failed to remove %d of %d blobs: %s",
			len(failed), len(paths), strings.Join(failed, ", "))
	}
	return nil
}

func (ms *MediaStorage) removeOne(ctx context.Context, path string) error {
	cursor, err := ms.gridFS.Find(bson.M{"filename": path})
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	var found bool
	for cursor.Next(ctx) {
		var doc struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return err
		}
		if err := ms.gridFS.Delete(doc.ID); err != nil {
			return err
		}
		found = true
	}
	if !found {
		return fmt.Errorf("blob not found: %s", path)
	}
	return nil
}

func (ms *MediaStorage) PublicURL(path string) string {
	return ms.baseURL + "/" + path
}

func (ms *MediaStorage) PathFromURL(url string) (string, bool) {
	prefix := ms.baseURL + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	path := strings.TrimPrefix(url, prefix)
	if path == "" {
		return "", false
	}
	return path, true
}

// translateStoreErr maps platform throttling onto the shared sentinel so
// the upload retry loop can recognize it.
func translateStoreErr(err error) error {
	if err == nil {
		return nil
	}
	if strings.Contains(strings.ToLower(err.Error()), "too many requests") {
		return common.ErrRateLimited
	}
	return err
}

var _ common.ObjectStore = (*MediaStorage)(nil)
