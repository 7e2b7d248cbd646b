package media

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"guestbook/internal/common"
)

// storagePrefix keeps guest uploads under one folder in the bucket.
const storagePrefix = "guest_uploads"

// StoragePath derives where a blob lives in the object store: submission
// batch id, classification and a timestamp keep paths collision-free while
// staying greppable by submission.
func StoragePath(batchID string, ft common.MediaFileType, filename, mimeType string, now time.Time) string {
	ext := FileExtension(filename, mimeType)
	return fmt.Sprintf("%s/%s/%s-%d.%s", storagePrefix, batchID, ft, now.UnixMilli(), ext)
}

// FileExtension takes the extension from the original filename, falling
// back to a MIME-derived one when the filename's extension is implausible:
// absent, identical to the whole name, or longer than 5 characters.
func FileExtension(filename, mimeType string) string {
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	base := strings.TrimSuffix(filename, "."+ext)
	if ext == "" || base == "" || len(ext) > 5 {
		return extFromMIME(mimeType)
	}
	return strings.ToLower(ext)
}

// TypeFromStoragePath recovers the classification a StoragePath-built path
// encodes in its basename ("image-..." or "video-...").
func TypeFromStoragePath(path string) (common.MediaFileType, bool) {
	base := filepath.Base(path)
	switch {
	case strings.HasPrefix(base, string(common.MediaFileTypeImage)+"-"):
		return common.MediaFileTypeImage, true
	case strings.HasPrefix(base, string(common.MediaFileTypeVideo)+"-"):
		return common.MediaFileTypeVideo, true
	}
	return "", false
}

func extFromMIME(mimeType string) string {
	switch strings.ToLower(strings.TrimSpace(mimeType)) {
	case "video/mp4":
		return "mp4"
	case "video/quicktime":
		return "mov"
	case "image/jpeg":
		return "jpg"
	case "image/png":
		return "png"
	case "image/gif":
		return "gif"
	case "image/webp":
		return "webp"
	}
	return "bin"
}
