package common

import "strings"

// MediaFileType classifies a guest attachment
type MediaFileType string

const (
	MediaFileTypeImage MediaFileType = "image"
	MediaFileTypeVideo MediaFileType = "video"
)

// String returns the string representation
func (mft MediaFileType) String() string {
	return string(mft)
}

// IsValid checks if the media file type is valid
func (mft MediaFileType) IsValid() bool {
	return mft == MediaFileTypeImage || mft == MediaFileTypeVideo
}

// ClassifyMIME maps a declared MIME type to an attachment classification.
// Anything that is not an image or a video is not accepted as media.
func ClassifyMIME(mimeType string) (MediaFileType, bool) {
	lower := strings.ToLower(strings.TrimSpace(mimeType))
	switch {
	case strings.HasPrefix(lower, "image/"):
		return MediaFileTypeImage, true
	case strings.HasPrefix(lower, "video/"):
		return MediaFileTypeVideo, true
	}
	return "", false
}

// IsAllowedVideoMIME reports whether the container is one we accept.
// Only MP4 and QuickTime/MOV survive the phone-camera pipeline reliably.
func IsAllowedVideoMIME(mimeType string) bool {
	switch strings.ToLower(strings.TrimSpace(mimeType)) {
	case "video/mp4", "video/quicktime":
		return true
	}
	return false
}
