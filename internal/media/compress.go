package media

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/png"

	"github.com/disintegration/imaging"
)

const (
	// ImageTargetBytes is the compression target, ~1.2 MB.
	ImageTargetBytes = 1258291
	// ImageMaxEdge bounds the longest edge after compression.
	ImageMaxEdge = 2048

	jpegStartQuality = 85
	jpegMinQuality   = 35
)

// CompressImage shrinks a guest image with the default bounds: longest edge
// ImageMaxEdge, size pushed towards ImageTargetBytes.
func CompressImage(data []byte) ([]byte, error) {
	return CompressImageTo(data, ImageTargetBytes, ImageMaxEdge)
}

// CompressImageTo shrinks a guest image before upload: longest edge bounded
// to maxEdge, size pushed towards targetBytes, original format kept. Images
// already inside both bounds pass through untouched.
func CompressImageTo(data []byte, targetBytes int64, maxEdge int) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	oversized := bounds.Dx() > maxEdge || bounds.Dy() > maxEdge
	if !oversized && int64(len(data)) <= targetBytes {
		return data, nil
	}

	if oversized {
		img = imaging.Fit(img, maxEdge, maxEdge, imaging.Lanczos)
	}

	switch format {
	case "jpeg":
		return encodeJPEGToTarget(img, targetBytes)
	case "png":
		var buf bytes.Buffer
		if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
			return nil, fmt.Errorf("encode png: %w", err)
		}
		return buf.Bytes(), nil
	case "gif":
		var buf bytes.Buffer
		if err := imaging.Encode(&buf, img, imaging.GIF); err != nil {
			return nil, fmt.Errorf("encode gif: %w", err)
		}
		return buf.Bytes(), nil
	default:
		// unknown but decodable, JPEG is the safe re-encode
		return encodeJPEGToTarget(img, targetBytes)
	}
}

// encodeJPEGToTarget walks quality down until the payload fits the target
// or quality bottoms out. Whatever the last pass produced is returned.
func encodeJPEGToTarget(img image.Image, targetBytes int64) ([]byte, error) {
	var buf bytes.Buffer
	for quality := jpegStartQuality; ; quality -= 10 {
		buf.Reset()
		if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
			return nil, fmt.Errorf("encode jpeg: %w", err)
		}
		if int64(buf.Len()) <= targetBytes || quality-10 < jpegMinQuality {
			return buf.Bytes(), nil
		}
	}
}

// Thumbnail renders a small JPEG preview of an image blob, used when
// inlining attachments into the PDF export.
func Thumbnail(data []byte, maxEdge int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	img = imaging.Fit(img, maxEdge, maxEdge, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(70)); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
