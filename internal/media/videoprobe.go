package media

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"

	"guestbook/internal/common"
)

const (
	// MinVideoBytes filters out misfired camera-capture thumbnails that
	// phones occasionally hand over instead of the real recording.
	MinVideoBytes = 100 << 10
	MaxVideoBytes = 50 << 20

	MaxVideoDuration = 60 * time.Second

	headerProbeLen = 1 << 10
)

var (
	ErrVideoContainer  = errors.New("video must be an MP4 or MOV file")
	ErrVideoTooSmall   = errors.New("video file is too small to be a real recording")
	ErrVideoTooLarge   = errors.New("video file is too large")
	ErrVideoTooLong    = errors.New("video is too long")
	ErrVideoUnreadable = errors.New("video file could not be read")
)

// VideoLimits bounds what counts as an acceptable video. Deployments tune
// these through the upload config section, DefaultVideoLimits carries the
// production values.
type VideoLimits struct {
	MinBytes    int64
	MaxBytes    int64
	MaxDuration time.Duration
}

func DefaultVideoLimits() VideoLimits {
	return VideoLimits{
		MinBytes:    MinVideoBytes,
		MaxBytes:    MaxVideoBytes,
		MaxDuration: MaxVideoDuration,
	}
}

// ValidateVideo runs the acceptance checks with the default limits.
func ValidateVideo(mimeType string, data []byte) error {
	return DefaultVideoLimits().Validate(mimeType, data)
}

// Validate runs the acceptance checks for a candidate video, in order:
// container, size window, header readability, decoded duration.
func (l VideoLimits) Validate(mimeType string, data []byte) error {
	if !common.IsAllowedVideoMIME(mimeType) {
		return ErrVideoContainer
	}

	size := int64(len(data))
	if size < l.MinBytes {
		return ErrVideoTooSmall
	}
	if size > l.MaxBytes {
		return ErrVideoTooLarge
	}

	// the first KiB must read back cleanly, corrupt placeholders don't
	header := make([]byte, headerProbeLen)
	if _, err := io.ReadFull(bytes.NewReader(data), header); err != nil {
		return ErrVideoUnreadable
	}

	dur, err := MP4Duration(data)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrVideoUnreadable, err)
	}
	if dur > l.MaxDuration {
		return ErrVideoTooLong
	}
	return nil
}

// MP4Duration reads the movie duration from the mvhd box of an MP4/MOV
// container. Both containers share the ISO base media file format, so one
// parser covers them.
func MP4Duration(data []byte) (time.Duration, error) {
	moov, err := findBox(data, "moov")
	if err != nil {
		return 0, err
	}
	mvhd, err := findBox(moov, "mvhd")
	if err != nil {
		return 0, err
	}
	if len(mvhd) < 20 {
		return 0, errors.New("truncated mvhd box")
	}

	var timescale uint32
	var duration uint64
	switch version := mvhd[0]; version {
	case 0:
		// version(1) flags(3) created(4) modified(4) timescale(4) duration(4)
		timescale = binary.BigEndian.Uint32(mvhd[12:16])
		duration = uint64(binary.BigEndian.Uint32(mvhd[16:20]))
	case 1:
		// version(1) flags(3) created(8) modified(8) timescale(4) duration(8)
		if len(mvhd) < 32 {
			return 0, errors.New("truncated mvhd box")
		}
		timescale = binary.BigEndian.Uint32(mvhd[20:24])
		duration = binary.BigEndian.Uint64(mvhd[24:32])
	default:
		return 0, fmt.Errorf("unsupported mvhd version %d", version)
	}

	if timescale == 0 {
		return 0, errors.New("mvhd timescale is zero")
	}
	seconds := float64(duration) / float64(timescale)
	return time.Duration(seconds * float64(time.Second)), nil
}

// findBox scans a sequence of ISO-BMFF boxes for the named one and returns
// its payload.
func findBox(data []byte, boxType string) ([]byte, error) {
	offset := 0
	for offset+8 <= len(data) {
		size := uint64(binary.BigEndian.Uint32(data[offset : offset+4]))
		typ := string(data[offset+4 : offset+8])
		headerLen := 8

		switch size {
		case 0:
			// box extends to the end of the file
			size = uint64(len(data) - offset)
		case 1:
			if offset+16 > len(data) {
				return nil, errors.New("truncated 64-bit box header")
			}
			size = binary.BigEndian.Uint64(data[offset+8 : offset+16])
			headerLen = 16
		}

		if size < uint64(headerLen) || uint64(offset)+size > uint64(len(data)) {
			return nil, fmt.Errorf("malformed box %q", typ)
		}
		if typ == boxType {
			return data[offset+headerLen : offset+int(size)], nil
		}
		offset += int(size)
	}
	return nil, fmt.Errorf("box %q not found", boxType)
}
