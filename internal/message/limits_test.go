package message

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"guestbook/internal/config"
	"guestbook/internal/media"
)

func TestDefaultLimits(t *testing.T) {
	l := DefaultLimits()

	assert.Equal(t, MaxImages, l.MaxImages)
	assert.Equal(t, int64(media.ImageTargetBytes), l.ImageTargetBytes)
	assert.Equal(t, media.ImageMaxEdge, l.ImageMaxEdge)
	assert.Equal(t, maxUploadAttempts, l.MaxUploadAttempts)
	assert.Equal(t, media.MaxVideoDuration, l.Video.MaxDuration)
}

func TestLimitsFromConfig(t *testing.T) {
	cfg := &config.Config{
		Upload: config.UploadConfig{
			MaxImages:        2,
			MinVideoBytes:    10 << 10,
			MaxVideoBytes:    5 << 20,
			MaxVideoSeconds:  15,
			ImageTargetBytes: 500_000,
			ImageMaxEdge:     1024,
			MaxAttempts:      5,
		},
	}

	l := LimitsFromConfig(cfg)
	assert.Equal(t, 2, l.MaxImages)
	assert.Equal(t, int64(10<<10), l.Video.MinBytes)
	assert.Equal(t, int64(5<<20), l.Video.MaxBytes)
	assert.Equal(t, 15*time.Second, l.Video.MaxDuration)
	assert.Equal(t, int64(500_000), l.ImageTargetBytes)
	assert.Equal(t, 1024, l.ImageMaxEdge)
	assert.Equal(t, 5, l.MaxUploadAttempts)
}
