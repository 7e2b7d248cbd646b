package message

import (
	"time"

	"guestbook/internal/config"
	"guestbook/internal/media"
)

// Limits carries the per-submission bounds the pipeline enforces: staging
// caps, video acceptance, compression targets and the upload retry budget.
type Limits struct {
	MaxImages         int
	Video             media.VideoLimits
	ImageTargetBytes  int64
	ImageMaxEdge      int
	MaxUploadAttempts int
}

// DefaultLimits matches the production values.
func DefaultLimits() Limits {
	return Limits{
		MaxImages:         MaxImages,
		Video:             media.DefaultVideoLimits(),
		ImageTargetBytes:  media.ImageTargetBytes,
		ImageMaxEdge:      media.ImageMaxEdge,
		MaxUploadAttempts: maxUploadAttempts,
	}
}

// LimitsFromConfig maps the upload section of the config onto the pipeline,
// so deployments can tune the bounds without a rebuild.
func LimitsFromConfig(cfg *config.Config) Limits {
	return Limits{
		MaxImages: cfg.Upload.MaxImages,
		Video: media.VideoLimits{
			MinBytes:    cfg.Upload.MinVideoBytes,
			MaxBytes:    cfg.Upload.MaxVideoBytes,
			MaxDuration: time.Duration(cfg.Upload.MaxVideoSeconds) * time.Second,
		},
		ImageTargetBytes:  cfg.Upload.ImageTargetBytes,
		ImageMaxEdge:      cfg.Upload.ImageMaxEdge,
		MaxUploadAttempts: cfg.Upload.MaxAttempts,
	}
}
