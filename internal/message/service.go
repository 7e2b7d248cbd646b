package message

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"guestbook/internal/common"
	"guestbook/internal/dbmysql"
	"guestbook/internal/media"
)

const maxUploadAttempts = 3

// ErrMaxRetries means the object store kept throttling until the attempt
// budget ran out.
var ErrMaxRetries = errors.New("max retries exceeded")

// AttachmentError reports which staged file broke the submission, so the
// guest can be told by name which one to drop or retry.
type AttachmentError struct {
	Filename string
	Err      error
}

func (e *AttachmentError) Error() string {
	return fmt.Sprintf("attachment %q: %v", e.Filename, e.Err)
}

func (e *AttachmentError) Unwrap() error {
	return e.Err
}

// SubmissionService turns guest input plus staged attachments into one
// persisted guestbook message.
type SubmissionService interface {
	Submit(ctx context.Context, guestName, text string, attachments []*Attachment) (*dbmysql.GuestMessage, error)
	Gallery(ctx context.Context) ([]dbmysql.GuestMessage, error)
}

type submissionService struct {
	repo   MessageRepository
	store  common.ObjectStore
	limits Limits

	// injected for tests
	sleep func(time.Duration)
	now   func() time.Time
}

func NewSubmissionService(repo MessageRepository, store common.ObjectStore, limits Limits) SubmissionService {
	return &submissionService{
		repo:   repo,
		store:  store,
		limits: limits,
		sleep:  time.Sleep,
		now:    time.Now,
	}
}

// Submit runs the pipeline: validate text, then per attachment in staging
// order compress (images), derive a storage path and upload with retry, and
// only once every upload succeeded insert the record. A failed upload leaves
// already-uploaded blobs in place (accepted orphan risk), but never a
// partial record.
func (s *submissionService) Submit(ctx context.Context, guestName, text string, attachments []*Attachment) (*dbmysql.GuestMessage, error) {
	if err := common.ValidateGuestName(guestName); err != nil {
		return nil, err
	}
	if err := common.ValidateMessage(text); err != nil {
		return nil, err
	}

	// one correlation id groups all blobs of this submission
	batchID := uuid.NewString()

	urls := make([]string, 0, len(attachments))
	for _, att := range attachments {
		payload := att.Data

		if att.Type == common.MediaFileTypeImage {
			compressed, err := media.CompressImageTo(payload, s.limits.ImageTargetBytes, s.limits.ImageMaxEdge)
			if err != nil {
				return nil, &AttachmentError{Filename: att.Filename, Err: fmt.Errorf("compression failed: %w", err)}
			}
			payload = compressed
		}

		path := media.StoragePath(batchID, att.Type, att.Filename, att.MIMEType, s.now())
		if err := s.uploadWithRetry(ctx, path, payload); err != nil {
			return nil, &AttachmentError{Filename: att.Filename, Err: err}
		}

		urls = append(urls, s.store.PublicURL(path))
	}

	msg := &dbmysql.GuestMessage{
		GuestName: guestName,
		Message:   text,
	}
	if len(urls) > 0 {
		msg.MediaURL = &urls[0]
		if err := msg.SetMediaFiles(urls); err != nil {
			return nil, fmt.Errorf("encode media files: %w", err)
		}
	}

	if err := s.repo.Create(ctx, msg); err != nil {
		// the blobs above are already uploaded and stay orphaned
		return nil, fmt.Errorf("save message: %w", err)
	}
	return msg, nil
}

// uploadWithRetry pushes one blob, retrying only on rate limiting with a
// linear backoff of attempt seconds, up to the configured attempt budget.
func (s *submissionService) uploadWithRetry(ctx context.Context, path string, payload []byte) error {
	for attempt := 1; attempt <= s.limits.MaxUploadAttempts; attempt++ {
		err := s.store.Upload(ctx, path, bytes.NewReader(payload))
		if err == nil {
			return nil
		}
		if !errors.Is(err, common.ErrRateLimited) {
			return err
		}
		if attempt < s.limits.MaxUploadAttempts {
			s.sleep(time.Duration(attempt) * time.Second)
		}
	}
	return ErrMaxRetries
}

// Gallery lists the messages guests get to see, newest first.
func (s *submissionService) Gallery(ctx context.Context) ([]dbmysql.GuestMessage, error) {
	return s.repo.ListVisible(ctx)
}
