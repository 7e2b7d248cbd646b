package message

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"guestbook/internal/common"
)

// MaxImages caps how many images one submission may carry. A submission
// additionally carries at most one video.
const MaxImages = 10

var (
	ErrNotMedia           = errors.New("file must be an image or a video")
	ErrVideoAlreadyStaged = errors.New("only one video per message")
	ErrImageCapReached    = errors.New("too many images for one message")
)

// Attachment is one staged file waiting for submission. It only ever lives
// in memory, records reference uploaded blobs by URL instead.
type Attachment struct {
	ID       string
	Type     common.MediaFileType
	Filename string
	MIMEType string
	Data     []byte
}

// Rejection reports why one file of a batch was not staged.
type Rejection struct {
	Filename string `json:"filename"`
	Reason   string `json:"reason"`
}

// StagingArea owns the attachments of one in-progress submission and
// enforces the per-submission limits. All staged data is released on Clear.
type StagingArea struct {
	limits Limits

	mu          sync.Mutex
	attachments []*Attachment
}

func NewStagingArea() *StagingArea {
	return NewStagingAreaWithLimits(DefaultLimits())
}

func NewStagingAreaWithLimits(limits Limits) *StagingArea {
	return &StagingArea{limits: limits}
}

// Add validates one candidate file and stages it. The checks run in order:
// media classification, video acceptance, image cap.
func (s *StagingArea) Add(filename, mimeType string, data []byte) (*Attachment, error) {
	ft, ok := common.ClassifyMIME(mimeType)
	if !ok {
		return nil, ErrNotMedia
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch ft {
	case common.MediaFileTypeVideo:
		if s.hasVideoLocked() {
			return nil, ErrVideoAlreadyStaged
		}
		if err := s.limits.Video.Validate(mimeType, data); err != nil {
			return nil, err
		}
	case common.MediaFileTypeImage:
		if s.imageCountLocked() >= s.limits.MaxImages {
			return nil, ErrImageCapReached
		}
	}

	att := &Attachment{
		ID:       uuid.NewString(),
		Type:     ft,
		Filename: filename,
		MIMEType: mimeType,
		Data:     data,
	}
	s.attachments = append(s.attachments, att)
	return att, nil
}

// StagedInput is one file of an incoming batch.
type StagedInput struct {
	Filename string
	MIMEType string
	Data     []byte
}

// AddBatch stages a dropped batch of files. A rejected file does not abort
// the batch, but once the image cap is hit no further files are accepted.
func (s *StagingArea) AddBatch(files []StagedInput) (accepted []*Attachment, rejected []Rejection) {
	for _, f := range files {
		att, err := s.Add(f.Filename, f.MIMEType, f.Data)
		if err != nil {
			rejected = append(rejected, Rejection{Filename: f.Filename, Reason: err.Error()})
			if errors.Is(err, ErrImageCapReached) {
				break
			}
			continue
		}
		accepted = append(accepted, att)
	}
	return accepted, rejected
}

// Remove drops one staged attachment and releases its payload.
func (s *StagingArea) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, att := range s.attachments {
		if att.ID == id {
			att.Data = nil
			s.attachments = append(s.attachments[:i], s.attachments[i+1:]...)
			return true
		}
	}
	return false
}

// Clear releases everything, used after a successful submission.
func (s *StagingArea) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, att := range s.attachments {
		att.Data = nil
	}
	s.attachments = nil
}

// Attachments returns the staged files in staging order.
func (s *StagingArea) Attachments() []*Attachment {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*Attachment, len(s.attachments))
	copy(out, s.attachments)
	return out
}

func (s *StagingArea) ImageCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.imageCountLocked()
}

func (s *StagingArea) HasVideo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasVideoLocked()
}

func (s *StagingArea) imageCountLocked() int {
	n := 0
	for _, att := range s.attachments {
		if att.Type == common.MediaFileTypeImage {
			n++
		}
	}
	return n
}

func (s *StagingArea) hasVideoLocked() bool {
	for _, att := range s.attachments {
		if att.Type == common.MediaFileTypeVideo {
			return true
		}
	}
	return false
}
