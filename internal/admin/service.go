package admin

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"
	"sync"

	"guestbook/internal/common"
	"guestbook/internal/dbmysql"
	"guestbook/internal/message"
)

// ErrConfirmRequired means a delete was armed and the caller has to repeat
// the request to go through with it.
var ErrConfirmRequired = errors.New("confirm delete by repeating the request")

// ListFilter narrows the moderation list.
type ListFilter struct {
	Search     string
	ShowHidden bool
}

// Contributor is one guest ranked by message count.
type Contributor struct {
	GuestName string `json:"guest_name"`
	Count     int    `json:"count"`
}

// Stats summarizes guestbook activity for the admin dashboard.
type Stats struct {
	Total            int            `json:"total"`
	Visible          int            `json:"visible"`
	Hidden           int            `json:"hidden"`
	WithMedia        int            `json:"with_media"`
	WithoutMedia     int            `json:"without_media"`
	ByDate           map[string]int `json:"by_date"`
	MostActiveDate   string         `json:"most_active_date"`
	MostActiveHour   int            `json:"most_active_hour"`
	AvgMessageLength int            `json:"avg_message_length"`
	TopContributors  []Contributor  `json:"top_contributors"`
}

// ModerationService is everything the admin console does with messages:
// listing with filters, hiding, two-step deletion and analytics.
type ModerationService interface {
	List(ctx context.Context, filter ListFilter) ([]dbmysql.GuestMessage, error)
	ToggleHidden(ctx context.Context, id uint64) (bool, error)
	Delete(ctx context.Context, id uint64) error
	CancelDelete(id uint64) bool
	PendingDelete() (uint64, bool)
	Analytics(ctx context.Context) (*Stats, error)
}

type moderationService struct {
	repo  message.MessageRepository
	store common.ObjectStore

	// at most one delete can be armed at a time, arming another id
	// replaces the previous one
	mu       sync.Mutex
	armedID  uint64
	hasArmed bool
}

func NewModerationService(repo message.MessageRepository, store common.ObjectStore) ModerationService {
	return &moderationService{repo: repo, store: store}
}

// FilterMessages applies the moderation filters: hidden messages only show
// up when asked for, and the search matches guest name or message text
// case-insensitively.
func FilterMessages(msgs []dbmysql.GuestMessage, search string, showHidden bool) []dbmysql.GuestMessage {
	search = strings.ToLower(strings.TrimSpace(search))

	out := make([]dbmysql.GuestMessage, 0, len(msgs))
	for _, m := range msgs {
		if m.Hidden && !showHidden {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(m.GuestName), search) &&
			!strings.Contains(strings.ToLower(m.Message), search) {
			continue
		}
		out = append(out, m)
	}
	return out
}

func (s *moderationService) List(ctx context.Context, filter ListFilter) ([]dbmysql.GuestMessage, error) {
	msgs, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return FilterMessages(msgs, filter.Search, filter.ShowHidden), nil
}

// ToggleHidden flips the moderation flag and returns the new state.
func (s *moderationService) ToggleHidden(ctx context.Context, id uint64) (bool, error) {
	msg, err := s.repo.ByID(ctx, id)
	if err != nil {
		return false, err
	}
	newState := !msg.Hidden
	if err := s.repo.SetHidden(ctx, id, newState); err != nil {
		return false, err
	}
	return newState, nil
}

// Delete is a two-step operation: the first call arms the delete and
// returns ErrConfirmRequired, the second call with the same id performs it.
// Arming a different id replaces the pending one.
func (s *moderationService) Delete(ctx context.Context, id uint64) error {
	s.mu.Lock()
	if !s.hasArmed || s.armedID != id {
		s.armedID = id
		s.hasArmed = true
		s.mu.Unlock()
		return ErrConfirmRequired
	}
	s.hasArmed = false
	s.mu.Unlock()

	msg, err := s.repo.ByID(ctx, id)
	if err != nil {
		return err
	}

	// blobs go first, but a failed blob removal never blocks the record
	// delete, an orphaned blob is cheaper than a ghost record
	if urls := msg.AllMediaURLs(); len(urls) > 0 {
		paths := make([]string, 0, len(urls))
		for _, u := range urls {
			if p, ok := s.store.PathFromURL(u); ok {
				paths = append(paths, p)
			}
		}
		if len(paths) > 0 {
			if err := s.store.Remove(ctx, paths); err != nil {
				log.Printf("⚠️ Could not remove media for message %d: %v", id, err)
			}
		}
	}

	return s.repo.Delete(ctx, id)
}

// CancelDelete disarms a pending delete for the given id.
func (s *moderationService) CancelDelete(id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hasArmed && s.armedID == id {
		s.hasArmed = false
		return true
	}
	return false
}

// PendingDelete reports which id, if any, is waiting for confirmation.
func (s *moderationService) PendingDelete() (uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.armedID, s.hasArmed
}

// Analytics computes dashboard numbers over the full message set.
func (s *moderationService) Analytics(ctx context.Context) (*Stats, error) {
	msgs, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		Total:  len(msgs),
		ByDate: make(map[string]int),
	}

	byHour := make(map[int]int)
	byGuest := make(map[string]int)
	totalLen := 0

	for _, m := range msgs {
		if m.Hidden {
			stats.Hidden++
		} else {
			stats.Visible++
		}
		if m.HasMedia() {
			stats.WithMedia++
		} else {
			stats.WithoutMedia++
		}

		day := m.CreatedAt.Format("2006-01-02")
		stats.ByDate[day]++
		byHour[m.CreatedAt.Hour()]++
		byGuest[m.GuestName]++
		totalLen += len(m.Message)
	}

	if stats.Total > 0 {
		stats.AvgMessageLength = totalLen / stats.Total
	}

	for day, n := range stats.ByDate {
		cur := stats.ByDate[stats.MostActiveDate]
		if stats.MostActiveDate == "" || n > cur || (n == cur && day < stats.MostActiveDate) {
			stats.MostActiveDate = day
		}
	}
	best := -1
	for hour, n := range byHour {
		if n > best || (n == best && hour < stats.MostActiveHour) {
			best = n
			stats.MostActiveHour = hour
		}
	}

	stats.TopContributors = topContributors(byGuest, 5)
	return stats, nil
}

func topContributors(byGuest map[string]int, limit int) []Contributor {
	out := make([]Contributor, 0, len(byGuest))
	for name, n := range byGuest {
		out = append(out, Contributor{GuestName: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].GuestName < out[j].GuestName
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
