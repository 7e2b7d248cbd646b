package dbmysql

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// GuestMessage is one guestbook submission. MediaURL keeps the single-URL
// shape older records were written with, MediaFiles carries the full ordered
// list for newer multi-attachment submissions.
type GuestMessage struct {
	ID         uint64         `gorm:"primaryKey" json:"id"`
	GuestName  string         `gorm:"size:255;not null" json:"guest_name"`
	Message    string         `gorm:"type:text;not null" json:"message"`
	MediaURL   *string        `gorm:"size:500" json:"media_url"`
	MediaFiles datatypes.JSON `json:"media_files,omitempty"`
	Hidden     bool           `gorm:"default:false;index" json:"hidden"`
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time      `json:"-"`
}

func (GuestMessage) TableName() string {
	return "messages"
}

// SetMediaFiles stores the ordered URL list, nil/empty clears the column.
func (m *GuestMessage) SetMediaFiles(urls []string) error {
	if len(urls) == 0 {
		m.MediaFiles = nil
		return nil
	}
	raw, err := json.Marshal(urls)
	if err != nil {
		return err
	}
	m.MediaFiles = datatypes.JSON(raw)
	return nil
}

// MediaFileList decodes the stored URL list, empty slice when absent.
func (m *GuestMessage) MediaFileList() []string {
	if len(m.MediaFiles) == 0 {
		return nil
	}
	var urls []string
	if err := json.Unmarshal(m.MediaFiles, &urls); err != nil {
		return nil
	}
	return urls
}

// AllMediaURLs is the union of MediaFiles and the legacy MediaURL column,
// deduplicated, in stored order. Used for deletes and exports.
func (m *GuestMessage) AllMediaURLs() []string {
	urls := m.MediaFileList()
	if m.MediaURL != nil && *m.MediaURL != "" {
		found := false
		for _, u := range urls {
			if u == *m.MediaURL {
				found = true
				break
			}
		}
		if !found {
			urls = append(urls, *m.MediaURL)
		}
	}
	return urls
}

// HasMedia reports whether the record references any attachment.
func (m *GuestMessage) HasMedia() bool {
	return len(m.AllMediaURLs()) > 0
}
