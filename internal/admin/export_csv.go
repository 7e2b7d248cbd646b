package admin

import (
	"io"
	"strings"
	"time"

	"guestbook/internal/dbmysql"
)

var csvHeader = []string{"Guest Name", "Message", "Media URL", "Created At", "Hidden"}

// WriteCSV renders the given messages as CSV. Every field is quoted, even
// when it would not strictly need it, so spreadsheet imports never guess
// types for messages that happen to look like numbers or dates.
func WriteCSV(w io.Writer, msgs []dbmysql.GuestMessage) error {
	if err := writeCSVRow(w, csvHeader); err != nil {
		return err
	}
	for _, m := range msgs {
		mediaURL := ""
		if m.MediaURL != nil {
			mediaURL = *m.MediaURL
		}
		hidden := "No"
		if m.Hidden {
			hidden = "Yes"
		}
		row := []string{
			m.GuestName,
			m.Message,
			mediaURL,
			m.CreatedAt.Format("2006-01-02 15:04:05"),
			hidden,
		}
		if err := writeCSVRow(w, row); err != nil {
			return err
		}
	}
	return nil
}

func writeCSVRow(w io.Writer, fields []string) error {
	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteString("\r\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// CSVFilename names the download after the export date.
func CSVFilename(now time.Time) string {
	return "guestbook-messages-" + now.Format("2006-01-02") + ".csv"
}
