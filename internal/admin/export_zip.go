package admin

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"log"
	"path"
	"strings"
	"time"

	"guestbook/internal/common"
	"guestbook/internal/dbmysql"
)

// ZIPExporter bundles the media blobs of the given messages into one
// archive for download.
type ZIPExporter struct {
	store common.ObjectStore
}

func NewZIPExporter(store common.ObjectStore) *ZIPExporter {
	return &ZIPExporter{store: store}
}

// Write streams an archive of every attachment of every message into w.
// A message with several attachments gets its own subfolder named after the
// guest, a single attachment sits at the top level. Blobs that cannot be
// fetched are skipped with a log line.
func (e *ZIPExporter) Write(ctx context.Context, w io.Writer, msgs []dbmysql.GuestMessage) error {
	zw := zip.NewWriter(w)

	used := make(map[string]int)
	for _, m := range msgs {
		urls := m.AllMediaURLs()
		if len(urls) == 0 {
			continue
		}

		folder := ""
		if len(urls) > 1 {
			folder = archiveName(m.GuestName, used)
		}

		for i, u := range urls {
			storagePath, ok := e.store.PathFromURL(u)
			if !ok {
				continue
			}

			entry := entryName(m.GuestName, folder, storagePath, i, len(urls), used)
			if err := e.copyBlob(ctx, zw, entry, storagePath); err != nil {
				log.Printf("⚠️ Skipping %s in ZIP export: %v", storagePath, err)
			}
		}
	}

	return zw.Close()
}

func (e *ZIPExporter) copyBlob(ctx context.Context, zw *zip.Writer, entry, storagePath string) error {
	rc, err := e.store.Open(ctx, storagePath)
	if err != nil {
		return err
	}
	defer rc.Close()

	f, err := zw.Create(entry)
	if err != nil {
		return err
	}
	_, err = io.Copy(f, rc)
	return err
}

// entryName builds the archive path for one blob: inside the guest's folder
// for multi-attachment messages, a guest-named file at the top level
// otherwise. The stored extension is preserved.
func entryName(guestName, folder, storagePath string, idx, total int, used map[string]int) string {
	ext := path.Ext(storagePath)

	if total > 1 {
		return fmt.Sprintf("%s/%d%s", folder, idx+1, ext)
	}
	return archiveName(guestName, used) + ext
}

// archiveName sanitizes a guest name into a filesystem-safe archive member
// and deduplicates repeat guests with a numeric suffix.
func archiveName(guestName string, used map[string]int) string {
	name := strings.TrimSpace(guestName)
	if name == "" {
		name = "guest"
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('-')
		}
	}
	out := b.String()
	if out == "" {
		out = "guest"
	}

	used[out]++
	if n := used[out]; n > 1 {
		out = fmt.Sprintf("%s-%d", out, n)
	}
	return out
}

// ZIPFilename names the download after the export date.
func ZIPFilename(now time.Time) string {
	return "guestbook-media-" + now.Format("2006-01-02") + ".zip"
}
