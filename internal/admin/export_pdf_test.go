package admin

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guestbook/internal/dbmysql"
)

func testJPEG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 8), G: uint8(y * 8), B: 100, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func newTestPDFExporter(store *fakeStore) *PDFExporter {
	e := NewPDFExporter(store)
	e.now = func() time.Time { return time.Date(2025, 6, 14, 12, 0, 0, 0, time.UTC) }
	return e
}

func TestPDFExport_ProducesDocument(t *testing.T) {
	store := newFakeStore()
	msgs := []dbmysql.GuestMessage{
		{ID: 1, GuestName: "Priya", Message: "So happy for you both!", CreatedAt: time.Date(2025, 6, 14, 15, 0, 0, 0, time.UTC)},
		{ID: 2, GuestName: "Arjun", Message: "Hidden note", Hidden: true, CreatedAt: time.Date(2025, 6, 14, 16, 0, 0, 0, time.UTC)},
	}

	var buf bytes.Buffer
	require.NoError(t, newTestPDFExporter(store).Write(context.Background(), &buf, msgs))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
	assert.Greater(t, buf.Len(), 500)
}

func TestPDFExport_WithImageThumbnail(t *testing.T) {
	store := newFakeStore()
	url := store.put("guest_uploads/b1/image-1.jpg", testJPEG(t))

	msgs := []dbmysql.GuestMessage{
		{ID: 1, GuestName: "Priya", Message: "with a photo", MediaURL: &url, CreatedAt: time.Now()},
	}

	var buf bytes.Buffer
	require.NoError(t, newTestPDFExporter(store).Write(context.Background(), &buf, msgs))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestPDFExport_VideoOnlyGetsMarker(t *testing.T) {
	store := newFakeStore()
	url := store.put("guest_uploads/b1/video-1.mp4", []byte("not fetched for pdf"))

	msgs := []dbmysql.GuestMessage{
		{ID: 1, GuestName: "Arjun", Message: "watch this", MediaURL: &url, CreatedAt: time.Now()},
	}

	var buf bytes.Buffer
	require.NoError(t, newTestPDFExporter(store).Write(context.Background(), &buf, msgs))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestPDFExport_UnfetchableThumbnailIsSkipped(t *testing.T) {
	store := newFakeStore()
	url := store.PublicURL("guest_uploads/b1/image-1.jpg")
	store.openErr["guest_uploads/b1/image-1.jpg"] = errors.New("store down")

	msgs := []dbmysql.GuestMessage{
		{ID: 1, GuestName: "Priya", Message: "photo gone", MediaURL: &url, CreatedAt: time.Now()},
	}

	// the export succeeds without the thumbnail
	var buf bytes.Buffer
	require.NoError(t, newTestPDFExporter(store).Write(context.Background(), &buf, msgs))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestPDFExport_EmptyList(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newTestPDFExporter(newFakeStore()).Write(context.Background(), &buf, nil))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestPDFFilename(t *testing.T) {
	now := time.Date(2025, 6, 14, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "guestbook-messages-2025-06-14.pdf", PDFFilename(now))
}
