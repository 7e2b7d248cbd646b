package admin

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/jung-kurt/gofpdf"

	"guestbook/internal/common"
	"guestbook/internal/dbmysql"
	"guestbook/internal/media"
)

const (
	pdfMargin     = 20.0
	pdfLineHeight = 7.0
	pdfThumbEdge  = 256 // px, source thumbnail resolution
	pdfThumbWidth = 40.0
)

// PDFExporter renders a keepsake document of guestbook messages, pulling
// image thumbnails from the object store as it goes.
type PDFExporter struct {
	store common.ObjectStore
	now   func() time.Time
}

func NewPDFExporter(store common.ObjectStore) *PDFExporter {
	return &PDFExporter{store: store, now: time.Now}
}

// Write renders the messages into w. A thumbnail that cannot be fetched or
// decoded is skipped with a log line, the export itself keeps going.
func (e *PDFExporter) Write(ctx context.Context, w io.Writer, msgs []dbmysql.GuestMessage) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "Wedding Guestbook", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, pdfLineHeight, "Exported on "+e.now().Format("January 2, 2006"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	for i, m := range msgs {
		e.writeEntry(ctx, pdf, i+1, &m)
	}

	return pdf.Output(w)
}

func (e *PDFExporter) writeEntry(ctx context.Context, pdf *gofpdf.Fpdf, num int, m *dbmysql.GuestMessage) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)

	header := fmt.Sprintf("%d. %s", num, m.GuestName)
	pdf.CellFormat(0, pdfLineHeight, header, "", 0, "L", false, 0, "")
	if m.Hidden {
		pdf.SetTextColor(200, 0, 0)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(0, pdfLineHeight, "[HIDDEN]", "", 0, "R", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}
	pdf.Ln(pdfLineHeight)

	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(110, 110, 110)
	pdf.CellFormat(0, 5, m.CreatedAt.Format("2006-01-02 15:04"), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, pdfLineHeight, m.Message, "", "L", false)

	e.writeAttachments(ctx, pdf, m)
	pdf.Ln(6)
}

func (e *PDFExporter) writeAttachments(ctx context.Context, pdf *gofpdf.Fpdf, m *dbmysql.GuestMessage) {
	urls := m.AllMediaURLs()
	if len(urls) == 0 {
		return
	}

	hasVideo := false
	thumbNum := 0
	for _, u := range urls {
		path, ok := e.store.PathFromURL(u)
		if !ok {
			continue
		}
		ft, ok := media.TypeFromStoragePath(path)
		if !ok {
			continue
		}
		if ft == common.MediaFileTypeVideo {
			hasVideo = true
			continue
		}

		thumb, err := e.fetchThumbnail(ctx, path)
		if err != nil {
			log.Printf("⚠️ Skipping thumbnail %s in PDF export: %v", path, err)
			continue
		}

		thumbNum++
		name := fmt.Sprintf("thumb-%d-%s", m.ID, path)
		opts := gofpdf.ImageOptions{ImageType: "JPG", ReadDpi: false}
		pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(thumb))
		if pdf.Err() {
			log.Printf("⚠️ Skipping thumbnail %s in PDF export: %v", path, pdf.Error())
			pdf.ClearError()
			continue
		}
		pdf.ImageOptions(name, pdfMargin+float64(thumbNum-1)*(pdfThumbWidth+3), pdf.GetY()+2, pdfThumbWidth, 0, false, opts, 0, "")
	}

	if thumbNum > 0 {
		// push the cursor below the row of thumbnails
		pdf.Ln(pdfThumbWidth * 0.8)
	}

	if hasVideo {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(110, 110, 110)
		pdf.CellFormat(0, 5, "[Video attached]", "", 1, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}
}

func (e *PDFExporter) fetchThumbnail(ctx context.Context, path string) ([]byte, error) {
	rc, err := e.store.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, err
	}
	return media.Thumbnail(data, pdfThumbEdge)
}

// PDFFilename names the download after the export date.
func PDFFilename(now time.Time) string {
	return "guestbook-messages-" + now.Format("2006-01-02") + ".pdf"
}
