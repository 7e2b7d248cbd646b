package message

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gorilla/mux"

	"guestbook/internal/common"
)

const (
	maxMultipartMemory = 32 << 20  // 32 MiB
	maxSubmissionBytes = 128 << 20 // whole multipart body
)

// Handler exposes the guest-facing routes: submitting a message and
// browsing the public gallery.
type Handler struct {
	svc    SubmissionService
	limits Limits
}

func NewHandler(svc SubmissionService, limits Limits) *Handler {
	return &Handler{svc: svc, limits: limits}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/messages", h.submit).Methods("POST")
	r.HandleFunc("/api/messages", h.gallery).Methods("GET")
}

// submit accepts multipart/form-data: guest_name, message and zero or more
// files under "media". All files must pass validation before anything is
// uploaded, a rejected file blocks the submission before any network write.
func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSubmissionBytes)
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	guestName := r.FormValue("guest_name")
	text := r.FormValue("message")

	var inputs []StagedInput
	if r.MultipartForm != nil {
		for _, fh := range r.MultipartForm.File["media"] {
			file, err := fh.Open()
			if err != nil {
				writeError(w, http.StatusBadRequest, "could not read uploaded file")
				return
			}
			data, err := io.ReadAll(file)
			file.Close()
			if err != nil {
				writeError(w, http.StatusBadRequest, "could not read uploaded file")
				return
			}

			// path traversal protection: base name only
			name := filepath.Base(strings.TrimSpace(fh.Filename))
			if name == "" || name == "." {
				name = "file"
			}

			inputs = append(inputs, StagedInput{
				Filename: name,
				MIMEType: fh.Header.Get("Content-Type"),
				Data:     data,
			})
		}
	}

	staging := NewStagingAreaWithLimits(h.limits)
	accepted, rejected := staging.AddBatch(inputs)
	if len(rejected) > 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error":    "some files were rejected",
			"rejected": rejected,
		})
		return
	}

	if len(accepted) > 0 {
		log.Printf("📎 %d attachment(s) staged: %d image(s), video: %v",
			len(accepted), staging.ImageCount(), staging.HasVideo())
	}

	msg, err := h.svc.Submit(r.Context(), guestName, text, accepted)
	if err != nil {
		var attErr *AttachmentError
		switch {
		case errors.As(err, &attErr):
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadGateway)
			json.NewEncoder(w).Encode(map[string]string{
				"error": attErr.Error(),
				"file":  attErr.Filename,
			})
		case common.IsValidationErr(err):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "could not save message")
		}
		return
	}

	staging.Clear()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(msg)
}

// gallery lists non-hidden messages, newest first.
func (h *Handler) gallery(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.svc.Gallery(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not load messages")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"messages": msgs,
		"count":    len(msgs),
	})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
