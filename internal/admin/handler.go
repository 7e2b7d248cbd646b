package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"guestbook/internal/common"
	"guestbook/internal/dbmysql"
)

// Handler exposes the operator console: login, moderation, analytics,
// selection and the three export formats.
type Handler struct {
	auth      AuthService
	mod       ModerationService
	selection *Selection
	pdf       *PDFExporter
	zip       *ZIPExporter
	now       func() time.Time
}

func NewHandler(auth AuthService, mod ModerationService, store common.ObjectStore) *Handler {
	return &Handler{
		auth:      auth,
		mod:       mod,
		selection: NewSelection(),
		pdf:       NewPDFExporter(store),
		zip:       NewZIPExporter(store),
		now:       time.Now,
	}
}

// RegisterRoutes mounts the public login route on r and everything else
// behind the auth middleware.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/admin/login", h.login).Methods("POST")

	authed := r.PathPrefix("/api/admin").Subrouter()
	authed.Use(common.AuthMiddleware())

	authed.HandleFunc("/messages", h.list).Methods("GET")
	authed.HandleFunc("/messages/{id:[0-9]+}/hide", h.toggleHidden).Methods("POST")
	authed.HandleFunc("/messages/{id:[0-9]+}", h.delete).Methods("DELETE")
	authed.HandleFunc("/messages/{id:[0-9]+}/cancel-delete", h.cancelDelete).Methods("POST")

	authed.HandleFunc("/analytics", h.analytics).Methods("GET")

	authed.HandleFunc("/selection/{id:[0-9]+}", h.toggleSelection).Methods("POST")
	authed.HandleFunc("/selection/toggle-all", h.toggleAllSelection).Methods("POST")
	authed.HandleFunc("/selection", h.selectionState).Methods("GET")
	authed.HandleFunc("/selection", h.clearSelection).Methods("DELETE")

	authed.HandleFunc("/export/csv", h.exportCSV).Methods("GET")
	authed.HandleFunc("/export/pdf", h.exportPDF).Methods("GET")
	authed.HandleFunc("/export/zip", h.exportZIP).Methods("GET")
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrAccountDisabled):
			writeError(w, http.StatusUnauthorized, err.Error())
		case errors.Is(err, ErrPasswordRequired), common.IsValidationErr(err):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "login failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// list returns the moderation view. Hidden messages only appear with
// show_hidden=true, search matches guest name or message text.
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := ListFilter{
		Search:     r.URL.Query().Get("search"),
		ShowHidden: r.URL.Query().Get("show_hidden") == "true",
	}

	msgs, err := h.mod.List(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not load messages")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"messages": msgs,
		"count":    len(msgs),
	})
}

func (h *Handler) toggleHidden(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	hidden, err := h.mod.ToggleHidden(r.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "message not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "could not update message")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"id": id, "hidden": hidden})
}

// delete is two-step: the first call arms it and answers 409, repeating the
// call confirms.
func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	err := h.mod.Delete(r.Context(), id)
	switch {
	case errors.Is(err, ErrConfirmRequired):
		writeJSON(w, http.StatusConflict, map[string]interface{}{
			"id":      id,
			"message": "repeat the request to confirm deletion",
		})
	case errors.Is(err, gorm.ErrRecordNotFound):
		writeError(w, http.StatusNotFound, "message not found")
	case err != nil:
		writeError(w, http.StatusInternalServerError, "could not delete message")
	default:
		if adminID, ok := common.AdminIDFromContext(r.Context()); ok {
			log.Printf("🗑️ Admin %d deleted message %d", adminID, id)
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"id": id, "deleted": true})
	}
}

func (h *Handler) cancelDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	cancelled := h.mod.CancelDelete(id)
	writeJSON(w, http.StatusOK, map[string]interface{}{"id": id, "cancelled": cancelled})
}

func (h *Handler) analytics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.mod.Analytics(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not compute analytics")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) toggleSelection(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	selected := h.selection.Toggle(id)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":       id,
		"selected": selected,
		"count":    h.selection.Count(),
	})
}

// toggleAllSelection selects or deselects every message matching the given
// filters, same semantics as the list endpoint.
func (h *Handler) toggleAllSelection(w http.ResponseWriter, r *http.Request) {
	filter := ListFilter{
		Search:     r.URL.Query().Get("search"),
		ShowHidden: r.URL.Query().Get("show_hidden") == "true",
	}

	msgs, err := h.mod.List(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not load messages")
		return
	}

	ids := make([]uint64, len(msgs))
	for i, m := range msgs {
		ids[i] = m.ID
	}
	h.selection.ToggleAll(ids)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"all_selected": h.selection.AllSelected(ids),
		"count":        h.selection.Count(),
	})
}

func (h *Handler) selectionState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"count": h.selection.Count()})
}

func (h *Handler) clearSelection(w http.ResponseWriter, r *http.Request) {
	h.selection.Clear()
	writeJSON(w, http.StatusOK, map[string]interface{}{"count": 0})
}

// exportMessages resolves which messages an export covers: an explicit
// ids query parameter wins, then the server-side selection, then everything.
// Order always follows the full moderation list, never the pick order.
// A scope that matches nothing exports nothing — stale ids never widen an
// export to the full set.
func (h *Handler) exportMessages(ctx context.Context, r *http.Request) ([]dbmysql.GuestMessage, error) {
	msgs, err := h.mod.List(ctx, ListFilter{ShowHidden: true})
	if err != nil {
		return nil, err
	}

	scoped := false
	wanted := make(map[uint64]struct{})
	if raw := r.URL.Query().Get("ids"); raw != "" {
		scoped = true
		for _, part := range strings.Split(raw, ",") {
			id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
			if err != nil {
				continue
			}
			wanted[id] = struct{}{}
		}
	} else if h.selection.Count() > 0 {
		scoped = true
		for _, m := range msgs {
			if h.selection.Has(m.ID) {
				wanted[m.ID] = struct{}{}
			}
		}
	}

	if !scoped {
		return msgs, nil
	}

	out := make([]dbmysql.GuestMessage, 0, len(wanted))
	for _, m := range msgs {
		if _, ok := wanted[m.ID]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}

func (h *Handler) exportCSV(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.exportMessages(r.Context(), r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not load messages")
		return
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, msgs); err != nil {
		writeError(w, http.StatusInternalServerError, "could not build CSV")
		return
	}

	sendDownload(w, CSVFilename(h.now()), "text/csv; charset=utf-8", buf.Bytes())
}

func (h *Handler) exportPDF(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.exportMessages(r.Context(), r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not load messages")
		return
	}

	var buf bytes.Buffer
	if err := h.pdf.Write(r.Context(), &buf, msgs); err != nil {
		writeError(w, http.StatusInternalServerError, "could not build PDF")
		return
	}

	sendDownload(w, PDFFilename(h.now()), "application/pdf", buf.Bytes())
}

func (h *Handler) exportZIP(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.exportMessages(r.Context(), r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not load messages")
		return
	}

	var buf bytes.Buffer
	if err := h.zip.Write(r.Context(), &buf, msgs); err != nil {
		writeError(w, http.StatusInternalServerError, "could not build archive")
		return
	}

	sendDownload(w, ZIPFilename(h.now()), "application/zip", buf.Bytes())
}

func sendDownload(w http.ResponseWriter, filename, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.Write(body)
}

func pathID(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
