package media

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gorilla/mux"

	"guestbook/internal/dbmongo"
)

// HTTPServer fronts the object store: every public media URL handed out by
// the guestbook resolves to GET /media/{path} here.
type HTTPServer struct {
	storage *dbmongo.MediaStorage
}

func NewHTTPServer(storage *dbmongo.MediaStorage) *HTTPServer {
	return &HTTPServer{storage: storage}
}

func (s *HTTPServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	router := mux.NewRouter()

	// storage paths contain slashes, so match the rest of the URL
	router.HandleFunc("/media/{path:.+}", s.serveFile).Methods("GET")

	// Health check
	router.HandleFunc("/health", s.health).Methods("GET")

	router.ServeHTTP(w, r)
}

func (s *HTTPServer) serveFile(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	path := vars["path"]

	fileReader, stored, err := s.storage.Download(r.Context(), path)
	if err != nil {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}
	defer fileReader.Close()

	w.Header().Set("Content-Type", s.getContentType(path))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", stored.Size))

	if _, err := io.Copy(w, fileReader); err != nil {
		log.Printf("Error streaming file: %v", err)
	}
}

func (s *HTTPServer) getContentType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".mp4":
		return "video/mp4"
	case ".mov":
		return "video/quicktime"
	default:
		return "application/octet-stream"
	}
}

func (s *HTTPServer) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("✅ Media server is healthy"))
}
