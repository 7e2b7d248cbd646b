package admin

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

// fakeStore is an in-memory object store for export and delete tests.
type fakeStore struct {
	mu      sync.Mutex
	blobs   map[string][]byte
	removed [][]string
	openErr map[string]error
}

const fakeStoreBaseURL = "http://media.local/media"

func newFakeStore() *fakeStore {
	return &fakeStore{
		blobs:   make(map[string][]byte),
		openErr: make(map[string]error),
	}
}

func (s *fakeStore) put(path string, data []byte) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[path] = data
	return fakeStoreBaseURL + "/" + path
}

func (s *fakeStore) Upload(_ context.Context, path string, content io.Reader) error {
	data, err := io.ReadAll(content)
	if err != nil {
		return err
	}
	s.put(path, data)
	return nil
}

func (s *fakeStore) Open(_ context.Context, path string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err, ok := s.openErr[path]; ok {
		return nil, err
	}
	data, ok := s.blobs[path]
	if !ok {
		return nil, errors.New("blob not found: " + path)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *fakeStore) Remove(_ context.Context, paths []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.removed = append(s.removed, paths)
	for _, p := range paths {
		delete(s.blobs, p)
	}
	return nil
}

func (s *fakeStore) PublicURL(path string) string {
	return fakeStoreBaseURL + "/" + path
}

func (s *fakeStore) PathFromURL(url string) (string, bool) {
	prefix := fakeStoreBaseURL + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	return strings.TrimPrefix(url, prefix), true
}
