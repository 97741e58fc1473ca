package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/raqueto/backend/internal/application/upload"
)

// StubFileStore keeps uploaded files in memory.
// It is used in development when no S3 bucket is configured, and in tests.
type StubFileStore struct {
	// BaseURL prefixes the returned file URLs
	BaseURL string

	mu      sync.RWMutex
	objects map[string][]byte
}

// Ensure StubFileStore implements FileStore
var _ upload.FileStore = (*StubFileStore)(nil)

// NewStubFileStore creates a new StubFileStore
func NewStubFileStore(baseURL string) *StubFileStore {
	if baseURL == "" {
		baseURL = "http://localhost:9000/static"
	}
	return &StubFileStore{
		BaseURL: strings.TrimRight(baseURL, "/"),
		objects: make(map[string][]byte),
	}
}

// Upload reads the body into memory under a new key
func (s *StubFileStore) Upload(ctx context.Context, filename, contentType string, body io.Reader, size int64) (*upload.StoredFile, error) {
	key, err := ObjectKey(filename)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read upload body: %w", err)
	}

	s.mu.Lock()
	s.objects[key] = data
	s.mu.Unlock()

	return &upload.StoredFile{ID: key, URL: s.BaseURL + "/" + key}, nil
}

// Delete drops the object if present
func (s *StubFileStore) Delete(ctx context.Context, fileID string) error {
	if fileID == "" {
		return errors.New("file id is required")
	}
	s.mu.Lock()
	delete(s.objects, fileID)
	s.mu.Unlock()
	return nil
}

// Exists reports whether the key holds an object
func (s *StubFileStore) Exists(fileID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[fileID]
	return ok
}
