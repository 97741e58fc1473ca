// Package upload stores admin-uploaded files and hands back their public URLs.
package upload

import (
	"context"
	"fmt"
	"io"

	"github.com/raqueto/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// StoredFile identifies an uploaded object. ID is the storage key used to delete it later.
type StoredFile struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// FileStore is the object storage backend
type FileStore interface {
	// Upload writes the body under a fresh key derived from filename
	Upload(ctx context.Context, filename, contentType string, body io.Reader, size int64) (*StoredFile, error)

	// Delete removes a stored object. Deleting a missing key is not an error.
	Delete(ctx context.Context, fileID string) error
}

// File is one file received from a multipart form
type File struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// Service uploads files through a FileStore
type Service struct {
	store  FileStore
	logger *zap.Logger
}

// NewService creates a new upload service
func NewService(store FileStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// Upload stores every file in order. Files already written stay in place
// when a later one fails; the error names the failing file.
func (s *Service) Upload(ctx context.Context, files []File) ([]StoredFile, error) {
	if len(files) == 0 {
		return nil, shared.InvalidInput("No files were uploaded")
	}

	out := make([]StoredFile, 0, len(files))
	for _, f := range files {
		stored, err := s.uploadOne(ctx, f)
		if err != nil {
			s.logger.Error("File upload failed",
				zap.String("filename", f.Filename),
				zap.Int("uploaded", len(out)),
				zap.Error(err),
			)
			return nil, fmt.Errorf("upload %q: %w", f.Filename, err)
		}
		out = append(out, *stored)
	}

	s.logger.Info("Files uploaded", zap.Int("count", len(out)))
	return out, nil
}

func (s *Service) uploadOne(ctx context.Context, f File) (*StoredFile, error) {
	body, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer body.Close()

	return s.store.Upload(ctx, f.Filename, f.ContentType, body, f.Size)
}
