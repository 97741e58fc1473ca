package upload

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/raqueto/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockFileStore struct {
	mock.Mock
}

func (m *MockFileStore) Upload(ctx context.Context, filename, contentType string, body io.Reader, size int64) (*StoredFile, error) {
	data, _ := io.ReadAll(body)
	args := m.Called(ctx, filename, contentType, string(data), size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*StoredFile), args.Error(1)
}

func (m *MockFileStore) Delete(ctx context.Context, fileID string) error {
	return m.Called(ctx, fileID).Error(0)
}

func file(name, body string) File {
	return File{
		Filename:    name,
		ContentType: "image/png",
		Size:        int64(len(body)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(body)), nil
		},
	}
}

func TestService_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("uploads every file in order", func(t *testing.T) {
		store := new(MockFileStore)
		store.On("Upload", ctx, "a.png", "image/png", "aaa", int64(3)).
			Return(&StoredFile{ID: "a-1.png", URL: "https://cdn/a-1.png"}, nil)
		store.On("Upload", ctx, "b.png", "image/png", "bb", int64(2)).
			Return(&StoredFile{ID: "b-1.png", URL: "https://cdn/b-1.png"}, nil)

		files, err := NewService(store, nil).Upload(ctx, []File{file("a.png", "aaa"), file("b.png", "bb")})
		require.NoError(t, err)
		assert.Equal(t, []StoredFile{
			{ID: "a-1.png", URL: "https://cdn/a-1.png"},
			{ID: "b-1.png", URL: "https://cdn/b-1.png"},
		}, files)
		store.AssertExpectations(t)
	})

	t.Run("no files is invalid input", func(t *testing.T) {
		_, err := NewService(new(MockFileStore), nil).Upload(ctx, nil)
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	})

	t.Run("store failure names the file", func(t *testing.T) {
		store := new(MockFileStore)
		store.On("Upload", ctx, "a.png", "image/png", "aaa", int64(3)).Return(nil, errors.New("bucket gone"))

		_, err := NewService(store, nil).Upload(ctx, []File{file("a.png", "aaa")})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"a.png"`)
		assert.Contains(t, err.Error(), "bucket gone")
	})

	t.Run("open failure stops before the store", func(t *testing.T) {
		store := new(MockFileStore)
		bad := File{Filename: "x.png", Open: func() (io.ReadCloser, error) { return nil, errors.New("closed") }}

		_, err := NewService(store, nil).Upload(ctx, []File{bad})
		require.Error(t, err)
		store.AssertNotCalled(t, "Upload")
	})
}
