package collection

import (
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/raqueto/backend/internal/domain/shared"
)

// ImageType distinguishes the single thumbnail from banner images
type ImageType string

const (
	ImageTypeThumbnail ImageType = "thumbnail"
	ImageTypeBanner    ImageType = "banner"
)

// IsValid reports whether the type is known
func (t ImageType) IsValid() bool {
	return t == ImageTypeThumbnail || t == ImageTypeBanner
}

// ErrThumbnailExists is returned when a collection already has a live thumbnail
var ErrThumbnailExists = shared.AlreadyExists("collection already has a thumbnail")

// Image is an image attached to a collection. FileID references a stored
// object that the image does not own.
type Image struct {
	shared.BaseEntity
	URL          string
	FileID       string
	Type         ImageType
	CollectionID uuid.UUID
}

// ImageInput describes one image to create
type ImageInput struct {
	URL    string
	FileID string
	Type   ImageType
}

// NewImage validates the input and creates an image for the collection
func NewImage(collectionID uuid.UUID, input ImageInput) (*Image, error) {
	if collectionID == uuid.Nil {
		return nil, shared.InvalidInput("collection_id is required")
	}
	raw := strings.TrimSpace(input.URL)
	u, err := url.Parse(raw)
	if raw == "" || err != nil || u.Scheme == "" || u.Host == "" {
		return nil, shared.InvalidInput("image url must be an absolute URL")
	}
	if strings.TrimSpace(input.FileID) == "" {
		return nil, shared.InvalidInput("file_id is required")
	}
	if !input.Type.IsValid() {
		return nil, shared.InvalidInput("type must be one of thumbnail, banner")
	}
	return &Image{
		BaseEntity:   shared.NewBaseEntity(),
		URL:          raw,
		FileID:       strings.TrimSpace(input.FileID),
		Type:         input.Type,
		CollectionID: collectionID,
	}, nil
}
