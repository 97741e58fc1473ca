package collection

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/raqueto/backend/internal/domain/collection"
	"github.com/raqueto/backend/internal/domain/shared"
)

// CreateCollectionRequest represents a request to create a collection
type CreateCollectionRequest struct {
	Title  string `json:"title" binding:"required,min=1,max=200"`
	Handle string `json:"handle" binding:"omitempty,max=200"`
}

// ListCollectionsQuery holds the admin listing parameters
type ListCollectionsQuery struct {
	Limit  int    `form:"limit" binding:"omitempty,min=1"`
	Offset int    `form:"offset" binding:"omitempty,min=0"`
	Q      string `form:"q"`
}

// ToFilter converts the query into a repository filter
func (q ListCollectionsQuery) ToFilter() shared.Filter {
	filter := shared.DefaultFilter()
	if q.Limit > 0 {
		filter.Limit = min(q.Limit, shared.MaxLimit)
	}
	filter.Offset = q.Offset
	filter.Search = strings.TrimSpace(q.Q)
	return filter
}

// CollectionResponse is the JSON shape of a collection
type CollectionResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Handle    string    `json:"handle"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CollectionListResponse is the admin listing envelope
type CollectionListResponse struct {
	Collections []CollectionResponse `json:"collections"`
	Count       int64                `json:"count"`
	Limit       int                  `json:"limit"`
	Offset      int                  `json:"offset"`
}

// ImageRequest is one image in a create-images request
type ImageRequest struct {
	URL    string `json:"url" binding:"required,url"`
	FileID string `json:"file_id" binding:"required"`
	Type   string `json:"type" binding:"required,oneof=thumbnail banner"`
}

// CreateImagesRequest represents a request to attach images to a collection
type CreateImagesRequest struct {
	Images []ImageRequest `json:"images" binding:"required,min=1,dive"`
}

// ImageResponse is the JSON shape of a collection image
type ImageResponse struct {
	ID           uuid.UUID `json:"id"`
	URL          string    `json:"url"`
	FileID       string    `json:"file_id"`
	Type         string    `json:"type"`
	CollectionID uuid.UUID `json:"collection_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ImagesResponse wraps a list of images
type ImagesResponse struct {
	Images []ImageResponse `json:"images"`
}

func toCollectionResponse(c *collection.Collection) CollectionResponse {
	return CollectionResponse{
		ID:        c.ID,
		Title:     c.Title,
		Handle:    c.Handle,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toImageResponses(images []collection.Image) []ImageResponse {
	out := make([]ImageResponse, 0, len(images))
	for _, img := range images {
		out = append(out, ImageResponse{
			ID:           img.ID,
			URL:          img.URL,
			FileID:       img.FileID,
			Type:         string(img.Type),
			CollectionID: img.CollectionID,
			CreatedAt:    img.CreatedAt,
			UpdatedAt:    img.UpdatedAt,
		})
	}
	return out
}
