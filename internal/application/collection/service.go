package collection

import (
	"context"

	"github.com/google/uuid"
	"github.com/raqueto/backend/internal/application/upload"
	"github.com/raqueto/backend/internal/application/workflow"
	"github.com/raqueto/backend/internal/domain/collection"
	"github.com/raqueto/backend/internal/domain/link"
	"github.com/raqueto/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// CollectionService manages collections and their images
type CollectionService struct {
	collections collection.Repository
	images      collection.ImageRepository
	links       link.CollectionImageRepository
	deps        imageDeps
}

// NewCollectionService creates a new CollectionService. files may be nil when
// no object storage is configured.
func NewCollectionService(
	collections collection.Repository,
	images collection.ImageRepository,
	links link.CollectionImageRepository,
	files upload.FileStore,
	logger *zap.Logger,
) *CollectionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CollectionService{
		collections: collections,
		images:      images,
		links:       links,
		deps: imageDeps{
			collections: collections,
			images:      images,
			links:       links,
			files:       files,
			logger:      logger,
		},
	}
}

// Create creates a collection
func (s *CollectionService) Create(ctx context.Context, req CreateCollectionRequest) (*CollectionResponse, error) {
	c, err := collection.NewCollection(req.Title, req.Handle)
	if err != nil {
		return nil, err
	}
	if err := s.collections.Save(ctx, c); err != nil {
		return nil, err
	}
	resp := toCollectionResponse(c)
	return &resp, nil
}

// GetByID returns a collection
func (s *CollectionService) GetByID(ctx context.Context, id uuid.UUID) (*CollectionResponse, error) {
	c, err := s.collections.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toCollectionResponse(c)
	return &resp, nil
}

// List returns a page of collections
func (s *CollectionService) List(ctx context.Context, query ListCollectionsQuery) (*CollectionListResponse, error) {
	filter := query.ToFilter()
	items, err := s.collections.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	count, err := s.collections.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]CollectionResponse, 0, len(items))
	for i := range items {
		out = append(out, toCollectionResponse(&items[i]))
	}
	return &CollectionListResponse{Collections: out, Count: count, Limit: filter.Limit, Offset: filter.Offset}, nil
}

// Delete soft-deletes a collection
func (s *CollectionService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.collections.Delete(ctx, id)
}

// CreateImages runs the create-collection-image workflow
func (s *CollectionService) CreateImages(ctx context.Context, collectionID uuid.UUID, req CreateImagesRequest, extra ...workflow.Step) (*ImagesResponse, error) {
	telemetry.Annotate(ctx, telemetry.AttrCollectionID, collectionID.String())
	input := CreateImagesInput{CollectionID: collectionID}
	for _, img := range req.Images {
		input.Images = append(input.Images, collection.ImageInput{
			URL:    img.URL,
			FileID: img.FileID,
			Type:   collection.ImageType(img.Type),
		})
	}

	images, err := workflow.Result[[]collection.Image](ctx, s.deps.createImagesWorkflow(extra...), input)
	if err != nil {
		return nil, err
	}
	return &ImagesResponse{Images: toImageResponses(images)}, nil
}

// ListImages returns the images linked to a collection
func (s *CollectionService) ListImages(ctx context.Context, collectionID uuid.UUID) (*ImagesResponse, error) {
	ids, err := s.links.ImageIDsByCollection(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return &ImagesResponse{Images: []ImageResponse{}}, nil
	}
	images, err := s.images.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return &ImagesResponse{Images: toImageResponses(images)}, nil
}

// DeleteImage runs the delete-collection-image workflow. Extra steps run
// before the stored file is removed.
func (s *CollectionService) DeleteImage(ctx context.Context, collectionID, imageID uuid.UUID, extra ...workflow.Step) error {
	telemetry.Annotate(ctx, telemetry.AttrCollectionID, collectionID.String())
	_, _, err := s.deps.deleteImageWorkflow(extra...).Run(ctx, DeleteImageInput{
		CollectionID: collectionID,
		ImageID:      imageID,
	})
	return err
}
