package collection

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/raqueto/backend/internal/application/upload"
	"github.com/raqueto/backend/internal/application/workflow"
	"github.com/raqueto/backend/internal/domain/collection"
	"github.com/raqueto/backend/internal/domain/link"
	"github.com/raqueto/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Workflow names
const (
	CreateImagesWorkflow = "create-collection-image"
	DeleteImageWorkflow  = "delete-collection-image"
)

var errImageNotFound = shared.NotFound("Collection image not found")

// CreateImagesInput is the input of the create-collection-image workflow
type CreateImagesInput struct {
	CollectionID uuid.UUID
	Images       []collection.ImageInput
}

// DeleteImageInput is the input of the delete-collection-image workflow
type DeleteImageInput struct {
	CollectionID uuid.UUID
	ImageID      uuid.UUID
}

type imageDeps struct {
	collections collection.Repository
	images      collection.ImageRepository
	links       link.CollectionImageRepository
	files       upload.FileStore
	logger      *zap.Logger
}

// createImagesWorkflow verifies the collection, creates the images and
// links them. The result is []collection.Image.
func (d imageDeps) createImagesWorkflow(extra ...workflow.Step) *workflow.Workflow {
	verify := workflow.Typed(
		"verify-collection",
		func(ctx context.Context, in CreateImagesInput) (CreateImagesInput, workflow.NoUndo, error) {
			if len(in.Images) == 0 {
				return in, workflow.NoUndo{}, shared.InvalidInput("Images array is required")
			}
			if _, err := d.collections.FindByID(ctx, in.CollectionID); err != nil {
				return in, workflow.NoUndo{}, err
			}
			return in, workflow.NoUndo{}, nil
		},
		nil,
	)

	create := workflow.Typed(
		"create-collection-images",
		func(ctx context.Context, in CreateImagesInput) ([]collection.Image, []uuid.UUID, error) {
			images := make([]collection.Image, 0, len(in.Images))
			ids := make([]uuid.UUID, 0, len(in.Images))
			for _, input := range in.Images {
				img, err := collection.NewImage(in.CollectionID, input)
				if err == nil {
					err = d.images.Create(ctx, img)
				}
				if err != nil {
					// the step fails as a whole, so its own partial work is removed here
					return nil, nil, errors.Join(err, d.purgeImages(ctx, ids))
				}
				images = append(images, *img)
				ids = append(ids, img.ID)
			}
			return images, ids, nil
		},
		d.purgeImages,
	)

	attach := workflow.Typed(
		"link-collection-images",
		func(ctx context.Context, images []collection.Image) ([]collection.Image, []uuid.UUID, error) {
			linked := make([]uuid.UUID, 0, len(images))
			for _, img := range images {
				if _, err := d.links.Attach(ctx, img.CollectionID, img.ID); err != nil {
					return nil, nil, errors.Join(err, d.detachImages(ctx, linked))
				}
				linked = append(linked, img.ID)
			}
			return images, linked, nil
		},
		d.detachImages,
	)

	wf := workflow.New(CreateImagesWorkflow, d.logger, verify, create, attach)
	return wf.Append(extra...)
}

// deleteImageWorkflow detaches the image, soft-deletes it, runs extra
// steps and finally removes the stored file. The file deletion cannot be
// undone; when it fails the earlier steps are rolled back so the record
// keeps pointing at an existing file.
func (d imageDeps) deleteImageWorkflow(extra ...workflow.Step) *workflow.Workflow {
	detach := workflow.Typed(
		"detach-collection-image",
		func(ctx context.Context, in DeleteImageInput) (*collection.Image, *link.CollectionImage, error) {
			img, err := d.images.FindByID(ctx, in.ImageID)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return nil, nil, errImageNotFound
				}
				return nil, nil, err
			}
			if img.CollectionID != in.CollectionID {
				return nil, nil, errImageNotFound
			}
			dismissed, err := d.links.DetachImage(ctx, img.ID)
			if err != nil {
				return nil, nil, err
			}
			return img, dismissed, nil
		},
		func(ctx context.Context, dismissed *link.CollectionImage) error {
			if dismissed == nil {
				return nil
			}
			_, err := d.links.Attach(ctx, dismissed.CollectionID, dismissed.ImageID)
			return err
		},
	)

	remove := workflow.Typed(
		"delete-collection-image",
		func(ctx context.Context, img *collection.Image) (*collection.Image, uuid.UUID, error) {
			if err := d.images.Delete(ctx, img.ID); err != nil {
				return nil, uuid.Nil, err
			}
			return img, img.ID, nil
		},
		func(ctx context.Context, id uuid.UUID) error {
			return d.images.Restore(ctx, id)
		},
	)

	deleteFile := workflow.Typed(
		"delete-collection-image-file",
		func(ctx context.Context, img *collection.Image) (*collection.Image, workflow.NoUndo, error) {
			if d.files == nil {
				d.logger.Warn("file store not configured, keeping stored file", zap.String("file_id", img.FileID))
				return img, workflow.NoUndo{}, nil
			}
			if err := d.files.Delete(ctx, img.FileID); err != nil {
				d.logger.Error("failed to delete stored file",
					zap.String("file_id", img.FileID),
					zap.Error(err),
				)
				return nil, workflow.NoUndo{}, fmt.Errorf("%w: %v",
					shared.NewDomainError(shared.ErrUpstreamFailed.Code, "Failed to delete the stored file"), err)
			}
			return img, workflow.NoUndo{}, nil
		},
		nil,
	)

	steps := []workflow.Step{detach, remove}
	steps = append(steps, extra...)
	steps = append(steps, deleteFile)
	return workflow.New(DeleteImageWorkflow, d.logger, steps...)
}

func (d imageDeps) purgeImages(ctx context.Context, ids []uuid.UUID) error {
	var errs []error
	for _, id := range ids {
		if err := d.images.Purge(ctx, id); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (d imageDeps) detachImages(ctx context.Context, ids []uuid.UUID) error {
	var errs []error
	for _, id := range ids {
		if _, err := d.links.DetachImage(ctx, id); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
