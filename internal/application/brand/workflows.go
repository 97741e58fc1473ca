package brand

import (
	"context"

	"github.com/google/uuid"
	"github.com/raqueto/backend/internal/application/workflow"
	"github.com/raqueto/backend/internal/domain/brand"
	"go.uber.org/zap"
)

// Workflow names
const (
	CreateBrandWorkflow = "create-brand"
	UpdateBrandWorkflow = "update-brand"
	DeleteBrandWorkflow = "delete-brand"
)

// UpdateInput is the input of the update-brand workflow
type UpdateInput struct {
	ID    uuid.UUID
	Patch brand.Patch
}

// NewCreateWorkflow persists a new brand. Its undo hard-removes the row.
// The workflow result is the created *brand.Brand.
func NewCreateWorkflow(repo brand.Repository, log *zap.Logger) *workflow.Workflow {
	create := workflow.Typed(
		"create-brand-step",
		func(ctx context.Context, in brand.CreateInput) (*brand.Brand, uuid.UUID, error) {
			b, err := brand.NewBrand(in)
			if err != nil {
				return nil, uuid.Nil, err
			}
			if err := repo.Create(ctx, b); err != nil {
				return nil, uuid.Nil, err
			}
			return b, b.ID, nil
		},
		func(ctx context.Context, id uuid.UUID) error {
			return repo.Purge(ctx, id)
		},
	)
	return workflow.New(CreateBrandWorkflow, log, create)
}

// NewUpdateWorkflow patches a brand and saves it. Its undo writes the
// pre-update snapshot back field for field.
func NewUpdateWorkflow(repo brand.Repository, log *zap.Logger) *workflow.Workflow {
	update := workflow.Typed(
		"update-brand-step",
		func(ctx context.Context, in UpdateInput) (*brand.Brand, *brand.Brand, error) {
			b, err := repo.FindByID(ctx, in.ID)
			if err != nil {
				return nil, nil, err
			}
			before := b.Snapshot()
			if err := b.Apply(in.Patch); err != nil {
				return nil, nil, err
			}
			if err := repo.Save(ctx, b); err != nil {
				return nil, nil, err
			}
			return b, before, nil
		},
		func(ctx context.Context, before *brand.Brand) error {
			return repo.Save(ctx, before.Snapshot())
		},
	)
	return workflow.New(UpdateBrandWorkflow, log, update)
}

// NewDeleteWorkflow soft-deletes a brand after reading the full row, which
// the undo re-creates under the same ID. The result is the brand ID.
func NewDeleteWorkflow(repo brand.Repository, log *zap.Logger) *workflow.Workflow {
	remove := workflow.Typed(
		"delete-brand-step",
		func(ctx context.Context, id uuid.UUID) (uuid.UUID, *brand.Brand, error) {
			b, err := repo.FindByID(ctx, id)
			if err != nil {
				return uuid.Nil, nil, err
			}
			if err := repo.Delete(ctx, id); err != nil {
				return uuid.Nil, nil, err
			}
			return id, b, nil
		},
		func(ctx context.Context, deleted *brand.Brand) error {
			return repo.Create(ctx, deleted.Snapshot())
		},
	)
	return workflow.New(DeleteBrandWorkflow, log, remove)
}
