package ports

import (
	"context"

	"github.com/google/uuid"

	"goglm/models"
)

// ModelRepository persists named model specifications.
type ModelRepository interface {
	Create(ctx context.Context, model *models.SavedModel) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.SavedModel, error)
	GetByName(ctx context.Context, name string) (*models.SavedModel, error)
	List(ctx context.Context, limit, offset int) ([]*models.SavedModel, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
