package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"goglm/domain/core"
	"goglm/domain/formula"
	"goglm/models"
	"goglm/ports"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// ModelRepositoryImpl implements ModelRepository for PostgreSQL
type ModelRepositoryImpl struct {
	db *sqlx.DB
}

// NewModelRepository creates a new PostgreSQL model repository
func NewModelRepository(db *sqlx.DB) ports.ModelRepository {
	return &ModelRepositoryImpl{db: db}
}

// Migrate creates the saved_models table if it does not exist.
func Migrate(db *sqlx.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS saved_models (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			formula TEXT NOT NULL,
			notes TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	return err
}

// Create stores a model. The formula is parsed before writing so only
// well-formed models are ever persisted.
func (r *ModelRepositoryImpl) Create(ctx context.Context, model *models.SavedModel) error {
	spec, _, err := formula.Parse(model.Formula)
	if err != nil {
		return err
	}
	model.Spec = &spec
	if model.ID == uuid.Nil {
		model.ID = uuid.New()
	}

	_, err = r.db.NamedExecContext(ctx, `
		INSERT INTO saved_models (id, name, formula, notes, created_at, updated_at)
		VALUES (:id, :name, :formula, :notes, NOW(), NOW())
	`, model)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation
			return fmt.Errorf("model named %q already exists", model.Name)
		}
		return err
	}
	return nil
}

// GetByID retrieves a model by its ID
func (r *ModelRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.SavedModel, error) {
	var model models.SavedModel
	err := r.db.GetContext(ctx, &model, `
		SELECT id, name, formula, notes, created_at, updated_at
		FROM saved_models
		WHERE id = $1
	`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.NewNotFoundError("model", id.String())
		}
		return nil, err
	}
	return r.withSpec(&model)
}

// GetByName retrieves a model by its unique name
func (r *ModelRepositoryImpl) GetByName(ctx context.Context, name string) (*models.SavedModel, error) {
	var model models.SavedModel
	err := r.db.GetContext(ctx, &model, `
		SELECT id, name, formula, notes, created_at, updated_at
		FROM saved_models
		WHERE name = $1
	`, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.NewNotFoundError("model", name)
		}
		return nil, err
	}
	return r.withSpec(&model)
}

// List returns stored models, newest first
func (r *ModelRepositoryImpl) List(ctx context.Context, limit, offset int) ([]*models.SavedModel, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []*models.SavedModel
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, name, formula, notes, created_at, updated_at
		FROM saved_models
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if _, err := r.withSpec(row); err != nil {
			return nil, err
		}
	}
	return rows, nil
}

// Delete removes a stored model
func (r *ModelRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM saved_models WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return core.NewNotFoundError("model", id.String())
	}
	return nil
}

// withSpec rebuilds the structured spec from the stored formula so stale or
// hand-edited rows fail loudly on load instead of downstream.
func (r *ModelRepositoryImpl) withSpec(model *models.SavedModel) (*models.SavedModel, error) {
	spec, _, err := formula.Parse(model.Formula)
	if err != nil {
		return nil, fmt.Errorf("stored model %s has invalid formula: %w", model.ID, err)
	}
	model.Spec = &spec
	return model, nil
}
