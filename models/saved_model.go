package models

import (
	"time"

	"github.com/google/uuid"

	"goglm/domain/formula"
)

// SavedModel is a named, persisted model specification. The formula string
// is the stored representation; the structured spec is rebuilt through the
// parser on load so stored rows always re-validate.
type SavedModel struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Formula   string    `db:"formula" json:"formula"`
	Notes     string    `db:"notes" json:"notes,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`

	// Populated on load, never stored directly.
	Spec *formula.ModelSpec `db:"-" json:"spec,omitempty"`
}
