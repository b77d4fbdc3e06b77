package repositories

import (
	"context"

	"github.com/SAP-F-2025/form-service/internal/models"
	"gorm.io/gorm"
)

// FormRepository persists forms with their embedded questions.
// Every method accepts an optional transaction; nil uses the default connection.
type FormRepository interface {
	// Create generates an ID when the form has none
	Create(ctx context.Context, tx *gorm.DB, form *models.Form) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Form, error)
	// Update replaces the stored document; last writer wins
	Update(ctx context.Context, tx *gorm.DB, form *models.Form) error
	// Delete removes the form only. Responses referencing it are untouched.
	Delete(ctx context.Context, tx *gorm.DB, id string) error
	List(ctx context.Context, tx *gorm.DB, filters FormFilters) ([]*models.Form, error)
}
