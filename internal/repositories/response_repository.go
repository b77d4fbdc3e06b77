package repositories

import (
	"context"

	"github.com/SAP-F-2025/form-service/internal/models"
	"gorm.io/gorm"
)

// ResponseRepository persists submissions. Responses are immutable: there is
// no Update, and single-response deletion is not offered.
type ResponseRepository interface {
	// Create generates an ID when the response has none
	Create(ctx context.Context, tx *gorm.DB, response *models.Response) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Response, error)
	ListByForm(ctx context.Context, tx *gorm.DB, formID string, filters ResponseFilters) ([]*models.Response, error)
	CountByForm(ctx context.Context, tx *gorm.DB, formID string) (int64, error)
	// DeleteByForm removes every response of a form. Only the cascade
	// deletion policy calls it.
	DeleteByForm(ctx context.Context, tx *gorm.DB, formID string) (int64, error)
}
