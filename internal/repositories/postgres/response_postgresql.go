package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/SAP-F-2025/form-service/internal/models"
	"github.com/SAP-F-2025/form-service/internal/repositories"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ResponsePostgreSQL struct {
	db      *gorm.DB
	helpers *SharedHelpers
}

func NewResponsePostgreSQL(db *gorm.DB) repositories.ResponseRepository {
	return &ResponsePostgreSQL{
		db:      db,
		helpers: NewSharedHelpers(db),
	}
}

func (r *ResponsePostgreSQL) Create(ctx context.Context, tx *gorm.DB, response *models.Response) error {
	if response.ID == "" {
		response.ID = uuid.NewString()
	}
	if response.SubmittedAt.IsZero() {
		response.SubmittedAt = time.Now()
	}
	if response.Responses == nil {
		response.Responses = []models.AnswerEntry{}
	}

	if err := r.helpers.GetDB(tx).WithContext(ctx).Create(response).Error; err != nil {
		return fmt.Errorf("failed to create response: %w", err)
	}
	return nil
}

func (r *ResponsePostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Response, error) {
	var response models.Response
	if err := r.helpers.GetDB(tx).WithContext(ctx).Where("id = ?", id).First(&response).Error; err != nil {
		return nil, err
	}
	return &response, nil
}

// ListByForm returns a form's responses in submission order
func (r *ResponsePostgreSQL) ListByForm(ctx context.Context, tx *gorm.DB, formID string, filters repositories.ResponseFilters) ([]*models.Response, error) {
	query := r.helpers.GetDB(tx).WithContext(ctx).Where("form_id = ?", formID)
	query = r.helpers.ApplyDateRange(query, "submitted_at", filters.SubmittedFrom, filters.SubmittedTo)

	var responses []*models.Response
	if err := query.Order("submitted_at ASC").Find(&responses).Error; err != nil {
		return nil, err
	}
	return responses, nil
}

func (r *ResponsePostgreSQL) CountByForm(ctx context.Context, tx *gorm.DB, formID string) (int64, error) {
	var count int64
	err := r.helpers.GetDB(tx).WithContext(ctx).
		Model(&models.Response{}).
		Where("form_id = ?", formID).
		Count(&count).Error
	return count, err
}

func (r *ResponsePostgreSQL) DeleteByForm(ctx context.Context, tx *gorm.DB, formID string) (int64, error) {
	result := r.helpers.GetDB(tx).WithContext(ctx).Where("form_id = ?", formID).Delete(&models.Response{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete responses: %w", result.Error)
	}
	return result.RowsAffected, nil
}
