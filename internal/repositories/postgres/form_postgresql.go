package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SAP-F-2025/form-service/internal/models"
	"github.com/SAP-F-2025/form-service/internal/repositories"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FormPostgreSQL struct {
	db      *gorm.DB
	helpers *SharedHelpers
}

func NewFormPostgreSQL(db *gorm.DB) repositories.FormRepository {
	return &FormPostgreSQL{
		db:      db,
		helpers: NewSharedHelpers(db),
	}
}

// Create inserts a new form, generating its ID when absent
func (f *FormPostgreSQL) Create(ctx context.Context, tx *gorm.DB, form *models.Form) error {
	if form.ID == "" {
		form.ID = uuid.NewString()
	}
	if form.Questions == nil {
		form.Questions = []models.Question{}
	}

	if err := f.helpers.GetDB(tx).WithContext(ctx).Create(form).Error; err != nil {
		return fmt.Errorf("failed to create form: %w", err)
	}
	return nil
}

// GetByID retrieves a form by ID
func (f *FormPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Form, error) {
	var form models.Form
	if err := f.helpers.GetDB(tx).WithContext(ctx).Where("id = ?", id).First(&form).Error; err != nil {
		return nil, err
	}
	return &form, nil
}

// Update saves every column of the form. Missing rows report gorm.ErrRecordNotFound.
func (f *FormPostgreSQL) Update(ctx context.Context, tx *gorm.DB, form *models.Form) error {
	if form.Questions == nil {
		form.Questions = []models.Question{}
	}
	form.UpdatedAt = time.Now()

	result := f.helpers.GetDB(tx).WithContext(ctx).
		Model(&models.Form{}).
		Where("id = ?", form.ID).
		Select("title", "description", "header_image", "questions", "updated_at").
		Updates(form)
	if result.Error != nil {
		return fmt.Errorf("failed to update form: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete hard deletes a form
func (f *FormPostgreSQL) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	result := f.helpers.GetDB(tx).WithContext(ctx).Where("id = ?", id).Delete(&models.Form{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete form: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List retrieves forms matching the filters, oldest first by default
func (f *FormPostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.FormFilters) ([]*models.Form, error) {
	query := f.helpers.GetDB(tx).WithContext(ctx).Model(&models.Form{})

	if term := strings.TrimSpace(filters.Search); term != "" {
		pattern := f.helpers.ContainsPattern(term)
		query = query.Where(`LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\'`, pattern, pattern)
	}
	query = f.helpers.ApplyDateRange(query, "created_at", filters.DateFrom, filters.DateTo)
	query = f.helpers.ApplySort(query, filters.SortBy, filters.SortOrder,
		[]string{"created_at", "updated_at", "title"}, "created_at")

	var forms []*models.Form
	if err := query.Find(&forms).Error; err != nil {
		return nil, err
	}
	return forms, nil
}
