package postgres

import (
	"context"

	"github.com/SAP-F-2025/form-service/internal/models"
	"github.com/SAP-F-2025/form-service/internal/repositories"
	"gorm.io/gorm"
)

type repository struct {
	db       *gorm.DB
	form     repositories.FormRepository
	response repositories.ResponseRepository
}

// NewRepository wires the gorm-backed stores to one connection
func NewRepository(db *gorm.DB) repositories.Repository {
	return &repository{
		db:       db,
		form:     NewFormPostgreSQL(db),
		response: NewResponsePostgreSQL(db),
	}
}

func (r *repository) Form() repositories.FormRepository         { return r.form }
func (r *repository) Response() repositories.ResponseRepository { return r.response }

func (r *repository) WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

// Migrate creates or updates the forms and responses tables
func (r *repository) Migrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&models.Form{}, &models.Response{})
}
