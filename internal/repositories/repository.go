package repositories

import (
	"context"

	"gorm.io/gorm"
)

// Repository groups the stores behind one connection
type Repository interface {
	Form() FormRepository
	Response() ResponseRepository

	// WithTransaction runs fn in a single transaction, passing it to every store call
	WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error
	Migrate(ctx context.Context) error
}
