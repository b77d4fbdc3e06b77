package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// ===== SHARED FILTER STRUCTS =====

type FormFilters struct {
	Search    string     `json:"search"` // case-insensitive match on title or description
	DateFrom  *time.Time `json:"date_from"`
	DateTo    *time.Time `json:"date_to"`
	SortBy    string     `json:"sort_by"`    // "created_at", "updated_at", "title"
	SortOrder string     `json:"sort_order"` // "asc", "desc"
}

type ResponseFilters struct {
	SubmittedFrom *time.Time `json:"submitted_from"`
	SubmittedTo   *time.Time `json:"submitted_to"`
}

// ===== HELPERS =====

// IsNotFoundError reports whether err is the store's not-found condition
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
