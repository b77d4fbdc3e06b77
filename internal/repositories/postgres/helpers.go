package postgres

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// SharedHelpers holds query building shared by the stores
type SharedHelpers struct {
	db *gorm.DB
}

func NewSharedHelpers(db *gorm.DB) *SharedHelpers {
	return &SharedHelpers{db: db}
}

// GetDB returns tx when set, otherwise the default connection
func (h *SharedHelpers) GetDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return h.db
}

// ApplySort orders by sortBy when it is whitelisted, falling back to defaultColumn
func (h *SharedHelpers) ApplySort(query *gorm.DB, sortBy, sortOrder string, allowed []string, defaultColumn string) *gorm.DB {
	column := defaultColumn
	for _, a := range allowed {
		if a == sortBy {
			column = sortBy
			break
		}
	}

	order := "ASC"
	if strings.EqualFold(sortOrder, "desc") {
		order = "DESC"
	}

	return query.Order(fmt.Sprintf("%s %s", column, order))
}

// ApplyDateRange restricts column to [from, to]
func (h *SharedHelpers) ApplyDateRange(query *gorm.DB, column string, from, to *time.Time) *gorm.DB {
	if from != nil {
		query = query.Where(column+" >= ?", *from)
	}
	if to != nil {
		query = query.Where(column+" <= ?", *to)
	}
	return query
}

// ContainsPattern builds a case-insensitive LIKE pattern, escaping wildcards
func (h *SharedHelpers) ContainsPattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + strings.ToLower(r.Replace(term)) + "%"
}
