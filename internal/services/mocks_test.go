package services

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/SAP-F-2025/form-service/internal/cache"
	"github.com/SAP-F-2025/form-service/internal/models"
	"github.com/SAP-F-2025/form-service/internal/repositories"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockFormRepository is a mock implementation of FormRepository
type MockFormRepository struct {
	mock.Mock
}

func (m *MockFormRepository) Create(ctx context.Context, tx *gorm.DB, form *models.Form) error {
	args := m.Called(ctx, tx, form)
	return args.Error(0)
}

func (m *MockFormRepository) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Form, error) {
	args := m.Called(ctx, tx, id)
	form, _ := args.Get(0).(*models.Form)
	return form, args.Error(1)
}

func (m *MockFormRepository) Update(ctx context.Context, tx *gorm.DB, form *models.Form) error {
	args := m.Called(ctx, tx, form)
	return args.Error(0)
}

func (m *MockFormRepository) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}

func (m *MockFormRepository) List(ctx context.Context, tx *gorm.DB, filters repositories.FormFilters) ([]*models.Form, error) {
	args := m.Called(ctx, tx, filters)
	forms, _ := args.Get(0).([]*models.Form)
	return forms, args.Error(1)
}

// MockResponseRepository is a mock implementation of ResponseRepository
type MockResponseRepository struct {
	mock.Mock
}

func (m *MockResponseRepository) Create(ctx context.Context, tx *gorm.DB, response *models.Response) error {
	args := m.Called(ctx, tx, response)
	return args.Error(0)
}

func (m *MockResponseRepository) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Response, error) {
	args := m.Called(ctx, tx, id)
	resp, _ := args.Get(0).(*models.Response)
	return resp, args.Error(1)
}

func (m *MockResponseRepository) ListByForm(ctx context.Context, tx *gorm.DB, formID string, filters repositories.ResponseFilters) ([]*models.Response, error) {
	args := m.Called(ctx, tx, formID, filters)
	responses, _ := args.Get(0).([]*models.Response)
	return responses, args.Error(1)
}

func (m *MockResponseRepository) CountByForm(ctx context.Context, tx *gorm.DB, formID string) (int64, error) {
	args := m.Called(ctx, tx, formID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockResponseRepository) DeleteByForm(ctx context.Context, tx *gorm.DB, formID string) (int64, error) {
	args := m.Called(ctx, tx, formID)
	return args.Get(0).(int64), args.Error(1)
}

// MockRepository groups the store mocks. Transactions run inline with a nil tx.
type MockRepository struct {
	forms     *MockFormRepository
	responses *MockResponseRepository
}

func NewMockRepository() *MockRepository {
	return &MockRepository{forms: &MockFormRepository{}, responses: &MockResponseRepository{}}
}

func (m *MockRepository) Form() repositories.FormRepository         { return m.forms }
func (m *MockRepository) Response() repositories.ResponseRepository { return m.responses }
func (m *MockRepository) Migrate(ctx context.Context) error         { return nil }

func (m *MockRepository) WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

// memoryCache is an in-process CacheService that records hits.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string]*models.Form
	hits    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string]*models.Form{}}
}

func (c *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	form := *value.(*models.Form)
	c.entries[key] = &form
	return nil
}

func (c *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	form, ok := c.entries[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	c.hits++
	*dest.(*models.Form) = *form
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

func (c *memoryCache) DeletePattern(ctx context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[string]*models.Form{}
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func clozeForm(id string) *models.Form {
	return &models.Form{
		ID:    id,
		Title: "Animals",
		Questions: []models.Question{
			{ID: "q1", Title: "Fill", Body: &models.ClozeBody{Passage: "The [blank] jumps over the [blank] dog"}},
			{ID: "q2", Title: "Sort", Body: &models.CategorizeBody{Categories: []models.Category{
				{Name: "Mammal", Items: []string{"dog", "cat"}},
				{Name: "Bird", Items: []string{"owl"}},
			}}},
		},
	}
}
