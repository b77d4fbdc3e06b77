package services

import (
	"context"
	"errors"
	"testing"

	"github.com/SAP-F-2025/form-service/internal/config"
	"github.com/SAP-F-2025/form-service/internal/events"
	"github.com/SAP-F-2025/form-service/internal/models"
	"github.com/SAP-F-2025/form-service/internal/repositories"
	"github.com/SAP-F-2025/form-service/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type formServiceFixture struct {
	repo      *MockRepository
	cache     *memoryCache
	publisher *events.MockEventPublisher
	service   FormService
}

func newFormServiceFixture(policy string) *formServiceFixture {
	logger := testLogger()
	f := &formServiceFixture{
		repo:      NewMockRepository(),
		cache:     newMemoryCache(),
		publisher: events.NewMockEventPublisher(logger),
	}
	f.service = NewFormService(f.repo, f.cache, f.publisher, logger, validator.New(), FormServiceOptions{DeletePolicy: policy})
	return f
}

func TestFormService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns missing question IDs and keeps order", func(t *testing.T) {
		f := newFormServiceFixture("")
		f.repo.forms.On("Create", ctx, (*gorm.DB)(nil), mock.AnythingOfType("*models.Form")).Return(nil)

		cloze, _ := models.NewQuestion(models.Cloze)
		cloze.ID = ""
		cloze.Title = "Fill"
		comp, _ := models.NewQuestion(models.Comprehension)
		comp.ID = "keep-me"
		comp.Title = "Read"

		form, err := f.service.Create(ctx, &CreateFormRequest{Title: "Quiz", Questions: []models.Question{cloze, comp}})
		require.NoError(t, err)
		require.Len(t, form.Questions, 2)
		assert.NotEmpty(t, form.ID)
		assert.NotEmpty(t, form.Questions[0].ID)
		assert.Equal(t, "keep-me", form.Questions[1].ID)
		assert.Equal(t, models.Comprehension, form.Questions[1].Type())

		published := f.publisher.GetPublishedEvents()
		require.Len(t, published, 1)
		assert.Equal(t, events.EventFormCreated, published[0].Type)
		assert.Equal(t, 2, published[0].Data.(events.FormChangedEvent).QuestionCount)
	})

	t.Run("blank title is rejected before any write", func(t *testing.T) {
		for _, title := range []string{"", "   "} {
			f := newFormServiceFixture("")
			_, err := f.service.Create(ctx, &CreateFormRequest{Title: title})
			assert.True(t, IsValidation(err), "title %q", title)
			f.repo.forms.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
		}
	})

	t.Run("duplicate question IDs", func(t *testing.T) {
		f := newFormServiceFixture("")
		q := models.Question{ID: "same", Title: "Fill", Body: &models.ClozeBody{}}
		_, err := f.service.Create(ctx, &CreateFormRequest{Title: "Quiz", Questions: []models.Question{q, q}})
		assert.True(t, IsValidation(err))
	})

	t.Run("store failure", func(t *testing.T) {
		f := newFormServiceFixture("")
		f.repo.forms.On("Create", ctx, (*gorm.DB)(nil), mock.Anything).Return(errors.New("connection refused"))
		_, err := f.service.Create(ctx, &CreateFormRequest{Title: "Quiz"})
		assert.ErrorIs(t, err, ErrStoreFailure)
		assert.Empty(t, f.publisher.GetPublishedEvents())
	})
}

func TestFormService_GetByID_ReadThroughCache(t *testing.T) {
	ctx := context.Background()
	f := newFormServiceFixture("")
	f.repo.forms.On("GetByID", ctx, (*gorm.DB)(nil), "f1").Return(clozeForm("f1"), nil).Once()

	first, err := f.service.GetByID(ctx, "f1")
	require.NoError(t, err)
	second, err := f.service.GetByID(ctx, "f1")
	require.NoError(t, err)

	assert.Equal(t, first.Title, second.Title)
	assert.Equal(t, 1, f.cache.hits)
	f.repo.forms.AssertNumberOfCalls(t, "GetByID", 1)
}

func TestFormService_GetByID_NotFound(t *testing.T) {
	ctx := context.Background()
	f := newFormServiceFixture("")
	f.repo.forms.On("GetByID", ctx, (*gorm.DB)(nil), "missing").Return(nil, gorm.ErrRecordNotFound)

	_, err := f.service.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrFormNotFound)
	assert.True(t, IsNotFound(err))
}

func TestFormService_Update(t *testing.T) {
	ctx := context.Background()
	str := func(s string) *string { return &s }

	t.Run("replaces only provided fields and invalidates cache", func(t *testing.T) {
		f := newFormServiceFixture("")
		stored := clozeForm("f1")
		stored.Description = "old"
		f.repo.forms.On("GetByID", ctx, (*gorm.DB)(nil), "f1").Return(stored, nil)
		f.repo.forms.On("Update", ctx, (*gorm.DB)(nil), mock.AnythingOfType("*models.Form")).Return(nil)

		_, err := f.service.GetByID(ctx, "f1")
		require.NoError(t, err)

		empty := []models.Question{}
		form, err := f.service.Update(ctx, "f1", &UpdateFormRequest{Title: str("Renamed"), Questions: &empty})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", form.Title)
		assert.Equal(t, "old", form.Description)
		assert.Empty(t, form.Questions)

		assert.Empty(t, f.cache.entries)
		published := f.publisher.GetPublishedEvents()
		require.Len(t, published, 1)
		assert.Equal(t, events.EventFormUpdated, published[0].Type)
	})

	t.Run("provided blank title", func(t *testing.T) {
		f := newFormServiceFixture("")
		_, err := f.service.Update(ctx, "f1", &UpdateFormRequest{Title: str(" ")})
		assert.True(t, IsValidation(err))
		f.repo.forms.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown form", func(t *testing.T) {
		f := newFormServiceFixture("")
		f.repo.forms.On("GetByID", ctx, (*gorm.DB)(nil), "missing").Return(nil, gorm.ErrRecordNotFound)
		_, err := f.service.Update(ctx, "missing", &UpdateFormRequest{Description: str("x")})
		assert.ErrorIs(t, err, ErrFormNotFound)
	})
}

func TestFormService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("retain policy leaves responses", func(t *testing.T) {
		f := newFormServiceFixture(config.DeletePolicyRetain)
		f.repo.forms.On("Delete", ctx, (*gorm.DB)(nil), "f1").Return(nil)

		require.NoError(t, f.service.Delete(ctx, "f1"))
		f.repo.responses.AssertNotCalled(t, "DeleteByForm", mock.Anything, mock.Anything, mock.Anything)

		published := f.publisher.GetPublishedEvents()
		require.Len(t, published, 1)
		assert.Equal(t, events.FormDeletedEvent{FormID: "f1"}, published[0].Data)
	})

	t.Run("cascade policy removes responses", func(t *testing.T) {
		f := newFormServiceFixture(config.DeletePolicyCascade)
		f.repo.forms.On("Delete", ctx, (*gorm.DB)(nil), "f1").Return(nil)
		f.repo.responses.On("DeleteByForm", ctx, (*gorm.DB)(nil), "f1").Return(int64(3), nil)

		require.NoError(t, f.service.Delete(ctx, "f1"))
		assert.Equal(t, int64(3), f.publisher.GetPublishedEvents()[0].Data.(events.FormDeletedEvent).DeletedResponses)
	})

	t.Run("unknown form", func(t *testing.T) {
		f := newFormServiceFixture(config.DeletePolicyCascade)
		f.repo.forms.On("Delete", ctx, (*gorm.DB)(nil), "missing").Return(gorm.ErrRecordNotFound)

		assert.ErrorIs(t, f.service.Delete(ctx, "missing"), ErrFormNotFound)
		f.repo.responses.AssertNotCalled(t, "DeleteByForm", mock.Anything, mock.Anything, mock.Anything)
		assert.Empty(t, f.publisher.GetPublishedEvents())
	})
}

func TestFormService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("passes filters through", func(t *testing.T) {
		f := newFormServiceFixture("")
		filters := repositories.FormFilters{Search: "anim"}
		f.repo.forms.On("List", ctx, (*gorm.DB)(nil), filters).Return([]*models.Form{clozeForm("f1")}, nil)

		assert.Len(t, f.service.List(ctx, filters), 1)
	})

	t.Run("store failure degrades to empty", func(t *testing.T) {
		f := newFormServiceFixture("")
		f.repo.forms.On("List", ctx, (*gorm.DB)(nil), mock.Anything).Return(nil, errors.New("timeout"))

		forms := f.service.List(ctx, repositories.FormFilters{})
		assert.NotNil(t, forms)
		assert.Empty(t, forms)
	})
}
