package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/SAP-F-2025/form-service/internal/codec"
	"github.com/SAP-F-2025/form-service/internal/events"
	"github.com/SAP-F-2025/form-service/internal/models"
	"github.com/SAP-F-2025/form-service/internal/repositories"
	"github.com/SAP-F-2025/form-service/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type responseServiceFixture struct {
	repo      *MockRepository
	publisher *events.MockEventPublisher
	service   ResponseService
}

func newResponseServiceFixture() *responseServiceFixture {
	logger := testLogger()
	f := &responseServiceFixture{
		repo:      NewMockRepository(),
		publisher: events.NewMockEventPublisher(logger),
	}
	v := validator.New()
	forms := NewFormService(f.repo, newMemoryCache(), f.publisher, logger, v, FormServiceOptions{})
	f.service = NewResponseService(f.repo, forms, f.publisher, logger, v)
	return f
}

func decodeSubmission(t *testing.T, body string) *SubmitResponseRequest {
	t.Helper()
	var req SubmitResponseRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	return &req
}

func TestResponseService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("stores typed answers and publishes", func(t *testing.T) {
		f := newResponseServiceFixture()
		f.repo.forms.On("GetByID", ctx, (*gorm.DB)(nil), "f1").Return(clozeForm("f1"), nil)
		f.repo.responses.On("Create", ctx, (*gorm.DB)(nil), mock.AnythingOfType("*models.Response")).
			Run(func(args mock.Arguments) {
				r := args.Get(2).(*models.Response)
				r.ID = "r1"
				r.SubmittedAt = time.Now()
			}).Return(nil)

		req := decodeSubmission(t, `{"responses":[
			{"questionId":"q1","answer":["fox"]},
			{"questionId":"q2","type":"categorize","answer":{"Mammal":["dog"],"Bird":[]}}
		]}`)
		resp, err := f.service.Submit(ctx, "f1", req)
		require.NoError(t, err)
		assert.Equal(t, "f1", resp.FormID)
		require.Len(t, resp.Responses, 2)
		assert.Equal(t, models.Cloze, resp.Responses[0].Type)
		assert.Equal(t, models.ClozeAnswer{"fox"}, resp.Responses[0].Answer)

		published := f.publisher.GetPublishedEvents()
		require.Len(t, published, 1)
		assert.Equal(t, events.EventResponseSubmitted, published[0].Type)
		assert.Equal(t, "r1", published[0].Data.(events.ResponseSubmittedEvent).ResponseID)
	})

	t.Run("unknown form", func(t *testing.T) {
		f := newResponseServiceFixture()
		f.repo.forms.On("GetByID", ctx, (*gorm.DB)(nil), "ghost").Return(nil, gorm.ErrRecordNotFound)

		_, err := f.service.Submit(ctx, "ghost", &SubmitResponseRequest{})
		assert.ErrorIs(t, err, ErrFormNotFound)
		f.repo.responses.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects answers that do not fit the form", func(t *testing.T) {
		tests := map[string]string{
			"unknown question": `{"responses":[{"questionId":"nope","answer":["x"]}]}`,
			"wrong shape":      `{"responses":[{"questionId":"q1","answer":{"a":["b"]}}]}`,
			"unknown category": `{"responses":[{"questionId":"q2","answer":{"Fish":["dog"]}}]}`,
			"item twice":       `{"responses":[{"questionId":"q2","answer":{"Mammal":["dog"],"Bird":["dog"]}}]}`,
			"too many blanks":  `{"responses":[{"questionId":"q1","answer":["a","b","c"]}]}`,
			"missing question": `{"responses":[{"answer":["a"]}]}`,
		}
		for name, body := range tests {
			t.Run(name, func(t *testing.T) {
				f := newResponseServiceFixture()
				f.repo.forms.On("GetByID", ctx, (*gorm.DB)(nil), "f1").Return(clozeForm("f1"), nil)

				_, err := f.service.Submit(ctx, "f1", decodeSubmission(t, body))
				assert.True(t, IsValidation(err), "got %v", err)
				f.repo.responses.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("empty submission is accepted", func(t *testing.T) {
		f := newResponseServiceFixture()
		f.repo.forms.On("GetByID", ctx, (*gorm.DB)(nil), "f1").Return(clozeForm("f1"), nil)
		f.repo.responses.On("Create", ctx, (*gorm.DB)(nil), mock.Anything).Return(nil)

		_, err := f.service.Submit(ctx, "f1", &SubmitResponseRequest{})
		assert.NoError(t, err)
	})
}

func TestResponseService_ListByForm(t *testing.T) {
	ctx := context.Background()

	f := newResponseServiceFixture()
	f.repo.responses.On("ListByForm", ctx, (*gorm.DB)(nil), "f1", repositories.ResponseFilters{}).Return(nil, nil)
	f.repo.responses.On("ListByForm", ctx, (*gorm.DB)(nil), "broken", repositories.ResponseFilters{}).Return(nil, errors.New("disk full"))

	list, err := f.service.ListByForm(ctx, "f1", repositories.ResponseFilters{})
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	_, err = f.service.ListByForm(ctx, "broken", repositories.ResponseFilters{})
	assert.ErrorIs(t, err, ErrStoreFailure)
}

func TestResponseService_Review(t *testing.T) {
	ctx := context.Background()

	f := newResponseServiceFixture()
	f.repo.forms.On("GetByID", ctx, (*gorm.DB)(nil), "f1").Return(clozeForm("f1"), nil)
	f.repo.responses.On("ListByForm", ctx, (*gorm.DB)(nil), "f1", repositories.ResponseFilters{}).Return([]*models.Response{
		{ID: "r1", FormID: "f1", Responses: []models.AnswerEntry{
			{QuestionID: "q1", Type: models.Cloze, Answer: models.ClozeAnswer{"fox"}},
			{QuestionID: "removed", Type: models.Cloze, Answer: models.ClozeAnswer{"gone"}},
		}},
	}, nil)

	review, err := f.service.Review(ctx, "f1")
	require.NoError(t, err)
	require.Len(t, review.Responses, 1)

	r := review.Responses[0]
	require.Len(t, r.Answers, 2)
	assert.Equal(t, "The fox jumps over the ___ dog", r.Answers[0].Cloze.Text)
	assert.Equal(t, codec.NotAnswered, r.Answers[1].Text())
	require.Len(t, r.Orphans, 1)
	assert.Equal(t, "removed", r.Orphans[0].QuestionID)
}
