package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/form-service/internal/codec"
	"github.com/SAP-F-2025/form-service/internal/events"
	"github.com/SAP-F-2025/form-service/internal/models"
	"github.com/SAP-F-2025/form-service/internal/repositories"
	"github.com/SAP-F-2025/form-service/internal/validator"
)

type responseService struct {
	repo           repositories.Repository
	forms          FormService
	eventPublisher events.EventPublisher
	logger         *slog.Logger
	opLogger       *ServiceLogger
	validator      *validator.Validator
}

func NewResponseService(
	repo repositories.Repository,
	forms FormService,
	eventPublisher events.EventPublisher,
	logger *slog.Logger,
	validator *validator.Validator,
) ResponseService {
	return &responseService{
		repo:           repo,
		forms:          forms,
		eventPublisher: eventPublisher,
		logger:         logger,
		opLogger:       NewServiceLogger(logger, LogConfig{Service: "form-service", Component: "responses"}),
		validator:      validator,
	}
}

// Submit stores one submission. Every entry must reference a question of the
// form and carry an answer of that question's shape; unanswered questions may
// be left out.
func (s *responseService) Submit(ctx context.Context, formID string, req *SubmitResponseRequest) (resp *models.Response, err error) {
	op := s.opLogger.WithOperation(ctx, "submit_response")
	defer func() { op.LogResult(formID, "response", err) }()

	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	form, err := s.forms.GetByID(ctx, formID)
	if err != nil {
		return nil, err
	}

	entries := append([]models.AnswerEntry(nil), req.Responses...)
	if errs := s.validator.Response().ValidateSubmission(form, entries); len(errs) > 0 {
		return nil, errs
	}

	resp = &models.Response{FormID: form.ID, Responses: entries}
	if err := s.repo.Response().Create(ctx, nil, resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreFailure, err)
	}

	event := events.NewEvent(events.EventResponseSubmitted, events.ResponseSubmittedEvent{
		ResponseID:  resp.ID,
		FormID:      resp.FormID,
		AnswerCount: len(resp.Responses),
		SubmittedAt: resp.SubmittedAt,
	})
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish response event", "response_id", resp.ID, "error", err)
	}

	return resp, nil
}

// ListByForm returns the stored responses of a form, optionally limited to a
// submission window. The form itself is not required to exist.
func (s *responseService) ListByForm(ctx context.Context, formID string, filters repositories.ResponseFilters) ([]*models.Response, error) {
	responses, err := s.repo.Response().ListByForm(ctx, nil, formID, filters)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreFailure, err)
	}
	if responses == nil {
		responses = []*models.Response{}
	}
	return responses, nil
}

// Review renders every response of a form against the form's current
// questions. Answers whose question is gone are reported, never fatal.
func (s *responseService) Review(ctx context.Context, formID string) (*FormReview, error) {
	form, err := s.forms.GetByID(ctx, formID)
	if err != nil {
		return nil, err
	}

	responses, err := s.ListByForm(ctx, formID, repositories.ResponseFilters{})
	if err != nil {
		return nil, err
	}

	reviewed := codec.ReviewAll(form, responses)
	for _, r := range reviewed {
		for _, orphan := range r.Orphans {
			s.logger.Warn("Skipping orphaned answer",
				"form_id", formID,
				"response_id", r.ResponseID,
				"question_id", orphan.QuestionID,
				"reason", orphan.Reason)
		}
	}

	return &FormReview{Form: form, Responses: reviewed}, nil
}
