package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/form-service/internal/cache"
	"github.com/SAP-F-2025/form-service/internal/config"
	"github.com/SAP-F-2025/form-service/internal/events"
	"github.com/SAP-F-2025/form-service/internal/models"
	"github.com/SAP-F-2025/form-service/internal/repositories"
	"github.com/SAP-F-2025/form-service/internal/validator"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FormServiceOptions struct {
	CacheTTL     time.Duration
	DeletePolicy string // config.DeletePolicyRetain or config.DeletePolicyCascade
}

type formService struct {
	repo           repositories.Repository
	cache          cache.CacheService
	eventPublisher events.EventPublisher
	logger         *slog.Logger
	opLogger       *ServiceLogger
	validator      *validator.Validator
	opts           FormServiceOptions
}

func NewFormService(
	repo repositories.Repository,
	cacheService cache.CacheService,
	eventPublisher events.EventPublisher,
	logger *slog.Logger,
	validator *validator.Validator,
	opts FormServiceOptions,
) FormService {
	if opts.DeletePolicy == "" {
		opts.DeletePolicy = config.DeletePolicyRetain
	}
	return &formService{
		repo:           repo,
		cache:          cacheService,
		eventPublisher: eventPublisher,
		logger:         logger,
		opLogger:       NewServiceLogger(logger, LogConfig{Service: "form-service", Component: "forms"}),
		validator:      validator,
		opts:           opts,
	}
}

// ===== CORE CRUD OPERATIONS =====

func (s *formService) Create(ctx context.Context, req *CreateFormRequest) (form *models.Form, err error) {
	op := s.opLogger.WithOperation(ctx, "create_form")
	defer func() { op.LogResult(formID(form), "form", err) }()

	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	questions := assignQuestionIDs(req.Questions)
	if errs := s.validator.Question().ValidateQuestions(questions); len(errs) > 0 {
		return nil, errs
	}

	form = &models.Form{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		HeaderImage: req.HeaderImage,
		Questions:   questions,
	}

	if err := s.repo.Form().Create(ctx, nil, form); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreFailure, err)
	}

	s.publish(ctx, events.EventFormCreated, formChanged(form))
	return form, nil
}

func (s *formService) GetByID(ctx context.Context, id string) (*models.Form, error) {
	var cached models.Form
	err := s.cache.Get(ctx, cache.FormKey(id), &cached)
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("Form cache read failed", "form_id", id, "error", err)
	}

	form, err := s.repo.Form().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrFormNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreFailure, err)
	}

	if err := s.cache.Set(ctx, cache.FormKey(id), form, s.opts.CacheTTL); err != nil {
		s.logger.Warn("Form cache write failed", "form_id", id, "error", err)
	}
	return form, nil
}

// Update replaces each provided field of the stored form. Concurrent updates
// are not coordinated; the last write wins.
func (s *formService) Update(ctx context.Context, id string, req *UpdateFormRequest) (form *models.Form, err error) {
	op := s.opLogger.WithOperation(ctx, "update_form")
	defer func() { op.LogResult(id, "form", err) }()

	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}
	if req.Title != nil {
		if errs := s.validator.Question().ValidateTitle(*req.Title); len(errs) > 0 {
			return nil, errs
		}
	}

	var questions []models.Question
	if req.Questions != nil {
		questions = assignQuestionIDs(*req.Questions)
		if errs := s.validator.Question().ValidateQuestions(questions); len(errs) > 0 {
			return nil, errs
		}
	}

	form, err = s.repo.Form().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrFormNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreFailure, err)
	}

	if req.Title != nil {
		form.Title = *req.Title
	}
	if req.Description != nil {
		form.Description = *req.Description
	}
	if req.HeaderImage != nil {
		form.HeaderImage = *req.HeaderImage
	}
	if req.Questions != nil {
		form.Questions = questions
	}

	if err := s.repo.Form().Update(ctx, nil, form); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrFormNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreFailure, err)
	}

	s.invalidate(ctx, id)
	s.publish(ctx, events.EventFormUpdated, formChanged(form))
	return form, nil
}

// Delete removes the form. Its responses are kept unless the cascade policy
// is configured.
func (s *formService) Delete(ctx context.Context, id string) (err error) {
	op := s.opLogger.WithOperation(ctx, "delete_form")
	defer func() { op.LogResult(id, "form", err) }()

	var removed int64
	switch s.opts.DeletePolicy {
	case config.DeletePolicyCascade:
		err = s.repo.WithTransaction(ctx, func(tx *gorm.DB) error {
			if err := s.repo.Form().Delete(ctx, tx, id); err != nil {
				return err
			}
			n, err := s.repo.Response().DeleteByForm(ctx, tx, id)
			removed = n
			return err
		})
	default:
		err = s.repo.Form().Delete(ctx, nil, id)
	}
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrFormNotFound
		}
		return fmt.Errorf("%w: %v", ErrStoreFailure, err)
	}

	s.invalidate(ctx, id)
	s.publish(ctx, events.EventFormDeleted, events.FormDeletedEvent{FormID: id, DeletedResponses: removed})
	return nil
}

func (s *formService) List(ctx context.Context, filters repositories.FormFilters) []*models.Form {
	forms, err := s.repo.Form().List(ctx, nil, filters)
	if err != nil {
		s.logger.Error("Failed to list forms", "error", err)
		return []*models.Form{}
	}
	if forms == nil {
		forms = []*models.Form{}
	}
	return forms
}

// ===== HELPERS =====

// assignQuestionIDs copies questions, giving every question without an ID a new one.
func assignQuestionIDs(questions []models.Question) []models.Question {
	out := make([]models.Question, len(questions))
	for i, q := range questions {
		if q.ID == "" {
			q.ID = uuid.NewString()
		}
		out[i] = q
	}
	return out
}

func (s *formService) invalidate(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, cache.FormKey(id)); err != nil {
		s.logger.Warn("Form cache invalidation failed", "form_id", id, "error", err)
	}
}

func (s *formService) publish(ctx context.Context, eventType events.EventType, data interface{}) {
	if err := s.eventPublisher.Publish(ctx, events.NewEvent(eventType, data)); err != nil {
		s.logger.Error("Failed to publish form event", "event_type", eventType, "error", err)
	}
}

func formChanged(form *models.Form) events.FormChangedEvent {
	return events.FormChangedEvent{
		FormID:        form.ID,
		Title:         form.Title,
		QuestionCount: len(form.Questions),
	}
}

func formID(form *models.Form) string {
	if form == nil {
		return ""
	}
	return form.ID
}
