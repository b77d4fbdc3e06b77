package services

import (
	"context"
	"mime/multipart"

	"github.com/SAP-F-2025/form-service/internal/codec"
	"github.com/SAP-F-2025/form-service/internal/models"
	"github.com/SAP-F-2025/form-service/internal/repositories"
)

// ===== SERVICE INTERFACES =====

type FormService interface {
	Create(ctx context.Context, req *CreateFormRequest) (*models.Form, error)
	GetByID(ctx context.Context, id string) (*models.Form, error)
	Update(ctx context.Context, id string, req *UpdateFormRequest) (*models.Form, error)
	Delete(ctx context.Context, id string) error
	// List never fails; a store error yields an empty list
	List(ctx context.Context, filters repositories.FormFilters) []*models.Form
}

type ResponseService interface {
	Submit(ctx context.Context, formID string, req *SubmitResponseRequest) (*models.Response, error)
	ListByForm(ctx context.Context, formID string, filters repositories.ResponseFilters) ([]*models.Response, error)
	Review(ctx context.Context, formID string) (*FormReview, error)
}

type ExportService interface {
	ExportResponses(ctx context.Context, formID string) (*ExportFile, error)
}

type UploadService interface {
	Upload(ctx context.Context, file *multipart.FileHeader) (*UploadResult, error)
}

// ===== REQUEST STRUCTURES =====

type CreateFormRequest struct {
	Title       string            `json:"title" validate:"required,notblank,max=200"`
	Description string            `json:"description"`
	HeaderImage string            `json:"headerImage" validate:"max=500"`
	Questions   []models.Question `json:"questions"`
}

// UpdateFormRequest replaces every provided field wholesale. Nil means absent.
type UpdateFormRequest struct {
	Title       *string            `json:"title" validate:"omitempty,max=200"`
	Description *string            `json:"description"`
	HeaderImage *string            `json:"headerImage" validate:"omitempty,max=500"`
	Questions   *[]models.Question `json:"questions"`
}

type SubmitResponseRequest struct {
	Responses []models.AnswerEntry `json:"responses" validate:"dive"`
}

// ===== RESULT STRUCTURES =====

type FormReview struct {
	Form      *models.Form             `json:"form"`
	Responses []codec.ReviewedResponse `json:"responses"`
}

type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

type UploadResult struct {
	File string `json:"file"`
}
