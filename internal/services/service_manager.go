package services

import (
	"log/slog"

	"github.com/SAP-F-2025/form-service/internal/cache"
	"github.com/SAP-F-2025/form-service/internal/events"
	"github.com/SAP-F-2025/form-service/internal/repositories"
	"github.com/SAP-F-2025/form-service/internal/storage"
	"github.com/SAP-F-2025/form-service/internal/validator"
)

type ServiceManager interface {
	Form() FormService
	Response() ResponseService
	Export() ExportService
	Upload() UploadService
}

type ServiceDeps struct {
	Repo           repositories.Repository
	Cache          cache.CacheService
	EventPublisher events.EventPublisher
	Store          storage.BlobStore
	Validator      *validator.Validator
	Logger         *slog.Logger
	Forms          FormServiceOptions
	UploadURL      string
	UploadMaxBytes int64
}

type serviceManager struct {
	form     FormService
	response ResponseService
	export   ExportService
	upload   UploadService
}

func NewServiceManager(deps ServiceDeps) ServiceManager {
	if deps.Cache == nil {
		deps.Cache = cache.NewNoopCache()
	}

	form := NewFormService(deps.Repo, deps.Cache, deps.EventPublisher, deps.Logger, deps.Validator, deps.Forms)
	response := NewResponseService(deps.Repo, form, deps.EventPublisher, deps.Logger, deps.Validator)

	return &serviceManager{
		form:     form,
		response: response,
		export:   NewExportService(response, deps.Logger),
		upload:   NewUploadService(deps.Store, deps.UploadURL, deps.UploadMaxBytes, deps.Logger),
	}
}

func (m *serviceManager) Form() FormService         { return m.form }
func (m *serviceManager) Response() ResponseService { return m.response }
func (m *serviceManager) Export() ExportService     { return m.export }
func (m *serviceManager) Upload() UploadService     { return m.upload }
