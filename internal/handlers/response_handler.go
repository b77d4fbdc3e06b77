package handlers

import (
	"fmt"
	"net/http"

	"github.com/SAP-F-2025/form-service/internal/repositories"
	"github.com/SAP-F-2025/form-service/internal/services"
	"github.com/SAP-F-2025/form-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type ResponseHandler struct {
	BaseHandler
	responseService services.ResponseService
	exportService   services.ExportService
}

func NewResponseHandler(responseService services.ResponseService, exportService services.ExportService, logger utils.Logger) *ResponseHandler {
	return &ResponseHandler{
		BaseHandler:     NewBaseHandler(logger),
		responseService: responseService,
		exportService:   exportService,
	}
}

// SubmitResponse stores a filled-in form
// @Router /responses/{formId} [post]
func (h *ResponseHandler) SubmitResponse(c *gin.Context) {
	formID := ParseStringIDParam(c, "formId")
	if formID == "" {
		return
	}

	var req services.SubmitResponseRequest
	if !h.bindJSON(c, &req) {
		return
	}

	h.LogRequest(c, "Submitting response", "form_id", formID, "answers", len(req.Responses))

	resp, err := h.responseService.Submit(c.Request.Context(), formID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// ListResponses returns the stored responses of a form, optionally within a
// submission window (?submitted_from=, ?submitted_to=)
// @Router /responses/{formId} [get]
func (h *ResponseHandler) ListResponses(c *gin.Context) {
	formID := ParseStringIDParam(c, "formId")
	if formID == "" {
		return
	}

	from, ok := ParseTimeQuery(c, "submitted_from", false)
	if !ok {
		return
	}
	to, ok := ParseTimeQuery(c, "submitted_to", true)
	if !ok {
		return
	}

	filters := repositories.ResponseFilters{SubmittedFrom: from, SubmittedTo: to}
	responses, err := h.responseService.ListByForm(c.Request.Context(), formID, filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, responses)
}

// ReviewResponses renders every response against the form's questions
// @Router /responses/{formId}/review [get]
func (h *ResponseHandler) ReviewResponses(c *gin.Context) {
	formID := ParseStringIDParam(c, "formId")
	if formID == "" {
		return
	}

	review, err := h.responseService.Review(c.Request.Context(), formID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, review)
}

// ExportResponses downloads the review as a workbook
// @Router /responses/{formId}/export [get]
func (h *ResponseHandler) ExportResponses(c *gin.Context) {
	formID := ParseStringIDParam(c, "formId")
	if formID == "" {
		return
	}

	file, err := h.exportService.ExportResponses(c.Request.Context(), formID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
