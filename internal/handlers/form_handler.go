package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/form-service/internal/repositories"
	"github.com/SAP-F-2025/form-service/internal/services"
	"github.com/SAP-F-2025/form-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type FormHandler struct {
	BaseHandler
	formService services.FormService
}

func NewFormHandler(formService services.FormService, logger utils.Logger) *FormHandler {
	return &FormHandler{
		BaseHandler: NewBaseHandler(logger),
		formService: formService,
	}
}

// ListForms returns every form, optionally filtered by ?search= and a
// creation window (?date_from=, ?date_to=)
// @Router /forms [get]
func (h *FormHandler) ListForms(c *gin.Context) {
	from, ok := ParseTimeQuery(c, "date_from", false)
	if !ok {
		return
	}
	to, ok := ParseTimeQuery(c, "date_to", true)
	if !ok {
		return
	}

	filters := repositories.FormFilters{
		Search:    c.Query("search"),
		DateFrom:  from,
		DateTo:    to,
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	forms := h.formService.List(c.Request.Context(), filters)
	c.JSON(http.StatusOK, forms)
}

// GetForm retrieves a form with its questions
// @Router /forms/{id} [get]
func (h *FormHandler) GetForm(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	form, err := h.formService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, form)
}

// CreateForm creates a form from a title and an optional list of questions
// @Router /forms [post]
func (h *FormHandler) CreateForm(c *gin.Context) {
	var req services.CreateFormRequest
	if !h.bindJSON(c, &req) {
		return
	}

	h.LogRequest(c, "Creating form", "title", req.Title, "questions", len(req.Questions))

	form, err := h.formService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, form)
}

// UpdateForm replaces the provided fields of a form
// @Router /forms/{id} [put]
func (h *FormHandler) UpdateForm(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	var req services.UpdateFormRequest
	if !h.bindJSON(c, &req) {
		return
	}

	form, err := h.formService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, form)
}

// DeleteForm removes a form
// @Router /forms/{id} [delete]
func (h *FormHandler) DeleteForm(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	h.LogRequest(c, "Deleting form", "form_id", id)

	if err := h.formService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Form deleted successfully"})
}
