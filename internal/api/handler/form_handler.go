package handler

import (
	"github.com/gin-gonic/gin"

	"school-admissions/backend/internal/dto"
	"school-admissions/backend/internal/service"
	"school-admissions/backend/pkg/response"
)

// FormHandler admission form definition endpoints
type FormHandler struct {
	fieldSvc service.FormFieldService
}

// NewFormHandler creates a FormHandler
func NewFormHandler(fieldSvc service.FormFieldService) *FormHandler {
	return &FormHandler{fieldSvc: fieldSvc}
}

// Definition visible fields grouped by section, for rendering the form
// GET /api/v1/form/fields
func (h *FormHandler) Definition(c *gin.Context) {
	def, err := h.fieldSvc.PublicDefinition(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, def)
}

// List every field including hidden ones
// GET /api/v1/admin/form/fields
func (h *FormHandler) List(c *gin.Context) {
	fields, err := h.fieldSvc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, fields)
}

// Create
// POST /api/v1/admin/form/fields
func (h *FormHandler) Create(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}

	var req dto.CreateFormFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	field, err := h.fieldSvc.Create(c.Request.Context(), &req, p.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, field)
}

// Update
// PUT /api/v1/admin/form/fields/:id
func (h *FormHandler) Update(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}

	var req dto.UpdateFormFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	field, err := h.fieldSvc.Update(c.Request.Context(), c.Param("id"), &req, p.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, field)
}

// Delete removes the definition; stored applications keep their values
// DELETE /api/v1/admin/form/fields/:id
func (h *FormHandler) Delete(c *gin.Context) {
	if err := h.fieldSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, nil)
}

// Reorder
// PUT /api/v1/admin/form/fields/order
func (h *FormHandler) Reorder(c *gin.Context) {
	var req dto.ReorderFormFieldsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	fields, err := h.fieldSvc.Reorder(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, fields)
}
