package handler

import (
	"github.com/gin-gonic/gin"

	"school-admissions/backend/internal/dto"
	"school-admissions/backend/internal/service"
	"school-admissions/backend/pkg/response"
)

// BranchHandler branch registry endpoints
type BranchHandler struct {
	branchSvc service.BranchService
}

// NewBranchHandler creates a BranchHandler
func NewBranchHandler(branchSvc service.BranchService) *BranchHandler {
	return &BranchHandler{branchSvc: branchSvc}
}

// ListPublic enabled branches
// GET /api/v1/branches
func (h *BranchHandler) ListPublic(c *gin.Context) {
	h.list(c, false)
}

// ListAll every branch including disabled ones
// GET /api/v1/admin/branches
func (h *BranchHandler) ListAll(c *gin.Context) {
	h.list(c, true)
}

func (h *BranchHandler) list(c *gin.Context, includeDisabled bool) {
	branches, err := h.branchSvc.List(c.Request.Context(), includeDisabled)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, branches)
}

// GetPublic
// GET /api/v1/branches/:id
func (h *BranchHandler) GetPublic(c *gin.Context) {
	h.get(c, false)
}

// GetAny
// GET /api/v1/admin/branches/:id
func (h *BranchHandler) GetAny(c *gin.Context) {
	h.get(c, true)
}

func (h *BranchHandler) get(c *gin.Context, includeDisabled bool) {
	branch, err := h.branchSvc.GetByID(c.Request.Context(), c.Param("id"), includeDisabled)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, branch)
}

// Create
// POST /api/v1/admin/branches
func (h *BranchHandler) Create(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}

	var req dto.CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	branch, err := h.branchSvc.Create(c.Request.Context(), &req, p.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, branch)
}

// Update
// PUT /api/v1/admin/branches/:id
func (h *BranchHandler) Update(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}

	var req dto.UpdateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	branch, err := h.branchSvc.Update(c.Request.Context(), c.Param("id"), &req, p.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, branch)
}

// Delete
// DELETE /api/v1/admin/branches/:id
func (h *BranchHandler) Delete(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}

	if err := h.branchSvc.Delete(c.Request.Context(), c.Param("id"), p.UserID); err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, nil)
}

// SetDefault makes the branch the target of applications
// PUT /api/v1/admin/branches/:id/default
func (h *BranchHandler) SetDefault(c *gin.Context) {
	branch, err := h.branchSvc.SetDefault(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, branch)
}

// GetContact
// GET /api/v1/branches/:id/contact
func (h *BranchHandler) GetContact(c *gin.Context) {
	contact, err := h.branchSvc.GetContact(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, contact)
}

// UpsertContact
// PUT /api/v1/admin/branches/:id/contact
func (h *BranchHandler) UpsertContact(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}

	var req dto.UpsertBranchContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	contact, err := h.branchSvc.UpsertContact(c.Request.Context(), c.Param("id"), &req, p.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, contact)
}
