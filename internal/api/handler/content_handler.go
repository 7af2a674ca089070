package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"school-admissions/backend/internal/dto"
	"school-admissions/backend/internal/service"
	"school-admissions/backend/pkg/response"
)

// recordManager operations shared by the branch-scoped content services
type recordManager[Req, Resp any] interface {
	List(ctx context.Context, branchID string, publicOnly bool) ([]Resp, error)
	Create(ctx context.Context, branchID string, req *Req, callerID string) (*Resp, error)
	Update(ctx context.Context, branchID, id string, req *Req, callerID string) (*Resp, error)
	Delete(ctx context.Context, branchID, id, callerID string) error
}

type itemGetter[Resp any] func(ctx context.Context, branchID, id string, publicOnly bool) (*Resp, error)

// ignoreVisibility adapts a getter that always returns hidden records
func ignoreVisibility[Resp any](get func(ctx context.Context, branchID, id string) (*Resp, error)) itemGetter[Resp] {
	return func(ctx context.Context, branchID, id string, _ bool) (*Resp, error) {
		return get(ctx, branchID, id)
	}
}

// ContentHandler CRUD for one kind of branch content (news, academics,
// carousel, gallery, careers). Routes carry the branch as :id and the
// record as :itemId.
type ContentHandler[Req, Resp any] struct {
	svc recordManager[Req, Resp]
	get itemGetter[Resp]
}

// NewContentHandler creates a ContentHandler
func NewContentHandler[Req, Resp any](svc recordManager[Req, Resp], get itemGetter[Resp]) *ContentHandler[Req, Resp] {
	return &ContentHandler[Req, Resp]{svc: svc, get: get}
}

// ListPublic published or active records of an enabled branch
// GET /api/v1/branches/:id/<content>
func (h *ContentHandler[Req, Resp]) ListPublic(c *gin.Context) {
	h.list(c, true)
}

// ListAll
// GET /api/v1/admin/branches/:id/<content>
func (h *ContentHandler[Req, Resp]) ListAll(c *gin.Context) {
	h.list(c, false)
}

func (h *ContentHandler[Req, Resp]) list(c *gin.Context, publicOnly bool) {
	items, err := h.svc.List(c.Request.Context(), c.Param("id"), publicOnly)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, items)
}

// GetPublic
// GET /api/v1/branches/:id/news/:itemId
func (h *ContentHandler[Req, Resp]) GetPublic(c *gin.Context) {
	h.getItem(c, true)
}

// Get
// GET /api/v1/admin/branches/:id/<content>/:itemId
func (h *ContentHandler[Req, Resp]) Get(c *gin.Context) {
	h.getItem(c, false)
}

func (h *ContentHandler[Req, Resp]) getItem(c *gin.Context, publicOnly bool) {
	item, err := h.get(c.Request.Context(), c.Param("id"), c.Param("itemId"), publicOnly)
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, item)
}

// Create
// POST /api/v1/admin/branches/:id/<content>
func (h *ContentHandler[Req, Resp]) Create(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}

	var req Req
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	item, err := h.svc.Create(c.Request.Context(), c.Param("id"), &req, p.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, item)
}

// Update replaces the record
// PUT /api/v1/admin/branches/:id/<content>/:itemId
func (h *ContentHandler[Req, Resp]) Update(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}

	var req Req
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	item, err := h.svc.Update(c.Request.Context(), c.Param("id"), c.Param("itemId"), &req, p.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, item)
}

// Delete
// DELETE /api/v1/admin/branches/:id/<content>/:itemId
func (h *ContentHandler[Req, Resp]) Delete(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), c.Param("itemId"), p.UserID); err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, nil)
}

// AboutHandler branch about page
type AboutHandler struct {
	aboutSvc service.AboutService
}

// NewAboutHandler creates an AboutHandler
func NewAboutHandler(aboutSvc service.AboutService) *AboutHandler {
	return &AboutHandler{aboutSvc: aboutSvc}
}

// Get
// GET /api/v1/branches/:id/about
func (h *AboutHandler) Get(c *gin.Context) {
	about, err := h.aboutSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, about)
}

// Replace writes the whole page, facilities and timeline included
// PUT /api/v1/admin/branches/:id/about
func (h *AboutHandler) Replace(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}

	var req dto.ReplaceAboutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	about, err := h.aboutSvc.Replace(c.Request.Context(), c.Param("id"), &req, p.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, about)
}
