package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"school-admissions/backend/internal/dto"
	"school-admissions/backend/internal/service"
	"school-admissions/backend/pkg/response"
)

// ApplicationHandler admission workflow endpoints
type ApplicationHandler struct {
	appSvc service.ApplicationService
}

// NewApplicationHandler creates an ApplicationHandler
func NewApplicationHandler(appSvc service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{appSvc: appSvc}
}

// Submit accepts a flat JSON object keyed by form field names. The body is
// decoded without a struct because the field set is defined at runtime.
// POST /api/v1/applications
func (h *ApplicationHandler) Submit(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}

	payload, err := decodePayload(c.Request.Body)
	if err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.appSvc.Submit(c.Request.Context(), p, payload)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, result)
}

var errPayloadNotObject = errors.New("application payload must be a JSON object")

func decodePayload(body io.Reader) (map[string]interface{}, error) {
	if body == nil || body == http.NoBody {
		return nil, errPayloadNotObject
	}
	dec := json.NewDecoder(body)
	dec.UseNumber()

	var payload map[string]interface{}
	if err := dec.Decode(&payload); err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, errPayloadNotObject
	}
	return payload, nil
}

// Status the caller's application, or any applicant's for admins
// GET /api/v1/applications/status?email=
func (h *ApplicationHandler) Status(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}

	var req dto.ApplicationStatusRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}

	status, err := h.appSvc.GetStatus(c.Request.Context(), p, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, status)
}

// List
// GET /api/v1/admin/applications
func (h *ApplicationHandler) List(c *gin.Context) {
	var req dto.ApplicationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}

	list, total, err := h.appSvc.List(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// UpdateStatus
// PUT /api/v1/admin/applications/status
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.appSvc.UpdateStatus(c.Request.Context(), p, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.OK(c, result)
}

// Delete
// DELETE /api/v1/admin/applications/:id
func (h *ApplicationHandler) Delete(c *gin.Context) {
	if err := h.appSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, nil)
}

// MigrateApproved runs the approved-without-student sweep on demand
// POST /api/v1/admin/applications/migrate-approved
func (h *ApplicationHandler) MigrateApproved(c *gin.Context) {
	report, err := h.appSvc.MigrateApproved(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	response.OK(c, report)
}
