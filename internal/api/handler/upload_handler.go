package handler

import (
	"github.com/gin-gonic/gin"

	"school-admissions/backend/internal/service"
	"school-admissions/backend/pkg/response"
)

// uploadForm multipart fields besides the file itself
type uploadForm struct {
	Folder string `form:"folder" binding:"omitempty,max=50,alphanum"`
}

// UploadHandler file uploads for documents and content images
type UploadHandler struct {
	uploadSvc service.UploadService
}

// NewUploadHandler creates an UploadHandler
func NewUploadHandler(uploadSvc service.UploadService) *UploadHandler {
	return &UploadHandler{uploadSvc: uploadSvc}
}

// Upload stores the multipart "file" part under the optional "folder"
// POST /api/v1/uploads
func (h *UploadHandler) Upload(c *gin.Context) {
	if _, ok := MustGetPrincipal(c); !ok {
		return
	}

	var form uploadForm
	if err := c.ShouldBind(&form); err != nil {
		respondBindError(c, err)
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		respondBindError(c, err)
		return
	}
	f, err := fh.Open()
	if err != nil {
		respondBindError(c, err)
		return
	}
	defer f.Close()

	result, err := h.uploadSvc.Upload(c.Request.Context(), form.Folder, f)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, result)
}
