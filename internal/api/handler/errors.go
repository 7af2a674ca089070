package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apperrors "school-admissions/backend/pkg/errors"
	"school-admissions/backend/pkg/response"
)

// respondError maps a service error onto the response envelope. Business
// errors keep their code and details; anything else is recorded on the
// context for the access log and answered with a generic 500.
func respondError(c *gin.Context, err error) {
	if e, ok := apperrors.As(err); ok && e.Kind != apperrors.KindUnexpected {
		response.ErrorWithDetails(c, e.Kind.HTTPStatus(), e.Code, e.Message, e.Details)
		return
	}
	_ = c.Error(err)
	response.InternalError(c)
}

// respondBindError answers a failed bind with 400, or 413 when the body
// exceeded the configured limit
func respondBindError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		response.Error(c, http.StatusRequestEntityTooLarge, 10005, "request body too large")
		return
	}

	details := err.Error()
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		parts := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			parts = append(parts, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
		}
		details = strings.Join(parts, "; ")
	}
	response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "invalid request parameters", details)
}
