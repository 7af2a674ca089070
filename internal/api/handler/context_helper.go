package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"school-admissions/backend/internal/api/middleware"
	"school-admissions/backend/internal/service"
	"school-admissions/backend/pkg/response"
)

// MustGetPrincipal extracts the caller injected by JWTAuth.
// On failure it writes a 401 and returns false; callers return immediately.
func MustGetPrincipal(c *gin.Context) (service.Principal, bool) {
	userID := c.GetString(middleware.CtxUserID)
	role := c.GetString(middleware.CtxRole)
	if userID == "" || role == "" {
		response.Unauthorized(c, 10002, "not authenticated")
		return service.Principal{}, false
	}
	return service.Principal{
		UserID: userID,
		Email:  c.GetString(middleware.CtxEmail),
		Role:   role,
	}, true
}

// tokenMeta id and expiry of the presented access token
func tokenMeta(c *gin.Context) (string, time.Time) {
	return c.GetString(middleware.CtxTokenID), c.GetTime(middleware.CtxExpiresAt)
}
