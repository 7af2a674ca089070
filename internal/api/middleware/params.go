package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"school-admissions/backend/pkg/response"
)

// UUIDParams rejects requests whose named path params are present but not
// UUIDs, before they reach a uuid column
func UUIDParams(names ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, name := range names {
			v := c.Param(name)
			if v == "" {
				continue
			}
			if _, err := uuid.Parse(v); err != nil {
				response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "invalid request parameters", name+": uuid")
				c.Abort()
				return
			}
		}
		c.Next()
	}
}
