package authz

import (
	"net/http"

	"globalven/internal/shared/response"

	"github.com/gin-gonic/gin"
)

const ContextRoleKey = "role"

// Authorize gates a route on the capability table. Identity resolution is an
// external collaborator; the upstream proxy asserts the role header.
func Authorize(service Service, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := ParseRole(c.GetString(ContextRoleKey))

		allowed, err := service.Authorize(role, resource, action)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Authorization check failed", nil)
			c.Abort()
			return
		}

		if !allowed {
			response.Error(c, http.StatusForbidden, "FORBIDDEN",
				"You do not have permission to access this resource",
				map[string]string{"required": resource + ":" + action},
			)
			c.Abort()
			return
		}
		c.Next()
	}
}
