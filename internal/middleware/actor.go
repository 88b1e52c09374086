package middleware

import (
	"globalven/internal/authz"
	"globalven/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
)

// ActorContext lifts the caller identity asserted by the upstream gateway
// into the request context. Authentication itself happens outside this
// service; here we only carry the attribution forward.
func ActorContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := c.GetHeader("X-Actor")
		if actor == "" {
			actor = "system"
		}

		c.Set("actor", actor)
		c.Set(authz.ContextRoleKey, c.GetHeader("X-Role"))

		ctx := contextutil.WithActor(c.Request.Context(), actor)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
