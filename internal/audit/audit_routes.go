package audit

import (
	"globalven/internal/authz"
	"globalven/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	authzService authz.Service,
	logger *zap.Logger,
) {
	audit := r.Group("/audit")
	audit.Use(middleware.ContextLogger(logger))
	{
		audit.GET("/transfers/:transferId",
			middleware.RateLimitByActor(3, 10),
			authz.Authorize(authzService, "audit", "read"),
			handler.GetByTransfer,
		)
	}
}
