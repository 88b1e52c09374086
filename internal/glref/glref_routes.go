package glref

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
	codes := r.Group("/glrefcodes")
	codes.Use(middleware.ContextLogger(logger))
	{
		codes.GET("",
			middleware.RateLimitByActor(3, 10),
			authz.Authorize(authzService, "glref", "read"),
			handler.GetAll,
		)

		codes.GET("/active",
			middleware.RateLimitByActor(3, 10),
			authz.Authorize(authzService, "glref", "read"),
			handler.GetActive,
		)

		codes.GET("/code/:code",
			middleware.RateLimitByActor(3, 10),
			authz.Authorize(authzService, "glref", "read"),
			handler.GetByCode,
		)

		codes.GET("/:id",
			middleware.RateLimitByActor(3, 10),
			authz.Authorize(authzService, "glref", "read"),
			handler.GetById,
		)

		codes.POST("",
			middleware.RateLimitByActor(0.5, 2),
			authz.Authorize(authzService, "glref", "manage"),
			handler.Create,
		)

		codes.PUT("/:id",
			middleware.RateLimitByActor(0.5, 2),
			authz.Authorize(authzService, "glref", "manage"),
			handler.Update,
		)

		codes.DELETE("/:id",
			middleware.RateLimitByActor(0.2, 1),
			authz.Authorize(authzService, "glref", "manage"),
			handler.Deactivate,
		)
	}
}
