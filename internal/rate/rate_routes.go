package rate

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
	rates := r.Group("/rates")
	rates.Use(middleware.ContextLogger(logger))
	{
		rates.GET("",
			middleware.RateLimitByActor(3, 10),
			authz.Authorize(authzService, "rates", "read"),
			handler.GetAll,
		)

		rates.GET("/effective",
			middleware.RateLimitByActor(3, 10),
			authz.Authorize(authzService, "rates", "read"),
			handler.GetEffective,
		)

		rates.GET("/category/:category",
			middleware.RateLimitByActor(3, 10),
			authz.Authorize(authzService, "rates", "read"),
			handler.GetByCategory,
		)

		rates.GET("/statistics",
			middleware.RateLimitByActor(1, 5),
			authz.Authorize(authzService, "rates", "read"),
			handler.Statistics,
		)

		rates.GET("/:id",
			middleware.RateLimitByActor(3, 10),
			authz.Authorize(authzService, "rates", "read"),
			handler.GetById,
		)

		rates.POST("",
			middleware.RateLimitByActor(0.5, 2),
			authz.Authorize(authzService, "rates", "manage"),
			handler.Create,
		)

		rates.PUT("/:id",
			middleware.RateLimitByActor(0.5, 2),
			authz.Authorize(authzService, "rates", "manage"),
			handler.Update,
		)

		rates.PATCH("/:id/toggle-status",
			middleware.RateLimitByActor(0.5, 2),
			authz.Authorize(authzService, "rates", "manage"),
			handler.ToggleStatus,
		)
	}
}
