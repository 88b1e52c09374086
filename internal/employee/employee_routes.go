package employee

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
	employees := r.Group("/employees")
	employees.Use(middleware.ContextLogger(logger))
	{
		employees.GET("",
			middleware.RateLimitByActor(3, 10),
			authz.Authorize(authzService, "employees", "read"),
			handler.GetAll,
		)

		employees.GET("/active",
			middleware.RateLimitByActor(3, 10),
			authz.Authorize(authzService, "employees", "read"),
			handler.GetActive,
		)

		employees.GET("/:id",
			middleware.RateLimitByActor(3, 10),
			authz.Authorize(authzService, "employees", "read"),
			handler.GetById,
		)

		employees.POST("",
			middleware.RateLimitByActor(0.5, 2),
			authz.Authorize(authzService, "employees", "manage"),
			handler.Create,
		)

		employees.PUT("/:id",
			middleware.RateLimitByActor(0.5, 2),
			authz.Authorize(authzService, "employees", "manage"),
			handler.Update,
		)

		employees.DELETE("/:id",
			middleware.RateLimitByActor(0.2, 1),
			authz.Authorize(authzService, "employees", "manage"),
			handler.Deactivate,
		)
	}
}
