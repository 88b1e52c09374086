package transfer

import (
	"globalven/internal/authz"
	"globalven/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	authzService authz.Service,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	transfers := r.Group("/transfers")
	transfers.Use(middleware.ContextLogger(logger))
	{
		transfers.GET("",
			middleware.RateLimitByActor(3, 10),
			authz.Authorize(authzService, "transfers", "read"),
			handler.GetAll,
		)

		transfers.GET("/pending",
			middleware.RateLimitByActor(3, 10),
			authz.Authorize(authzService, "transfers", "read"),
			handler.GetPending,
		)

		transfers.GET("/statistics",
			middleware.RateLimitByActor(1, 5),
			authz.Authorize(authzService, "transfers", "read"),
			handler.Statistics,
		)

		transfers.GET("/transaction-types",
			middleware.RateLimitByActor(5, 20),
			authz.Authorize(authzService, "transfers", "read"),
			handler.TransactionTypes,
		)

		transfers.GET("/search",
			middleware.RateLimitByActor(3, 10),
			authz.Authorize(authzService, "transfers", "read"),
			handler.Search,
		)

		transfers.GET("/search-description",
			middleware.RateLimitByActor(3, 10),
			authz.Authorize(authzService, "transfers", "read"),
			handler.SearchDescription,
		)

		transfers.GET("/search-reference",
			middleware.RateLimitByActor(3, 10),
			authz.Authorize(authzService, "transfers", "read"),
			handler.SearchReference,
		)

		transfers.GET("/search-glrefcode",
			middleware.RateLimitByActor(3, 10),
			authz.Authorize(authzService, "transfers", "read"),
			handler.SearchGlRefCode,
		)

		transfers.GET("/employee/:employeeId",
			middleware.RateLimitByActor(3, 10),
			authz.Authorize(authzService, "transfers", "read"),
			handler.GetByEmployee,
		)

		transfers.GET("/type/:type",
			middleware.RateLimitByActor(3, 10),
			authz.Authorize(authzService, "transfers", "read"),
			handler.GetByType,
		)

		transfers.GET("/status/:status",
			middleware.RateLimitByActor(3, 10),
			authz.Authorize(authzService, "transfers", "read"),
			handler.GetByStatus,
		)

		transfers.GET("/date-range",
			middleware.RateLimitByActor(3, 10),
			authz.Authorize(authzService, "transfers", "read"),
			handler.GetByDateRange,
		)

		transfers.GET("/amount-range",
			middleware.RateLimitByActor(3, 10),
			authz.Authorize(authzService, "transfers", "read"),
			handler.GetByAmountRange,
		)

		transfers.GET("/currency/:currency",
			middleware.RateLimitByActor(3, 10),
			authz.Authorize(authzService, "transfers", "read"),
			handler.GetByCurrency,
		)

		transfers.GET("/glrefcode/:code",
			middleware.RateLimitByActor(3, 10),
			authz.Authorize(authzService, "transfers", "read"),
			handler.GetByGlRefCode,
		)

		transfers.GET("/:id",
			middleware.RateLimitByActor(3, 10),
			authz.Authorize(authzService, "transfers", "read"),
			handler.GetById,
		)

		transfers.POST("",
			middleware.RateLimitByActor(0.5, 2),
			authz.Authorize(authzService, "transfers", "create"),
			middleware.Idempotency(rdb),
			handler.Create,
		)

		transfers.PUT("/:id",
			middleware.RateLimitByActor(0.5, 2),
			authz.Authorize(authzService, "transfers", "update"),
			handler.Update,
		)

		transfers.PATCH("/:id/approve",
			middleware.RateLimitByActor(0.5, 2),
			authz.Authorize(authzService, "transfers", "approve"),
			handler.Approve,
		)

		transfers.PATCH("/:id/reject",
			middleware.RateLimitByActor(0.5, 2),
			authz.Authorize(authzService, "transfers", "reject"),
			handler.Reject,
		)

		transfers.PATCH("/:id/process",
			middleware.RateLimitByActor(0.5, 2),
			authz.Authorize(authzService, "transfers", "process"),
			handler.Process,
		)

		transfers.DELETE("/:id",
			middleware.RateLimitByActor(0.2, 1),
			authz.Authorize(authzService, "transfers", "delete"),
			handler.Deactivate,
		)

		transfers.DELETE("/:id/purge",
			middleware.RateLimitByActor(0.1, 1),
			authz.Authorize(authzService, "transfers", "purge"),
			handler.Purge,
		)
	}
}
