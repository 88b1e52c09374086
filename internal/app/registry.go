package app

import (
	"database/sql"

	"globalven/internal/audit"
	"globalven/internal/authz"
	"globalven/internal/cache"
	"globalven/internal/employee"
	"globalven/internal/glref"
	"globalven/internal/messaging/kafka"
	"globalven/internal/middleware"
	"globalven/internal/rate"
	"globalven/internal/transfer"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	logger := zap.L()

	// --- Repositories ---
	auditRepo := audit.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	glRefRepo := glref.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	rateRepo := rate.NewRepository(gormDB)
	transferRepo := transfer.NewRepository(gormDB)

	// --- Authz Core ---
	authzService, err := authz.NewService()
	if err != nil {
		return err
	}

	// Shared between the rate and transfer statistics endpoints.
	statsCache := cache.NewTTLCache()

	// --- Services ---
	auditService := audit.NewService(auditRepo)
	employeeService := employee.NewService(db, employeeRepo)
	glRefService := glref.NewService(db, glRefRepo)
	rateService := rate.NewService(db, rateRepo, statsCache)
	transferService := transfer.NewService(db, transferRepo, employeeRepo, rateRepo, outboxRepo, statsCache)

	// --- Handlers ---
	auditHandler := audit.NewHandler(auditService)
	employeeHandler := employee.NewHandler(employeeService)
	glRefHandler := glref.NewHandler(glRefService)
	rateHandler := rate.NewHandler(rateService)
	transferHandler := transfer.NewHandler(transferService)

	// --- Routes Registration ---
	router.Use(middleware.RequestID(), middleware.ActorContext())

	api := router.Group("/api")
	{
		audit.RegisterRoutes(api, auditHandler, authzService, logger)
		employee.RegisterRoutes(api, employeeHandler, authzService, logger)
		glref.RegisterRoutes(api, glRefHandler, authzService, logger)
		rate.RegisterRoutes(api, rateHandler, authzService, logger)
		transfer.RegisterRoutes(api, transferHandler, authzService, rdb, logger)
	}

	return nil
}
