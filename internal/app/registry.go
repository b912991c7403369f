package app

import (
	"database/sql"

	"github.com/Netrahoni/SmartPayroll/internal/auth"
	"github.com/Netrahoni/SmartPayroll/internal/employee"
	"github.com/Netrahoni/SmartPayroll/internal/messaging/kafka"
	"github.com/Netrahoni/SmartPayroll/internal/middleware"
	"github.com/Netrahoni/SmartPayroll/internal/payroll"
	"github.com/Netrahoni/SmartPayroll/internal/report"
	"github.com/Netrahoni/SmartPayroll/internal/settings"
	"github.com/Netrahoni/SmartPayroll/internal/task"

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

	router.Use(middleware.RequestID())

	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	payrollRepo := payroll.NewRepository(gormDB)
	reportRepo := report.NewRepository(gormDB)
	settingsRepo := settings.NewRepository(gormDB)
	taskRepo := task.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	authService := auth.NewService(authRepo)
	settingsService := settings.NewService(settingsRepo, rdb)
	employeeService := employee.NewServiceWithOutbox(gormDB, employeeRepo, outboxRepo, settingsService, ratesFromEnv())
	payrollService := payroll.NewServiceWithOutbox(gormDB, payrollRepo, outboxRepo)
	reportService := report.NewService(reportRepo)
	taskService := task.NewService(taskRepo)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	employeeHandler := employee.NewHandler(employeeService)
	payrollHandler := payroll.NewHandlerWithRedis(payrollService, rdb)
	reportHandler := report.NewHandler(reportService)
	settingsHandler := settings.NewHandler(settingsService)
	taskHandler := task.NewHandler(taskService)

	// --- Routes ---
	api := router.Group("/api")
	{
		auth.RegisterRoutes(api, authHandler, logger)
		employee.RegisterRoutes(api, employeeHandler, logger)
		payroll.RegisterRoutes(api, payrollHandler, rdb, logger)
		report.RegisterRoutes(api, reportHandler, logger)
		settings.RegisterRoutes(api, settingsHandler, logger)
		task.RegisterRoutes(api, taskHandler, logger)
	}

	return nil
}
