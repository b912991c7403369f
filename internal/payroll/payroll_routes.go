package payroll

import (
	"github.com/Netrahoni/SmartPayroll/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	payroll := r.Group("/payroll")
	payroll.Use(middleware.AuthMiddleware())
	payroll.Use(middleware.ContextLogger(logger))
	{
		payroll.POST("/run",
			middleware.RateLimitByUser(0.2, 1),
			middleware.Idempotency(rdb),
			handler.Run,
		)

		payroll.GET("/runs",
			middleware.RateLimitByUser(3, 10),
			handler.GetAll,
		)

		payroll.GET("/runs/:id",
			middleware.RateLimitByUser(3, 10),
			handler.GetById,
		)
	}
}
