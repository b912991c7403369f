package settings

import (
	"github.com/Netrahoni/SmartPayroll/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	logger *zap.Logger,
) {
	company := r.Group("/settings")
	company.Use(middleware.AuthMiddleware())
	company.Use(middleware.ContextLogger(logger))
	{
		company.GET("/company",
			middleware.RateLimitByUser(3, 10),
			handler.Get,
		)

		company.PUT("/company",
			middleware.RateLimitByUser(0.5, 2),
			handler.Update,
		)
	}
}
