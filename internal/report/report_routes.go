package report

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
	reports := r.Group("/reports")
	reports.Use(middleware.AuthMiddleware())
	reports.Use(middleware.ContextLogger(logger))
	{
		reports.POST("/payroll-summary",
			middleware.RateLimitByUser(1, 5),
			handler.PayrollSummary,
		)
	}
}
