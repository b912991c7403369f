package task

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
	tasks := r.Group("/tasks")
	tasks.Use(middleware.AuthMiddleware())
	tasks.Use(middleware.ContextLogger(logger))
	{
		tasks.GET("",
			middleware.RateLimitByUser(3, 10),
			handler.GetAll,
		)

		tasks.POST("",
			middleware.RateLimitByUser(1, 5),
			handler.Create,
		)

		tasks.PUT("/:id",
			middleware.RateLimitByUser(1, 5),
			handler.Toggle,
		)

		tasks.DELETE("/:id",
			middleware.RateLimitByUser(1, 5),
			handler.Delete,
		)
	}
}
