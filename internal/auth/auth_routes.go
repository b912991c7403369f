package auth

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
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register",
			middleware.RateLimitByIP(0.5, 2),
			handler.Register,
		)

		authGroup.POST("/login",
			middleware.RateLimitByIP(1, 5),
			handler.Login,
		)

		authGroup.POST("/refresh",
			middleware.RateLimitByIP(1, 5),
			handler.RefreshToken,
		)

		authGroup.POST("/logout", handler.Logout)

		authGroup.GET("/me",
			middleware.AuthMiddleware(),
			middleware.ContextLogger(logger),
			handler.Me,
		)
	}
}
