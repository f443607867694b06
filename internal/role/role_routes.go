package role

import (
	"go-ems/internal/config"
	"go-ems/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	cfg *config.Config,
	logger *zap.Logger,
) {
	roles := r.Group("/roles")
	roles.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	roles.Use(middleware.ContextLogger(logger))
	{
		roles.GET("",
			middleware.RateLimitByUser(5, 20),
			middleware.RBACAuthorize(rbacService, "role", "read"),
			handler.GetAssignable,
		)
	}
}
