package onboarding

import (
	"go-ems/internal/config"
	"go-ems/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	rdb *redis.Client,
	cfg *config.Config,
	logger *zap.Logger,
) {
	onboarding := r.Group("/onboarding")
	onboarding.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	onboarding.Use(middleware.ContextLogger(logger))
	{
		onboarding.POST("",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, "employee", "create"),
			middleware.Idempotency(rdb),
			handler.Create,
		)

		onboarding.PUT("",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, "employee", "update"),
			handler.Update,
		)
	}
}
