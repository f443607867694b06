package leavebalance

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
	balances := r.Group("/leave-balances")
	balances.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	balances.Use(middleware.ContextLogger(logger))
	{
		balances.GET("/:employeeId",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "leave_balance", "read"),
			handler.GetByEmployee,
		)

		balances.POST("/:employeeId/usage",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "leave_balance", "update"),
			middleware.Idempotency(rdb),
			handler.RecordUsage,
		)
	}
}
