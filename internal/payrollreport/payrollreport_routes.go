package payrollreport

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
	salaries := r.Group("/salaries")
	salaries.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	salaries.Use(middleware.ContextLogger(logger))
	{
		salaries.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "salary", "read"),
			handler.List,
		)

		salaries.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "salary", "read"),
			handler.GetByID,
		)

		salaries.POST("/export",
			middleware.RateLimitByUser(0.1, 2),
			middleware.RBACAuthorize(rbacService, "salary", "export"),
			handler.Export,
		)
	}
}
