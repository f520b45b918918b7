package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/kyukyubank/banking-service/internal/core/ports/services"
	"github.com/kyukyubank/banking-service/internal/middleware"
	"github.com/kyukyubank/banking-service/pkg/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// through the service container.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	RegisterCustomValidators()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public routes: registration, login and offline account-number checks.
	registerAuthRoutes(r, cfg, services.User)

	// Everything under /api/v1 requires a bearer token.
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))
	registerUserRoutes(v1, services.User)
	registerAccountRoutes(v1, services.Account, services.Transfer, services.Ledger)
	registerTransactionRoutes(v1, services.Transfer)
	registerMockDataRoutes(v1, cfg, services.MockData)
}
