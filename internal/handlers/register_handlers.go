package handlers

import (
	portssvc "github.com/finbooks/fin_books_app/internal/core/ports/services"
	"github.com/finbooks/fin_books_app/internal/middleware"
	"github.com/finbooks/fin_books_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	limiterInstance *limiter.Limiter,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	v1 := r.Group("/api/v1", middleware.RateLimit(limiterInstance))

	RegisterAccountRoutes(v1, services.Registry, services.Reporting)
	RegisterJournalEntryRoutes(v1, services.Posting)
	RegisterReportingRoutes(v1, services.Reporting)
}
