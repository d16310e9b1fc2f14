package router

import (
	"github.com/gin-gonic/gin"

	"invoscan/internal/handler"
	"invoscan/internal/middleware"
	"invoscan/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	authSvc service.AuthService,
	allowedOrigins []string,
	authH *handler.AuthHandler,
	scanH *handler.ScanHandler,
	exportH *handler.ExportHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/token", authH.Token)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	// Scan routes
	scans := protected.Group("/scans")
	scans.POST("", scanH.Submit)
	scans.GET("", scanH.List)
	scans.GET("/:id", scanH.GetByID)
	scans.GET("/:id/record", scanH.GetRecord)
	scans.GET("/:id/validation", scanH.GetValidation)
	scans.POST("/:id/reextract", scanH.Reextract)
	scans.DELETE("/:id", scanH.Delete)

	// Export routes
	exports := protected.Group("/exports")
	exports.GET("/csv", exportH.ExportCSV)
	exports.GET("/xlsx", exportH.ExportXLSX)
	exports.POST("/email", exportH.EmailCSV)

	return r
}
