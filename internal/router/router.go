package router

import (
	"database/sql"

	"pos_reporting_backend/internal/handlers"
	"pos_reporting_backend/internal/middleware"
	"pos_reporting_backend/internal/repositories"
	"pos_reporting_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, db *sql.DB) {
	// Initialize Repositories
	orderRepo := repositories.NewOrderRepository(db)
	catalogRepo := repositories.NewCatalogRepository(db)

	// Initialize Services
	reportService := services.NewReportService(orderRepo, catalogRepo)

	// Initialize Handlers
	reportHandler := handlers.NewReportHandler(reportService)

	apiV1 := engine.Group("/api/v1")

	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	{
		SetupReportRoutes(authenticated, reportHandler)
	}
}
