package router

import (
	"pos_reporting_backend/internal/handlers"
	"pos_reporting_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupReportRoutes sets up the report routes.
func SetupReportRoutes(authenticatedGroup *gin.RouterGroup, reportHandler *handlers.ReportHandler) {
	reportRoutes := authenticatedGroup.Group("/reports")
	reportRoutes.Use(middleware.RoleAuthMiddleware("Admin", "Staff"))
	{
		reportRoutes.GET("/summary", reportHandler.GetSummary)
		reportRoutes.GET("/daily", reportHandler.GetDailyReport)
		reportRoutes.GET("/products", reportHandler.GetProductReport)
		reportRoutes.GET("/employees", reportHandler.GetEmployeeReport)
		reportRoutes.GET("/customers", reportHandler.GetCustomerReport)
		reportRoutes.GET("/channels", reportHandler.GetChannelReport)
	}
}
