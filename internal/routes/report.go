package routes

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"restaurant-pos/internal/controllers"
	"restaurant-pos/internal/services"
)

func runReportRouter(secureGroup *echo.Group, reportService services.ReportServiceInterface, logger *zap.Logger) {
	reportController := controllers.NewReportController(reportService, time.Local, logger)

	secureGroup.GET("/reports/orders", reportController.GetOrdersReport)
}
