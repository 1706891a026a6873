package controllers

import (
	"fmt"
	"net/http"
	"time"

	"restaurant-pos/internal/services"
	"restaurant-pos/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ReportController struct {
	reportService services.ReportServiceInterface
	location      *time.Location
	logger        *zap.Logger
}

func NewReportController(reportService services.ReportServiceInterface, location *time.Location, logger *zap.Logger) *ReportController {
	if location == nil {
		location = time.Local
	}
	return &ReportController{reportService: reportService, location: location, logger: logger}
}

// GetOrdersReport отдает XLSX с заказами за ?date=YYYY-MM-DD (по умолчанию сегодня).
func (c *ReportController) GetOrdersReport(ctx echo.Context) error {
	reqCtx, cancel := utils.ContextWithTimeout(ctx, 30)
	defer cancel()

	f, filename, err := c.reportService.DailyOrdersReport(reqCtx, ctx.QueryParam("date"), c.location)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	defer f.Close()

	ctx.Response().Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	ctx.Response().WriteHeader(http.StatusOK)
	if err := f.Write(ctx.Response()); err != nil {
		c.logger.Error("failed to write xlsx", zap.Error(err))
		return err
	}
	return nil
}
