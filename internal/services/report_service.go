package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"restaurant-pos/internal/dto"
	"restaurant-pos/internal/repositories"
	apperrors "restaurant-pos/pkg/errors"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const reportSheet = "Orders"

var reportHeaders = []interface{}{
	"Order ID", "Created", "Table", "Order status",
	"Item", "Quantity", "Item status", "Modifiers", "Special requests", "Line total",
}

type ReportServiceInterface interface {
	// DailyOrdersReport строит XLSX со всеми заказами за календарный день в зоне loc.
	DailyOrdersReport(ctx context.Context, rawDate string, loc *time.Location) (*excelize.File, string, error)
}

type ReportService struct {
	orderRepo repositories.OrderRepositoryInterface
	logger    *zap.Logger
}

func NewReportService(orderRepo repositories.OrderRepositoryInterface, logger *zap.Logger) ReportServiceInterface {
	return &ReportService{orderRepo: orderRepo, logger: logger}
}

func (s *ReportService) DailyOrdersReport(ctx context.Context, rawDate string, loc *time.Location) (*excelize.File, string, error) {
	day := time.Now().In(loc)
	if rawDate != "" {
		parsed, err := time.ParseInLocation("2006-01-02", rawDate, loc)
		if err != nil {
			return nil, "", apperrors.NewInvalidInputError("date must be YYYY-MM-DD, got %q", rawDate)
		}
		day = parsed
	}
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
	to := from.AddDate(0, 0, 1)

	orders, err := LoadOrderViews(ctx, s.orderRepo, repositories.OrderRowFilter{CreatedFrom: &from, CreatedTo: &to})
	if err != nil {
		return nil, "", err
	}

	f, err := BuildOrdersWorkbook(orders, loc)
	if err != nil {
		return nil, "", err
	}
	s.logger.Info("orders report built", zap.String("date", from.Format("2006-01-02")), zap.Int("orders", len(orders)))
	return f, fmt.Sprintf("orders_%s.xlsx", from.Format("2006-01-02")), nil
}

// BuildOrdersWorkbook - одна строка на позицию заказа.
func BuildOrdersWorkbook(orders []dto.OrderViewDTO, loc *time.Location) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", reportSheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(reportSheet, "A1", &reportHeaders); err != nil {
		return nil, err
	}
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	_ = f.SetCellStyle(reportSheet, "A1", "J1", style)

	rowIdx := 2
	for _, order := range orders {
		for _, item := range order.Items {
			names := make([]string, 0, len(item.Modifiers))
			for _, m := range item.Modifiers {
				names = append(names, m.Name)
			}
			special := ""
			if item.SpecialRequests != nil {
				special = *item.SpecialRequests
			}
			row := []interface{}{
				order.ID.String(),
				order.CreatedAt.In(loc).Format("2006-01-02 15:04:05"),
				order.Table.TableNumber,
				order.Status,
				item.MenuItem.Name,
				item.Quantity,
				item.Status,
				strings.Join(names, ", "),
				special,
				item.LineTotal,
			}
			cell, _ := excelize.CoordinatesToCellName(1, rowIdx)
			if err := f.SetSheetRow(reportSheet, cell, &row); err != nil {
				return nil, err
			}
			rowIdx++
		}
	}

	_ = f.SetColWidth(reportSheet, "A", "A", 38)
	_ = f.SetColWidth(reportSheet, "B", "B", 20)
	_ = f.SetColWidth(reportSheet, "E", "E", 25)
	_ = f.SetColWidth(reportSheet, "H", "I", 30)
	return f, nil
}
