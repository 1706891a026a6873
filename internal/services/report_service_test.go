package services

import (
	"context"
	"testing"
	"time"

	"restaurant-pos/internal/dto"
	apperrors "restaurant-pos/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDailyOrdersReport(t *testing.T) {
	f := newOrderFixture(t)
	f.fireTwoLines(t)
	svc := NewReportService(f.repo, zap.NewNop())

	file, name, err := svc.DailyOrdersReport(context.Background(), "2026-03-01", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "orders_2026-03-01.xlsx", name)

	rows, err := file.GetRows(reportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3, "header and one row per item")
	assert.Equal(t, "Order ID", rows[0][0])
	assert.Equal(t, "Tonkotsu", rows[1][4])
	assert.Equal(t, "Hot, Extra Egg", rows[1][7])
	assert.Equal(t, "no onion", rows[1][8])

	empty, _, err := svc.DailyOrdersReport(context.Background(), "2026-03-02", time.UTC)
	require.NoError(t, err)
	rows, err = empty.GetRows(reportSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestDailyOrdersReport_BadDate(t *testing.T) {
	svc := NewReportService(newFakeOrderRepo(), zap.NewNop())

	_, _, err := svc.DailyOrdersReport(context.Background(), "01.03.2026", time.UTC)
	var inputErr *apperrors.InvalidInputError
	assert.ErrorAs(t, err, &inputErr)
}

func TestBuildOrdersWorkbook_SkipsOrdersWithoutItems(t *testing.T) {
	file, err := BuildOrdersWorkbook([]dto.OrderViewDTO{{ID: uuid.New(), Items: []dto.OrderItemViewDTO{}}}, time.UTC)
	require.NoError(t, err)
	rows, err := file.GetRows(reportSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
