package controllers

import (
	"net/http"

	"restaurant-pos/internal/dto"
	"restaurant-pos/internal/services"
	apperrors "restaurant-pos/pkg/errors"
	"restaurant-pos/pkg/utils"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type OrderController struct {
	orderService services.OrderServiceInterface
	logger       *zap.Logger
}

func NewOrderController(orderService services.OrderServiceInterface, logger *zap.Logger) *OrderController {
	return &OrderController{orderService: orderService, logger: logger}
}

// FireOrder - официант отправляет корзину на кухню.
func (c *OrderController) FireOrder(ctx echo.Context) error {
	reqCtx, cancel := utils.ContextWithTimeout(ctx, 10)
	defer cancel()

	var payload dto.CreateOrderDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "invalid request body", err, nil), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.orderService.FireOrder(reqCtx, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Order fired", http.StatusCreated)
}

func (c *OrderController) GetActiveOrders(ctx echo.Context) error {
	reqCtx, cancel := utils.ContextWithTimeout(ctx, 5)
	defer cancel()

	res, err := c.orderService.ListActiveOrders(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Active orders fetched", http.StatusOK)
}

func (c *OrderController) GetKitchenOrders(ctx echo.Context) error {
	reqCtx, cancel := utils.ContextWithTimeout(ctx, 5)
	defer cancel()

	res, err := c.orderService.KitchenOrders(reqCtx, ctx.QueryParam("status"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Kitchen orders fetched", http.StatusOK)
}

func (c *OrderController) GetPickupOrders(ctx echo.Context) error {
	reqCtx, cancel := utils.ContextWithTimeout(ctx, 5)
	defer cancel()

	res, err := c.orderService.PickupOrders(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Pickup orders fetched", http.StatusOK)
}

func (c *OrderController) UpdateItemStatus(ctx echo.Context) error {
	reqCtx, cancel := utils.ContextWithTimeout(ctx, 5)
	defer cancel()

	itemID, err := c.parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.UpdateStatusDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "invalid request body", err, nil), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.orderService.UpdateItemStatus(reqCtx, itemID, payload.Status)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Item status updated", http.StatusOK)
}

func (c *OrderController) UpdateOrderStatus(ctx echo.Context) error {
	reqCtx, cancel := utils.ContextWithTimeout(ctx, 5)
	defer cancel()

	orderID, err := c.parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.UpdateStatusDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "invalid request body", err, nil), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.orderService.UpdateOrderStatus(reqCtx, orderID, payload.Status)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Order status updated", http.StatusOK)
}

func (c *OrderController) ServeOrder(ctx echo.Context) error {
	reqCtx, cancel := utils.ContextWithTimeout(ctx, 5)
	defer cancel()

	orderID, err := c.parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.orderService.ServeOrder(reqCtx, orderID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Order served", http.StatusOK)
}

func (c *OrderController) parseID(ctx echo.Context) (uuid.UUID, error) {
	raw := ctx.Param("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperrors.NewHttpError(http.StatusBadRequest, "invalid id", err, map[string]interface{}{"param": raw})
	}
	return id, nil
}
