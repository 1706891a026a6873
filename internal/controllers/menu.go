package controllers

import (
	"net/http"

	"restaurant-pos/internal/services"
	apperrors "restaurant-pos/pkg/errors"
	"restaurant-pos/pkg/utils"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type MenuController struct {
	menuService services.MenuServiceInterface
	logger      *zap.Logger
}

func NewMenuController(menuService services.MenuServiceInterface, logger *zap.Logger) *MenuController {
	return &MenuController{menuService: menuService, logger: logger}
}

func (c *MenuController) GetTables(ctx echo.Context) error {
	reqCtx, cancel := utils.ContextWithTimeout(ctx, 5)
	defer cancel()

	res, err := c.menuService.GetTables(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Tables fetched", http.StatusOK)
}

func (c *MenuController) GetCategories(ctx echo.Context) error {
	reqCtx, cancel := utils.ContextWithTimeout(ctx, 5)
	defer cancel()

	res, err := c.menuService.GetCategories(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Categories fetched", http.StatusOK)
}

func (c *MenuController) GetMenuItems(ctx echo.Context) error {
	reqCtx, cancel := utils.ContextWithTimeout(ctx, 5)
	defer cancel()

	var categoryID *uuid.UUID
	if raw := ctx.QueryParam("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return utils.ErrorResponse(ctx,
				apperrors.NewHttpError(http.StatusBadRequest, "invalid category_id", err, map[string]interface{}{"category_id": raw}),
				c.logger,
			)
		}
		categoryID = &id
	}

	res, err := c.menuService.GetMenuItems(reqCtx, categoryID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Menu items fetched", http.StatusOK)
}

func (c *MenuController) GetModifiers(ctx echo.Context) error {
	reqCtx, cancel := utils.ContextWithTimeout(ctx, 5)
	defer cancel()

	res, err := c.menuService.GetModifiers(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Modifiers fetched", http.StatusOK)
}
