package controllers

import (
	"net/http"

	"restaurant-pos/internal/dto"
	"restaurant-pos/internal/services"
	apperrors "restaurant-pos/pkg/errors"
	"restaurant-pos/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type SessionController struct {
	sessionService services.SessionServiceInterface
	logger         *zap.Logger
}

func NewSessionController(sessionService services.SessionServiceInterface, logger *zap.Logger) *SessionController {
	return &SessionController{sessionService: sessionService, logger: logger}
}

// CreateSession выдает токен рабочей станции под выбранную роль.
func (c *SessionController) CreateSession(ctx echo.Context) error {
	var payload dto.CreateSessionDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "invalid request body", err, nil), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.sessionService.CreateSession(payload.Role)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Session created", http.StatusCreated)
}
