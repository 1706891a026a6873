package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"restaurant-pos/internal/dto"
	"restaurant-pos/internal/services"
	apperrors "restaurant-pos/pkg/errors"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Ответы /register идут в форме {error} или {id,email}, без общего конверта API.
type RegistrationController struct {
	registrationService services.RegistrationServiceInterface
	logger              *zap.Logger
}

func NewRegistrationController(registrationService services.RegistrationServiceInterface, logger *zap.Logger) *RegistrationController {
	return &RegistrationController{registrationService: registrationService, logger: logger}
}

func (c *RegistrationController) Register(ctx echo.Context) error {
	h := ctx.Response().Header()
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Client-Info, Apikey")

	switch ctx.Request().Method {
	case http.MethodOptions:
		return ctx.NoContent(http.StatusOK)
	case http.MethodPost:
	default:
		return ctx.JSON(http.StatusMethodNotAllowed, dto.RegisterErrorDTO{Error: services.MsgMethodNotAllowed})
	}

	var payload dto.RegisterDTO
	if err := json.NewDecoder(ctx.Request().Body).Decode(&payload); err != nil {
		c.logger.Error("register: undecodable body", zap.Error(err))
		return ctx.JSON(http.StatusInternalServerError, dto.RegisterErrorDTO{Error: services.MsgInternalError})
	}

	res, err := c.registrationService.Register(ctx.Request().Context(), payload)
	if err != nil {
		var httpErr *apperrors.HttpError
		if errors.As(err, &httpErr) {
			return ctx.JSON(httpErr.Code, dto.RegisterErrorDTO{Error: httpErr.Message})
		}
		c.logger.Error("register: internal failure", zap.Error(err))
		return ctx.JSON(http.StatusInternalServerError, dto.RegisterErrorDTO{Error: services.MsgInternalError})
	}
	return ctx.JSON(http.StatusCreated, res)
}
