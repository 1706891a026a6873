package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	apperrors "restaurant-pos/pkg/errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type HTTPResponse struct {
	Status  bool        `json:"status"`
	Body    interface{} `json:"body,omitempty"`
	Message string      `json:"message"`
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int) error {
	return ctx.JSON(code, &HTTPResponse{Status: true, Message: message, Body: body})
}

// statusBySentinel сопоставляет доменные ошибки с кодами ответа.
var statusBySentinel = []struct {
	err  error
	code int
}{
	{apperrors.ErrEmptyAuthHeader, http.StatusUnauthorized},
	{apperrors.ErrInvalidAuthHeader, http.StatusUnauthorized},
	{apperrors.ErrInvalidToken, http.StatusUnauthorized},
	{apperrors.ErrTokenExpired, http.StatusUnauthorized},
	{apperrors.ErrInvalidSigningMethod, http.StatusUnauthorized},
	{apperrors.ErrUnauthorized, http.StatusUnauthorized},
	{apperrors.ErrForbidden, http.StatusForbidden},
	{apperrors.ErrNotFound, http.StatusNotFound},
	{apperrors.ErrInvalidTransition, http.StatusConflict},
	{apperrors.ErrNotReadyForPickup, http.StatusConflict},
	{apperrors.ErrConflict, http.StatusConflict},
	{apperrors.ErrInvalidRole, http.StatusBadRequest},
	{apperrors.ErrEmptyCart, http.StatusBadRequest},
	{apperrors.ErrInvalidStatus, http.StatusBadRequest},
	{apperrors.ErrInvalidReference, http.StatusBadRequest},
	{apperrors.ErrBadRequest, http.StatusBadRequest},
}

// StatusCodeFor возвращает HTTP-код для ошибки; неизвестные ошибки дают 500.
func StatusCodeFor(err error) int {
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}
	var inputErr *apperrors.InvalidInputError
	if errors.As(err, &inputErr) {
		return http.StatusBadRequest
	}
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		return http.StatusBadRequest
	}
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		return echoErr.Code
	}
	for _, s := range statusBySentinel {
		if errors.Is(err, s.err) {
			return s.code
		}
	}
	return http.StatusInternalServerError
}

func ErrorResponse(c echo.Context, err error, logger *zap.Logger) error {
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		if httpErr.Err != nil {
			logger.Error("HTTP Error",
				zap.Int("code", httpErr.Code),
				zap.String("message", httpErr.Message),
				zap.Error(httpErr.Err),
				zap.Any("context", httpErr.Context),
			)
		}

		response := map[string]interface{}{
			"status":  false,
			"message": httpErr.Message,
		}
		if httpErr.Details != nil {
			response["body"] = httpErr.Details
		}
		return c.JSON(httpErr.Code, response)
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var msgs []string
		for _, e := range validationErrors {
			msgs = append(msgs, fmt.Sprintf("field '%s' failed '%s'", e.Field(), e.Tag()))
		}
		return c.JSON(http.StatusBadRequest, map[string]interface{}{"status": false, "message": "validation error: " + strings.Join(msgs, "; ")})
	}

	code := StatusCodeFor(err)
	if code == http.StatusInternalServerError {
		logger.Error("Unexpected Error", zap.Error(err))
		return c.JSON(code, map[string]interface{}{
			"status":  false,
			"message": "internal server error",
		})
	}

	message := err.Error()
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		message = fmt.Sprint(echoErr.Message)
	}
	logger.Warn("Request rejected", zap.Int("code", code), zap.Error(err))
	return c.JSON(code, map[string]interface{}{"status": false, "message": message})
}
