package utils

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
)

// ContextWithTimeout ограничивает время обработки запроса.
func ContextWithTimeout(ctx echo.Context, timeout int) (context.Context, context.CancelFunc) {
	reqCtx := ctx.Request().Context()
	return context.WithTimeout(reqCtx, time.Duration(timeout)*time.Second)
}
