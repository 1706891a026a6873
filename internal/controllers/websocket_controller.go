package controllers

import (
	"net/http"

	"restaurant-pos/internal/dto"
	"restaurant-pos/pkg/constants"
	"restaurant-pos/pkg/service"
	appwebsocket "restaurant-pos/pkg/websocket"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// SnapshotSource - последний собранный список активных заказов.
type SnapshotSource interface {
	Latest() ([]dto.OrderViewDTO, bool)
}

type WebSocketController struct {
	hub        *appwebsocket.Hub
	feed       SnapshotSource
	jwtService service.JWTService
	logger     *zap.Logger
}

func NewWebSocketController(hub *appwebsocket.Hub, feed SnapshotSource, jwtService service.JWTService, logger *zap.Logger) *WebSocketController {
	return &WebSocketController{hub: hub, feed: feed, jwtService: jwtService, logger: logger}
}

// ServeWs: браузер не умеет слать заголовки при апгрейде, поэтому токен приходит в ?token=.
func (c *WebSocketController) ServeWs(ctx echo.Context) error {
	tokenString := ctx.QueryParam("token")
	if tokenString == "" {
		return ctx.String(http.StatusUnauthorized, "Missing token")
	}

	claims, err := c.jwtService.ValidateToken(tokenString)
	if err != nil {
		return ctx.String(http.StatusUnauthorized, "Invalid token")
	}

	conn, err := upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		c.logger.Error("websocket upgrade failed", zap.Error(err))
		return err
	}

	client := appwebsocket.NewClient(c.hub, conn, constants.StaffRole(claims.Role))

	// новый экран сразу получает текущее состояние, не дожидаясь следующего изменения
	if orders, ok := c.feed.Latest(); ok {
		if msg, err := appwebsocket.Encode(constants.MessageTypeOrdersSnapshot, orders); err == nil {
			client.Send <- msg
		}
	}
	c.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()

	c.logger.Info("websocket client connected", zap.String("role", claims.Role))
	return nil
}
