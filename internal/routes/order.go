package routes

import (
	"restaurant-pos/internal/controllers"
	"restaurant-pos/internal/services"
	"restaurant-pos/pkg/constants"
	"restaurant-pos/pkg/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runOrderRouter(secureGroup *echo.Group, orderService services.OrderServiceInterface, logger *zap.Logger, authMW *middleware.AuthMiddleware) {
	orderCtrl := controllers.NewOrderController(orderService, logger)

	waiter := authMW.RequireRole(constants.RoleWaiter)
	kitchen := authMW.RequireRole(constants.RoleKitchen)
	pickup := authMW.RequireRole(constants.RolePickup)
	{
		secureGroup.POST("/orders", orderCtrl.FireOrder, waiter)
		secureGroup.GET("/orders/active", orderCtrl.GetActiveOrders)

		secureGroup.GET("/kitchen/orders", orderCtrl.GetKitchenOrders, kitchen)
		secureGroup.PATCH("/order-items/:id/status", orderCtrl.UpdateItemStatus, kitchen)

		secureGroup.GET("/pickup/orders", orderCtrl.GetPickupOrders, pickup)
		secureGroup.PATCH("/orders/:id/status", orderCtrl.UpdateOrderStatus, pickup)
		secureGroup.POST("/orders/:id/serve", orderCtrl.ServeOrder, pickup)
	}
}
