package routes

import (
	"restaurant-pos/internal/controllers"
	"restaurant-pos/internal/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runMenuRouter(secureGroup *echo.Group, menuService services.MenuServiceInterface, logger *zap.Logger) {
	menuCtrl := controllers.NewMenuController(menuService, logger)

	secureGroup.GET("/tables", menuCtrl.GetTables)
	secureGroup.GET("/menu/categories", menuCtrl.GetCategories)
	secureGroup.GET("/menu/items", menuCtrl.GetMenuItems)
	secureGroup.GET("/menu/modifiers", menuCtrl.GetModifiers)
}
