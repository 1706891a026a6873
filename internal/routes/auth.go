package routes

import (
	"restaurant-pos/internal/controllers"
	"restaurant-pos/internal/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runSessionRouter(api *echo.Group, sessionService services.SessionServiceInterface, logger *zap.Logger) {
	sessionCtrl := controllers.NewSessionController(sessionService, logger)
	api.POST("/sessions", sessionCtrl.CreateSession)
}

// /register живет вне /api: у него свои CORS-заголовки и свой формат ответа.
func runRegistrationRouter(e *echo.Echo, registrationService services.RegistrationServiceInterface, logger *zap.Logger) {
	registrationCtrl := controllers.NewRegistrationController(registrationService, logger)
	e.Any("/register", registrationCtrl.Register)
}
