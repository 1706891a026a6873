package routes

import (
	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"restaurant-pos/internal/controllers"
	"restaurant-pos/internal/repositories"
	"restaurant-pos/internal/services"
	"restaurant-pos/pkg/config"
	"restaurant-pos/pkg/eventbus"
	"restaurant-pos/pkg/middleware"
	"restaurant-pos/pkg/service"
	appwebsocket "restaurant-pos/pkg/websocket"
)

// Services - все сервисы приложения, собранные в одном месте.
// main использует Order для фида активных заказов.
type Services struct {
	Order        services.OrderServiceInterface
	Menu         services.MenuServiceInterface
	Registration services.RegistrationServiceInterface
	Session      services.SessionServiceInterface
	Report       services.ReportServiceInterface
}

func NewServices(
	dbConn *pgxpool.Pool,
	redisClient *redis.Client,
	bus *eventbus.Bus,
	jwtSvc service.JWTService,
	v *validator.Validate,
	cfg *config.Config,
	logger *zap.Logger,
) *Services {
	txManager := repositories.NewTxManager(dbConn)

	// --- 1. РЕПОЗИТОРИИ ---
	orderRepo := repositories.NewOrderRepository(dbConn, logger.Named("order"))
	tableRepo := repositories.NewTableRepository(dbConn, logger.Named("table"))
	menuRepo := repositories.NewMenuRepository(dbConn, logger.Named("menu"))
	userRepo := repositories.NewUserRepository(dbConn, logger.Named("user"))
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	// --- 2. СЕРВИСЫ ---
	return &Services{
		Order:        services.NewOrderService(orderRepo, txManager, bus, logger.Named("order")),
		Menu:         services.NewMenuService(tableRepo, menuRepo, cacheRepo, cfg.Cache.MenuTTL, logger.Named("menu")),
		Registration: services.NewRegistrationService(userRepo, v, logger.Named("register")),
		Session:      services.NewSessionService(jwtSvc, logger.Named("session")),
		Report:       services.NewReportService(orderRepo, logger.Named("report")),
	}
}

func InitRouter(
	e *echo.Echo,
	svc *Services,
	hub *appwebsocket.Hub,
	feed controllers.SnapshotSource,
	jwtSvc service.JWTService,
	logger *zap.Logger,
) {
	logger.Info("InitRouter: building routes")

	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, logger.Named("auth"))
	secureGroup := api.Group("", authMW.Auth)

	runRegistrationRouter(e, svc.Registration, logger.Named("register"))
	runSessionRouter(api, svc.Session, logger.Named("session"))
	runMenuRouter(secureGroup, svc.Menu, logger.Named("menu"))
	runOrderRouter(secureGroup, svc.Order, logger.Named("order"), authMW)
	runReportRouter(secureGroup, svc.Report, logger.Named("report"))

	wsController := controllers.NewWebSocketController(hub, feed, jwtSvc, logger.Named("ws"))
	e.GET("/ws", wsController.ServeWs)

	logger.Info("InitRouter: routes ready")
}
