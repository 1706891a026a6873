package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"restaurant-pos/internal/dto"
	"restaurant-pos/internal/listeners"
	"restaurant-pos/internal/routes"
	"restaurant-pos/migrations"
	"restaurant-pos/pkg/config"
	"restaurant-pos/pkg/constants"
	"restaurant-pos/pkg/customvalidator"
	"restaurant-pos/pkg/database/postgresql"
	apperrors "restaurant-pos/pkg/errors"
	"restaurant-pos/pkg/eventbus"
	applogger "restaurant-pos/pkg/logger"
	appmiddleware "restaurant-pos/pkg/middleware"
	"restaurant-pos/pkg/mq"
	"restaurant-pos/pkg/service"
	"restaurant-pos/pkg/utils"
	appwebsocket "restaurant-pos/pkg/websocket"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// 1. Конфиг и логгер
	cfg := config.New()
	logger := applogger.NewLogger(cfg.Log.File)
	defer logger.Sync()

	e := echo.New()
	e.HideBanner = true

	// 2. Middleware
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("panic recovered",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "internal server error", err, nil)
				utils.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))
	e.Use(appmiddleware.InjectLogger(logger))
	e.Use(appmiddleware.RequestLogger(logger))

	allowed := make(map[string]bool, len(cfg.Server.AllowedOrigins))
	for _, o := range cfg.Server.AllowedOrigins {
		allowed[o] = true
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		// /register сам выставляет свои CORS-заголовки и отвечает на OPTIONS
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == "/register"
		},
		AllowOriginFunc: func(origin string) (bool, error) {
			return allowed[origin], nil
		},
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		ExposeHeaders: []string{"Content-Disposition"},
	}))

	// 3. Валидатор
	v := validator.New()
	if err := customvalidator.RegisterCustomValidations(v); err != nil {
		logger.Fatal("failed to register custom validations", zap.Error(err))
	}
	e.Validator = utils.NewValidator(v)

	// 4. Базы данных
	dbConn := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dbConn.Close()

	if cfg.Server.MigrateOnStart {
		migrateCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
		if err := migrations.Up(migrateCtx, dbConn); err != nil {
			cancel()
			logger.Fatal("failed to apply migrations", zap.Error(err))
		}
		cancel()
		logger.Info("migrations applied")
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	defer redisClient.Close()
	// без Redis меню читается прямо из БД
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logger.Warn("redis unavailable, menu cache disabled until it comes back", zap.Error(err), zap.String("address", cfg.Redis.Address))
	}

	// 5. Шина событий и брокер
	bus := eventbus.New(logger.Named("bus"))
	if cfg.RabbitMQ.URL != "" {
		mqClient, err := mq.Dial(cfg.RabbitMQ.URL)
		if err != nil {
			logger.Fatal("failed to connect to rabbitmq", zap.Error(err))
		}
		defer mqClient.Close()
		listeners.NewBrokerListener(mqClient, logger.Named("broker")).Register(bus)
	}

	// 6. Сервисы, хаб и фид активных заказов
	jwtSvc := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.SessionTTL)
	svc := routes.NewServices(dbConn, redisClient, bus, jwtSvc, v, cfg, logger)

	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := appwebsocket.NewHub(logger.Named("ws"))
	go hub.Run(rootCtx)

	feed := listeners.NewOrderFeed(
		listeners.NewPgChangeSource(dbConn, logger.Named("pg-listen")),
		svc.Order,
		cfg.Feed.ReconnectDelay,
		logger.Named("feed"),
	)
	feed.Subscribe(func(orders []dto.OrderViewDTO) {
		if err := hub.Broadcast(constants.MessageTypeOrdersSnapshot, orders); err != nil {
			logger.Warn("snapshot broadcast skipped", zap.Error(err))
		}
	})
	if err := feed.Start(rootCtx); err != nil {
		logger.Fatal("failed to start order feed", zap.Error(err))
	}

	// 7. Роуты
	routes.InitRouter(e, svc, hub, feed, jwtSvc, logger)

	// 8. Сервер и остановка
	go func() {
		logger.Info("server started", zap.String("port", cfg.Server.Port))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-rootCtx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}
	feed.Stop()
	bus.Wait()
	logger.Info("bye")
}
