package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"plantnet/app/echo-server/router"
	"plantnet/business/access"
	"plantnet/business/auth"
	"plantnet/business/order"
	"plantnet/business/plant"
	userService "plantnet/business/user"
	"plantnet/internal/middleware"
	"plantnet/internal/repository/notification"
	psqlRepo "plantnet/internal/repository/postgres"
	redisRepo "plantnet/internal/repository/redis"
	"plantnet/internal/rest"
	"plantnet/pkg/config"
	"plantnet/pkg/database"
	redisdb "plantnet/pkg/database/redis"
	"plantnet/pkg/logger"
	"plantnet/pkg/metrics"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting plantNet", "version", cfg.App.Version)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to redis", "error", err)
	}

	// Init notification from mailjet
	mailjetEmail := notification.NewMailjetRepository(
		notification.MailjetConfig{
			MailjetBaseURL:           cfg.Mailjet.MailjetBaseUrl,
			MailjetBasicAuthUsername: cfg.Mailjet.MailjetBasicAuthUsername,
			MailjetBasicAuthPassword: cfg.Mailjet.MailjetBasicAuthPassword,
			MailjetSenderEmail:       cfg.Mailjet.MailjetSenderEmail,
			MailjetSenderName:        cfg.Mailjet.MailjetSenderName,
		},
	)

	// Init validate
	validate := validator.New()

	// Init metrics
	metrics.Init()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	plantRepo := psqlRepo.NewPlantRepository(db)
	orderRepo := psqlRepo.NewOrderRepository(db)
	tokenRepo := redisRepo.NewTokenRepository(redisClient)

	// Init service
	policy := access.NewPolicy(userRepo)
	authService := auth.NewAuthService(tokenRepo, time.Duration(cfg.JWT.TTLHours)*time.Hour)
	usrService := userService.NewUserService(userRepo, validate, mailjetEmail, policy)
	plantService := plant.NewPlantService(plantRepo, policy)
	orderService := order.NewOrderService(orderRepo, plantRepo, policy)

	// Init handler
	authHandler := rest.NewAuthHandler(authService)
	userHandler := rest.NewUserHandler(usrService)
	plantHandler := rest.NewPlantHandler(plantService)
	orderHandler := rest.NewOrderHandler(orderService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))
	e.Use(middleware.MetricsMiddleware())

	// Auth middleware
	authRequired := middleware.AuthMiddlewareWithRedis(authService)

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupAuthRoutes(api, authHandler)
	router.SetupUserRoutes(api, userHandler, authRequired)
	router.SetupPlantRoutes(api, plantHandler, authRequired)
	router.SetupOrderRoutes(api, orderHandler, authRequired)
	router.SetupMetricsRoute(e)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	if err := database.ClosePostgres(db); err != nil {
		logger.Error("Database close error", "error", err)
	}

	if err := redisdb.CloseRedisClient(redisClient); err != nil {
		logger.Error("Redis close error", "error", err)
	}

	logger.Info("Server stopped")
}
