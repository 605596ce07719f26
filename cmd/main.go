package main

import (
	"context"
	"os"
	"time"

	"cms-platform/config"
	"cms-platform/domain/settings"
	"cms-platform/middleware"
	"cms-platform/migrations"
	"cms-platform/pkg/apperrors"
	"cms-platform/pkg/logger"
	"cms-platform/routes"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/viper"
)

func main() {
	config.InitConfig()

	logger.Init(logger.Config{
		Level:       logger.Level(viper.GetString("LOG_LEVEL")),
		Environment: viper.GetString("ENVIRONMENT"),
	})
	log := logger.Get().WithComponent("main")

	db, err := config.ConnectDB()
	if err != nil {
		log.Error("Failed to connect to database", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := migrations.Up(db); err != nil {
		log.Error("Failed to run migrations", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := config.Bootstrap(ctx, db); err != nil {
		cancel()
		log.Error("Failed to bootstrap", err)
		os.Exit(1)
	}
	cancel()

	// Redis is optional: without it, cooldowns fall back to process memory.
	var store middleware.CooldownStore = middleware.NewMemoryCooldownStore()
	if client := config.InitRedis(); client != nil {
		store = &middleware.RedisCooldownStore{Client: client}
		defer client.Close()
	}

	uploadDir := viper.GetString("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = apperrors.HTTPErrorHandler(logger.Get())

	origins := viper.GetStringSlice("CORS_ORIGINS")
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     origins,
		AllowMethods:     []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.OPTIONS},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		ExposeHeaders:    []string{echo.HeaderContentLength},
		AllowCredentials: true,
		MaxAge:           86400,
	}))
	e.Use(logger.RequestLoggerMiddleware(logger.Get()))
	e.Use(logger.RecoveryMiddleware(logger.Get()))

	routes.RegisterRoutes(e, routes.Deps{
		DB:        db,
		Settings:  settings.NewService(db),
		Limiter:   middleware.NewCooldownLimiter(store),
		UploadDir: uploadDir,
	})

	addr := viper.GetString("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	log.Info("Server starting", logger.String("addr", addr))
	if err := e.Start(addr); err != nil {
		log.Error("Server stopped", err)
		os.Exit(1)
	}
}
