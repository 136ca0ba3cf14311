package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	_ "contactbook/docs" // swagger docs

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"contactbook/internal/auth"
	"contactbook/internal/cache"
	"contactbook/internal/config"
	"contactbook/internal/db"
	"contactbook/internal/handler"
	"contactbook/internal/mailer"
	"contactbook/internal/model"
	"contactbook/internal/repository"
	"contactbook/internal/router"
	"contactbook/internal/service"
	"contactbook/internal/storage"
)

// @title Contacts API
// @version 1.0
// @description Contacts management API with JWT authentication, email confirmation, and birthday reminders.
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, relying on environment")
	}
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(&model.User{}, &model.Contact{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := cacheClient.Ping(ctx); err != nil {
		log.Printf("redis unavailable, running without cache: %v", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	contactRepo := repository.NewContactRepository(gormDB)

	// Token service and confirmation-mail worker
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	smtpSender := &mailer.SMTPSender{
		Host:     cfg.MailHost,
		Port:     cfg.MailPort,
		Username: cfg.MailUsername,
		Password: cfg.MailPassword,
		From:     cfg.MailFrom,
	}
	mailWorker := mailer.New(smtpSender, jwtService, cfg.BaseURL, 64)
	go mailWorker.Run(ctx)

	avatarStorage, err := storage.NewS3(ctx, cfg.S3Endpoint, cfg.S3Region, cfg.S3Bucket, cfg.S3AccessKey, cfg.S3SecretKey)
	if err != nil {
		log.Fatalf("object storage init: %v", err)
	}

	// Services
	authService := service.NewAuthService(userRepo, jwtService, mailWorker)
	contactService := service.NewContactService(contactRepo, cacheClient)
	userService := service.NewUserService(userRepo, avatarStorage)

	// Handlers
	healthHandler := handler.NewHealthHandler(gormDB)
	authHandler := handler.NewAuthHandler(authService)
	contactHandler := handler.NewContactHandler(contactService)
	userHandler := handler.NewUserHandler(userService)

	router.Register(e, cfg, userRepo, healthHandler, authHandler, contactHandler, userHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
