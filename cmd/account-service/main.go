package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eaglebank/banking/internal/account"
	accountcmd "github.com/eaglebank/banking/internal/command"
	"github.com/eaglebank/banking/internal/config"
	"github.com/eaglebank/banking/internal/handler"
	accountqry "github.com/eaglebank/banking/internal/query"
	"github.com/eaglebank/banking/internal/repository"
	"github.com/eaglebank/banking/internal/session"
	"github.com/eaglebank/banking/shared/events"
	"github.com/eaglebank/banking/shared/middleware"
	redisClient "github.com/eaglebank/banking/shared/redis"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Balance notifications are optional
	var publisher accountcmd.Publisher = events.NopPublisher{}
	if cfg.NotificationsEnabled() {
		redis, err := redisClient.NewClient(context.Background(), redisClient.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			logger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redis.Close()
		publisher = events.NewPublisher(redis.Client)
		logger.Info("balance notifications enabled", zap.String("redis_addr", cfg.Redis.Addr))
	}

	tokens, err := middleware.NewTokenAuthority([]byte(cfg.JWTSecret), cfg.SessionTTL)
	if err != nil {
		logger.Fatal("Failed to configure session tokens", zap.Error(err))
	}

	// --- CQRS wiring ---
	repo := repository.NewAccountRepository(session.NewRegistry())
	commandSvc := accountcmd.NewAccountCommandService(repo, account.NewBank(), publisher, logger)
	querySvc := accountqry.NewAccountQueryService(repo)

	router := handler.NewRouter(handler.RouterConfig{
		Accounts: handler.NewAccountHandler(commandSvc, querySvc),
		Sessions: handler.NewSessionHandler(commandSvc, tokens),
		Auth:     tokens.AuthMiddleware(),
		Logger:   logger,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Account service starting", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		logger.Error("Server failed", zap.Error(err))
		return
	case <-quit:
		logger.Info("Shutting down...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Error during server shutdown", zap.Error(err))
	}
	logger.Info("Server exited")
}
