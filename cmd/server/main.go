package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/config"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/ai"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/api/handler"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/api/router"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/repository"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/service"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/internal/session"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/pkg/database"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/pkg/jwt"
	applogger "github.com/escambientalveracruz-cpu/RegistroElectronicoIA/pkg/logger"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/pkg/redis"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Initialize logging
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. Connect to the database and run migrations
	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("getting underlying sql.DB", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("database migration failed", zap.Error(err))
	}

	// 4. Connect to Redis. Optional: on failure the token blacklist and
	// AI rate limiting degrade, startup continues.
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("redis unavailable, token blacklist and rate limiting disabled", zap.Error(err))
		rdb = nil
	}

	// 5. JWT manager
	jwtMgr := jwt.NewManager(&cfg.Auth)

	// 6. Gemini client. Optional: without an API key the AI endpoints
	// report themselves unavailable.
	var gateway ai.Gateway
	if cfg.AI.APIKey != "" {
		gemini, err := ai.NewGeminiClient(context.Background(), &cfg.AI, logger)
		if err != nil {
			logger.Warn("gemini client unavailable, AI features disabled", zap.Error(err))
		} else {
			gateway = gemini
		}
	} else {
		logger.Info("no AI api key configured, AI features disabled")
	}

	// 7. Dependency injection: Repository → Sessions → Service → Handler
	repo := repository.NewRepository(db)
	sessions := session.NewManager(repo.Snapshot, &cfg.Session, logger)
	svc := service.NewService(cfg, repo, sessions, jwtMgr, rdb, gateway, logger)
	h := handler.NewHandler(svc)

	// 8. Router
	engine := router.Setup(cfg, h, jwtMgr, rdb, logger)

	// 9. HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // AI streaming responses are slow
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	// 10. Wait for a shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutdown signal received", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}

	// Flush dirty sessions before the database goes away.
	sessions.Close(ctx)

	if closeDB, err := db.DB(); err == nil {
		closeDB.Close()
	}
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("stopped")
}
