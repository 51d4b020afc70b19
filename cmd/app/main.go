package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"task_tracker/internal/config"
	"task_tracker/internal/db"
	httpServer "task_tracker/internal/http"
	"task_tracker/internal/http/handlers"
	"task_tracker/internal/http/middleware"
	"task_tracker/internal/logger"
	"task_tracker/internal/repository"
	"task_tracker/internal/repository/memory"
	"task_tracker/internal/service"
	"task_tracker/internal/ws"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)

	var (
		taskStore  service.TaskStore
		userStore  service.UserStore
		auditStore service.AuditStore
		pinger     handlers.Pinger
	)
	if cfg.DatabaseURL != "" {
		pool := db.Connect(cfg.DatabaseURL)
		defer pool.Close()
		taskStore = repository.NewTaskRepository(pool)
		userStore = repository.NewUserRepository(pool)
		auditStore = repository.NewAuditRepository(pool)
		pinger = pool
	} else {
		logger.Warn("DATABASE_URL not set, using in-memory store; data is lost on restart")
		taskStore = memory.NewTaskStore()
		userStore = memory.NewUserStore()
		auditStore = memory.NewAuditStore()
	}

	middleware.InitRedisRateLimiter(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer middleware.CloseRedisRateLimiter()

	tokens := service.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	audit := service.NewAuditService(auditStore)
	auth := service.NewAuthService(userStore, service.NewPasswordHasher(service.DefaultBcryptCost), tokens, audit)
	hub := ws.NewHub()
	taskSvc := service.NewTaskService(taskStore, audit, hub, cfg.StatsLocation)

	gin.SetMode(gin.ReleaseMode)
	r := httpServer.NewRouter(cfg, httpServer.Deps{
		Handler: handlers.NewHandler(auth, taskSvc, audit),
		Health:  handlers.NewHealthHandler(pinger, cfg.Version),
		Hub:     hub,
		Tokens:  tokens,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort, "version", cfg.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
