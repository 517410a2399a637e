package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"go-gin-gorm-todo/internal/app"
	"go-gin-gorm-todo/internal/core/config"
	"go-gin-gorm-todo/internal/core/logger"
	"go-gin-gorm-todo/internal/core/server"
	"go-gin-gorm-todo/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log)
	defer cleanup()

	// 标准库 log 与 gin 自身输出统一进 zap
	undo := logger.RedirectStdLog(log, zapcore.InfoLevel)
	defer undo()
	gin.DefaultWriter = logger.ToWriter(log.Named("gin"), zapcore.DebugLevel)
	gin.DefaultErrorWriter = logger.ToWriter(log.Named("gin"), zapcore.ErrorLevel)
	if cfg.App.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("bootstrap failed", zap.Error(err))
	}
	defer a.Close()

	h := cfg.App.HTTP
	r := router.NewAPIEngine(log, h, a.JWT, a.Registry)
	addr := server.Addr(h.Host, h.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(h.ReadTimeoutSec)*time.Second,
		time.Duration(h.WriteTimeoutSec)*time.Second,
		time.Duration(h.IdleTimeoutSec)*time.Second,
	)

	baseURL := server.BaseURL(h.Host, h.Port)
	log.Info("todo api starting",
		zap.String("addr", addr),
		zap.String("open", baseURL+h.BasePath),
		zap.String("health", baseURL+"/health"),
		zap.Duration("tokenTTL", cfg.JWT.TTL()),
	)

	if err := server.Run(ctx, srv, log, 10*time.Second); err != nil {
		log.Error("todo api stopped with error", zap.Error(err))
		return
	}
	log.Info("todo api stopped gracefully")
}
