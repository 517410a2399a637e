// Package app 组装两个进程共用的依赖：DB、JWT、仓储、服务、路由模块。
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	"go-gin-gorm-todo/internal/core/auth"
	"go-gin-gorm-todo/internal/core/config"
	"go-gin-gorm-todo/internal/core/database"
	"go-gin-gorm-todo/internal/core/logger"
	"go-gin-gorm-todo/internal/core/throttle"
	"go-gin-gorm-todo/internal/repo"
	"go-gin-gorm-todo/internal/service"
	"go-gin-gorm-todo/internal/transport/http/handler"
	"go-gin-gorm-todo/internal/transport/http/router"
)

type App struct {
	Cfg      *config.Config
	Log      *zap.Logger
	DB       *gorm.DB
	JWT      *auth.JWTer
	Identity *service.IdentityService
	Todos    *service.TodoService
	Registry *router.Registry

	rdb *redis.Client
}

func OpenDB(cfg *config.Config, l *zap.Logger) (*gorm.DB, error) {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
		Writer:             logger.ToStdLogger(l.Named("gorm"), zapcore.InfoLevel),
	})
	if err != nil {
		return nil, err
	}
	l.Info("database connected", zap.String("driver", cfg.DB.Driver))
	return db, nil
}

// New 打开数据库并按配置迁移；redis 地址为空时登录不限流
func New(ctx context.Context, cfg *config.Config, l *zap.Logger) (*App, error) {
	db, err := OpenDB(cfg, l)
	if err != nil {
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		if err := database.Migrate(cfg.DB.Driver, cfg.DB.DSN, db); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
		l.Info("migrate done")
	}

	a := &App{
		Cfg: cfg,
		Log: l,
		DB:  db,
		JWT: &auth.JWTer{
			Secret: []byte(cfg.JWT.Secret),
			Issuer: cfg.JWT.Issuer,
			TTL:    cfg.JWT.TTL(),
		},
	}

	var guard throttle.LoginGuard = throttle.Nop{}
	if cfg.Redis.Addr != "" {
		rdb, err := throttle.Dial(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.rdb = rdb
		guard = throttle.NewRedis(rdb, cfg.Auth.LoginMaxAttempts,
			time.Duration(cfg.Auth.LoginWindowSec)*time.Second, l.Named("throttle"))
		l.Info("login throttle enabled", zap.String("redis", cfg.Redis.Addr),
			zap.Int("maxAttempts", cfg.Auth.LoginMaxAttempts))
	}

	users := repo.NewUserRepo(db)
	a.Identity, err = service.NewIdentityService(users, a.JWT,
		service.IdentityConfig{BcryptCost: cfg.Auth.BcryptCost, Guard: guard}, l.Named("identity"))
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Todos = service.NewTodoService(repo.NewTodoRepo(db), users, l.Named("todo"))

	a.Registry = router.NewRegistry(
		handler.NewAuthHandler(a.Identity),
		handler.NewTodoHandler(a.Todos),
		handler.NewAdminHandler(a.Identity, a.Todos),
	)
	return a, nil
}

func (a *App) Close() {
	if a.rdb != nil {
		_ = a.rdb.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
