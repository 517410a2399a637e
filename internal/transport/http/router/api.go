package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"go-gin-gorm-todo/internal/core/auth"
	"go-gin-gorm-todo/internal/core/config"
	"go-gin-gorm-todo/internal/core/server"
	"go-gin-gorm-todo/internal/transport/http/ez"
	mdw "go-gin-gorm-todo/internal/transport/http/middleware"
)

// 通用中间件链，api/admin 共用
func baseEngine(l *zap.Logger, cfg config.HTTP, name string) *gin.Engine {
	ez.SetupValidator()

	r := server.NewRouter(l, cfg.CORSOrigins)
	r.Use(
		mdw.RequestID(),
		mdw.AccessLog(l),
		mdw.Metrics(name),
		mdw.RateLimit(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst),
		mdw.RateLimitPerIP(rate.Limit(cfg.PerIPRPS), cfg.PerIPBurst, 10*time.Minute),
		mdw.ConcurrencyLimit(cfg.MaxConcurrent),
		mdw.MaxBodyBytes(cfg.MaxBodyMB<<20),
		mdw.Timeout(time.Duration(cfg.RequestTimeoutSec)*time.Second),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return r
}

// NewAPIEngine 用户端：basePath 下挂公开分组和鉴权分组
func NewAPIEngine(l *zap.Logger, cfg config.HTTP, jwter *auth.JWTer, reg *Registry) *gin.Engine {
	r := baseEngine(l, cfg, "api")

	pub := r.Group(cfg.BasePath)
	priv := pub.Group("")
	priv.Use(mdw.AuthJWT(jwter, ""))

	reg.MountAPI(pub, priv)
	return r
}
