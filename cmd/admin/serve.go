package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"go-gin-gorm-todo/internal/app"
	"go-gin-gorm-todo/internal/core/server"
	"go-gin-gorm-todo/internal/transport/http/router"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the admin HTTP API",
	Long:  "Starts the admin API on app.admin.host:port. Every /admin/v1 route requires a token with role admin (see the token command).",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return withApp(ctx, func(ctx context.Context, e *env, a *app.App) error {
			if e.cfg.App.Env != "local" {
				gin.SetMode(gin.ReleaseMode)
			}
			h := e.cfg.App.HTTP
			r := router.NewAdminEngine(e.log, h, a.JWT, a.Registry)

			ad := e.cfg.App.Admin
			addr := server.Addr(ad.Host, ad.Port)
			srv := server.BuildServer(addr, r,
				time.Duration(h.ReadTimeoutSec)*time.Second,
				time.Duration(h.WriteTimeoutSec)*time.Second,
				time.Duration(h.IdleTimeoutSec)*time.Second,
			)

			baseURL := server.BaseURL(ad.Host, ad.Port)
			e.log.Info("admin api starting",
				zap.String("addr", addr),
				zap.String("health", baseURL+"/health"),
				zap.String("admin_v1", baseURL+"/admin/v1"),
			)
			return server.Run(ctx, srv, e.log, 10*time.Second)
		})
	},
}
