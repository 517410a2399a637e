package main

import (
	"context"
	"fmt"
	"os"

	_ "go.uber.org/automaxprocs"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"go-gin-gorm-todo/internal/app"
	"go-gin-gorm-todo/internal/core/config"
	"go-gin-gorm-todo/internal/core/logger"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "todo-admin",
	Short:         "Admin tooling for the todo service",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default $CONFIG_PATH or ./configs/config.local.yaml)")
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd, tokenCmd, purgeCmd)
}

// env 每个子命令共用：配置、日志
type env struct {
	cfg     *config.Config
	log     *zap.Logger
	cleanup func()
}

func loadEnv() (*env, error) {
	_ = godotenv.Load()
	cfg, err := config.Read(resolveConfigPath())
	if err != nil {
		return nil, err
	}
	log, cleanup := logger.New(cfg.Log)
	undo := logger.RedirectStdLog(log, zapcore.InfoLevel)
	gin.DefaultWriter = logger.ToWriter(log.Named("gin"), zapcore.DebugLevel)
	gin.DefaultErrorWriter = logger.ToWriter(log.Named("gin"), zapcore.ErrorLevel)
	return &env{cfg: cfg, log: log, cleanup: func() { undo(); cleanup() }}, nil
}

func resolveConfigPath() string {
	if configPath != "" {
		return configPath
	}
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return "./configs/config.local.yaml"
}

// withApp 加载配置并组装依赖，fn 返回后释放
func withApp(ctx context.Context, fn func(ctx context.Context, e *env, a *app.App) error) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer e.cleanup()

	a, err := app.New(ctx, e.cfg, e.log)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, e, a)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
