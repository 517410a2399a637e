package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-gin-gorm-todo/internal/core/auth"
	"go-gin-gorm-todo/internal/core/config"
	mdw "go-gin-gorm-todo/internal/transport/http/middleware"
)

// NewAdminEngine 管理端 v1，统一要求 admin 角色
func NewAdminEngine(l *zap.Logger, cfg config.HTTP, jwter *auth.JWTer, reg *Registry) *gin.Engine {
	r := baseEngine(l, cfg, "admin")

	admin := r.Group("/admin/v1")
	admin.Use(mdw.AuthJWT(jwter, auth.RoleAdmin))
	reg.MountAdmin(admin)
	return r
}
