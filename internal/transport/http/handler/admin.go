package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"go-gin-gorm-todo/internal/core/auth"
	"go-gin-gorm-todo/internal/domain"
	"go-gin-gorm-todo/internal/service"
	"go-gin-gorm-todo/internal/transport/http/ez"
)

// AdminHandler 管理端接口，分组上已经挂了 AuthJWT(admin)
type AdminHandler struct {
	ids   *service.IdentityService
	todos *service.TodoService
}

func NewAdminHandler(ids *service.IdentityService, todos *service.TodoService) *AdminHandler {
	return &AdminHandler{ids: ids, todos: todos}
}

type userListIn struct {
	Offset int    `form:"offset,default=0"`
	Limit  int    `form:"limit,default=20"`
	Q      string `form:"q"` // 按 email/name 模糊搜
}

type userListOut struct {
	Users  []domain.User `json:"users"`
	Total  int64         `json:"total"`
	Offset int           `json:"offset"`
	Limit  int           `json:"limit"`
}

func (h *AdminHandler) MountAdmin(g *gin.RouterGroup) {
	e := ez.New(g)
	admin := []string{auth.RoleAdmin}

	ez.Register(e, ez.Action[userListIn, userListOut]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: ez.BindQuery,
		Roles:  admin,
		Handler: func(c *gin.Context, in *userListIn) (userListOut, error) {
			offset, limit := service.NormalizeOffset(in.Offset, in.Limit)
			us, total, err := h.ids.ListUsers(c.Request.Context(), offset, limit, strings.TrimSpace(in.Q))
			if err != nil {
				return userListOut{}, err
			}
			if us == nil {
				us = []domain.User{}
			}
			return userListOut{Users: us, Total: total, Offset: offset, Limit: limit}, nil
		},
	})

	ez.Register(e, ez.Action[struct{}, []domain.Todo]{
		Method: http.MethodGet,
		Path:   "/todos",
		Binder: ez.BindNone,
		Roles:  admin,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.Todo, error) {
			return h.todos.ListAll(c.Request.Context())
		},
	})

	ez.Register(e, ez.Action[struct{}, []domain.Todo]{
		Method: http.MethodPost,
		Path:   "/users/:id/seed",
		Binder: ez.BindNone,
		Roles:  admin,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.Todo, error) {
			return h.todos.BulkSeed(c.Request.Context(), c.Param("id"))
		},
	})

	ez.Register(e, ez.Action[struct{}, gin.H]{
		Method: http.MethodDelete,
		Path:   "/users/:id",
		Binder: ez.BindNone,
		Roles:  admin,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			id := c.Param("id")
			if err := h.ids.PurgeUser(c.Request.Context(), id); err != nil {
				return nil, err
			}
			return gin.H{"id": id}, nil
		},
	})
}
