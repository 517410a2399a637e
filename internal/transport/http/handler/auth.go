package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"go-gin-gorm-todo/internal/domain"
	"go-gin-gorm-todo/internal/service"
	"go-gin-gorm-todo/internal/transport/http/ez"
)

type AuthHandler struct {
	ids *service.IdentityService
}

func NewAuthHandler(ids *service.IdentityService) *AuthHandler { return &AuthHandler{ids: ids} }

func (h *AuthHandler) Priority() int { return 10 }

type registerIn struct {
	Name     string `json:"name"     binding:"required,notblank,max=255"`
	Gender   string `json:"gender"   binding:"required,notblank,max=100"`
	Country  string `json:"country"  binding:"required,notblank,max=100"`
	Hobbies  string `json:"hobbies"  binding:"required,notblank,max=255"`
	Email    string `json:"email"    binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

type loginIn struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) MountAPI(pub, _ *gin.RouterGroup) {
	e := ez.New(pub.Group("/auth"))

	ez.Register(e, ez.Action[registerIn, *domain.User]{
		Method: http.MethodPost,
		Path:   "/register",
		Binder: ez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *registerIn) (*domain.User, error) {
			return h.ids.Register(c.Request.Context(), service.RegisterInput{
				Name:     strings.TrimSpace(in.Name),
				Gender:   strings.TrimSpace(in.Gender),
				Country:  strings.TrimSpace(in.Country),
				Hobbies:  strings.TrimSpace(in.Hobbies),
				Email:    strings.TrimSpace(in.Email),
				Password: in.Password,
			})
		},
	})

	ez.Register(e, ez.Action[loginIn, *service.LoginResult]{
		Method: http.MethodPost,
		Path:   "/login",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *loginIn) (*service.LoginResult, error) {
			return h.ids.Login(c.Request.Context(), strings.TrimSpace(in.Email), in.Password)
		},
	})
}
