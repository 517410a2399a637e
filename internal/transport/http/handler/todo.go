package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-gin-gorm-todo/internal/domain"
	"go-gin-gorm-todo/internal/service"
	"go-gin-gorm-todo/internal/transport/http/ez"
)

type TodoHandler struct {
	todos *service.TodoService
}

func NewTodoHandler(todos *service.TodoService) *TodoHandler { return &TodoHandler{todos: todos} }

func (h *TodoHandler) Priority() int { return 20 }

type createTodoIn struct {
	Name        string            `json:"name"        binding:"required,notblank,max=100"`
	Description string            `json:"description" binding:"required,max=255"`
	Time        string            `json:"time"        binding:"required,clock"`
	Status      domain.TodoStatus `json:"status"      binding:"omitempty,oneof=in_progress completed"`
}

type updateTodoIn struct {
	Name        *string            `json:"name"        binding:"omitempty,max=100"`
	Description *string            `json:"description" binding:"omitempty,max=255"`
	Time        *string            `json:"time"        binding:"omitempty,clock"`
	Status      *domain.TodoStatus `json:"status"      binding:"omitempty,oneof=in_progress completed"`
}

// 都不传时返回全部自己的 todo（数组），否则走分页
type listIn struct {
	Offset *int `form:"offset"`
	Limit  *int `form:"limit"`
}

type pageIn struct {
	Page  int `form:"page,default=1"`
	Limit int `form:"limit,default=10"`
}

func deref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func (h *TodoHandler) MountAPI(_, priv *gin.RouterGroup) {
	e := ez.New(priv.Group("/todos"))

	ez.Register(e, ez.Action[createTodoIn, *domain.Todo]{
		Method: http.MethodPost,
		Path:   "",
		Binder: ez.BindJSON,
		Auth:   true,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *createTodoIn) (*domain.Todo, error) {
			return h.todos.Create(c.Request.Context(), ez.UserID(c), service.CreateTodoInput{
				Name:        in.Name,
				Description: in.Description,
				Time:        in.Time,
				Status:      in.Status,
			})
		},
	})

	ez.Register(e, ez.Action[listIn, any]{
		Method: http.MethodGet,
		Path:   "",
		Binder: ez.BindQuery,
		Auth:   true,
		Handler: func(c *gin.Context, in *listIn) (any, error) {
			if in.Offset == nil && in.Limit == nil {
				return h.todos.ListMine(c.Request.Context(), ez.UserID(c))
			}
			return h.todos.ListOffset(c.Request.Context(), ez.UserID(c), deref(in.Offset), deref(in.Limit))
		},
	})

	ez.Register(e, ez.Action[pageIn, *domain.TodoPage]{
		Method: http.MethodGet,
		Path:   "/paginated",
		Binder: ez.BindQuery,
		Auth:   true,
		Handler: func(c *gin.Context, in *pageIn) (*domain.TodoPage, error) {
			return h.todos.ListPage(c.Request.Context(), ez.UserID(c), in.Page, in.Limit)
		},
	})

	ez.Register(e, ez.Action[struct{}, []domain.Todo]{
		Method: http.MethodPost,
		Path:   "/bulk",
		Binder: ez.BindNone,
		Auth:   true,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.Todo, error) {
			return h.todos.BulkSeed(c.Request.Context(), ez.UserID(c))
		},
	})

	ez.Register(e, ez.Action[updateTodoIn, *domain.Todo]{
		Method: http.MethodPut,
		Path:   "/:id",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *updateTodoIn) (*domain.Todo, error) {
			return h.todos.Update(c.Request.Context(), ez.UserID(c), c.Param("id"), domain.TodoPatch{
				Name:        in.Name,
				Description: in.Description,
				Time:        in.Time,
				Status:      in.Status,
			})
		},
	})

	ez.Register(e, ez.Action[struct{}, *domain.DeleteResult]{
		Method: http.MethodDelete,
		Path:   "/:id",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.DeleteResult, error) {
			return h.todos.Delete(c.Request.Context(), ez.UserID(c), c.Param("id"))
		},
	})
}
