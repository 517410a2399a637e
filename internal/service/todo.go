package service

import (
	"context"
	"math"

	"go.uber.org/zap"

	"go-gin-gorm-todo/internal/domain"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
	// MaxOffset 超过它的窗口必然为空，截断以免乘法溢出
	MaxOffset = math.MaxInt32
)

// NormalizeOffset 负 offset 归零，过大截到 MaxOffset；limit 非正取默认，过大截断
func NormalizeOffset(offset, limit int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if offset > MaxOffset {
		offset = MaxOffset
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return offset, limit
}

// PageToOffset page 从 1 开始；超大 page 落到 MaxOffset，返回空窗口而不是回绕到第一页
func PageToOffset(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	_, limit = NormalizeOffset(0, limit)
	if page-1 > MaxOffset/limit {
		return MaxOffset, limit
	}
	return (page - 1) * limit, limit
}

type TodoService struct {
	todos domain.TodoStore
	users domain.UserStore
	log   *zap.Logger
}

func NewTodoService(todos domain.TodoStore, users domain.UserStore, l *zap.Logger) *TodoService {
	if l == nil {
		l = zap.NewNop()
	}
	return &TodoService{todos: todos, users: users, log: l}
}

type CreateTodoInput struct {
	Name        string
	Description string
	Time        string
	Status      domain.TodoStatus
}

func (s *TodoService) requireUser(ctx context.Context, uid string) error {
	u, err := s.users.FindByID(ctx, uid)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.NotFound("User not found")
	}
	return nil
}

func (s *TodoService) Create(ctx context.Context, uid string, in CreateTodoInput) (*domain.Todo, error) {
	if err := s.requireUser(ctx, uid); err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = domain.StatusInProgress
	}
	t := &domain.Todo{
		Name:        in.Name,
		Description: in.Description,
		Time:        in.Time,
		Status:      status,
		UserID:      uid,
	}
	if err := s.todos.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// ListAll 不按用户过滤，只挂在管理端
func (s *TodoService) ListAll(ctx context.Context) ([]domain.Todo, error) {
	return nonNil(s.todos.FindAll(ctx))
}

func (s *TodoService) ListMine(ctx context.Context, uid string) ([]domain.Todo, error) {
	return nonNil(s.todos.FindByOwner(ctx, uid))
}

// 空结果序列化成 [] 而不是 null
func nonNil(ts []domain.Todo, err error) ([]domain.Todo, error) {
	if err != nil {
		return nil, err
	}
	if ts == nil {
		ts = []domain.Todo{}
	}
	return ts, nil
}

func (s *TodoService) ListOffset(ctx context.Context, uid string, offset, limit int) (*domain.TodoPage, error) {
	offset, limit = NormalizeOffset(offset, limit)
	rows, total, err := s.todos.FindPage(ctx, uid, offset, limit)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []domain.Todo{}
	}
	return &domain.TodoPage{Todos: rows, Total: total, Offset: offset, Limit: limit}, nil
}

func (s *TodoService) ListPage(ctx context.Context, uid string, page, limit int) (*domain.TodoPage, error) {
	offset, limit := PageToOffset(page, limit)
	return s.ListOffset(ctx, uid, offset, limit)
}

func (s *TodoService) Update(ctx context.Context, uid, id string, patch domain.TodoPatch) (*domain.Todo, error) {
	t, err := s.todos.FindByIDAndOwner(ctx, id, uid)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.NotFound("Todo not found")
	}
	patch.Apply(t)
	if err := s.todos.Save(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Delete 没匹配到也不算错，affected=0
func (s *TodoService) Delete(ctx context.Context, uid, id string) (*domain.DeleteResult, error) {
	n, err := s.todos.Delete(ctx, id, uid)
	if err != nil {
		return nil, err
	}
	return &domain.DeleteResult{Affected: n}, nil
}
