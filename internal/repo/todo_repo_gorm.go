package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"go-gin-gorm-todo/internal/domain"
	"go-gin-gorm-todo/pkg/utils"
)

type TodoRepo struct{ db *gorm.DB }

func NewTodoRepo(db *gorm.DB) *TodoRepo { return &TodoRepo{db: db} }

func (r *TodoRepo) Create(ctx context.Context, t *domain.Todo) error {
	if t.ID == "" {
		t.ID = utils.NewID()
	}
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		return fmt.Errorf("create todo: %w", err)
	}
	return nil
}

func (r *TodoRepo) CreateBatch(ctx context.Context, ts []domain.Todo) error {
	if len(ts) == 0 {
		return nil
	}
	for i := range ts {
		if ts[i].ID == "" {
			ts[i].ID = utils.NewID()
		}
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&ts).Error
	})
	if err != nil {
		return fmt.Errorf("create todos: %w", err)
	}
	return nil
}

func (r *TodoRepo) FindAll(ctx context.Context) ([]domain.Todo, error) {
	todos := []domain.Todo{}
	if err := r.db.WithContext(ctx).Order("created_at desc").Order("id desc").Find(&todos).Error; err != nil {
		return nil, fmt.Errorf("find todos: %w", err)
	}
	return todos, nil
}

func (r *TodoRepo) FindByOwner(ctx context.Context, uid string) ([]domain.Todo, error) {
	todos := []domain.Todo{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", uid).
		Order("created_at desc").Order("id desc").
		Find(&todos).Error
	if err != nil {
		return nil, fmt.Errorf("find todos by owner: %w", err)
	}
	return todos, nil
}

func (r *TodoRepo) FindByIDAndOwner(ctx context.Context, id, uid string) (*domain.Todo, error) {
	var t domain.Todo
	err := r.db.WithContext(ctx).First(&t, "id = ? AND user_id = ?", id, uid).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find todo: %w", err)
	}
	return &t, nil
}

// FindPage total 为不受窗口影响的总数
func (r *TodoRepo) FindPage(ctx context.Context, uid string, offset, limit int) ([]domain.Todo, int64, error) {
	tx := r.db.WithContext(ctx).Model(&domain.Todo{}).Where("user_id = ?", uid)
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count todos: %w", err)
	}
	todos := make([]domain.Todo, 0, limit)
	err := tx.Order("created_at desc").Order("id desc").
		Offset(offset).Limit(limit).
		Find(&todos).Error
	if err != nil {
		return nil, 0, fmt.Errorf("page todos: %w", err)
	}
	return todos, total, nil
}

func (r *TodoRepo) Save(ctx context.Context, t *domain.Todo) error {
	if err := r.db.WithContext(ctx).Omit("User").Save(t).Error; err != nil {
		return fmt.Errorf("save todo: %w", err)
	}
	return nil
}

func (r *TodoRepo) Delete(ctx context.Context, id, uid string) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, uid).Delete(&domain.Todo{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete todo: %w", res.Error)
	}
	return res.RowsAffected, nil
}
