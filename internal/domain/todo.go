package domain

import (
	"context"
	"time"
)

type TodoStatus string

const (
	StatusInProgress TodoStatus = "in_progress"
	StatusCompleted  TodoStatus = "completed"
)

func (s TodoStatus) Valid() bool {
	return s == StatusInProgress || s == StatusCompleted
}

type Todo struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	Name        string     `gorm:"size:100;not null" json:"name"`
	Description string     `gorm:"size:255;not null" json:"description"`
	Time        string     `gorm:"size:8;not null" json:"time"`
	Status      TodoStatus `gorm:"size:16;not null;default:in_progress" json:"status"`
	UserID      string     `gorm:"size:36;not null;index" json:"userId"`
	User        *User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt   time.Time  `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Todo) TableName() string { return "todos" }

// TodoPatch nil 字段保持原值
type TodoPatch struct {
	Name        *string
	Description *string
	Time        *string
	Status      *TodoStatus
}

func (p TodoPatch) Apply(t *Todo) {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Time != nil {
		t.Time = *p.Time
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
}

type TodoPage struct {
	Todos  []Todo `json:"todos"`
	Total  int64  `json:"total"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
}

type DeleteResult struct {
	Affected int64 `json:"affected"`
}

// TodoStore 所有按 owner 的查询都同时匹配 id 与 user_id
type TodoStore interface {
	Create(ctx context.Context, t *Todo) error
	CreateBatch(ctx context.Context, ts []Todo) error
	FindAll(ctx context.Context) ([]Todo, error)
	FindByOwner(ctx context.Context, uid string) ([]Todo, error)
	FindByIDAndOwner(ctx context.Context, id, uid string) (*Todo, error)
	FindPage(ctx context.Context, uid string, offset, limit int) ([]Todo, int64, error)
	Save(ctx context.Context, t *Todo) error
	Delete(ctx context.Context, id, uid string) (int64, error)
}
