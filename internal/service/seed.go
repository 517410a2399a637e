package service

import (
	"context"

	"go.uber.org/zap"

	"go-gin-gorm-todo/internal/domain"
)

type sampleTodo struct {
	Name        string
	Description string
	Time        string
	Label       string
}

var sampleTodos = []sampleTodo{
	{"Morning run", "5km around the park", "06:30", "COMPLETED"},
	{"Stand-up meeting", "Daily sync with the team", "09:30", "COMPLETED"},
	{"Review pull requests", "Go through the open review queue", "10:00", "IN_PROGRESS"},
	{"Lunch with Sam", "Noodle place downtown", "12:30", "PENDING"},
	{"Write report", "Quarterly summary for finance", "14:00", "IN_PROGRESS"},
	{"Dentist", "Regular check-up", "15:45", "PENDING"},
	{"Grocery shopping", "Milk, eggs, rice, vegetables", "18:00", "PENDING"},
	{"Cook dinner", "Try the new curry recipe", "19:00", "IN_PROGRESS"},
	{"Read", "Two chapters of the current book", "21:00", "PENDING"},
	{"Plan tomorrow", "Pick the top three tasks", "22:15", "COMPLETED"},
}

// StatusFromLabel 外部数据的状态标签，未知标签一律当作进行中
func StatusFromLabel(label string) domain.TodoStatus {
	switch label {
	case "COMPLETED":
		return domain.StatusCompleted
	default:
		return domain.StatusInProgress
	}
}

// BulkSeed 给用户写入一批示例 todo，同一事务
func (s *TodoService) BulkSeed(ctx context.Context, uid string) ([]domain.Todo, error) {
	if err := s.requireUser(ctx, uid); err != nil {
		return nil, err
	}
	batch := make([]domain.Todo, 0, len(sampleTodos))
	for _, it := range sampleTodos {
		batch = append(batch, domain.Todo{
			Name:        it.Name,
			Description: it.Description,
			Time:        it.Time,
			Status:      StatusFromLabel(it.Label),
			UserID:      uid,
		})
	}
	if err := s.todos.CreateBatch(ctx, batch); err != nil {
		return nil, err
	}
	s.log.Info("todos seeded", zap.String("uid", uid), zap.Int("count", len(batch)))
	return batch, nil
}
