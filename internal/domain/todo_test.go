package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTodoPatch_Apply(t *testing.T) {
	base := Todo{Name: "n", Description: "d", Time: "09:00", Status: StatusInProgress}

	done := StatusCompleted
	name := "renamed"
	tests := []struct {
		name  string
		patch TodoPatch
		want  Todo
	}{
		{name: "empty patch keeps everything", patch: TodoPatch{}, want: base},
		{
			name:  "status only",
			patch: TodoPatch{Status: &done},
			want:  Todo{Name: "n", Description: "d", Time: "09:00", Status: StatusCompleted},
		},
		{
			name:  "name only",
			patch: TodoPatch{Name: &name},
			want:  Todo{Name: "renamed", Description: "d", Time: "09:00", Status: StatusInProgress},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := base
			tt.patch.Apply(&got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTodoStatus_Valid(t *testing.T) {
	assert.True(t, StatusInProgress.Valid())
	assert.True(t, StatusCompleted.Valid())
	assert.False(t, TodoStatus("PENDING").Valid())
	assert.False(t, TodoStatus("").Valid())
}

func TestError_Is(t *testing.T) {
	err := NotFound("todo not found")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrConflict))
	assert.Equal(t, "todo not found", err.Error())
}
