package repo

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-gin-gorm-todo/internal/core/database/dbtest"
	"go-gin-gorm-todo/internal/domain"
)

func newUser(email string) *domain.User {
	return &domain.User{
		Name: "Ann", Gender: "female", Country: "NZ", Hobbies: "climbing",
		Email: email, PasswordHash: "hash",
	}
}

func TestUserRepo_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	users := NewUserRepo(dbtest.Open(t))

	u := newUser("ann@example.com")
	require.NoError(t, users.Create(ctx, u))
	assert.NotEmpty(t, u.ID)
	assert.False(t, u.CreatedAt.IsZero())

	byID, err := users.FindByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "ann@example.com", byID.Email)
	assert.Equal(t, "hash", byID.PasswordHash)

	byEmail, err := users.FindByEmail(ctx, "ann@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, u.ID, byEmail.ID)

	missing, err := users.FindByEmail(ctx, "ANN@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing, "email lookup is case-sensitive")

	missing, err = users.FindByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepo_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)
	users := NewUserRepo(db)

	require.NoError(t, users.Create(ctx, newUser("dup@example.com")))
	err := users.Create(ctx, newUser("dup@example.com"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))

	var n int64
	require.NoError(t, db.Model(&domain.User{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestUserRepo_List(t *testing.T) {
	ctx := context.Background()
	users := NewUserRepo(dbtest.Open(t))
	for i := 0; i < 3; i++ {
		require.NoError(t, users.Create(ctx, newUser(fmt.Sprintf("u%d@example.com", i))))
	}
	require.NoError(t, users.Create(ctx, newUser("other@test.org")))

	got, total, err := users.List(ctx, 0, 2, "")
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	assert.Len(t, got, 2)

	got, total, err = users.List(ctx, 0, 10, "test.org")
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, got, 1)
	assert.Equal(t, "other@test.org", got[0].Email)

	// 大小写不敏感
	got, total, err = users.List(ctx, 0, 10, "TEST.Org")
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, got, 1)
	assert.Equal(t, "other@test.org", got[0].Email)
}

func TestUserRepo_DeleteCascadesTodos(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)
	users, todos := NewUserRepo(db), NewTodoRepo(db)

	u := newUser("gone@example.com")
	require.NoError(t, users.Create(ctx, u))
	require.NoError(t, todos.Create(ctx, &domain.Todo{Name: "a", Description: "b", Time: "10:00", Status: domain.StatusInProgress, UserID: u.ID}))

	n, err := users.Delete(ctx, u.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	left, err := todos.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestTodoRepo_ForeignKeyRequired(t *testing.T) {
	todos := NewTodoRepo(dbtest.Open(t))
	err := todos.Create(context.Background(), &domain.Todo{Name: "x", Description: "y", Time: "08:00", Status: domain.StatusInProgress, UserID: "no-such-user"})
	assert.Error(t, err)
}

func TestTodoRepo_OwnerScoping(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)
	users, todos := NewUserRepo(db), NewTodoRepo(db)

	a, b := newUser("a@example.com"), newUser("b@example.com")
	require.NoError(t, users.Create(ctx, a))
	require.NoError(t, users.Create(ctx, b))

	ta := &domain.Todo{Name: "a1", Description: "d", Time: "07:30", Status: domain.StatusInProgress, UserID: a.ID}
	require.NoError(t, todos.Create(ctx, ta))
	require.NoError(t, todos.Create(ctx, &domain.Todo{Name: "b1", Description: "d", Time: "07:30", Status: domain.StatusCompleted, UserID: b.ID}))

	got, err := todos.FindByIDAndOwner(ctx, ta.ID, a.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "a1", got.Name)

	got, err = todos.FindByIDAndOwner(ctx, ta.ID, b.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	mine, err := todos.FindByOwner(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "b1", mine[0].Name)

	all, err := todos.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	n, err := todos.Delete(ctx, ta.ID, b.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	n, err = todos.Delete(ctx, ta.ID, a.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestTodoRepo_FindPage(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)
	users, todos := NewUserRepo(db), NewTodoRepo(db)
	u := newUser("pager@example.com")
	require.NoError(t, users.Create(ctx, u))

	batch := make([]domain.Todo, 0, 15)
	for i := 0; i < 15; i++ {
		batch = append(batch, domain.Todo{
			Name: fmt.Sprintf("t%02d", i), Description: "d", Time: "12:00",
			Status: domain.StatusInProgress, UserID: u.ID,
		})
	}
	require.NoError(t, todos.CreateBatch(ctx, batch))
	for _, td := range batch {
		assert.NotEmpty(t, td.ID)
	}

	page, total, err := todos.FindPage(ctx, u.ID, 10, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 15, total)
	assert.Len(t, page, 5)

	page, total, err = todos.FindPage(ctx, u.ID, 0, 3)
	require.NoError(t, err)
	assert.EqualValues(t, 15, total)
	require.Len(t, page, 3)
	for i := 1; i < len(page); i++ {
		assert.False(t, page[i].CreatedAt.After(page[i-1].CreatedAt), "newest first")
	}
}

func TestTodoRepo_SaveAdvancesUpdatedAt(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)
	users, todos := NewUserRepo(db), NewTodoRepo(db)
	u := newUser("save@example.com")
	require.NoError(t, users.Create(ctx, u))

	td := &domain.Todo{Name: "n", Description: "d", Time: "06:00", Status: domain.StatusInProgress, UserID: u.ID}
	require.NoError(t, todos.Create(ctx, td))
	before := td.UpdatedAt

	time.Sleep(10 * time.Millisecond)
	td.Status = domain.StatusCompleted
	require.NoError(t, todos.Save(ctx, td))

	got, err := todos.FindByIDAndOwner(ctx, td.ID, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, domain.StatusCompleted, got.Status)
	assert.True(t, got.UpdatedAt.After(before))
	assert.True(t, got.CreatedAt.Equal(td.CreatedAt))
}
