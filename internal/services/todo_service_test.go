package services

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/pakbaz/todolist/internal/migrations"
	"github.com/pakbaz/todolist/internal/repositories"
	"github.com/pakbaz/todolist/models"
)

// newTestService builds a service over an in-memory SQLite database with the
// real schema applied.
func newTestService(t *testing.T) (TodoService, repositories.TodoRepository) {
	t.Helper()

	sqlDB, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// A second pooled connection would see its own empty in-memory database.
	sqlDB.SetMaxOpenConns(1)

	db := bun.NewDB(sqlDB, sqlitedialect.New())
	t.Cleanup(func() { db.Close() })

	require.NoError(t, migrations.Run(context.Background(), slog.Default(), "info", "sqlite", db))

	repo := repositories.NewBunTodoRepository(db)

	return NewTodoService(repo, nil, slog.Default()), repo
}

func TestAdd_CreatesTodo(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	todo, created, err := service.Add(ctx, "  Buy milk  ", false)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotZero(t, todo.ID)
	assert.Equal(t, "Buy milk", todo.Title)
	assert.False(t, todo.IsDone)
	assert.False(t, todo.CreatedAt.IsZero())
}

func TestAdd_DuplicateTitleReturnsExisting(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	first, created, err := service.Add(ctx, "Buy milk", false)
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := service.Add(ctx, "Buy milk", true)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	// The existing record is returned unchanged.
	assert.False(t, second.IsDone)

	count, err := service.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestAdd_RejectsInvalidTitles(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	_, _, err := service.Add(ctx, "", false)
	assert.ErrorIs(t, err, ErrEmptyTitle)

	_, _, err = service.Add(ctx, "   ", false)
	assert.ErrorIs(t, err, ErrEmptyTitle)

	_, _, err = service.Add(ctx, strings.Repeat("x", models.MaxTitleLength+1), false)
	assert.ErrorIs(t, err, ErrTitleTooLong)

	count, err := service.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestList_OrderedByCreation(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	for _, title := range []string{"first", "second", "third"} {
		_, _, err := service.Add(ctx, title, false)
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond)
	}

	todos, err := service.List(ctx)
	require.NoError(t, err)
	require.Len(t, todos, 3)
	assert.Equal(t, "first", todos[0].Title)
	assert.Equal(t, "second", todos[1].Title)
	assert.Equal(t, "third", todos[2].Title)
}

func TestRemoveByTitle_RemovesAllMatches(t *testing.T) {
	service, repo := newTestService(t)
	ctx := context.Background()

	_, _, err := service.Add(ctx, "duplicate", false)
	require.NoError(t, err)

	// Simulate a duplicate slipped in by a racing add.
	_, err = repo.Create(ctx, &models.Todo{Title: "duplicate"})
	require.NoError(t, err)

	_, _, err = service.Add(ctx, "keep me", false)
	require.NoError(t, err)

	removed, err := service.RemoveByTitle(ctx, "duplicate")
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	count, err := service.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRemoveByTitle_NoMatchIsNoop(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	removed, err := service.RemoveByTitle(ctx, "missing")
	require.NoError(t, err)
	assert.Equal(t, int64(0), removed)

	removed, err = service.RemoveByTitle(ctx, "  ")
	require.NoError(t, err)
	assert.Equal(t, int64(0), removed)
}

func TestSetDone_UpdatesAllMatches(t *testing.T) {
	service, repo := newTestService(t)
	ctx := context.Background()

	_, _, err := service.Add(ctx, "chore", false)
	require.NoError(t, err)

	_, err = repo.Create(ctx, &models.Todo{Title: "chore"})
	require.NoError(t, err)

	updated, err := service.SetDone(ctx, "chore", true)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated)

	todos, err := service.List(ctx)
	require.NoError(t, err)
	for _, todo := range todos {
		assert.True(t, todo.IsDone)
	}

	updated, err = service.SetDone(ctx, "missing", true)
	require.NoError(t, err)
	assert.Equal(t, int64(0), updated)
}

func TestUpdateByID(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	todo, _, err := service.Add(ctx, "old title", false)
	require.NoError(t, err)

	updated, err := service.UpdateByID(ctx, &models.Todo{ID: todo.ID, Title: "new title", IsDone: true})
	require.NoError(t, err)
	assert.Equal(t, todo.ID, updated.ID)
	assert.Equal(t, "new title", updated.Title)
	assert.True(t, updated.IsDone)

	// The old title is gone from the list, not duplicated alongside the new one.
	todos, err := service.List(ctx)
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, "new title", todos[0].Title)

	_, err = service.UpdateByID(ctx, &models.Todo{ID: 9999, Title: "ghost"})
	assert.ErrorIs(t, err, ErrTodoNotFound)

	_, err = service.UpdateByID(ctx, &models.Todo{ID: todo.ID, Title: ""})
	assert.ErrorIs(t, err, ErrEmptyTitle)
}

func TestTitleMatchingIsCaseSensitive(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	_, created, err := service.Add(ctx, "task", false)
	require.NoError(t, err)
	assert.True(t, created)

	// Differently-cased title is a distinct todo, not a duplicate.
	_, created, err = service.Add(ctx, "Task", false)
	require.NoError(t, err)
	assert.True(t, created)

	count, err := service.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	removed, err := service.RemoveByTitle(ctx, "TASK")
	require.NoError(t, err)
	assert.Equal(t, int64(0), removed)

	updated, err := service.SetDone(ctx, "task", true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated)
}

func TestCounts(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	_, _, err := service.Add(ctx, "one", false)
	require.NoError(t, err)
	_, _, err = service.Add(ctx, "two", true)
	require.NoError(t, err)
	_, _, err = service.Add(ctx, "three", true)
	require.NoError(t, err)

	count, err := service.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	completed, err := service.CountCompleted(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, completed)
}
