package repositories

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/pakbaz/todolist/models"
)

// TodoRepository is the persistence contract for todo records. Every call
// runs against a fresh store scope; implementations keep no per-request state.
type TodoRepository interface {
	Create(ctx context.Context, todo *models.Todo) (*models.Todo, error)
	List(ctx context.Context) ([]models.Todo, error)
	GetByID(ctx context.Context, id int64) (*models.Todo, error)
	GetByTitle(ctx context.Context, title string) (*models.Todo, error)
	Update(ctx context.Context, todo *models.Todo) (*models.Todo, error)
	DeleteByTitle(ctx context.Context, title string) (int64, error)
	SetDoneByTitle(ctx context.Context, title string, isDone bool) (int64, error)
	Count(ctx context.Context) (int, error)
	CountDone(ctx context.Context) (int, error)
	WithTx(tx bun.IDB) TodoRepository
}
