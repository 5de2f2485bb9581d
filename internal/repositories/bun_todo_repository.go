package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"github.com/pakbaz/todolist/models"
)

type BunTodoRepository struct {
	db bun.IDB
}

func NewBunTodoRepository(db bun.IDB) TodoRepository {
	return &BunTodoRepository{db: db}
}

func (r *BunTodoRepository) Create(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().
			Model(todo).
			Exec(ctx)
		if err != nil {
			return err
		}

		err = tx.NewSelect().
			Model(todo).
			WherePK().
			Scan(ctx)
		return err
	})

	return todo, err
}

func (r *BunTodoRepository) List(ctx context.Context) ([]models.Todo, error) {
	todos := make([]models.Todo, 0)
	err := r.db.NewSelect().
		Model(&todos).
		Order("created_at ASC").
		Scan(ctx)

	return todos, err
}

func (r *BunTodoRepository) GetByID(ctx context.Context, id int64) (*models.Todo, error) {
	todo := new(models.Todo)
	err := r.db.NewSelect().
		Model(todo).
		Where("id = ?", id).
		Scan(ctx)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return todo, err
}

// GetByTitle returns the oldest record with an exactly matching title, or nil.
// Titles are meant to be unique in practice but duplicates from a racing add
// are tolerated, hence the deterministic ordering.
func (r *BunTodoRepository) GetByTitle(ctx context.Context, title string) (*models.Todo, error) {
	todo := new(models.Todo)
	err := r.db.NewSelect().
		Model(todo).
		Where("title = ?", title).
		Order("created_at ASC").
		Limit(1).
		Scan(ctx)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return todo, err
}

func (r *BunTodoRepository) Update(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewUpdate().
			Model(todo).
			WherePK().
			Exec(ctx)
		if err != nil {
			return err
		}

		err = tx.NewSelect().
			Model(todo).
			WherePK().
			Scan(ctx)
		return err
	})

	return todo, err
}

// DeleteByTitle removes every record with an exactly matching title and
// reports how many rows were deleted.
func (r *BunTodoRepository) DeleteByTitle(ctx context.Context, title string) (int64, error) {
	res, err := r.db.NewDelete().
		Model(&models.Todo{}).
		Where("title = ?", title).
		Exec(ctx)
	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}

// SetDoneByTitle updates every record with an exactly matching title and
// reports how many rows were changed.
func (r *BunTodoRepository) SetDoneByTitle(ctx context.Context, title string, isDone bool) (int64, error) {
	res, err := r.db.NewUpdate().
		Model(&models.Todo{}).
		Set("is_done = ?", isDone).
		Set("updated_at = CURRENT_TIMESTAMP").
		Where("title = ?", title).
		Exec(ctx)
	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}

func (r *BunTodoRepository) Count(ctx context.Context) (int, error) {
	return r.db.NewSelect().
		Model(&models.Todo{}).
		Count(ctx)
}

func (r *BunTodoRepository) CountDone(ctx context.Context) (int, error) {
	return r.db.NewSelect().
		Model(&models.Todo{}).
		Where("is_done = ?", true).
		Count(ctx)
}

func (r *BunTodoRepository) WithTx(tx bun.IDB) TodoRepository {
	return &BunTodoRepository{db: tx}
}
