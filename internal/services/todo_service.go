package services

import (
	"context"
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/pakbaz/todolist/events"
	"github.com/pakbaz/todolist/internal/repositories"
	"github.com/pakbaz/todolist/models"
)

// TodoService owns every business rule of the todo list. Handlers never touch
// the repository directly.
type TodoService interface {
	List(ctx context.Context) ([]models.Todo, error)
	Add(ctx context.Context, title string, isDone bool) (todo *models.Todo, created bool, err error)
	RemoveByTitle(ctx context.Context, title string) (int64, error)
	SetDone(ctx context.Context, title string, isDone bool) (int64, error)
	UpdateByID(ctx context.Context, todo *models.Todo) (*models.Todo, error)
	Count(ctx context.Context) (int, error)
	CountCompleted(ctx context.Context) (int, error)
}

type todoService struct {
	repo   repositories.TodoRepository
	bus    models.EventPublisher
	logger models.Logger
}

func NewTodoService(repo repositories.TodoRepository, bus models.EventPublisher, logger models.Logger) TodoService {
	return &todoService{repo: repo, bus: bus, logger: logger}
}

func (s *todoService) List(ctx context.Context) ([]models.Todo, error) {
	return s.repo.List(ctx)
}

// Add inserts a new todo unless one with the exact same title already exists,
// in which case the existing record is returned unchanged. Uniqueness is a
// read-then-write check, not a database constraint; two concurrent adds with
// the same title can both insert.
func (s *todoService) Add(ctx context.Context, title string, isDone bool) (*models.Todo, bool, error) {
	title = strings.TrimSpace(title)
	if err := validateTitle(title); err != nil {
		return nil, false, err
	}

	existing, err := s.repo.GetByTitle(ctx, title)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		s.logger.Warn("todo with this title already exists, returning existing record",
			"title", title, "id", existing.ID)
		return existing, false, nil
	}

	todo := &models.Todo{
		Title:  title,
		IsDone: isDone,
	}

	created, err := s.repo.Create(ctx, todo)
	if err != nil {
		return nil, false, err
	}

	s.publish(ctx, events.TodoCreated, created)

	return created, true, nil
}

// RemoveByTitle deletes every record matching the title and returns the count.
// An empty title is a no-op, not an error.
func (s *todoService) RemoveByTitle(ctx context.Context, title string) (int64, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return 0, nil
	}

	removed, err := s.repo.DeleteByTitle(ctx, title)
	if err != nil {
		return 0, err
	}

	if removed > 0 {
		s.publish(ctx, events.TodoRemoved, map[string]any{"title": title, "count": removed})
	}

	return removed, nil
}

// SetDone updates every record matching the title and returns the count.
// An empty title or no match is a no-op returning 0.
func (s *todoService) SetDone(ctx context.Context, title string, isDone bool) (int64, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return 0, nil
	}

	updated, err := s.repo.SetDoneByTitle(ctx, title, isDone)
	if err != nil {
		return 0, err
	}

	if updated > 0 {
		eventType := events.TodoUpdated
		if isDone {
			eventType = events.TodoCompleted
		}
		s.publish(ctx, eventType, map[string]any{"title": title, "isDone": isDone, "count": updated})
	}

	return updated, nil
}

// UpdateByID overwrites title and done state of the record with the given id.
func (s *todoService) UpdateByID(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	title := strings.TrimSpace(todo.Title)
	if err := validateTitle(title); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, todo.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrTodoNotFound
	}

	existing.Title = title
	existing.IsDone = todo.IsDone

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.TodoUpdated, updated)

	return updated, nil
}

func (s *todoService) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *todoService) CountCompleted(ctx context.Context) (int, error) {
	return s.repo.CountDone(ctx)
}

func validateTitle(title string) error {
	if title == "" {
		return ErrEmptyTitle
	}
	if utf8.RuneCountInString(title) > models.MaxTitleLength {
		return ErrTitleTooLong
	}
	return nil
}

// publish emits an event after a successful mutation. Bus failures are logged
// and never fail the operation itself.
func (s *todoService) publish(ctx context.Context, eventType string, payload any) {
	if s.bus == nil {
		return
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error("failed to marshal event payload", "event_type", eventType, "error", err)
		return
	}

	if err := s.bus.Publish(ctx, models.Event{Type: eventType, Payload: raw}); err != nil {
		s.logger.Error("failed to publish event", "event_type", eventType, "error", err)
	}
}
