package services

import "errors"

var (
	// ErrEmptyTitle rejects add/update calls whose title is empty after trimming.
	ErrEmptyTitle = errors.New("todo title must not be empty")
	// ErrTitleTooLong rejects titles longer than models.MaxTitleLength.
	ErrTitleTooLong = errors.New("todo title exceeds maximum length")
	// ErrTodoNotFound signals an update referencing an id with no matching row.
	ErrTodoNotFound = errors.New("todo not found")
)
