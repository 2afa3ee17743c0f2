// ABOUTME: Task pass-throughs on the engine, wrapping backend failures.
// ABOUTME: Keeps the CLI and MCP surfaces off the raw repository.
package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/harperreed/arete/internal/models"
	"github.com/harperreed/arete/internal/storage"
)

// CreateTask stores a new task.
func (e *Engine) CreateTask(ctx context.Context, task *models.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if task.Name == "" {
		return fmt.Errorf("task name required: %w", ErrInvalidArgument)
	}
	if err := e.repo.CreateTask(task); err != nil {
		return &StorageError{Op: "create task", Err: err}
	}
	return nil
}

// GetTask retrieves a task by ID or unambiguous ID prefix.
func (e *Engine) GetTask(ctx context.Context, idOrPrefix string) (*models.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	task, err := e.repo.GetTask(idOrPrefix)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("task %q: %w", idOrPrefix, ErrNotFound)
	}
	if err != nil {
		return nil, &StorageError{Op: "get task", Err: err}
	}
	return task, nil
}

// ListTasks returns all tasks in creation order.
func (e *Engine) ListTasks(ctx context.Context) ([]*models.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tasks, err := e.repo.ListTasks()
	if err != nil {
		return nil, &StorageError{Op: "list tasks", Err: err}
	}
	return tasks, nil
}

// DeleteTask removes a task by ID or unambiguous ID prefix.
func (e *Engine) DeleteTask(ctx context.Context, idOrPrefix string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := e.repo.DeleteTask(idOrPrefix)
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("task %q: %w", idOrPrefix, ErrNotFound)
	}
	if err != nil {
		return &StorageError{Op: "delete task", Err: err}
	}
	return nil
}
