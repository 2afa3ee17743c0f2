// ABOUTME: Task CRUD operations for SQLite storage.
// ABOUTME: Slice fields are stored as JSON text columns.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/arete/internal/models"
)

// CreateTask stores a new task.
func (d *DB) CreateTask(t *models.Task) error {
	weekdays, labels, history, err := marshalTaskFields(t)
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}

	query := `
		INSERT INTO tasks (id, name, category, domain, recurrence, weekdays, priority,
			labels, current_streak, best_streak, total_completions, completion_history, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = d.db.Exec(query,
		t.ID.String(), t.Name, t.Category, string(t.Domain), string(t.Recurrence),
		weekdays, t.Priority, labels,
		t.CurrentStreak, t.BestStreak, t.TotalCompletions, history,
		t.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// GetTask retrieves a task by ID or ID prefix.
func (d *DB) GetTask(idOrPrefix string) (*models.Task, error) {
	id, err := d.resolveTaskID(idOrPrefix)
	if err != nil {
		return nil, err
	}

	row := d.db.QueryRow(taskSelect+" WHERE id = ?", id)
	return scanTask(row)
}

// UpdateTask replaces a task's mutable fields.
func (d *DB) UpdateTask(t *models.Task) error {
	weekdays, labels, history, err := marshalTaskFields(t)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}

	query := `
		UPDATE tasks SET name = ?, category = ?, domain = ?, recurrence = ?, weekdays = ?,
			priority = ?, labels = ?, current_streak = ?, best_streak = ?,
			total_completions = ?, completion_history = ?
		WHERE id = ?
	`
	result, err := d.db.Exec(query,
		t.Name, t.Category, string(t.Domain), string(t.Recurrence), weekdays,
		t.Priority, labels, t.CurrentStreak, t.BestStreak,
		t.TotalCompletions, history, t.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("task %s: %w", t.ID, ErrNotFound)
	}
	return nil
}

// ListTasks retrieves all tasks ordered by creation time ascending.
func (d *DB) ListTasks() ([]*models.Task, error) {
	rows, err := d.db.Query(taskSelect + " ORDER BY created_at ASC")
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// DeleteTask removes a task by ID or prefix.
func (d *DB) DeleteTask(idOrPrefix string) error {
	id, err := d.resolveTaskID(idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	result, err := d.db.Exec("DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("task %s: %w", idOrPrefix, ErrNotFound)
	}
	return nil
}

const taskSelect = `
	SELECT id, name, category, domain, recurrence, weekdays, priority, labels,
		current_streak, best_streak, total_completions, completion_history, created_at
	FROM tasks`

// resolveTaskID resolves an ID prefix to a full task ID.
func (d *DB) resolveTaskID(idOrPrefix string) (string, error) {
	rows, err := d.db.Query("SELECT id FROM tasks WHERE id LIKE ?", idOrPrefix+"%")
	if err != nil {
		return "", fmt.Errorf("resolve task id: %w", err)
	}
	defer rows.Close()

	var matches []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("resolve task id: %w", err)
		}
		matches = append(matches, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("resolve task id: %w", err)
	}

	if len(matches) == 0 {
		return "", fmt.Errorf("task %s: %w", idOrPrefix, ErrNotFound)
	}
	if len(matches) > 1 {
		return "", fmt.Errorf("ambiguous prefix %s: matches multiple tasks", idOrPrefix)
	}
	return matches[0], nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanTask reads one task row.
func scanTask(row rowScanner) (*models.Task, error) {
	var t models.Task
	var id, domain, recurrence, createdAt string
	var category, weekdays, labels, history sql.NullString

	err := row.Scan(&id, &t.Name, &category, &domain, &recurrence, &weekdays,
		&t.Priority, &labels, &t.CurrentStreak, &t.BestStreak,
		&t.TotalCompletions, &history, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan task: %w", err)
	}

	t.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parse task id: %w", err)
	}
	t.Category = category.String
	t.Domain = models.Domain(domain)
	t.Recurrence = models.Recurrence(recurrence)
	t.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse task created_at: %w", err)
	}

	if weekdays.Valid && weekdays.String != "" {
		if err := json.Unmarshal([]byte(weekdays.String), &t.Weekdays); err != nil {
			return nil, fmt.Errorf("unmarshal weekdays: %w", err)
		}
	}
	if labels.Valid && labels.String != "" {
		if err := json.Unmarshal([]byte(labels.String), &t.Labels); err != nil {
			return nil, fmt.Errorf("unmarshal labels: %w", err)
		}
	}
	if history.Valid && history.String != "" {
		if err := json.Unmarshal([]byte(history.String), &t.CompletionHistory); err != nil {
			return nil, fmt.Errorf("unmarshal completion history: %w", err)
		}
	}
	return &t, nil
}

// marshalTaskFields serializes the slice fields to JSON text.
func marshalTaskFields(t *models.Task) (weekdays, labels, history string, err error) {
	if len(t.Weekdays) > 0 {
		b, err := json.Marshal(t.Weekdays)
		if err != nil {
			return "", "", "", err
		}
		weekdays = string(b)
	}
	if len(t.Labels) > 0 {
		b, err := json.Marshal(t.Labels)
		if err != nil {
			return "", "", "", err
		}
		labels = string(b)
	}
	if len(t.CompletionHistory) > 0 {
		b, err := json.Marshal(t.CompletionHistory)
		if err != nil {
			return "", "", "", err
		}
		history = string(b)
	}
	return weekdays, labels, history, nil
}
