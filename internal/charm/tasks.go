// ABOUTME: Task CRUD operations for Charm KV storage.
// ABOUTME: Uses type-prefixed keys and client-side filtering.
package charm

import (
	"fmt"
	"sort"
	"time"

	"github.com/harperreed/arete/internal/models"
	"github.com/harperreed/arete/internal/storage"
)

// CreateTask stores a new task in the KV store.
func (c *Client) CreateTask(t *models.Task) error {
	key := TaskPrefix + t.ID.String()
	data, err := marshalJSON(t)
	if err != nil {
		return fmt.Errorf("marshal task: %w", err)
	}
	return c.set(key, data)
}

// GetTask retrieves a task by ID or ID prefix.
func (c *Client) GetTask(idOrPrefix string) (*models.Task, error) {
	data, err := c.getByIDPrefix(TaskPrefix, idOrPrefix)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}

	task, err := unmarshalJSON[models.Task](data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal task: %w", err)
	}

	return task, nil
}

// UpdateTask rewrites an existing task record.
func (c *Client) UpdateTask(t *models.Task) error {
	key := TaskPrefix + t.ID.String()
	if _, err := c.get(key); err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	data, err := marshalJSON(t)
	if err != nil {
		return fmt.Errorf("marshal task: %w", err)
	}
	return c.set(key, data)
}

// ListTasks retrieves all tasks, sorted by creation time ascending.
func (c *Client) ListTasks() ([]*models.Task, error) {
	allData, err := c.listByPrefix(TaskPrefix)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	var tasks []*models.Task
	for _, data := range allData {
		t, err := unmarshalJSON[models.Task](data)
		if err != nil {
			continue // Skip invalid entries
		}
		tasks = append(tasks, t)
	}

	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})

	return tasks, nil
}

// DeleteTask removes a task by ID or prefix.
func (c *Client) DeleteTask(idOrPrefix string) error {
	if err := c.deleteByIDPrefix(TaskPrefix, idOrPrefix); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// GetAllData retrieves all progress documents and tasks for export.
func (c *Client) GetAllData() (*storage.ExportData, error) {
	progressData, err := c.listByPrefix(ProgressPrefix)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}

	var progress []*models.UserProgress
	for _, data := range progressData {
		p, err := unmarshalJSON[models.UserProgress](data)
		if err != nil {
			continue // Skip invalid entries
		}
		p.EnsureDefaults()
		progress = append(progress, p)
	}
	sort.Slice(progress, func(i, j int) bool {
		return progress[i].UserID < progress[j].UserID
	})

	tasks, err := c.ListTasks()
	if err != nil {
		return nil, err
	}

	return &storage.ExportData{
		Version:    "1.0",
		ExportedAt: time.Now(),
		Tool:       "arete",
		Progress:   progress,
		Tasks:      tasks,
	}, nil
}

// ImportData loads exported data into the KV store.
func (c *Client) ImportData(data *storage.ExportData) error {
	for _, p := range data.Progress {
		if err := c.PutProgress(p); err != nil {
			return fmt.Errorf("import progress: %w", err)
		}
	}
	for _, t := range data.Tasks {
		if err := c.CreateTask(t); err != nil {
			return fmt.Errorf("import task: %w", err)
		}
	}
	return nil
}
