// ABOUTME: In-memory Repository implementation for tests.
// ABOUTME: Stores deep copies via JSON round-trips to mimic document storage.
package storage

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/harperreed/arete/internal/models"
)

// MemoryStore is a Repository backed by maps. Safe for concurrent use.
type MemoryStore struct {
	mu       sync.RWMutex
	progress map[string]string // userID -> JSON document
	tasks    map[string]string // task ID -> JSON document

	// FailPuts makes every PutProgress fail, for storage-error tests.
	FailPuts bool
}

// NewMemoryStore creates an empty in-memory repository.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		progress: make(map[string]string),
		tasks:    make(map[string]string),
	}
}

// GetProgress loads a user's progress document.
func (m *MemoryStore) GetProgress(userID string) (*models.UserProgress, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.progress[userID]
	if !ok {
		return nil, fmt.Errorf("progress for %s: %w", userID, ErrNotFound)
	}
	var p models.UserProgress
	if err := json.Unmarshal([]byte(doc), &p); err != nil {
		return nil, fmt.Errorf("unmarshal progress: %w", err)
	}
	p.EnsureDefaults()
	return &p, nil
}

// PutProgress replaces the whole document.
func (m *MemoryStore) PutProgress(p *models.UserProgress) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailPuts {
		return fmt.Errorf("put progress: store unavailable")
	}

	p.UpdatedAt = time.Now().UTC()
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}
	m.progress[p.UserID] = string(doc)
	return nil
}

// CreateTask stores a new task.
func (m *MemoryStore) CreateTask(t *models.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.putTaskLocked(t)
}

// GetTask retrieves a task by ID or ID prefix.
func (m *MemoryStore) GetTask(idOrPrefix string) (*models.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, err := m.resolveLocked(idOrPrefix)
	if err != nil {
		return nil, err
	}
	var t models.Task
	if err := json.Unmarshal([]byte(m.tasks[id]), &t); err != nil {
		return nil, fmt.Errorf("unmarshal task: %w", err)
	}
	return &t, nil
}

// UpdateTask replaces a stored task.
func (m *MemoryStore) UpdateTask(t *models.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tasks[t.ID.String()]; !ok {
		return fmt.Errorf("task %s: %w", t.ID, ErrNotFound)
	}
	return m.putTaskLocked(t)
}

// ListTasks returns all tasks ordered by creation time ascending.
func (m *MemoryStore) ListTasks() ([]*models.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var tasks []*models.Task
	for _, doc := range m.tasks {
		var t models.Task
		if err := json.Unmarshal([]byte(doc), &t); err != nil {
			return nil, fmt.Errorf("unmarshal task: %w", err)
		}
		tasks = append(tasks, &t)
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})
	return tasks, nil
}

// DeleteTask removes a task by ID or prefix.
func (m *MemoryStore) DeleteTask(idOrPrefix string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, err := m.resolveLocked(idOrPrefix)
	if err != nil {
		return err
	}
	delete(m.tasks, id)
	return nil
}

// GetAllData retrieves all data for export.
func (m *MemoryStore) GetAllData() (*ExportData, error) {
	tasks, err := m.ListTasks()
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var users []string
	for userID := range m.progress {
		users = append(users, userID)
	}
	sort.Strings(users)

	var progress []*models.UserProgress
	for _, userID := range users {
		var p models.UserProgress
		if err := json.Unmarshal([]byte(m.progress[userID]), &p); err != nil {
			return nil, fmt.Errorf("unmarshal progress: %w", err)
		}
		progress = append(progress, &p)
	}

	return &ExportData{
		Version:    "1.0",
		ExportedAt: time.Now(),
		Tool:       "arete",
		Progress:   progress,
		Tasks:      tasks,
	}, nil
}

// ImportData imports data from an export.
func (m *MemoryStore) ImportData(data *ExportData) error {
	for _, p := range data.Progress {
		if err := m.PutProgress(p); err != nil {
			return err
		}
	}
	for _, t := range data.Tasks {
		if err := m.CreateTask(t); err != nil {
			return err
		}
	}
	return nil
}

// Close is a no-op.
func (m *MemoryStore) Close() error { return nil }

func (m *MemoryStore) putTaskLocked(t *models.Task) error {
	doc, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("marshal task: %w", err)
	}
	m.tasks[t.ID.String()] = string(doc)
	return nil
}

func (m *MemoryStore) resolveLocked(idOrPrefix string) (string, error) {
	var matches []string
	for id := range m.tasks {
		if strings.HasPrefix(id, idOrPrefix) {
			matches = append(matches, id)
		}
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("task %s: %w", idOrPrefix, ErrNotFound)
	}
	if len(matches) > 1 {
		return "", fmt.Errorf("ambiguous prefix %s: matches multiple tasks", idOrPrefix)
	}
	return matches[0], nil
}
