// ABOUTME: UserProgress document operations for SQLite storage.
// ABOUTME: The document is serialized as JSON and replaced in one UPDATE.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/arete/internal/models"
)

// GetProgress loads a user's progress document. Returns ErrNotFound when
// the user has no document yet.
func (d *DB) GetProgress(userID string) (*models.UserProgress, error) {
	var doc string
	err := d.db.QueryRow(
		"SELECT document FROM user_progress WHERE user_id = ?", userID,
	).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("progress for %s: %w", userID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get progress: %w", err)
	}

	var p models.UserProgress
	if err := json.Unmarshal([]byte(doc), &p); err != nil {
		return nil, fmt.Errorf("unmarshal progress: %w", err)
	}
	p.EnsureDefaults()
	return &p, nil
}

// PutProgress upserts the whole progress document in a single statement.
func (d *DB) PutProgress(p *models.UserProgress) error {
	p.UpdatedAt = time.Now().UTC()
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}

	query := `
		INSERT INTO user_progress (user_id, document, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			document = excluded.document,
			updated_at = excluded.updated_at
	`
	if _, err := d.db.Exec(query, p.UserID, string(doc), p.UpdatedAt.Format(time.RFC3339)); err != nil {
		return fmt.Errorf("put progress: %w", err)
	}
	return nil
}
