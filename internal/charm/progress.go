// ABOUTME: User progress document operations for Charm KV storage.
// ABOUTME: Stores each user's full progress as a single JSON value.
package charm

import (
	"fmt"

	"github.com/harperreed/arete/internal/models"
)

// GetProgress retrieves the progress document for a user.
// Returns storage.ErrNotFound if the user has no document yet.
func (c *Client) GetProgress(userID string) (*models.UserProgress, error) {
	data, err := c.get(ProgressPrefix + userID)
	if err != nil {
		return nil, fmt.Errorf("get progress %s: %w", userID, err)
	}

	progress, err := unmarshalJSON[models.UserProgress](data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal progress: %w", err)
	}
	progress.EnsureDefaults()

	return progress, nil
}

// PutProgress stores the full progress document for a user.
// The whole document is written in one set so readers never see
// a partially applied award.
func (c *Client) PutProgress(p *models.UserProgress) error {
	data, err := marshalJSON(p)
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}
	return c.set(ProgressPrefix+p.UserID, data)
}
