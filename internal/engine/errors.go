// ABOUTME: Typed errors for the award coordinator.
// ABOUTME: Sentinels for caller mistakes, a wrapper for backend failures.
package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument marks a rejected caller input (negative amount,
	// unknown category, empty user).
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound marks a missing record the caller named explicitly.
	ErrNotFound = errors.New("not found")

	// ErrNotUnlocked marks a claim on an achievement not yet unlocked.
	ErrNotUnlocked = errors.New("achievement not unlocked")

	// ErrAlreadyClaimed marks a repeated claim on the same achievement.
	ErrAlreadyClaimed = errors.New("achievement already claimed")
)

// StorageError wraps a backend failure so callers can distinguish it from
// their own bad input. The underlying error stays reachable via Unwrap.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ConfigurationError reports an invalid achievement catalog or other fatal
// startup misconfiguration.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Reason)
}
