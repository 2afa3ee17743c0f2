// ABOUTME: Award coordinator: the single write path for progress documents.
// ABOUTME: Serializes awards per user and persists each award atomically.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/harperreed/arete/internal/achievements"
	"github.com/harperreed/arete/internal/models"
	"github.com/harperreed/arete/internal/storage"
	"github.com/harperreed/arete/internal/xp"
)

// Engine coordinates XP awards: it owns validation, level recomputation,
// category bookkeeping, the achievement scan, and persistence. All writes
// to a user's progress document go through here.
type Engine struct {
	repo storage.Repository
	defs []achievements.Definition

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates an Engine over the given repository. The achievement catalog
// is validated up front; an invalid catalog is a fatal ConfigurationError.
func New(repo storage.Repository) (*Engine, error) {
	defs := achievements.Catalog()
	if err := achievements.Validate(defs); err != nil {
		return nil, &ConfigurationError{Reason: err.Error()}
	}
	return &Engine{
		repo:  repo,
		defs:  defs,
		locks: make(map[string]*sync.Mutex),
	}, nil
}

// Definitions returns the achievement catalog the engine runs with.
func (e *Engine) Definitions() []achievements.Definition {
	return e.defs
}

// userLock returns the mutex serializing awards for one user. Operations
// for different users proceed in parallel.
func (e *Engine) userLock(userID string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	lock, ok := e.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		e.locks[userID] = lock
	}
	return lock
}

// CategoryResult describes what an award did to one category.
type CategoryResult struct {
	Name          models.Category `json:"name"`
	PreviousXP    int             `json:"previous_xp"`
	CurrentXP     int             `json:"current_xp"`
	PreviousLevel int             `json:"previous_level"`
	CurrentLevel  int             `json:"current_level"`
	LeveledUp     bool            `json:"leveled_up"`
	Milestone     string          `json:"milestone,omitempty"`
}

// UnlockedAchievement is one achievement unlocked during an award.
type UnlockedAchievement struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Icon     string `json:"icon"`
	XPReward int    `json:"xp_reward"`
}

// AchievementResult summarizes the achievement scan within one award.
type AchievementResult struct {
	Unlocked       []UnlockedAchievement `json:"unlocked"`
	Count          int                   `json:"count"`
	TotalXPAwarded int                   `json:"total_xp_awarded"`
	Skipped        []string              `json:"skipped,omitempty"`
}

// AwardResult is the full outcome of one XP award.
type AwardResult struct {
	UserID          string             `json:"user_id"`
	PreviousXP      int                `json:"previous_xp"`
	PreviousLevel   int                `json:"previous_level"`
	XPAdded         int                `json:"xp_added"`
	TotalXP         int                `json:"total_xp"`
	CurrentLevel    int                `json:"current_level"`
	LeveledUp       bool               `json:"leveled_up"`
	XPToNextLevel   int                `json:"xp_to_next_level"`
	ProgressPercent int                `json:"progress_percent"`
	Category        *CategoryResult    `json:"category,omitempty"`
	Achievements    *AchievementResult `json:"achievements"`
}

// AwardXP applies an XP amount to a user and runs the full award pipeline:
// validate, apply to total and category pools, scan achievements, credit
// unlock rewards, persist once. Achievement rewards are credited in the
// same pass with source "achievement_unlock"; unlocks caused by those
// rewards wait for the next award rather than triggering a rescan.
func (e *Engine) AwardXP(ctx context.Context, userID string, amount int, source, category, details string) (*AwardResult, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id required: %w", ErrInvalidArgument)
	}
	if amount < 0 {
		return nil, fmt.Errorf("amount must be non-negative, got %d: %w", amount, ErrInvalidArgument)
	}
	if source == "" {
		return nil, fmt.Errorf("source required: %w", ErrInvalidArgument)
	}
	if category != "" && !models.IsValidCategory(category) {
		return nil, fmt.Errorf("unknown category %q: %w", category, ErrInvalidArgument)
	}

	lock := e.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	progress, err := e.loadOrCreate(userID)
	if err != nil {
		return nil, err
	}

	result := &AwardResult{
		UserID:        userID,
		PreviousXP:    progress.TotalXP,
		PreviousLevel: progress.Level,
		XPAdded:       amount,
	}

	tx := models.NewXPTransaction(amount, source)
	if details != "" {
		tx = tx.WithDetails(details)
	}
	if category != "" {
		tx = tx.WithCategory(models.Category(category))
	}
	progress.XPHistory = append(progress.XPHistory, *tx)
	progress.TotalXP += amount
	progress.Level = xp.LevelFromXP(progress.TotalXP)

	if category != "" {
		cat := models.Category(category)
		prevState := progress.CategoryProgress[cat]
		catResult := &CategoryResult{Name: cat}
		if prevState != nil {
			catResult.PreviousXP = prevState.XP
			catResult.PreviousLevel = prevState.Level
		} else {
			catResult.PreviousLevel = 1
		}

		update := xp.ApplyCategoryXP(progress, cat, amount)
		state := progress.CategoryProgress[cat]
		catResult.CurrentXP = state.XP
		catResult.CurrentLevel = state.Level
		catResult.LeveledUp = update.LeveledUp
		catResult.Milestone = update.Milestone
		result.Category = catResult
	}

	result.Achievements = e.scanAchievements(progress)

	progress.UpdatedAt = time.Now().UTC()
	if err := e.repo.PutProgress(progress); err != nil {
		return nil, &StorageError{Op: "put progress", Err: err}
	}

	result.TotalXP = progress.TotalXP
	result.CurrentLevel = progress.Level
	result.LeveledUp = progress.Level > result.PreviousLevel
	result.XPToNextLevel = xp.XPToNextLevel(progress.TotalXP, progress.Level)
	result.ProgressPercent = xp.ProgressPercent(progress.TotalXP, progress.Level)
	return result, nil
}

// scanAchievements runs one bounded achievement pass over the updated
// document, credits unlock rewards, and keeps Level consistent with the
// new total. It never re-scans for unlocks caused by the rewards.
func (e *Engine) scanAchievements(progress *models.UserProgress) *AchievementResult {
	snapshot := e.snapshot(progress)
	unlocked, skipped := achievements.Check(e.defs, snapshot)
	bonus := achievements.Award(progress, unlocked)

	result := &AchievementResult{
		Count:          len(unlocked),
		TotalXPAwarded: bonus,
		Skipped:        skipped,
	}
	for _, def := range unlocked {
		result.Unlocked = append(result.Unlocked, UnlockedAchievement{
			ID:       def.ID,
			Title:    def.Title,
			Icon:     def.Icon,
			XPReward: def.XPReward,
		})
	}

	if bonus > 0 {
		tx := models.NewXPTransaction(bonus, "achievement_unlock")
		progress.XPHistory = append(progress.XPHistory, *tx)
		progress.TotalXP += bonus
		progress.Level = xp.LevelFromXP(progress.TotalXP)
	}
	return result
}

// snapshot assembles the read-only state achievement predicates see. Task
// counters come from the task collection; a task listing failure degrades
// to zero streak data rather than failing the award.
func (e *Engine) snapshot(progress *models.UserProgress) achievements.Snapshot {
	snap := achievements.Snapshot{Progress: progress}
	tasks, err := e.repo.ListTasks()
	if err != nil {
		return snap
	}
	for _, t := range tasks {
		if t.BestStreak > snap.BestStreak {
			snap.BestStreak = t.BestStreak
		}
		snap.TotalCompletions += t.TotalCompletions
	}
	return snap
}

// loadOrCreate fetches a user's progress document, creating a fresh one for
// first-time users.
func (e *Engine) loadOrCreate(userID string) (*models.UserProgress, error) {
	progress, err := e.repo.GetProgress(userID)
	if errors.Is(err, storage.ErrNotFound) {
		return models.NewUserProgress(userID), nil
	}
	if err != nil {
		return nil, &StorageError{Op: "get progress", Err: err}
	}
	return progress, nil
}

// GetProgress returns the user's progress document, a fresh unsaved one for
// users with no history yet.
func (e *Engine) GetProgress(ctx context.Context, userID string) (*models.UserProgress, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id required: %w", ErrInvalidArgument)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return e.loadOrCreate(userID)
}

// ClaimAchievement acknowledges an unlocked achievement, transitioning it
// from pending to claimed. Claiming never credits XP; the reward was
// credited when the achievement unlocked.
func (e *Engine) ClaimAchievement(ctx context.Context, userID, achievementID string) (*models.AchievementState, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id required: %w", ErrInvalidArgument)
	}
	if _, ok := achievements.ByID(e.defs, achievementID); !ok {
		return nil, fmt.Errorf("achievement %q: %w", achievementID, ErrNotFound)
	}

	lock := e.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	progress, err := e.loadOrCreate(userID)
	if err != nil {
		return nil, err
	}

	state, ok := progress.Achievements[achievementID]
	if !ok {
		return nil, fmt.Errorf("achievement %q: %w", achievementID, ErrNotUnlocked)
	}
	if state.Status == models.AchievementClaimed {
		return nil, fmt.Errorf("achievement %q: %w", achievementID, ErrAlreadyClaimed)
	}

	now := time.Now().UTC()
	state.Status = models.AchievementClaimed
	state.ClaimedAt = &now
	progress.UpdatedAt = now

	if err := e.repo.PutProgress(progress); err != nil {
		return nil, &StorageError{Op: "put progress", Err: err}
	}
	return state, nil
}

// LogBodyweight appends a bodyweight measurement to the progress document.
func (e *Engine) LogBodyweight(ctx context.Context, userID string, weight float64, unit, notes string) error {
	if userID == "" {
		return fmt.Errorf("user id required: %w", ErrInvalidArgument)
	}
	if weight <= 0 {
		return fmt.Errorf("weight must be positive, got %g: %w", weight, ErrInvalidArgument)
	}
	if unit == "" {
		unit = "kg"
	}

	lock := e.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	progress, err := e.loadOrCreate(userID)
	if err != nil {
		return err
	}

	progress.Bodyweight = append(progress.Bodyweight, models.BodyweightEntry{
		Date:   time.Now().UTC(),
		Weight: weight,
		Unit:   unit,
		Notes:  notes,
	})
	progress.UpdatedAt = time.Now().UTC()

	if err := e.repo.PutProgress(progress); err != nil {
		return &StorageError{Op: "put progress", Err: err}
	}
	return nil
}
