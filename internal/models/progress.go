// ABOUTME: UserProgress document model for XP, levels, and achievements.
// ABOUTME: One document per user; mutated only through the engine package.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Category is one of the four fixed movement categories.
type Category string

const (
	CategoryCore Category = "core"
	CategoryPush Category = "push"
	CategoryPull Category = "pull"
	CategoryLegs Category = "legs"
)

// AllCategories lists the fixed category set in display order.
var AllCategories = []Category{CategoryCore, CategoryPush, CategoryPull, CategoryLegs}

// IsValidCategory checks if a string names one of the four categories.
func IsValidCategory(s string) bool {
	for _, c := range AllCategories {
		if string(c) == s {
			return true
		}
	}
	return false
}

// Domain is a top-level life-area grouping, distinct from Category.
type Domain string

const (
	DomainEthos  Domain = "ethos"  // habits and tasks
	DomainTrophe Domain = "trophe" // nutrition
	DomainSoma   Domain = "soma"   // training
)

// AllDomains lists the domain tags in display order.
var AllDomains = []Domain{DomainEthos, DomainTrophe, DomainSoma}

// IsValidDomain checks if a string names a known domain tag.
func IsValidDomain(s string) bool {
	for _, d := range AllDomains {
		if string(d) == s {
			return true
		}
	}
	return false
}

// XPTransaction is a single immutable entry in the XP audit trail.
type XPTransaction struct {
	ID       uuid.UUID `json:"id"`
	Date     time.Time `json:"date"`
	Amount   int       `json:"amount"`
	Source   string    `json:"source"`
	Category Category  `json:"category,omitempty"`
	Details  string    `json:"details,omitempty"`
}

// NewXPTransaction creates a transaction stamped with the current time.
func NewXPTransaction(amount int, source string) *XPTransaction {
	return &XPTransaction{
		ID:     uuid.New(),
		Date:   time.Now().UTC(),
		Amount: amount,
		Source: source,
	}
}

// WithCategory tags the transaction with a movement category.
func (tx *XPTransaction) WithCategory(c Category) *XPTransaction {
	tx.Category = c
	return tx
}

// WithDetails attaches free text to the transaction.
func (tx *XPTransaction) WithDetails(details string) *XPTransaction {
	tx.Details = details
	return tx
}

// WithDate sets a custom transaction timestamp.
func (tx *XPTransaction) WithDate(t time.Time) *XPTransaction {
	tx.Date = t
	return tx
}

// DailySummary is a pre-aggregated rollup of one day of XP history.
// Always derived from XPHistory, never the source of truth.
type DailySummary struct {
	Date       time.Time        `json:"date"`
	TotalXP    int              `json:"total_xp"`
	Categories map[Category]int `json:"categories"`
	Sources    map[string]int   `json:"sources"`
}

// BodyweightEntry is a dated bodyweight measurement, independent of XP.
type BodyweightEntry struct {
	Date   time.Time `json:"date"`
	Weight float64   `json:"weight"`
	Unit   string    `json:"unit"`
	Notes  string    `json:"notes,omitempty"`
}

// CategoryState tracks per-category level and XP.
type CategoryState struct {
	Level             int      `json:"level"`
	XP                int      `json:"xp"`
	UnlockedExercises []string `json:"unlocked_exercises,omitempty"`
}

// AchievementStatus distinguishes unlocked-but-unacknowledged achievements
// from ones the user has claimed.
type AchievementStatus string

const (
	AchievementPending AchievementStatus = "pending"
	AchievementClaimed AchievementStatus = "claimed"
)

// AchievementState records when an achievement was unlocked and whether
// the user has claimed it.
type AchievementState struct {
	Status     AchievementStatus `json:"status"`
	UnlockedAt time.Time         `json:"unlocked_at"`
	ClaimedAt  *time.Time        `json:"claimed_at,omitempty"`
}

// UserProgress is the per-user progress document. The Level field is always
// derived from TotalXP via the level curve after every mutation.
type UserProgress struct {
	UserID           string                       `json:"user_id"`
	TotalXP          int                          `json:"total_xp"`
	Level            int                          `json:"level"`
	CategoryProgress map[Category]*CategoryState  `json:"category_progress"`
	CategoryXP       map[Category]int             `json:"category_xp"`
	XPHistory        []XPTransaction              `json:"xp_history"`
	DailySummaries   []DailySummary               `json:"daily_summaries,omitempty"`
	Bodyweight       []BodyweightEntry            `json:"bodyweight,omitempty"`
	Achievements     map[string]*AchievementState `json:"achievements"`
	CreatedAt        time.Time                    `json:"created_at"`
	UpdatedAt        time.Time                    `json:"updated_at"`
}

// NewUserProgress creates a fresh progress document: level 1, zero XP,
// every category at level 1 with an empty pool.
func NewUserProgress(userID string) *UserProgress {
	now := time.Now().UTC()
	p := &UserProgress{
		UserID:           userID,
		TotalXP:          0,
		Level:            1,
		CategoryProgress: make(map[Category]*CategoryState, len(AllCategories)),
		CategoryXP:       make(map[Category]int, len(AllCategories)),
		Achievements:     make(map[string]*AchievementState),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	for _, c := range AllCategories {
		p.CategoryProgress[c] = &CategoryState{Level: 1, XP: 0}
		p.CategoryXP[c] = 0
	}
	return p
}

// EnsureDefaults backfills nil maps and missing categories on a document
// loaded from storage, so documents written by older versions stay usable.
func (p *UserProgress) EnsureDefaults() {
	if p.CategoryProgress == nil {
		p.CategoryProgress = make(map[Category]*CategoryState, len(AllCategories))
	}
	if p.CategoryXP == nil {
		p.CategoryXP = make(map[Category]int, len(AllCategories))
	}
	if p.Achievements == nil {
		p.Achievements = make(map[string]*AchievementState)
	}
	for _, c := range AllCategories {
		if _, ok := p.CategoryProgress[c]; !ok {
			p.CategoryProgress[c] = &CategoryState{Level: 1, XP: 0}
		}
		if _, ok := p.CategoryXP[c]; !ok {
			p.CategoryXP[c] = 0
		}
	}
	if p.Level < 1 {
		p.Level = 1
	}
}

// HasAchievement reports whether the achievement is unlocked (pending or claimed).
func (p *UserProgress) HasAchievement(id string) bool {
	_, ok := p.Achievements[id]
	return ok
}

// LatestBodyweight returns the most recent bodyweight entry, or nil.
func (p *UserProgress) LatestBodyweight() *BodyweightEntry {
	if len(p.Bodyweight) == 0 {
		return nil
	}
	latest := &p.Bodyweight[0]
	for i := range p.Bodyweight {
		if p.Bodyweight[i].Date.After(latest.Date) {
			latest = &p.Bodyweight[i]
		}
	}
	return latest
}

// SourceCount returns how many XP-earning events with the given source tag
// the user has recorded, counting both live history and compacted summaries.
func (p *UserProgress) SourceCount(source string) int {
	count := 0
	for i := range p.XPHistory {
		if p.XPHistory[i].Source == source {
			count++
		}
	}
	for i := range p.DailySummaries {
		count += p.DailySummaries[i].Sources[source]
	}
	return count
}
