// ABOUTME: Task model with recurrence rules and streak bookkeeping.
// ABOUTME: Tasks feed the statistics aggregator and award XP on completion.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Recurrence describes which days a task is due.
type Recurrence string

const (
	RecurDaily    Recurrence = "daily"
	RecurWeekdays Recurrence = "weekdays"
	RecurWeekends Recurrence = "weekends"
	RecurWeekly   Recurrence = "weekly" // same weekday the task was created on
	RecurCustom   Recurrence = "custom" // explicit weekday set
)

// AllRecurrences lists the supported recurrence kinds.
var AllRecurrences = []Recurrence{RecurDaily, RecurWeekdays, RecurWeekends, RecurWeekly, RecurCustom}

// IsValidRecurrence checks if a string names a supported recurrence kind.
func IsValidRecurrence(s string) bool {
	for _, r := range AllRecurrences {
		if string(r) == s {
			return true
		}
	}
	return false
}

// Priority levels for tasks.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Task is a recurring tracked habit or todo.
type Task struct {
	ID                uuid.UUID   `json:"id"`
	Name              string      `json:"name"`
	Category          string      `json:"category"` // free-form grouping label
	Domain            Domain      `json:"domain"`
	Recurrence        Recurrence  `json:"recurrence"`
	Weekdays          []int       `json:"weekdays,omitempty"` // 0=Sunday..6=Saturday, for custom
	Priority          string      `json:"priority"`
	Labels            []string    `json:"labels,omitempty"`
	CurrentStreak     int         `json:"current_streak"`
	BestStreak        int         `json:"best_streak"`
	TotalCompletions  int         `json:"total_completions"`
	CompletionHistory []time.Time `json:"completion_history,omitempty"`
	CreatedAt         time.Time   `json:"created_at"`
}

// NewTask creates a new Task with generated UUID and sensible defaults.
func NewTask(name string) *Task {
	return &Task{
		ID:         uuid.New(),
		Name:       name,
		Domain:     DomainEthos,
		Recurrence: RecurDaily,
		Priority:   PriorityMedium,
		CreatedAt:  time.Now().UTC(),
	}
}

// WithCategory sets the grouping label.
func (t *Task) WithCategory(category string) *Task {
	t.Category = category
	return t
}

// WithDomain sets the domain tag.
func (t *Task) WithDomain(d Domain) *Task {
	t.Domain = d
	return t
}

// WithRecurrence sets the recurrence rule.
func (t *Task) WithRecurrence(r Recurrence) *Task {
	t.Recurrence = r
	return t
}

// WithWeekdays sets the explicit weekday set for custom recurrence.
func (t *Task) WithWeekdays(days []int) *Task {
	t.Weekdays = days
	return t
}

// WithPriority sets the priority level.
func (t *Task) WithPriority(priority string) *Task {
	t.Priority = priority
	return t
}

// WithLabels sets freeform labels.
func (t *Task) WithLabels(labels []string) *Task {
	t.Labels = labels
	return t
}

// DueOn reports whether the task is due on the given calendar day
// according to its recurrence rule.
func (t *Task) DueOn(day time.Time) bool {
	wd := int(day.Weekday())
	switch t.Recurrence {
	case RecurDaily:
		return true
	case RecurWeekdays:
		return wd >= 1 && wd <= 5
	case RecurWeekends:
		return wd == 0 || wd == 6
	case RecurWeekly:
		return day.Weekday() == t.CreatedAt.Weekday()
	case RecurCustom:
		for _, d := range t.Weekdays {
			if d == wd {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// CompletedOn reports whether a completion timestamp falls within the
// given calendar day.
func (t *Task) CompletedOn(day time.Time) bool {
	start := startOfDay(day)
	end := start.AddDate(0, 0, 1)
	for _, ts := range t.CompletionHistory {
		if !ts.Before(start) && ts.Before(end) {
			return true
		}
	}
	return false
}

// Complete records a completion at the given time and updates streak
// counters. Completions are counted once per calendar day; repeating a
// completion on the same day is a no-op. Returns whether the completion
// was counted.
func (t *Task) Complete(at time.Time) bool {
	day := startOfDay(at)
	if t.CompletedOn(day) {
		return false
	}

	t.CompletionHistory = append(t.CompletionHistory, at)
	t.TotalCompletions++

	lastDay := t.lastCompletedDayBefore(day)
	if !lastDay.IsZero() && day.Sub(lastDay) == 24*time.Hour {
		t.CurrentStreak++
	} else {
		t.CurrentStreak = 1
	}
	if t.CurrentStreak > t.BestStreak {
		t.BestStreak = t.CurrentStreak
	}
	return true
}

// lastCompletedDayBefore returns the most recent completion day strictly
// before the given day, or the zero time.
func (t *Task) lastCompletedDayBefore(day time.Time) time.Time {
	var last time.Time
	for _, ts := range t.CompletionHistory {
		d := startOfDay(ts)
		if d.Before(day) && d.After(last) {
			last = d
		}
	}
	return last
}

// startOfDay truncates a timestamp to midnight UTC.
func startOfDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
