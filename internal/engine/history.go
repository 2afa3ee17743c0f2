// ABOUTME: XP history maintenance: rollup into daily summaries and timeline
// ABOUTME: queries that tolerate either live history or compacted form.
package engine

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/harperreed/arete/internal/models"
)

// CompactHistory rolls XP transactions dated before the cutoff into
// per-day DailySummaries and removes them from the live history. Summaries
// for days that already exist are merged. Returns the number of
// transactions compacted.
func (e *Engine) CompactHistory(ctx context.Context, userID string, before time.Time) (int, error) {
	if userID == "" {
		return 0, fmt.Errorf("user id required: %w", ErrInvalidArgument)
	}

	lock := e.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	if err := ctx.Err(); err != nil {
		return 0, err
	}

	progress, err := e.loadOrCreate(userID)
	if err != nil {
		return 0, err
	}

	byDay := make(map[time.Time]*models.DailySummary)
	for i := range progress.DailySummaries {
		s := progress.DailySummaries[i]
		if s.Categories == nil {
			s.Categories = make(map[models.Category]int)
		}
		if s.Sources == nil {
			s.Sources = make(map[string]int)
		}
		byDay[dayOf(s.Date)] = &s
	}

	var kept []models.XPTransaction
	compacted := 0
	for _, tx := range progress.XPHistory {
		if !tx.Date.Before(before) {
			kept = append(kept, tx)
			continue
		}
		day := dayOf(tx.Date)
		summary, ok := byDay[day]
		if !ok {
			summary = &models.DailySummary{
				Date:       day,
				Categories: make(map[models.Category]int),
				Sources:    make(map[string]int),
			}
			byDay[day] = summary
		}
		summary.TotalXP += tx.Amount
		if tx.Category != "" {
			summary.Categories[tx.Category] += tx.Amount
		}
		summary.Sources[tx.Source]++
		compacted++
	}

	if compacted == 0 {
		return 0, nil
	}

	progress.XPHistory = kept
	progress.DailySummaries = progress.DailySummaries[:0]
	for _, s := range byDay {
		progress.DailySummaries = append(progress.DailySummaries, *s)
	}
	sort.Slice(progress.DailySummaries, func(i, j int) bool {
		return progress.DailySummaries[i].Date.Before(progress.DailySummaries[j].Date)
	})
	progress.UpdatedAt = time.Now().UTC()

	if err := e.repo.PutProgress(progress); err != nil {
		return 0, &StorageError{Op: "put progress", Err: err}
	}
	return compacted, nil
}

// DayXP is one day's XP total in a timeline.
type DayXP struct {
	Date    time.Time `json:"date"`
	TotalXP int       `json:"total_xp"`
}

// XPTimeline returns day-keyed XP totals over [from, to], combining
// compacted summaries and live history. Days with no XP are omitted.
func (e *Engine) XPTimeline(ctx context.Context, userID string, from, to time.Time) ([]DayXP, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id required: %w", ErrInvalidArgument)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	progress, err := e.loadOrCreate(userID)
	if err != nil {
		return nil, err
	}

	start, end := dayOf(from), dayOf(to)
	totals := make(map[time.Time]int)
	for _, s := range progress.DailySummaries {
		day := dayOf(s.Date)
		if day.Before(start) || day.After(end) {
			continue
		}
		totals[day] += s.TotalXP
	}
	for _, tx := range progress.XPHistory {
		day := dayOf(tx.Date)
		if day.Before(start) || day.After(end) {
			continue
		}
		totals[day] += tx.Amount
	}

	timeline := make([]DayXP, 0, len(totals))
	for day, total := range totals {
		timeline = append(timeline, DayXP{Date: day, TotalXP: total})
	}
	sort.Slice(timeline, func(i, j int) bool {
		return timeline[i].Date.Before(timeline[j].Date)
	})
	return timeline, nil
}

// dayOf truncates a timestamp to its UTC calendar day.
func dayOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
