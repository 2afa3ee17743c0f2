// ABOUTME: Recurrence-aware completion rate and domain performance trends.
// ABOUTME: Walks each calendar day in the window; O(days x tasks).
package stats

import (
	"time"

	"github.com/harperreed/arete/internal/models"
)

// Period names a reporting window ending today.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// IsValidPeriod checks if a string names a reporting period.
func IsValidPeriod(s string) bool {
	switch Period(s) {
	case PeriodDay, PeriodWeek, PeriodMonth, PeriodYear:
		return true
	}
	return false
}

// Bounds returns the [start, end] calendar days for a period ending on the
// given day.
func (p Period) Bounds(end time.Time) (time.Time, time.Time) {
	endDay := startOfDay(end)
	switch p {
	case PeriodDay:
		return endDay, endDay
	case PeriodWeek:
		return endDay.AddDate(0, 0, -6), endDay
	case PeriodMonth:
		return endDay.AddDate(0, -1, 1), endDay
	case PeriodYear:
		return endDay.AddDate(-1, 0, 1), endDay
	default:
		return endDay.AddDate(0, 0, -6), endDay
	}
}

// CompletionRateResult reports due/completed counts over a window.
type CompletionRateResult struct {
	Total     int       `json:"total"`
	Completed int       `json:"completed"`
	Rate      float64   `json:"rate"` // 0-100, two decimals
	Period    Period    `json:"period"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// CompletionRate walks each calendar day in the period, counts which tasks
// were due that day per their recurrence rule, and checks whether a
// completion fell within the day.
func CompletionRate(tasks []*models.Task, period Period) CompletionRateResult {
	start, end := period.Bounds(time.Now().UTC())
	return CompletionRateBetween(tasks, period, start, end)
}

// CompletionRateBetween is CompletionRate over an explicit day range.
func CompletionRateBetween(tasks []*models.Task, period Period, start, end time.Time) CompletionRateResult {
	result := CompletionRateResult{
		Period:    period,
		StartDate: startOfDay(start),
		EndDate:   startOfDay(end),
	}

	for day := result.StartDate; !day.After(result.EndDate); day = day.AddDate(0, 0, 1) {
		for _, task := range tasks {
			if startOfDay(task.CreatedAt).After(day) {
				continue
			}
			if !task.DueOn(day) {
				continue
			}
			result.Total++
			if task.CompletedOn(day) {
				result.Completed++
			}
		}
	}

	if result.Total > 0 {
		result.Rate = round2(float64(result.Completed) / float64(result.Total) * 100)
	}
	return result
}

// DomainTrend reports one domain's activity within a window.
type DomainTrend struct {
	Domain      models.Domain `json:"domain"`
	TaskCount   int           `json:"task_count"`
	Completions int           `json:"completions"`
}

// PerformanceTrendResult groups activity by domain tag for a window.
type PerformanceTrendResult struct {
	Period    Period        `json:"period"`
	StartDate time.Time     `json:"start_date"`
	EndDate   time.Time     `json:"end_date"`
	Domains   []DomainTrend `json:"domains"`
}

// PerformanceTrend groups tasks by their domain tag and counts tasks and
// total completions falling inside the window. Domains always appear in
// fixed order (ethos, trophe, soma), including empty ones.
func PerformanceTrend(tasks []*models.Task, period Period, from, to time.Time) PerformanceTrendResult {
	result := PerformanceTrendResult{
		Period:    period,
		StartDate: startOfDay(from),
		EndDate:   startOfDay(to),
	}
	windowEnd := result.EndDate.AddDate(0, 0, 1)

	byDomain := make(map[models.Domain]*DomainTrend, len(models.AllDomains))
	for _, d := range models.AllDomains {
		byDomain[d] = &DomainTrend{Domain: d}
	}

	for _, task := range tasks {
		trend, ok := byDomain[task.Domain]
		if !ok {
			continue
		}
		trend.TaskCount++
		for _, ts := range task.CompletionHistory {
			if !ts.Before(result.StartDate) && ts.Before(windowEnd) {
				trend.Completions++
			}
		}
	}

	for _, d := range models.AllDomains {
		result.Domains = append(result.Domains, *byDomain[d])
	}
	return result
}

func startOfDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
