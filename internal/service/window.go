package service

import (
	"sort"
	"time"

	"github.com/emres/macrolog/internal/model"
)

// Fallback selects which day to focus when every plan date is already in
// the past. The two original screens disagreed (first day vs last day), so
// the policy is explicit per call site.
type Fallback int

const (
	FallbackFirst Fallback = iota
	FallbackLast
)

// Synthetic day ids start well above anything the backend hands out.
const fallbackDayIDBase = 50000

const dateLayout = "2006-01-02"

// SortDays returns a copy of days ordered ascending by date.
func SortDays(days []model.Day) []model.Day {
	sorted := make([]model.Day, len(days))
	copy(sorted, days)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})
	return sorted
}

// AutoSelectIndex picks the initial focus: the first day on or after
// today, falling back per policy when the whole window is in the past.
// Empty input selects 0.
func AutoSelectIndex(days []model.Day, today string, fb Fallback) int {
	for i, d := range days {
		if d.Date >= today {
			return i
		}
	}
	if fb == FallbackLast && len(days) > 0 {
		return len(days) - 1
	}
	return 0
}

// FallbackWeek synthesizes the rolling 7-day window used when no plan
// exists: today through today+6, empty meals, zero goals.
func FallbackWeek(today time.Time) []model.Day {
	days := make([]model.Day, 0, 7)
	for i := 0; i < 7; i++ {
		d := today.AddDate(0, 0, i)
		days = append(days, model.Day{
			ID:        fallbackDayIDBase + int64(i),
			DayNumber: i + 1,
			Date:      d.Format(dateLayout),
			Meals:     []model.Meal{},
		})
	}
	return days
}

// BuildWindow produces the day window to display plus the auto-selected
// index. A nil plan yields the synthetic week.
func BuildWindow(plan *model.MealPlan, today time.Time, fb Fallback) ([]model.Day, int) {
	todayStr := today.Format(dateLayout)
	if plan == nil {
		days := FallbackWeek(today)
		return days, AutoSelectIndex(days, todayStr, fb)
	}
	days := SortDays(plan.Days)
	return days, AutoSelectIndex(days, todayStr, fb)
}
