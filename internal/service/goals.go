package service

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/emres/macrolog/internal/model"
)

// DefaultGoals is the backend's hard-coded tuple, returned while
// survey-derived goals are still being computed and used as the final
// fallback when the backend cannot be reached at all.
var DefaultGoals = model.UserGoals{
	DailyCalorie: 2000,
	Protein:      100,
	Carbs:        250,
	Fats:         70,
	WaterGoal:    2500,
}

const (
	goalFetchAttempts = 3
	goalRetryDelay    = time.Second
)

// GoalsFetcher is the slice of the backend client the resolver needs.
type GoalsFetcher interface {
	GetGoals(ctx context.Context) (*model.GoalsDoc, error)
	GetSurvey(ctx context.Context) (*model.Survey, error)
}

// GoalResolver merges the three goal sources into the single set to
// display: user-committed custom goals win; otherwise recommended goals
// overlaid with survey-derived calorie and macro values.
type GoalResolver struct {
	Fetcher GoalsFetcher
	// RetryDelay defaults to one second between sentinel retries.
	RetryDelay time.Duration
}

// Resolve returns the authoritative goals. Seeing the default sentinel
// re-fetches up to the attempt cap to mask the backend race where
// defaults are served before computation completes. Persistent fetch
// errors degrade silently to DefaultGoals.
func (r *GoalResolver) Resolve(ctx context.Context) model.UserGoals {
	doc := r.fetchGoals(ctx)
	if doc == nil {
		return DefaultGoals
	}
	if doc.Custom.IsCustom {
		return doc.Custom
	}

	goals := doc.Recommended
	survey, err := r.Fetcher.GetSurvey(ctx)
	if err != nil || survey == nil {
		return goals
	}
	return OverlaySurvey(goals, survey)
}

func (r *GoalResolver) fetchGoals(ctx context.Context) *model.GoalsDoc {
	delay := r.RetryDelay
	if delay <= 0 {
		delay = goalRetryDelay
	}

	for attempt := 1; ; attempt++ {
		doc, err := r.Fetcher.GetGoals(ctx)
		if err != nil {
			return nil
		}
		if attempt >= goalFetchAttempts || !isDefaultSentinel(doc.Custom) {
			return doc
		}
		select {
		case <-ctx.Done():
			return doc
		case <-time.After(delay):
		}
	}
}

// OverlaySurvey applies survey-derived overrides onto recommended goals.
// Zero survey values never override.
func OverlaySurvey(goals model.UserGoals, survey *model.Survey) model.UserGoals {
	if survey.CalorieIntake > 0 {
		goals.DailyCalorie = survey.CalorieIntake
	}
	macros, ok := parseSurveyMacros(survey.Macros)
	if !ok {
		return goals
	}
	if macros.Protein > 0 {
		goals.Protein = macros.Protein
	}
	if macros.Carbs > 0 {
		goals.Carbs = macros.Carbs
	}
	if macros.Fats > 0 {
		goals.Fats = macros.Fats
	}
	return goals
}

// parseSurveyMacros accepts both storage forms: a JSON object or a JSON
// string holding encoded JSON.
func parseSurveyMacros(raw json.RawMessage) (model.SurveyMacros, bool) {
	if len(raw) == 0 {
		return model.SurveyMacros{}, false
	}
	var macros model.SurveyMacros
	if err := json.Unmarshal(raw, &macros); err == nil {
		return macros, true
	}
	var encoded string
	if err := json.Unmarshal(raw, &encoded); err != nil {
		return model.SurveyMacros{}, false
	}
	if err := json.Unmarshal([]byte(encoded), &macros); err != nil {
		return model.SurveyMacros{}, false
	}
	return macros, true
}

func isDefaultSentinel(g model.UserGoals) bool {
	return g.DailyCalorie == DefaultGoals.DailyCalorie &&
		g.Protein == DefaultGoals.Protein &&
		g.Carbs == DefaultGoals.Carbs &&
		g.Fats == DefaultGoals.Fats
}

// FormatGoal renders a goal value without trailing decimal noise.
func FormatGoal(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
