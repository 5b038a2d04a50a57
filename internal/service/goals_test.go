package service_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/emres/macrolog/internal/model"
	"github.com/emres/macrolog/internal/service"
)

type fakeGoalsFetcher struct {
	docs    []*model.GoalsDoc
	docErr  error
	survey  *model.Survey
	fetches int
}

func (f *fakeGoalsFetcher) GetGoals(ctx context.Context) (*model.GoalsDoc, error) {
	f.fetches++
	if f.docErr != nil {
		return nil, f.docErr
	}
	idx := f.fetches - 1
	if idx >= len(f.docs) {
		idx = len(f.docs) - 1
	}
	return f.docs[idx], nil
}

func (f *fakeGoalsFetcher) GetSurvey(ctx context.Context) (*model.Survey, error) {
	return f.survey, nil
}

func sentinelDoc() *model.GoalsDoc {
	return &model.GoalsDoc{
		Recommended: service.DefaultGoals,
		Custom:      service.DefaultGoals,
	}
}

func computedDoc() *model.GoalsDoc {
	return &model.GoalsDoc{
		Recommended: model.UserGoals{DailyCalorie: 2430, Protein: 140, Carbs: 260, Fats: 80, WaterGoal: 2700},
		Custom:      model.UserGoals{DailyCalorie: 2430, Protein: 140, Carbs: 260, Fats: 80, WaterGoal: 2700},
	}
}

func TestResolveRetriesPastDefaultSentinel(t *testing.T) {
	t.Parallel()

	fetcher := &fakeGoalsFetcher{docs: []*model.GoalsDoc{sentinelDoc(), sentinelDoc(), computedDoc()}}
	r := &service.GoalResolver{Fetcher: fetcher, RetryDelay: time.Millisecond}

	goals := r.Resolve(context.Background())
	if goals.DailyCalorie != 2430 {
		t.Fatalf("expected computed goals after retries, got %+v", goals)
	}
	if fetcher.fetches != 3 {
		t.Fatalf("expected 3 fetch attempts, got %d", fetcher.fetches)
	}
}

func TestResolveGivesUpAfterThreeSentinelAttempts(t *testing.T) {
	t.Parallel()

	fetcher := &fakeGoalsFetcher{docs: []*model.GoalsDoc{sentinelDoc()}}
	r := &service.GoalResolver{Fetcher: fetcher, RetryDelay: time.Millisecond}

	goals := r.Resolve(context.Background())
	if fetcher.fetches != 3 {
		t.Fatalf("expected exactly 3 attempts, got %d", fetcher.fetches)
	}
	if goals.DailyCalorie != 2000 || goals.Protein != 100 || goals.Carbs != 250 || goals.Fats != 70 {
		t.Fatalf("expected default tuple after exhausted retries, got %+v", goals)
	}
}

func TestResolvePrefersCommittedCustomGoals(t *testing.T) {
	t.Parallel()

	doc := computedDoc()
	doc.Custom = model.UserGoals{DailyCalorie: 1900, Protein: 150, Carbs: 180, Fats: 60, WaterGoal: 3000, IsCustom: true}
	fetcher := &fakeGoalsFetcher{
		docs:   []*model.GoalsDoc{doc},
		survey: &model.Survey{CalorieIntake: 2600},
	}
	r := &service.GoalResolver{Fetcher: fetcher, RetryDelay: time.Millisecond}

	goals := r.Resolve(context.Background())
	if goals.DailyCalorie != 1900 || !goals.IsCustom {
		t.Fatalf("custom goals must win over survey overlay, got %+v", goals)
	}
}

func TestResolveOverlaysSurveyOntoRecommended(t *testing.T) {
	t.Parallel()

	fetcher := &fakeGoalsFetcher{
		docs: []*model.GoalsDoc{computedDoc()},
		survey: &model.Survey{
			CalorieIntake: 2600,
			Macros:        json.RawMessage(`{"protein": 160, "carbs": 0, "fats": 85}`),
		},
	}
	r := &service.GoalResolver{Fetcher: fetcher, RetryDelay: time.Millisecond}

	goals := r.Resolve(context.Background())
	if goals.DailyCalorie != 2600 {
		t.Fatalf("expected survey calorie override, got %+v", goals)
	}
	if goals.Protein != 160 || goals.Fats != 85 {
		t.Fatalf("expected survey macro overrides, got %+v", goals)
	}
	if goals.Carbs != 260 {
		t.Fatalf("zero survey macro must not override, got %+v", goals)
	}
}

func TestResolveHandlesStringEncodedMacros(t *testing.T) {
	t.Parallel()

	fetcher := &fakeGoalsFetcher{
		docs: []*model.GoalsDoc{computedDoc()},
		survey: &model.Survey{
			Macros: json.RawMessage(`"{\"protein\": 155, \"carbs\": 230, \"fats\": 75}"`),
		},
	}
	r := &service.GoalResolver{Fetcher: fetcher, RetryDelay: time.Millisecond}

	goals := r.Resolve(context.Background())
	if goals.Protein != 155 || goals.Carbs != 230 || goals.Fats != 75 {
		t.Fatalf("expected macros parsed from string-encoded JSON, got %+v", goals)
	}
}

func TestResolveFallsBackToDefaultsOnError(t *testing.T) {
	t.Parallel()

	fetcher := &fakeGoalsFetcher{docErr: fmt.Errorf("backend unreachable")}
	r := &service.GoalResolver{Fetcher: fetcher, RetryDelay: time.Millisecond}

	goals := r.Resolve(context.Background())
	if goals != service.DefaultGoals {
		t.Fatalf("expected default goals on persistent error, got %+v", goals)
	}
}
