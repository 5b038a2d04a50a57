package service_test

import (
	"testing"

	"github.com/emres/macrolog/internal/model"
	"github.com/emres/macrolog/internal/service"
)

func TestConsumedMacrosSumsOnlyConsumedFoods(t *testing.T) {
	t.Parallel()

	day := model.Day{
		Meals: []model.Meal{
			{
				Foods: []model.Food{
					{Calories: 320, Protein: 14, Carbs: 12, Fats: 22, Consumed: true},
					{Calories: 150, Protein: 5, Carbs: 30, Fats: 1, Consumed: false},
				},
			},
			{
				Foods: []model.Food{
					{Calories: 480, Protein: 35, Carbs: 40, Fats: 18, Consumed: true},
				},
			},
		},
	}

	got := service.ConsumedMacros(day)
	want := model.Totals{Calories: 800, Protein: 49, Carbs: 52, Fats: 40}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestConsumedMacrosOrderIndependent(t *testing.T) {
	t.Parallel()

	foods := []model.Food{
		{Calories: 100, Protein: 10, Carbs: 5, Fats: 2, Consumed: true},
		{Calories: 200, Protein: 20, Carbs: 15, Fats: 8, Consumed: true},
		{Calories: 50, Protein: 1, Carbs: 12, Fats: 0.5, Consumed: true},
	}
	forward := model.Day{Meals: []model.Meal{{Foods: foods}}}

	reversed := make([]model.Food, len(foods))
	for i, f := range foods {
		reversed[len(foods)-1-i] = f
	}
	backward := model.Day{Meals: []model.Meal{{Foods: reversed}}}

	if service.ConsumedMacros(forward) != service.ConsumedMacros(backward) {
		t.Fatalf("aggregation must not depend on food order")
	}
}

func TestConsumedMacrosEmptyDayIsZero(t *testing.T) {
	t.Parallel()

	got := service.ConsumedMacros(model.Day{})
	if !got.IsZero() {
		t.Fatalf("expected zero totals, got %+v", got)
	}
}

func TestEntryTotalsSumsUnconditionally(t *testing.T) {
	t.Parallel()

	entries := []model.KcalEntry{
		{Title: "Elma", Calories: 95, Protein: 0.5, Carbs: 25, Fats: 0.3},
	}
	got := service.EntryTotals(entries)
	want := model.Totals{Calories: 95, Protein: 0.5, Carbs: 25, Fats: 0.3}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestMealTotalsIgnoresConsumedFlag(t *testing.T) {
	t.Parallel()

	meal := model.Meal{
		Foods: []model.Food{
			{Calories: 100, Protein: 10, Carbs: 5, Fats: 2, Consumed: false},
			{Calories: 50, Protein: 2, Carbs: 8, Fats: 1, Consumed: true},
		},
	}
	got := service.MealTotals(meal)
	if got.Calories != 150 || got.Protein != 12 {
		t.Fatalf("unexpected meal totals %+v", got)
	}
}

func TestProgressPercentClampsDisplayOnly(t *testing.T) {
	t.Parallel()

	cases := []struct {
		actual, goal float64
		want         int
	}{
		{0, 2000, 0},
		{500, 2000, 25},
		{2000, 2000, 100},
		{2600, 2000, 100},
		{100, 0, 0},
	}
	for _, c := range cases {
		if got := service.ProgressPercent(c.actual, c.goal); got != c.want {
			t.Fatalf("ProgressPercent(%v, %v) = %d, want %d", c.actual, c.goal, got, c.want)
		}
	}
}
