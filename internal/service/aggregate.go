package service

import "github.com/emres/macrolog/internal/model"

// ConsumedMacros reduces a plan day to the totals of everything marked
// consumed. Pure fold; order of meals and foods does not matter.
func ConsumedMacros(day model.Day) model.Totals {
	var t model.Totals
	for _, m := range day.Meals {
		for _, f := range m.Foods {
			if f.Consumed {
				t.Calories += f.Calories
				t.Protein += f.Protein
				t.Carbs += f.Carbs
				t.Fats += f.Fats
			}
		}
	}
	return t
}

// MealTotals sums a meal's foods unconditionally, consumed or not.
func MealTotals(meal model.Meal) model.Totals {
	var t model.Totals
	for _, f := range meal.Foods {
		t.Calories += f.Calories
		t.Protein += f.Protein
		t.Carbs += f.Carbs
		t.Fats += f.Fats
	}
	return t
}

// EntryTotals sums manual-mode entries. Manual entries have no consumed
// flag; logging one means it was eaten.
func EntryTotals(entries []model.KcalEntry) model.Totals {
	var t model.Totals
	for _, e := range entries {
		t.Calories += e.Calories
		t.Protein += e.Protein
		t.Carbs += e.Carbs
		t.Fats += e.Fats
	}
	return t
}

// ProgressPercent clamps to 0..100 for display. The underlying totals are
// never clamped; eating past the goal is representable.
func ProgressPercent(actual, goal float64) int {
	if goal <= 0 {
		return 0
	}
	pct := actual / goal * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return int(pct)
}
