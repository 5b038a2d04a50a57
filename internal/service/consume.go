package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/emres/macrolog/internal/model"
)

// ErrNotToday rejects consumption changes for any day other than today.
// Client policy, not a backend constraint.
var ErrNotToday = errors.New("only today's meals can be changed")

// ErrSyncFailed marks a toggle whose remote sync failed after the local
// mutation was already applied. The local state is intentionally kept; a
// re-fetch of the plan is the recovery path.
var ErrSyncFailed = errors.New("consumption sync failed")

var errNotInPlan = errors.New("not found in plan")

// ConsumptionSyncer pushes consumed-flag changes to the backend.
type ConsumptionSyncer interface {
	MarkMealConsumed(ctx context.Context, mealID int64, eaten bool) error
	MarkFoodConsumed(ctx context.Context, foodID int64, eaten bool) error
}

// ToggleState describes the local mutation a toggle performed.
type ToggleState struct {
	MealID int64
	FoodID int64
	Eaten  bool
}

// ToggleMeal flips a meal's consumed flag and cascades the new value to
// every food in it. Mutates the plan in place; no network involved.
func ToggleMeal(plan *model.MealPlan, dayID, mealID int64, today string) (ToggleState, error) {
	day, err := findDay(plan, dayID)
	if err != nil {
		return ToggleState{}, err
	}
	if day.Date != today {
		return ToggleState{}, ErrNotToday
	}
	meal, err := findMeal(day, mealID)
	if err != nil {
		return ToggleState{}, err
	}

	meal.Consumed = !meal.Consumed
	for i := range meal.Foods {
		meal.Foods[i].Consumed = meal.Consumed
	}
	return ToggleState{MealID: meal.ID, Eaten: meal.Consumed}, nil
}

// ToggleFood flips one food's consumed flag. Turning a food off under a
// fully consumed meal clears the meal's flag (cascade up).
func ToggleFood(plan *model.MealPlan, dayID, mealID, foodID int64, today string) (ToggleState, error) {
	day, err := findDay(plan, dayID)
	if err != nil {
		return ToggleState{}, err
	}
	if day.Date != today {
		return ToggleState{}, ErrNotToday
	}
	meal, err := findMeal(day, mealID)
	if err != nil {
		return ToggleState{}, err
	}
	var food *model.Food
	for i := range meal.Foods {
		if meal.Foods[i].ID == foodID {
			food = &meal.Foods[i]
			break
		}
	}
	if food == nil {
		return ToggleState{}, fmt.Errorf("food %d: %w", foodID, errNotInPlan)
	}

	food.Consumed = !food.Consumed
	if meal.Consumed && !food.Consumed {
		meal.Consumed = false
	}
	return ToggleState{MealID: meal.ID, FoodID: food.ID, Eaten: food.Consumed}, nil
}

// Reconciler applies optimistic toggles and fires the remote sync. A sync
// failure comes back wrapped in ErrSyncFailed with the local change left
// in place, matching the accepted divergence window until the next fetch.
type Reconciler struct {
	Syncer ConsumptionSyncer
}

func (r *Reconciler) ToggleMeal(ctx context.Context, plan *model.MealPlan, dayID, mealID int64, today string) (ToggleState, error) {
	state, err := ToggleMeal(plan, dayID, mealID, today)
	if err != nil {
		return ToggleState{}, err
	}
	if err := r.Syncer.MarkMealConsumed(ctx, state.MealID, state.Eaten); err != nil {
		return state, fmt.Errorf("%w: %v", ErrSyncFailed, err)
	}
	return state, nil
}

func (r *Reconciler) ToggleFood(ctx context.Context, plan *model.MealPlan, dayID, mealID, foodID int64, today string) (ToggleState, error) {
	state, err := ToggleFood(plan, dayID, mealID, foodID, today)
	if err != nil {
		return ToggleState{}, err
	}
	if err := r.Syncer.MarkFoodConsumed(ctx, state.FoodID, state.Eaten); err != nil {
		return state, fmt.Errorf("%w: %v", ErrSyncFailed, err)
	}
	return state, nil
}

func findDay(plan *model.MealPlan, dayID int64) (*model.Day, error) {
	if plan == nil {
		return nil, fmt.Errorf("day %d: %w", dayID, errNotInPlan)
	}
	for i := range plan.Days {
		if plan.Days[i].ID == dayID {
			return &plan.Days[i], nil
		}
	}
	return nil, fmt.Errorf("day %d: %w", dayID, errNotInPlan)
}

func findMeal(day *model.Day, mealID int64) (*model.Meal, error) {
	for i := range day.Meals {
		if day.Meals[i].ID == mealID {
			return &day.Meals[i], nil
		}
	}
	return nil, fmt.Errorf("meal %d: %w", mealID, errNotInPlan)
}
