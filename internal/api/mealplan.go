package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/emres/macrolog/internal/model"
)

// GetMealPlan fetches the current weekly plan. A nil plan with nil error
// means no plan has been generated yet.
func (c *Client) GetMealPlan(ctx context.Context) (*model.MealPlan, error) {
	var plan model.MealPlan
	err := c.do(ctx, http.MethodGet, "/api/mealplan/get-meal-plan/", nil, &plan)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// GenerateMealPlan asks the backend to build a fresh plan, replacing any
// existing one wholesale.
func (c *Client) GenerateMealPlan(ctx context.Context) (*model.MealPlan, error) {
	var plan model.MealPlan
	if err := c.do(ctx, http.MethodPost, "/api/mealplan/generate-meal-plan/", nil, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

func (c *Client) MarkMealConsumed(ctx context.Context, mealID int64, eaten bool) error {
	payload := struct {
		MealID  int64 `json:"meal_id"`
		IsEaten bool  `json:"is_eaten"`
	}{MealID: mealID, IsEaten: eaten}
	return c.do(ctx, http.MethodPatch, "/api/mealplan/mark-meal-consumed/", payload, nil)
}

func (c *Client) MarkFoodConsumed(ctx context.Context, foodID int64, eaten bool) error {
	payload := struct {
		FoodID  int64 `json:"food_id"`
		IsEaten bool  `json:"is_eaten"`
	}{FoodID: foodID, IsEaten: eaten}
	return c.do(ctx, http.MethodPost, "/api/mealplan/mark-food-consumed/", payload, nil)
}

// BulkUpdateConsumed flips every meal in the list in one call.
func (c *Client) BulkUpdateConsumed(ctx context.Context, mealIDs []int64, eaten bool) error {
	payload := struct {
		MealIDs []int64 `json:"meal_ids"`
		IsEaten bool    `json:"is_eaten"`
	}{MealIDs: mealIDs, IsEaten: eaten}
	return c.do(ctx, http.MethodPost, "/api/mealplan/bulk-update-consumed/", payload, nil)
}
