package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/emres/macrolog/internal/model"
)

// GoalActual pairs a target with what was actually logged.
type GoalActual struct {
	Goal   float64 `json:"goal"`
	Actual float64 `json:"actual"`
}

type DailyIntake struct {
	Date   string `json:"date"`
	Totals struct {
		Calories GoalActual `json:"calories"`
		Protein  GoalActual `json:"protein"`
		Carbs    GoalActual `json:"carbs"`
		Fats     GoalActual `json:"fats"`
		Water    GoalActual `json:"water"`
	} `json:"totals"`
	Weight *float64 `json:"weight"`
}

// RangeStatistics is the weekly/monthly statistics shape: parallel arrays
// indexed by day.
type RangeStatistics struct {
	Dates    []string `json:"dates"`
	Calories struct {
		Actual []float64 `json:"actual"`
		Goal   []float64 `json:"goal"`
	} `json:"calories"`
	Macros struct {
		Protein []float64 `json:"protein"`
		Carbs   []float64 `json:"carbs"`
		Fats    []float64 `json:"fats"`
	} `json:"macros"`
	Water struct {
		Actual []float64 `json:"actual"`
		Goal   []float64 `json:"goal"`
	} `json:"water"`
	Weight []*float64 `json:"weight"`
}

// UpdateWater sets the day's absolute water amount in milliliters.
func (c *Client) UpdateWater(ctx context.Context, amount int, date string) error {
	payload := map[string]any{"amount": amount}
	if date != "" {
		payload["date"] = date
	}
	return c.do(ctx, http.MethodPost, "/api/tracker/water/", payload, nil)
}

func (c *Client) DailyStatistics(ctx context.Context, date string, manual bool) (*DailyIntake, error) {
	path := "/api/tracker/statistics/daily/"
	if manual {
		path = "/api/tracker/statistics/daily/manual/"
	}
	if date != "" {
		path += "?date=" + date
	}
	var out DailyIntake
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) WeeklyStatistics(ctx context.Context, manual bool) (*RangeStatistics, error) {
	path := "/api/tracker/statistics/weekly/"
	if manual {
		path = "/api/tracker/statistics/weekly/manual/"
	}
	var out RangeStatistics
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) MonthlyStatistics(ctx context.Context, manual bool) (*RangeStatistics, error) {
	path := "/api/tracker/statistics/monthly/"
	if manual {
		path = "/api/tracker/statistics/monthly/manual/"
	}
	var out RangeStatistics
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) LogWeight(ctx context.Context, weight float64, notes, date string) error {
	if weight <= 0 || weight > 500 {
		return fmt.Errorf("weight %.1f is out of range", weight)
	}
	payload := map[string]any{"weight": weight}
	if notes != "" {
		payload["notes"] = notes
	}
	if date != "" {
		payload["date"] = date
	}
	return c.do(ctx, http.MethodPost, "/api/tracker/weight/", payload, nil)
}

func (c *Client) WeightHistory(ctx context.Context, limit int) ([]model.WeightEntry, error) {
	path := "/api/tracker/weight/history/"
	if limit > 0 {
		path += fmt.Sprintf("?limit=%d", limit)
	}
	entries := make([]model.WeightEntry, 0)
	if err := c.do(ctx, http.MethodGet, path, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
