package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/emres/macrolog/internal/model"
)

type AddManualEntryInput struct {
	Name               string  `json:"name"`
	Grams              float64 `json:"grams,omitempty"`
	Date               string  `json:"date,omitempty"`
	CalculateNutrients bool    `json:"calculate_nutrients"`
	Calories           float64 `json:"calories,omitempty"`
	Protein            float64 `json:"protein,omitempty"`
	Carbs              float64 `json:"carbs,omitempty"`
	Fats               float64 `json:"fats,omitempty"`
}

// AddManualEntry creates one manual-mode entry. With CalculateNutrients
// set the backend estimates macros from the name and portion size;
// otherwise the provided values are stored as-is.
func (c *Client) AddManualEntry(ctx context.Context, in AddManualEntryInput) (*model.KcalEntry, error) {
	var out struct {
		Success bool            `json:"success"`
		Item    model.KcalEntry `json:"item"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/mealgpt/manual-add/", in, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, fmt.Errorf("manual add rejected by backend")
	}
	return &out.Item, nil
}

// ManualEntries returns entries keyed by date string. days limits how far
// back the backend looks; date narrows to a single day.
func (c *Client) ManualEntries(ctx context.Context, days int, date string) (map[string][]model.KcalEntry, error) {
	q := url.Values{}
	if days > 0 {
		q.Set("days", strconv.Itoa(days))
	}
	if date != "" {
		q.Set("date", date)
	}
	path := "/api/mealgpt/manual-entries/"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out struct {
		Success bool                         `json:"success"`
		Entries map[string][]model.KcalEntry `json:"entries"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, fmt.Errorf("manual entries fetch rejected by backend")
	}
	if out.Entries == nil {
		out.Entries = map[string][]model.KcalEntry{}
	}
	return out.Entries, nil
}

func (c *Client) DeleteManualEntry(ctx context.Context, entryID int64) error {
	path := fmt.Sprintf("/api/mealgpt/manual-entry/%d/", entryID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}
