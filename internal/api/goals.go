package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/emres/macrolog/internal/model"
)

// GetGoals returns both goal variants. The backend may answer with its
// default tuple while survey-derived goals are still being computed; the
// goal resolver handles that race.
func (c *Client) GetGoals(ctx context.Context) (*model.GoalsDoc, error) {
	var doc model.GoalsDoc
	if err := c.do(ctx, http.MethodGet, "/api/tracker/goals/", nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// UpdateCustomGoals commits a custom goal set. IsCustom false reverts the
// user to recommended goals.
func (c *Client) UpdateCustomGoals(ctx context.Context, goals model.UserGoals) error {
	return c.do(ctx, http.MethodPost, "/api/tracker/goals/update/", goals, nil)
}

// GetSurvey fetches the onboarding survey. Nil with nil error means the
// survey has not been submitted yet.
func (c *Client) GetSurvey(ctx context.Context) (*model.Survey, error) {
	var survey model.Survey
	err := c.do(ctx, http.MethodGet, "/api/survey/get-survey/", nil, &survey)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &survey, nil
}

func (c *Client) UpdateSurvey(ctx context.Context, fields map[string]any) error {
	return c.do(ctx, http.MethodPost, "/api/survey/update-survey/", fields, nil)
}

func (c *Client) CheckSurveyStatus(ctx context.Context) (bool, error) {
	var out struct {
		Completed bool `json:"completed"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/survey/check-survey-status/", nil, &out); err != nil {
		return false, err
	}
	return out.Completed, nil
}
