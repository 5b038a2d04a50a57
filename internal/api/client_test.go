package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetMealPlanParsesResponse(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/mealplan/get-meal-plan/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("expected bearer token, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
  "id": 7,
  "user": 3,
  "week_start_date": "2026-08-31",
  "created_at": "2026-08-31T08:00:00Z",
  "days": [
    {
      "id": 71,
      "day_number": 1,
      "date": "2026-08-31",
      "daily_total": {"calorie": 2100, "protein": 120, "carbohydrate": 240, "fat": 65},
      "meals": [
        {
          "id": 711,
          "name": "breakfast",
          "displayed_name": "Kahvalti",
          "order": 1,
          "meal_time": "08:30",
          "consumed": false,
          "foods": [
            {"id": 7111, "name": "Menemen", "portion_type": "bowl", "portion_count": 1,
             "portion_metric": 250, "portion_metric_unit": "g",
             "calories": 320, "protein": 14, "carbs": 12, "fats": 22, "consumed": false}
          ]
        }
      ]
    }
  ]
}`))
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, Token: "tok", HTTPClient: ts.Client()}
	plan, err := c.GetMealPlan(context.Background())
	if err != nil {
		t.Fatalf("get meal plan: %v", err)
	}
	if plan == nil || plan.ID != 7 || len(plan.Days) != 1 {
		t.Fatalf("unexpected plan: %+v", plan)
	}
	day := plan.Days[0]
	if day.DailyTotal.Calorie != 2100 || day.Meals[0].Foods[0].Calories != 320 {
		t.Fatalf("unexpected day contents: %+v", day)
	}
}

func TestGetMealPlanTreats404AsNoPlan(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "no plan"}`, http.StatusNotFound)
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	plan, err := c.GetMealPlan(context.Background())
	if err != nil {
		t.Fatalf("expected nil error for 404, got %v", err)
	}
	if plan != nil {
		t.Fatalf("expected nil plan for 404, got %+v", plan)
	}
}

func TestMarkMealConsumedSendsPatch(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("expected PATCH, got %s", r.Method)
		}
		if r.URL.Path != "/api/mealplan/mark-meal-consumed/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		raw, _ := io.ReadAll(r.Body)
		var body struct {
			MealID  int64 `json:"meal_id"`
			IsEaten bool  `json:"is_eaten"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body.MealID != 711 || !body.IsEaten {
			t.Errorf("unexpected body %+v", body)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	if err := c.MarkMealConsumed(context.Background(), 711, true); err != nil {
		t.Fatalf("mark meal consumed: %v", err)
	}
}

func TestManualEntriesParsesDateKeyedMap(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("days"); got != "7" {
			t.Errorf("expected days=7, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
  "success": true,
  "entries": {
    "2026-09-01": [
      {"id": 5, "title": "Elma", "calories": 95, "protein": 0.5, "carbs": 25, "fats": 0.3}
    ]
  }
}`))
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	entries, err := c.ManualEntries(context.Background(), 7, "")
	if err != nil {
		t.Fatalf("manual entries: %v", err)
	}
	day := entries["2026-09-01"]
	if len(day) != 1 || day[0].Title != "Elma" || day[0].Calories != 95 {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestGetGoalsParsesBothVariants(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
  "recommended": {"daily_calorie": 2430, "protein": 140, "carbs": 260, "fats": 80, "water_goal": 2700, "is_custom": false},
  "custom": {"daily_calorie": 1900, "protein": 150, "carbs": 180, "fats": 60, "water_goal": 3000, "is_custom": true}
}`))
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	doc, err := c.GetGoals(context.Background())
	if err != nil {
		t.Fatalf("get goals: %v", err)
	}
	if doc.Recommended.DailyCalorie != 2430 || doc.Custom.DailyCalorie != 1900 || !doc.Custom.IsCustom {
		t.Fatalf("unexpected goals doc: %+v", doc)
	}
}

func TestSendMessageSlidesWindowAndReadsReply(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chatbot/send_message/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		raw, _ := io.ReadAll(r.Body)
		var body struct {
			Messages []map[string]string `json:"messages"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if len(body.Messages) != 10 {
			t.Errorf("expected trailing 10 messages, got %d", len(body.Messages))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message": "Afiyet olsun"}`))
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	history := makeHistory(14)
	reply, err := c.SendMessage(context.Background(), history, "")
	if err != nil {
		t.Fatalf("send message: %v", err)
	}
	if reply != "Afiyet olsun" {
		t.Fatalf("unexpected reply %q", reply)
	}
}

func TestDoRejectsServerError(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	if _, err := c.GetGoals(context.Background()); err == nil {
		t.Fatalf("expected error for 500 response")
	}
}
