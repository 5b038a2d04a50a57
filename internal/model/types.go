package model

import "encoding/json"

// PlanMode selects which tracking pipeline is active: the generated weekly
// meal plan or free-form manual logging. Persisted locally; every command
// re-reads it at the start of its run.
type PlanMode string

const (
	PlanModeWeekly PlanMode = "weeklyPlan"
	PlanModeManual PlanMode = "manualTracking"
)

func (m PlanMode) Valid() bool {
	return m == PlanModeWeekly || m == PlanModeManual
}

// Totals holds summed calories and macros for a day, meal, or entry list.
type Totals struct {
	Calories float64 `json:"cal"`
	Protein  float64 `json:"pr"`
	Carbs    float64 `json:"cb"`
	Fats     float64 `json:"ft"`
}

func (t Totals) Add(o Totals) Totals {
	return Totals{
		Calories: t.Calories + o.Calories,
		Protein:  t.Protein + o.Protein,
		Carbs:    t.Carbs + o.Carbs,
		Fats:     t.Fats + o.Fats,
	}
}

func (t Totals) IsZero() bool {
	return t.Calories == 0 && t.Protein == 0 && t.Carbs == 0 && t.Fats == 0
}

type Food struct {
	ID                int64   `json:"id"`
	Name              string  `json:"name"`
	PortionType       string  `json:"portion_type"`
	PortionCount      float64 `json:"portion_count"`
	PortionMetric     float64 `json:"portion_metric"`
	PortionMetricUnit string  `json:"portion_metric_unit"`
	Calories          float64 `json:"calories"`
	Protein           float64 `json:"protein"`
	Carbs             float64 `json:"carbs"`
	Fats              float64 `json:"fats"`
	Consumed          bool    `json:"consumed"`
	Recipe            string  `json:"tarif,omitempty"`
	MainIngredients   string  `json:"ana_bilesenler,omitempty"`
}

type Meal struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	DisplayedName string `json:"displayed_name"`
	Order         int    `json:"order"`
	MealTime      string `json:"meal_time"`
	Consumed      bool   `json:"consumed"`
	Foods         []Food `json:"foods"`
}

// DailyTotal is the per-day goal block set by the backend when the plan is
// generated. It is never recomputed client-side; consumed totals are derived
// separately from the foods.
type DailyTotal struct {
	Calorie      float64 `json:"calorie"`
	Protein      float64 `json:"protein"`
	Carbohydrate float64 `json:"carbohydrate"`
	Fat          float64 `json:"fat"`
}

type Day struct {
	ID         int64      `json:"id"`
	DayNumber  int        `json:"day_number"`
	Date       string     `json:"date"`
	Meals      []Meal     `json:"meals"`
	DailyTotal DailyTotal `json:"daily_total"`
}

type MealPlan struct {
	ID            int64  `json:"id"`
	User          int64  `json:"user"`
	WeekStartDate string `json:"week_start_date"`
	CreatedAt     string `json:"created_at"`
	Days          []Day  `json:"days"`
}

// KcalEntry is a manual-mode logged item. Entries are never updated in
// place; the only edit path is delete and recreate.
type KcalEntry struct {
	ID       int64   `json:"id"`
	Title    string  `json:"title"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

// UserGoals is one goal set. The backend keeps two variants, recommended
// (survey-derived) and custom (user-entered); IsCustom marks which one the
// user has committed to.
type UserGoals struct {
	DailyCalorie float64 `json:"daily_calorie"`
	Protein      float64 `json:"protein"`
	Carbs        float64 `json:"carbs"`
	Fats         float64 `json:"fats"`
	WaterGoal    float64 `json:"water_goal"`
	IsCustom     bool    `json:"is_custom"`
}

// GoalsDoc is the wire shape of the goals endpoint.
type GoalsDoc struct {
	Recommended UserGoals `json:"recommended"`
	Custom      UserGoals `json:"custom"`
}

// Survey carries the survey fields the client overlays onto recommended
// goals. Macros arrives either as a JSON object or as a JSON-encoded string
// depending on how the survey was stored, so it stays raw until parsed.
type Survey struct {
	CalorieIntake float64         `json:"calorie_intake"`
	Macros        json.RawMessage `json:"macros,omitempty"`
	WakeTime      string          `json:"wake_time,omitempty"`
	SleepTime     string          `json:"sleep_time,omitempty"`
}

// SurveyMacros is the parsed form of Survey.Macros.
type SurveyMacros struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fats    float64 `json:"fats"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one chat turn. During the streaming reveal Content is the
// currently revealed prefix of FullContent; once fully revealed the two are
// equal.
type Message struct {
	ID          string   `json:"id,omitempty"`
	Role        string   `json:"role"`
	Content     string   `json:"content"`
	Image       string   `json:"image,omitempty"`
	ReplyTo     *Message `json:"replyTo,omitempty"`
	FullContent string   `json:"fullContent,omitempty"`
}

// WeightEntry is one row of the backend weight history.
type WeightEntry struct {
	Date   string  `json:"date"`
	Weight float64 `json:"weight"`
	Notes  string  `json:"notes,omitempty"`
}
