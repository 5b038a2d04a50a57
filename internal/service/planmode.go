package service

import (
	"database/sql"
	"fmt"

	"github.com/emres/macrolog/internal/model"
)

const planModeKey = "plan_mode"

// PlanMode reads the persisted mode. Unset, unreadable, or corrupted
// values all come back as the weekly-plan default; mode reads never fail
// the caller.
func PlanMode(db *sql.DB) model.PlanMode {
	var value string
	err := db.QueryRow(`SELECT value FROM app_config WHERE key = ?`, planModeKey).Scan(&value)
	if err != nil {
		return model.PlanModeWeekly
	}
	mode := model.PlanMode(value)
	if !mode.Valid() {
		return model.PlanModeWeekly
	}
	return mode
}

func SavePlanMode(db *sql.DB, mode model.PlanMode) error {
	if !mode.Valid() {
		return fmt.Errorf("invalid plan mode %q", mode)
	}
	_, err := db.Exec(`
INSERT INTO app_config(key, value, updated_at)
VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
`, planModeKey, string(mode))
	if err != nil {
		return fmt.Errorf("save plan mode: %w", err)
	}
	return nil
}

// TogglePlanMode flips between the two modes and returns the new one.
func TogglePlanMode(db *sql.DB) (model.PlanMode, error) {
	next := model.PlanModeManual
	if PlanMode(db) == model.PlanModeManual {
		next = model.PlanModeWeekly
	}
	if err := SavePlanMode(db, next); err != nil {
		return "", err
	}
	return next, nil
}
