package service

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/emres/macrolog/internal/api"
	"github.com/emres/macrolog/internal/model"
	"github.com/google/uuid"
)

// ManualEntriesAPI is the backend surface the manual-tracking cache
// reconciles against.
type ManualEntriesAPI interface {
	AddManualEntry(ctx context.Context, in api.AddManualEntryInput) (*model.KcalEntry, error)
	ManualEntries(ctx context.Context, days int, date string) (map[string][]model.KcalEntry, error)
	DeleteManualEntry(ctx context.Context, entryID int64) error
}

type AddEntryInput struct {
	Title    string
	Date     string
	Calories float64
	Protein  float64
	Carbs    float64
	Fats     float64
	// Estimate asks the backend to compute macros from the title and
	// portion size instead of taking the provided values.
	Estimate bool
	Grams    float64
}

// ValidateEntry applies the client-side checks done before anything is
// sent: a title, a positive calorie count, and at least one macro.
// Estimated entries skip the nutrient checks since the backend fills them.
func ValidateEntry(in AddEntryInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("entry title is required")
	}
	if in.Estimate {
		return nil
	}
	if in.Calories <= 0 {
		return fmt.Errorf("calories must be > 0")
	}
	if in.Protein <= 0 && in.Carbs <= 0 && in.Fats <= 0 {
		return fmt.Errorf("at least one macro (protein, carbs, fats) is required")
	}
	return nil
}

// AddEntry validates, creates the entry on the backend, and mirrors it
// into the local cache. The backend owns entry ids.
func AddEntry(ctx context.Context, backend ManualEntriesAPI, db *sql.DB, in AddEntryInput) (*model.KcalEntry, error) {
	if err := ValidateEntry(in); err != nil {
		return nil, err
	}
	date := strings.TrimSpace(in.Date)
	if date == "" {
		return nil, fmt.Errorf("entry date is required")
	}

	item, err := backend.AddManualEntry(ctx, api.AddManualEntryInput{
		Name:               strings.TrimSpace(in.Title),
		Grams:              in.Grams,
		Date:               date,
		CalculateNutrients: in.Estimate,
		Calories:           in.Calories,
		Protein:            in.Protein,
		Carbs:              in.Carbs,
		Fats:               in.Fats,
	})
	if err != nil {
		return nil, fmt.Errorf("add manual entry: %w", err)
	}

	if err := cacheEntry(db, date, *item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteEntry removes the entry remotely and from the cache. There is no
// in-place update; edits are delete then recreate.
func DeleteEntry(ctx context.Context, backend ManualEntriesAPI, db *sql.DB, entryID int64) error {
	if err := backend.DeleteManualEntry(ctx, entryID); err != nil {
		return fmt.Errorf("delete manual entry %d: %w", entryID, err)
	}
	if _, err := db.Exec(`DELETE FROM manual_entries WHERE backend_id = ?`, entryID); err != nil {
		return fmt.Errorf("remove cached entry %d: %w", entryID, err)
	}
	return nil
}

// LoadEntries returns the date-keyed entry map. The backend is
// authoritative and replaces the cache on success; on backend failure the
// cached copy is served instead, with fromCache reporting which happened.
func LoadEntries(ctx context.Context, backend ManualEntriesAPI, db *sql.DB, days int) (entries map[string][]model.KcalEntry, fromCache bool, err error) {
	remote, remoteErr := backend.ManualEntries(ctx, days, "")
	if remoteErr == nil {
		if err := ReplaceEntryCache(db, remote); err != nil {
			return nil, false, err
		}
		return remote, false, nil
	}

	cached, cacheErr := CachedEntries(db)
	if cacheErr != nil {
		return nil, false, fmt.Errorf("load entries: backend: %v: %w", remoteErr, cacheErr)
	}
	return cached, true, nil
}

// ReplaceEntryCache swaps the whole cache for the backend's view.
func ReplaceEntryCache(db *sql.DB, entries map[string][]model.KcalEntry) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin entry cache tx: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM manual_entries`); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear entry cache: %w", err)
	}
	for date, list := range entries {
		for _, e := range list {
			if _, err := tx.Exec(`
INSERT INTO manual_entries(backend_id, client_id, entry_date, title, calories, protein, carbs, fats)
VALUES(?, ?, ?, ?, ?, ?, ?, ?)
`, e.ID, uuid.NewString(), date, e.Title, e.Calories, e.Protein, e.Carbs, e.Fats); err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("cache entry %q: %w", e.Title, err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit entry cache: %w", err)
	}
	return nil
}

// CachedEntries reads the local copy, keyed by date.
func CachedEntries(db *sql.DB) (map[string][]model.KcalEntry, error) {
	rows, err := db.Query(`
SELECT IFNULL(backend_id, 0), entry_date, title, calories, protein, carbs, fats
FROM manual_entries
ORDER BY entry_date ASC, id ASC
`)
	if err != nil {
		return nil, fmt.Errorf("read cached entries: %w", err)
	}
	defer rows.Close()

	out := map[string][]model.KcalEntry{}
	for rows.Next() {
		var e model.KcalEntry
		var date string
		if err := rows.Scan(&e.ID, &date, &e.Title, &e.Calories, &e.Protein, &e.Carbs, &e.Fats); err != nil {
			return nil, fmt.Errorf("scan cached entry: %w", err)
		}
		out[date] = append(out[date], e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cached entries: %w", err)
	}
	return out, nil
}

// EntryDates lists the cached dates ascending, for range displays.
func EntryDates(entries map[string][]model.KcalEntry) []string {
	dates := make([]string, 0, len(entries))
	for d := range entries {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

func cacheEntry(db *sql.DB, date string, e model.KcalEntry) error {
	if _, err := db.Exec(`
INSERT INTO manual_entries(backend_id, client_id, entry_date, title, calories, protein, carbs, fats)
VALUES(?, ?, ?, ?, ?, ?, ?, ?)
`, e.ID, uuid.NewString(), date, e.Title, e.Calories, e.Protein, e.Carbs, e.Fats); err != nil {
		return fmt.Errorf("cache entry %q: %w", e.Title, err)
	}
	return nil
}
