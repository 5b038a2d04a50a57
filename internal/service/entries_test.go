package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/emres/macrolog/internal/api"
	"github.com/emres/macrolog/internal/model"
	"github.com/emres/macrolog/internal/service"
)

type fakeEntriesAPI struct {
	entries    map[string][]model.KcalEntry
	nextID     int64
	addCalls   int
	listErr    error
	deleteErr  error
	deletedIDs []int64
}

func (f *fakeEntriesAPI) AddManualEntry(ctx context.Context, in api.AddManualEntryInput) (*model.KcalEntry, error) {
	f.addCalls++
	f.nextID++
	return &model.KcalEntry{
		ID:       f.nextID,
		Title:    in.Name,
		Calories: in.Calories,
		Protein:  in.Protein,
		Carbs:    in.Carbs,
		Fats:     in.Fats,
	}, nil
}

func (f *fakeEntriesAPI) ManualEntries(ctx context.Context, days int, date string) (map[string][]model.KcalEntry, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.entries, nil
}

func (f *fakeEntriesAPI) DeleteManualEntry(ctx context.Context, entryID int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedIDs = append(f.deletedIDs, entryID)
	return nil
}

func TestValidateEntryRequirements(t *testing.T) {
	t.Parallel()

	valid := service.AddEntryInput{Title: "Elma", Calories: 95, Carbs: 25}
	if err := service.ValidateEntry(valid); err != nil {
		t.Fatalf("valid entry rejected: %v", err)
	}

	cases := []service.AddEntryInput{
		{Title: "  ", Calories: 95, Carbs: 25},
		{Title: "Elma", Calories: 0, Carbs: 25},
		{Title: "Elma", Calories: 95},
	}
	for i, in := range cases {
		if err := service.ValidateEntry(in); err == nil {
			t.Fatalf("case %d: expected validation error for %+v", i, in)
		}
	}

	estimated := service.AddEntryInput{Title: "Tavuk", Estimate: true, Grams: 150}
	if err := service.ValidateEntry(estimated); err != nil {
		t.Fatalf("estimated entry rejected: %v", err)
	}
}

func TestAddEntryMirrorsIntoCache(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	backend := &fakeEntriesAPI{}
	item, err := service.AddEntry(context.Background(), backend, db, service.AddEntryInput{
		Title:    "Elma",
		Date:     "2026-09-01",
		Calories: 95,
		Protein:  0.5,
		Carbs:    25,
		Fats:     0.3,
	})
	if err != nil {
		t.Fatalf("add entry: %v", err)
	}
	if item.ID == 0 {
		t.Fatalf("expected backend-assigned id")
	}

	cached, err := service.CachedEntries(db)
	if err != nil {
		t.Fatalf("read cache: %v", err)
	}
	day := cached["2026-09-01"]
	if len(day) != 1 || day[0].Title != "Elma" || day[0].Calories != 95 {
		t.Fatalf("unexpected cached entries: %+v", cached)
	}

	// End to end: the logged apple aggregates exactly.
	got := service.EntryTotals(day)
	want := model.Totals{Calories: 95, Protein: 0.5, Carbs: 25, Fats: 0.3}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestAddEntryRejectsInvalidWithoutBackendCall(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	backend := &fakeEntriesAPI{}
	_, err := service.AddEntry(context.Background(), backend, db, service.AddEntryInput{
		Title: "",
		Date:  "2026-09-01",
	})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if backend.addCalls != 0 {
		t.Fatalf("invalid entry must never reach the backend")
	}
}

func TestLoadEntriesBackendWins(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	stale := map[string][]model.KcalEntry{
		"2026-08-30": {{ID: 1, Title: "Eski", Calories: 100}},
	}
	if err := service.ReplaceEntryCache(db, stale); err != nil {
		t.Fatalf("seed stale cache: %v", err)
	}

	backend := &fakeEntriesAPI{entries: map[string][]model.KcalEntry{
		"2026-09-01": {{ID: 5, Title: "Elma", Calories: 95, Protein: 0.5, Carbs: 25, Fats: 0.3}},
	}}

	entries, fromCache, err := service.LoadEntries(context.Background(), backend, db, 7)
	if err != nil {
		t.Fatalf("load entries: %v", err)
	}
	if fromCache {
		t.Fatalf("expected backend data, not cache")
	}
	if len(entries["2026-09-01"]) != 1 || len(entries["2026-08-30"]) != 0 {
		t.Fatalf("backend view must replace stale cache, got %+v", entries)
	}

	cached, err := service.CachedEntries(db)
	if err != nil {
		t.Fatalf("read cache after replace: %v", err)
	}
	if len(cached["2026-08-30"]) != 0 {
		t.Fatalf("stale cache rows must be gone, got %+v", cached)
	}
}

func TestLoadEntriesFallsBackToCacheOnBackendError(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	seed := map[string][]model.KcalEntry{
		"2026-09-01": {{ID: 5, Title: "Elma", Calories: 95}},
	}
	if err := service.ReplaceEntryCache(db, seed); err != nil {
		t.Fatalf("seed cache: %v", err)
	}

	backend := &fakeEntriesAPI{listErr: fmt.Errorf("backend unreachable")}
	entries, fromCache, err := service.LoadEntries(context.Background(), backend, db, 7)
	if err != nil {
		t.Fatalf("load entries with cache fallback: %v", err)
	}
	if !fromCache {
		t.Fatalf("expected cache fallback")
	}
	if len(entries["2026-09-01"]) != 1 || entries["2026-09-01"][0].Title != "Elma" {
		t.Fatalf("unexpected cached fallback: %+v", entries)
	}
}

func TestDeleteEntryRemovesRemoteAndCache(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	seed := map[string][]model.KcalEntry{
		"2026-09-01": {{ID: 5, Title: "Elma", Calories: 95}},
	}
	if err := service.ReplaceEntryCache(db, seed); err != nil {
		t.Fatalf("seed cache: %v", err)
	}

	backend := &fakeEntriesAPI{}
	if err := service.DeleteEntry(context.Background(), backend, db, 5); err != nil {
		t.Fatalf("delete entry: %v", err)
	}
	if len(backend.deletedIDs) != 1 || backend.deletedIDs[0] != 5 {
		t.Fatalf("expected backend delete of id 5, got %v", backend.deletedIDs)
	}

	cached, err := service.CachedEntries(db)
	if err != nil {
		t.Fatalf("read cache: %v", err)
	}
	if len(cached["2026-09-01"]) != 0 {
		t.Fatalf("expected cache row removed, got %+v", cached)
	}
}
