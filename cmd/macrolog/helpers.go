package macrolog

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/emres/macrolog/internal/api"
	"github.com/emres/macrolog/internal/app"
	"github.com/emres/macrolog/internal/config"
	"github.com/emres/macrolog/internal/db"
	"github.com/emres/macrolog/internal/model"
	"github.com/emres/macrolog/internal/service"
)

func resolveDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	return app.DefaultDBPath()
}

func resolveEnvPath() string {
	if envPath != "" {
		return envPath
	}
	p, err := app.DefaultEnvPath()
	if err != nil {
		return ""
	}
	return p
}

func withDB(run func(*sql.DB) error) error {
	path, err := resolveDBPath()
	if err != nil {
		return err
	}
	if err := app.EnsureDBDir(path); err != nil {
		return err
	}
	sqldb, err := db.Open(path)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		return err
	}
	return run(sqldb)
}

// anonClient builds a client without credentials, for login and refresh.
func anonClient() *api.Client {
	cfg := config.Load(resolveEnvPath())
	return &api.Client{
		BaseURL:    cfg.APIBaseURL,
		HTTPClient: &http.Client{Timeout: time.Duration(cfg.HTTPTimeoutSeconds) * time.Second},
		Limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
	}
}

// withClient opens the cache database and authenticates a backend client,
// refreshing the stored access token when needed.
func withClient(run func(ctx context.Context, sqldb *sql.DB, client *api.Client) error) error {
	return withDB(func(sqldb *sql.DB) error {
		ctx := context.Background()
		client := anonClient()
		token, err := service.AccessToken(ctx, sqldb, client)
		if err != nil {
			return err
		}
		client.Token = token
		return run(ctx, sqldb, client)
	})
}

func parseInt64Arg(name, value string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, value)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be > 0", name)
	}
	return v, nil
}

func parseDateOrToday(date string) (string, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return time.Now().Format("2006-01-02"), nil
	}
	if _, err := time.ParseInLocation("2006-01-02", date, time.Local); err != nil {
		return "", fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", date)
	}
	return date, nil
}

func todayString() string {
	return time.Now().Format("2006-01-02")
}

func printTotals(w io.Writer, label string, t model.Totals) {
	fmt.Fprintf(w, "%s: %.0f kcal | P %.1fg | C %.1fg | F %.1fg\n", label, t.Calories, t.Protein, t.Carbs, t.Fats)
}

// modeHint nudges toward the other command set when the persisted mode
// disagrees with the command being run. A hint only; the command still
// executes.
func modeHint(w io.Writer, sqldb *sql.DB, wants model.PlanMode) {
	if mode := service.PlanMode(sqldb); mode != wants {
		switch wants {
		case model.PlanModeWeekly:
			fmt.Fprintln(w, "Note: plan mode is manualTracking; 'macrolog entry' and 'macrolog today' are the usual path.")
		case model.PlanModeManual:
			fmt.Fprintln(w, "Note: plan mode is weeklyPlan; 'macrolog plan' and 'macrolog consume' are the usual path.")
		}
	}
}
