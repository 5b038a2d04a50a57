package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoToken means no credentials are stored; the user must log in.
var ErrNoToken = errors.New("not logged in; run 'macrolog login'")

// Access tokens this close to expiry are refreshed before use.
const tokenExpirySlack = 30 * time.Second

// TokenRefresher trades a refresh token for a new access token.
type TokenRefresher interface {
	Refresh(ctx context.Context, refreshToken string) (string, error)
}

func SaveTokens(db *sql.DB, access, refresh string) error {
	for name, token := range map[string]string{"access": access, "refresh": refresh} {
		if token == "" {
			continue
		}
		if _, err := db.Exec(`
INSERT INTO auth_tokens(name, token, updated_at)
VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(name) DO UPDATE SET token=excluded.token, updated_at=excluded.updated_at
`, name, token); err != nil {
			return fmt.Errorf("store %s token: %w", name, err)
		}
	}
	return nil
}

func ClearTokens(db *sql.DB) error {
	if _, err := db.Exec(`DELETE FROM auth_tokens`); err != nil {
		return fmt.Errorf("clear tokens: %w", err)
	}
	return nil
}

func storedToken(db *sql.DB, name string) (string, error) {
	var token string
	err := db.QueryRow(`SELECT token FROM auth_tokens WHERE name = ?`, name).Scan(&token)
	if err == sql.ErrNoRows {
		return "", ErrNoToken
	}
	if err != nil {
		return "", fmt.Errorf("read %s token: %w", name, err)
	}
	return token, nil
}

// AccessToken returns a usable bearer token, refreshing through the
// backend when the stored one is expired or about to expire. The expiry
// check is an unverified claim parse; only the backend verifies
// signatures.
func AccessToken(ctx context.Context, db *sql.DB, refresher TokenRefresher) (string, error) {
	access, err := storedToken(db, "access")
	if err != nil {
		return "", err
	}
	if !tokenNeedsRefresh(access, time.Now()) {
		return access, nil
	}

	refresh, err := storedToken(db, "refresh")
	if err != nil {
		// No refresh token stored; let the backend decide whether the
		// access token is still good.
		if errors.Is(err, ErrNoToken) {
			return access, nil
		}
		return "", err
	}
	fresh, err := refresher.Refresh(ctx, refresh)
	if err != nil {
		return "", fmt.Errorf("refresh access token: %w", err)
	}
	if err := SaveTokens(db, fresh, ""); err != nil {
		return "", err
	}
	return fresh, nil
}

func tokenNeedsRefresh(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		// Unparseable tokens go to the backend as-is.
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return now.Add(tokenExpirySlack).After(exp.Time)
}
