// Package session persists the login credential set across client restarts,
// playing the role browser localStorage plays for the web dashboard.
package session

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/glebarez/go-sqlite"

	"assetdeck/internal/domain"
)

const (
	keyAccessToken  = "accessToken"
	keyRefreshToken = "refreshToken"
	keyAuthUser     = "X-Auth-User"
)

// Store is a sqlite-backed key-value credential store. It is the single
// shared mutable resource between views: read on every outgoing request,
// written only by the login/logout flow.
type Store struct {
	db *sql.DB
}

// Open creates (or opens) the credential database at dbPath.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return nil, fmt.Errorf("failed to set pragma %s: %w", pragma, err)
		}
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS credentials (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		);
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to create credentials table: %w", err)
	}

	return &Store{db: db}, nil
}

// Save upserts the non-empty fields of cred. Fields absent from the login
// response headers arrive empty and are skipped, so a partial response
// leaves any previously stored value in place.
func (s *Store) Save(cred domain.Credential) error {
	now := time.Now().Unix()
	pairs := []struct{ key, value string }{
		{keyAccessToken, cred.AccessToken},
		{keyRefreshToken, cred.RefreshToken},
		{keyAuthUser, cred.AuthUser},
	}
	for _, p := range pairs {
		if p.value == "" {
			continue
		}
		_, err := s.db.Exec(
			"INSERT INTO credentials (key, value, updated_at) VALUES (?, ?, ?) ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at",
			p.key, p.value, now,
		)
		if err != nil {
			return fmt.Errorf("failed to save %s: %w", p.key, err)
		}
	}
	return nil
}

// Load returns the stored credential set. The boolean is false when no
// access token is stored, in which case requests go out anonymous.
func (s *Store) Load() (domain.Credential, bool, error) {
	rows, err := s.db.Query("SELECT key, value FROM credentials")
	if err != nil {
		return domain.Credential{}, false, fmt.Errorf("failed to load credentials: %w", err)
	}
	defer rows.Close()

	var cred domain.Credential
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return domain.Credential{}, false, err
		}
		switch key {
		case keyAccessToken:
			cred.AccessToken = value
		case keyRefreshToken:
			cred.RefreshToken = value
		case keyAuthUser:
			cred.AuthUser = value
		}
	}
	if err := rows.Err(); err != nil {
		return domain.Credential{}, false, err
	}

	return cred, cred.Present(), nil
}

// Clear drops every stored credential field. Used by the logout flow.
func (s *Store) Clear() error {
	_, err := s.db.Exec("DELETE FROM credentials")
	if err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
