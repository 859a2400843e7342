//go:build !bolt

package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/inovacc/nutrilog/internal/model"
	"github.com/inovacc/nutrilog/internal/params"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const defaultFileName = params.SQLiteFileName

// sessionSlot is the only row of the session table.
const sessionSlot = 1

var migrations = []struct {
	version int
	sql     string
}{
	{1, `
		CREATE TABLE IF NOT EXISTS session (
			slot INTEGER PRIMARY KEY CHECK (slot = 1),
			user_id TEXT NOT NULL,
			user_name TEXT NOT NULL,
			api_url TEXT NOT NULL,
			token_storage TEXT NOT NULL,
			token TEXT,
			sealed_token BLOB,
			expires_at INTEGER,
			created_at INTEGER NOT NULL
		);
	`},
}

// SQLite implements Store on a local SQLite file.
type SQLite struct {
	db *sql.DB
}

// Open creates or opens a SQLite database at path.
func Open(path string) (Store, error) {
	return NewSQLite(path)
}

// NewSQLite opens the database and applies pending migrations.
func NewSQLite(path string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite doesn't handle multiple writers well
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	s := &SQLite{db: db}

	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

func (s *SQLite) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	var current int
	if err := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&current); err != nil {
		return fmt.Errorf("failed to get current version: %w", err)
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}

		tx, err := s.db.Begin()
		if err != nil {
			return err
		}

		if _, err := tx.Exec(m.sql); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d: %w", m.version, err)
		}

		if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", m.version); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d: %w", m.version, err)
		}

		if err := tx.Commit(); err != nil {
			return err
		}
	}

	return nil
}

func (s *SQLite) Ping() error {
	return s.db.Ping()
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) GetSession() (*model.Session, error) {
	var (
		session   model.Session
		storage   string
		token     sql.NullString
		sealed    []byte
		expiresAt sql.NullInt64
		createdAt int64
	)

	err := s.db.QueryRow(`
		SELECT user_id, user_name, api_url, token_storage, token, sealed_token, expires_at, created_at
		FROM session WHERE slot = ?`, sessionSlot).
		Scan(&session.User.ID, &session.User.Name, &session.APIURL, &storage, &token, &sealed, &expiresAt, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSession
	}

	if err != nil {
		return nil, fmt.Errorf("reading session: %w", err)
	}

	session.TokenStorage = model.TokenStorage(storage)
	session.Token = token.String
	session.SealedToken = sealed
	session.CreatedAt = time.Unix(createdAt, 0)

	if expiresAt.Valid {
		session.ExpiresAt = time.Unix(expiresAt.Int64, 0)
	}

	return &session, nil
}

func (s *SQLite) SaveSession(session *model.Session) error {
	if session == nil {
		return errors.New("session is required")
	}

	var expiresAt sql.NullInt64
	if !session.ExpiresAt.IsZero() {
		expiresAt = sql.NullInt64{Int64: session.ExpiresAt.Unix(), Valid: true}
	}

	token := sql.NullString{String: session.Token, Valid: session.Token != ""}

	_, err := s.db.Exec(`
		INSERT INTO session (slot, user_id, user_name, api_url, token_storage, token, sealed_token, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET
			user_id = excluded.user_id,
			user_name = excluded.user_name,
			api_url = excluded.api_url,
			token_storage = excluded.token_storage,
			token = excluded.token,
			sealed_token = excluded.sealed_token,
			expires_at = excluded.expires_at,
			created_at = excluded.created_at`,
		sessionSlot, session.User.ID, session.User.Name, session.APIURL, string(session.TokenStorage),
		token, session.SealedToken, expiresAt, session.CreatedAt.Unix())
	if err != nil {
		return fmt.Errorf("saving session: %w", err)
	}

	return nil
}

func (s *SQLite) DeleteSession() error {
	if _, err := s.db.Exec("DELETE FROM session WHERE slot = ?", sessionSlot); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}

	return nil
}
