package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/avelin/profilebot/internal/domain"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Repository using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite creates a new SQLite-backed repository.
func NewSQLite(dbPath string) (Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	// Open database with WAL mode for better concurrency.
	dsn := dbPath + "?_journal=WAL&_sync=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	PRAGMA busy_timeout = 5000;
	CREATE TABLE IF NOT EXISTS users (
		telegram_user_id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		age INTEGER NOT NULL CHECK (age >= 13 AND age <= 120),
		address TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Ping verifies database connectivity.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// GetUser retrieves a user by their Telegram user ID.
func (s *SQLiteStore) GetUser(ctx context.Context, telegramUserID int64) (*domain.User, error) {
	query := `
		SELECT telegram_user_id, name, age, address, created_at, updated_at
		FROM users WHERE telegram_user_id = ?`

	row := s.db.QueryRowContext(ctx, query, telegramUserID)

	var user domain.User
	var createdAt, updatedAt int64

	err := row.Scan(
		&user.TelegramUserID, &user.Name, &user.Age, &user.Address,
		&createdAt, &updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan user row: %w", err)
	}

	user.CreatedAt = time.Unix(createdAt, 0)
	user.UpdatedAt = time.Unix(updatedAt, 0)

	return &user, nil
}

// UpsertUser creates or updates the record for the given Telegram user ID.
// The single INSERT ... ON CONFLICT statement relies on the primary key, so
// concurrent upserts for the same ID cannot produce duplicate rows. The
// conflict branch leaves created_at untouched.
func (s *SQLiteStore) UpsertUser(ctx context.Context, telegramUserID int64, name string, age int, address string) error {
	query := `
	INSERT INTO users (telegram_user_id, name, age, address, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(telegram_user_id) DO UPDATE SET
		name = excluded.name,
		age = excluded.age,
		address = excluded.address,
		updated_at = excluded.updated_at`

	now := time.Now().Unix()
	_, err := s.db.ExecContext(ctx, query,
		telegramUserID, name, age, address, now, now,
	)
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}

// DeleteUser removes the record if present.
func (s *SQLiteStore) DeleteUser(ctx context.Context, telegramUserID int64) (bool, error) {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM users WHERE telegram_user_id = ?`, telegramUserID)
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("get rows affected: %w", err)
	}
	return rows > 0, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}
