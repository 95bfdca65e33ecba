// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"

	"github.com/avelin/profilebot/internal/domain"
)

// Repository defines the interface for persisting collected user profiles.
type Repository interface {
	// GetUser retrieves a user by their Telegram user ID.
	// Returns nil without error if no record exists.
	GetUser(ctx context.Context, telegramUserID int64) (*domain.User, error)

	// UpsertUser creates or updates the record for the given Telegram user ID.
	// An insert sets both timestamps; an update overwrites name, age, and
	// address and refreshes only updated_at. Retrying with identical
	// arguments leaves exactly one record.
	UpsertUser(ctx context.Context, telegramUserID int64, name string, age int, address string) error

	// DeleteUser removes the record if present. Returns true if a record was
	// deleted; a missing record is not an error.
	DeleteUser(ctx context.Context, telegramUserID int64) (bool, error)

	// Ping verifies database connectivity.
	Ping(ctx context.Context) error

	// Close closes the database connection.
	Close() error
}
