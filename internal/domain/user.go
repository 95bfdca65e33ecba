// Package domain contains core domain types for profilebot.
package domain

import (
	"time"
)

// User represents a stored profile collected through the dialogue.
// There is at most one record per Telegram user ID.
type User struct {
	TelegramUserID int64     `json:"telegram_user_id"`
	Name           string    `json:"name"`
	Age            int       `json:"age"`
	Address        string    `json:"address"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
