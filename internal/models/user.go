package models

import (
	"strings"
	"time"
)

// User is an internal account. Users reaching ListboT through Telegram are
// keyed by their Telegram ID; the internal ID is what owns lists and
// bookmarks.
type User struct {
	ID               string    `json:"id" db:"id"`
	TelegramID       int64     `json:"telegram_id" db:"telegram_id"`
	TelegramUsername string    `json:"telegram_username" db:"telegram_username"`
	FirstName        string    `json:"first_name" db:"first_name"`
	LastName         string    `json:"last_name" db:"last_name"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// DisplayName prefers the @username, then the full name
func (u *User) DisplayName() string {
	if u.TelegramUsername != "" {
		return "@" + u.TelegramUsername
	}
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// SameProfile reports whether the Telegram profile fields match
func (u *User) SameProfile(username, firstName, lastName string) bool {
	return u.TelegramUsername == username && u.FirstName == firstName && u.LastName == lastName
}
