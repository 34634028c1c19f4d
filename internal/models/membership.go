package models

import "time"

// Membership records that a bookmark belongs to a manual list
type Membership struct {
	ListID     string    `json:"list_id" db:"list_id"`
	BookmarkID string    `json:"bookmark_id" db:"bookmark_id"`
	AddedAt    time.Time `json:"added_at" db:"added_at"`
}
