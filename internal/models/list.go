package models

import "time"

// ListType distinguishes hand-curated lists from query-backed ones
type ListType string

const (
	ListTypeManual ListType = "manual"
	ListTypeSmart  ListType = "smart"
)

// Valid reports whether t is a known list type
func (t ListType) Valid() bool {
	return t == ListTypeManual || t == ListTypeSmart
}

// List is a named, user-owned grouping of bookmarks
type List struct {
	ID        string    `json:"id" db:"id"`
	OwnerID   string    `json:"owner_id" db:"owner_id"`
	Name      string    `json:"name" db:"name"`
	Icon      string    `json:"icon" db:"icon"`
	ParentID  *string   `json:"parent_id" db:"parent_id"`
	Type      ListType  `json:"type" db:"type"`
	Query     *string   `json:"query,omitempty" db:"query"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// IsSmart reports whether membership of the list is computed from its query
func (l *List) IsSmart() bool {
	return l.Type == ListTypeSmart
}

// NewList carries the fields accepted when creating a list
type NewList struct {
	Name     string   `json:"name"`
	Icon     string   `json:"icon"`
	ParentID *string  `json:"parent_id,omitempty"`
	Type     ListType `json:"type"`
	Query    *string  `json:"query,omitempty"`
}

// ListPatch is a partial update. Nil fields are left unchanged; a ParentID
// pointing to an empty string detaches the list from its parent.
type ListPatch struct {
	Name     *string `json:"name,omitempty"`
	Icon     *string `json:"icon,omitempty"`
	ParentID *string `json:"parent_id,omitempty"`
	Query    *string `json:"query,omitempty"`
}

// Empty reports whether the patch changes nothing
func (p ListPatch) Empty() bool {
	return p.Name == nil && p.Icon == nil && p.ParentID == nil && p.Query == nil
}
