package repository

import (
	"context"
	"errors"

	"github.com/Kerhoff/ListboT/internal/models"
)

// ErrDuplicate is returned by inserts that hit a uniqueness constraint.
// Store implementations wrap it so callers can match with errors.Is.
var ErrDuplicate = errors.New("duplicate record")

// Lookups that find nothing return (nil, nil) rather than an error.

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByTelegramID(ctx context.Context, telegramID int64) (*models.User, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
}

// BookmarkRepository defines the interface for bookmark data operations
type BookmarkRepository interface {
	Create(ctx context.Context, bookmark *models.Bookmark) (*models.Bookmark, error)
	GetByID(ctx context.Context, id string) (*models.Bookmark, error)
}

// ListRepository defines the interface for list data operations. Mutations
// are predicated on both id and owner so that a concurrent delete or a
// foreign owner turns into "nothing matched" instead of a silent write.
type ListRepository interface {
	Create(ctx context.Context, list *models.List) (*models.List, error)
	GetByID(ctx context.Context, id string) (*models.List, error)
	GetByIDAndOwner(ctx context.Context, id, ownerID string) (*models.List, error)
	GetByOwner(ctx context.Context, ownerID string) ([]*models.List, error)
	// Update applies the patch and returns the updated row, or nil when no
	// row matched id and owner.
	Update(ctx context.Context, id, ownerID string, patch models.ListPatch) (*models.List, error)
	// Delete removes the list and its memberships, returning rows affected.
	Delete(ctx context.Context, id, ownerID string) (int64, error)
	CountByType(ctx context.Context) (map[models.ListType]int64, error)
}

// MembershipRepository defines the interface for list membership operations
type MembershipRepository interface {
	// Add inserts the pair and returns an error matching ErrDuplicate when
	// the pair already exists.
	Add(ctx context.Context, membership *models.Membership) error
	// Remove deletes the pair, returning rows affected.
	Remove(ctx context.Context, listID, bookmarkID string) (int64, error)
	GetListsByBookmark(ctx context.Context, bookmarkID string) ([]*models.List, error)
	// CountByOwner returns the number of bookmarks in each manual list of
	// the owner, including lists that hold none.
	CountByOwner(ctx context.Context, ownerID string) (map[string]int, error)
}
