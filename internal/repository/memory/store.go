// Package memory provides in-process implementations of the repository
// interfaces. Each method holds the store lock for its whole body, so every
// call is atomic the way a single SQL statement is.
package memory

import (
	"sync"

	"github.com/Kerhoff/ListboT/internal/models"
	"github.com/Kerhoff/ListboT/internal/repository"
)

type membershipKey struct {
	listID     string
	bookmarkID string
}

// Store holds all tables behind one lock
type Store struct {
	mu sync.RWMutex

	users       map[string]*models.User
	bookmarks   map[string]*models.Bookmark
	lists       map[string]*models.List
	listOrder   []string
	memberships map[membershipKey]*models.Membership
	memberOrder []membershipKey
}

// New creates an empty store
func New() *Store {
	return &Store{
		users:       make(map[string]*models.User),
		bookmarks:   make(map[string]*models.Bookmark),
		lists:       make(map[string]*models.List),
		memberships: make(map[membershipKey]*models.Membership),
	}
}

// Users returns a UserRepository backed by the store
func (s *Store) Users() repository.UserRepository {
	return &userRepository{s: s}
}

// Bookmarks returns a BookmarkRepository backed by the store
func (s *Store) Bookmarks() repository.BookmarkRepository {
	return &bookmarkRepository{s: s}
}

// Lists returns a ListRepository backed by the store
func (s *Store) Lists() repository.ListRepository {
	return &listRepository{s: s}
}

// Memberships returns a MembershipRepository backed by the store
func (s *Store) Memberships() repository.MembershipRepository {
	return &membershipRepository{s: s}
}

func copyList(l *models.List) *models.List {
	c := *l
	if l.ParentID != nil {
		v := *l.ParentID
		c.ParentID = &v
	}
	if l.Query != nil {
		v := *l.Query
		c.Query = &v
	}
	return &c
}
