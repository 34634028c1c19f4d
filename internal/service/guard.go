package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/Kerhoff/ListboT/internal/repository"
)

// BookmarkAuthorizer decides whether a caller may act on a bookmark. It has
// the same contract as OwnershipGuard.AuthorizeList.
type BookmarkAuthorizer interface {
	AuthorizeBookmark(ctx context.Context, callerID, bookmarkID string) error
}

// OwnershipGuard authorizes callers against the recorded owner of a list.
// The check is a single read; mutations that follow must carry their own
// id+owner predicate because nothing is held between the two.
type OwnershipGuard struct {
	lists repository.ListRepository
}

// NewOwnershipGuard creates a guard over the given list store
func NewOwnershipGuard(lists repository.ListRepository) *OwnershipGuard {
	return &OwnershipGuard{lists: lists}
}

// AuthorizeList returns nil when callerID owns listID. Checks run in a fixed
// order (identity, id syntax, existence, ownership) so that anonymous
// callers never learn whether a list exists.
func (g *OwnershipGuard) AuthorizeList(ctx context.Context, callerID, listID string) error {
	if callerID == "" {
		return unauthenticated()
	}
	if !validID(listID) {
		return invalidArgument("invalid list ID")
	}

	list, err := g.lists.GetByID(ctx, listID)
	if err != nil {
		return internal(err)
	}
	if list == nil {
		return notFound("list")
	}
	if list.OwnerID != callerID {
		return forbidden("list")
	}

	return nil
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
