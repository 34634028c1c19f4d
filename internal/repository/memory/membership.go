package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/Kerhoff/ListboT/internal/models"
	"github.com/Kerhoff/ListboT/internal/repository"
)

type membershipRepository struct {
	s *Store
}

// deleteMembershipsLocked removes every membership matching the predicate
// and returns how many were removed. Callers must hold the write lock.
func (s *Store) deleteMembershipsLocked(match func(membershipKey) bool) int64 {
	var removed int64
	order := s.memberOrder[:0]
	for _, k := range s.memberOrder {
		if match(k) {
			delete(s.memberships, k)
			removed++
			continue
		}
		order = append(order, k)
	}
	s.memberOrder = order
	return removed
}

func (r *membershipRepository) Add(_ context.Context, membership *models.Membership) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.lists[membership.ListID]; !ok {
		return fmt.Errorf("failed to add list membership: list %s does not exist", membership.ListID)
	}
	if _, ok := r.s.bookmarks[membership.BookmarkID]; !ok {
		return fmt.Errorf("failed to add list membership: bookmark %s does not exist", membership.BookmarkID)
	}

	key := membershipKey{listID: membership.ListID, bookmarkID: membership.BookmarkID}
	if _, exists := r.s.memberships[key]; exists {
		return fmt.Errorf("bookmark %s in list %s: %w",
			membership.BookmarkID, membership.ListID, repository.ErrDuplicate)
	}

	membership.AddedAt = time.Now()
	stored := *membership
	r.s.memberships[key] = &stored
	r.s.memberOrder = append(r.s.memberOrder, key)
	return nil
}

func (r *membershipRepository) Remove(_ context.Context, listID, bookmarkID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	target := membershipKey{listID: listID, bookmarkID: bookmarkID}
	return r.s.deleteMembershipsLocked(func(k membershipKey) bool { return k == target }), nil
}

func (r *membershipRepository) GetListsByBookmark(_ context.Context, bookmarkID string) ([]*models.List, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var lists []*models.List
	for _, k := range r.s.memberOrder {
		if k.bookmarkID != bookmarkID {
			continue
		}
		if l, ok := r.s.lists[k.listID]; ok {
			lists = append(lists, copyList(l))
		}
	}
	return lists, nil
}

func (r *membershipRepository) CountByOwner(_ context.Context, ownerID string) (map[string]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	counts := make(map[string]int)
	for id, l := range r.s.lists {
		if l.OwnerID == ownerID && l.Type == models.ListTypeManual {
			counts[id] = 0
		}
	}
	for _, k := range r.s.memberOrder {
		if _, ok := counts[k.listID]; ok {
			counts[k.listID]++
		}
	}
	return counts, nil
}
