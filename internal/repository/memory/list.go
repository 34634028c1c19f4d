package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Kerhoff/ListboT/internal/models"
)

type listRepository struct {
	s *Store
}

func (r *listRepository) Create(_ context.Context, list *models.List) (*models.List, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := time.Now()
	list.ID = uuid.NewString()
	list.CreatedAt = now
	list.UpdatedAt = now

	r.s.lists[list.ID] = copyList(list)
	r.s.listOrder = append(r.s.listOrder, list.ID)
	return list, nil
}

func (r *listRepository) GetByID(_ context.Context, id string) (*models.List, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	l, ok := r.s.lists[id]
	if !ok {
		return nil, nil
	}
	return copyList(l), nil
}

func (r *listRepository) GetByIDAndOwner(_ context.Context, id, ownerID string) (*models.List, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	l, ok := r.s.lists[id]
	if !ok || l.OwnerID != ownerID {
		return nil, nil
	}
	return copyList(l), nil
}

func (r *listRepository) GetByOwner(_ context.Context, ownerID string) ([]*models.List, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var lists []*models.List
	for _, id := range r.s.listOrder {
		l, ok := r.s.lists[id]
		if ok && l.OwnerID == ownerID {
			lists = append(lists, copyList(l))
		}
	}
	return lists, nil
}

func (r *listRepository) Update(_ context.Context, id, ownerID string, patch models.ListPatch) (*models.List, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	l, ok := r.s.lists[id]
	if !ok || l.OwnerID != ownerID {
		return nil, nil
	}

	if patch.Name != nil {
		l.Name = *patch.Name
	}
	if patch.Icon != nil {
		l.Icon = *patch.Icon
	}
	if patch.ParentID != nil {
		if *patch.ParentID == "" {
			l.ParentID = nil
		} else {
			v := *patch.ParentID
			l.ParentID = &v
		}
	}
	if patch.Query != nil {
		v := *patch.Query
		l.Query = &v
	}
	l.UpdatedAt = time.Now()

	return copyList(l), nil
}

func (r *listRepository) Delete(_ context.Context, id, ownerID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	l, ok := r.s.lists[id]
	if !ok || l.OwnerID != ownerID {
		return 0, nil
	}

	delete(r.s.lists, id)
	order := r.s.listOrder[:0]
	for _, lid := range r.s.listOrder {
		if lid != id {
			order = append(order, lid)
		}
	}
	r.s.listOrder = order

	// children are detached, memberships go with the list
	for _, child := range r.s.lists {
		if child.ParentID != nil && *child.ParentID == id {
			child.ParentID = nil
		}
	}
	r.s.deleteMembershipsLocked(func(k membershipKey) bool { return k.listID == id })

	return 1, nil
}

func (r *listRepository) CountByType(_ context.Context) (map[models.ListType]int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	counts := map[models.ListType]int64{
		models.ListTypeManual: 0,
		models.ListTypeSmart:  0,
	}
	for _, l := range r.s.lists {
		counts[l.Type]++
	}
	return counts, nil
}
