package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/ListboT/internal/models"
	"github.com/Kerhoff/ListboT/internal/repository"
)

// MaxListNameLength is the longest list name accepted, in runes
const MaxListNameLength = 40

// ListService implements create, edit, delete and read operations on lists
type ListService struct {
	lists   repository.ListRepository
	guard   *OwnershipGuard
	logger  *logrus.Logger
	metrics *Metrics
}

// NewListService creates a ListService
func NewListService(lists repository.ListRepository, guard *OwnershipGuard, logger *logrus.Logger, metrics *Metrics) *ListService {
	return &ListService{lists: lists, guard: guard, logger: logger, metrics: metrics}
}

// Create stores a new list owned by the caller.
func (s *ListService) Create(ctx context.Context, callerID string, input models.NewList) (list *models.List, err error) {
	defer func() { s.metrics.observe("list_create", err) }()

	if callerID == "" {
		return nil, unauthenticated()
	}

	input.Name = strings.TrimSpace(input.Name)
	if err := validateName(input.Name); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Icon) == "" {
		return nil, invalidArgument(MsgListIconRequired)
	}
	if input.Type == "" {
		input.Type = models.ListTypeManual
	}
	if !input.Type.Valid() {
		return nil, invalidArgument(MsgInvalidListType)
	}
	if input.Query != nil && strings.TrimSpace(*input.Query) == "" {
		input.Query = nil
	}
	switch {
	case input.Type == models.ListTypeManual && input.Query != nil:
		return nil, invalidArgument(MsgManualListQuery)
	case input.Type == models.ListTypeSmart && input.Query == nil:
		return nil, invalidArgument(MsgSmartListQuery)
	}

	if input.ParentID != nil && *input.ParentID == "" {
		input.ParentID = nil
	}
	if input.ParentID != nil {
		if err := s.guard.AuthorizeList(ctx, callerID, *input.ParentID); err != nil {
			return nil, err
		}
	}

	list, err = s.lists.Create(ctx, &models.List{
		OwnerID:  callerID,
		Name:     input.Name,
		Icon:     input.Icon,
		ParentID: input.ParentID,
		Type:     input.Type,
		Query:    input.Query,
	})
	if err != nil {
		s.logger.WithError(err).WithField("owner_id", callerID).Error("Failed to create list")
		return nil, internal(err)
	}

	s.logger.WithFields(logrus.Fields{
		"list_id":  list.ID,
		"owner_id": callerID,
		"type":     list.Type,
	}).Info("List created")

	return list, nil
}

// Edit applies a partial update to a list owned by the caller. A query may
// only be set on smart lists; on a manual list the request is rejected and
// nothing is written.
func (s *ListService) Edit(ctx context.Context, callerID, listID string, patch models.ListPatch) (list *models.List, err error) {
	defer func() { s.metrics.observe("list_edit", err) }()

	if err := s.guard.AuthorizeList(ctx, callerID, listID); err != nil {
		return nil, err
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if err := validateName(name); err != nil {
			return nil, err
		}
		patch.Name = &name
	}
	if patch.Icon != nil && strings.TrimSpace(*patch.Icon) == "" {
		return nil, invalidArgument(MsgListIconRequired)
	}

	// Not a second authorization: the type decides whether a query is allowed.
	current, err := s.lists.GetByIDAndOwner(ctx, listID, callerID)
	if err != nil {
		return nil, internal(err)
	}
	if current == nil {
		return nil, notFound("list")
	}

	if patch.Query != nil {
		if !current.IsSmart() {
			return nil, invalidArgument(MsgManualListQuery)
		}
		if strings.TrimSpace(*patch.Query) == "" {
			return nil, invalidArgument(MsgSmartListQuery)
		}
	}

	if patch.ParentID != nil && *patch.ParentID != "" {
		if err := s.checkParent(ctx, callerID, listID, *patch.ParentID); err != nil {
			return nil, err
		}
	}

	if patch.Empty() {
		return current, nil
	}

	list, err = s.lists.Update(ctx, listID, callerID, patch)
	if err != nil {
		s.logger.WithError(err).WithField("list_id", listID).Error("Failed to update list")
		return nil, internal(err)
	}
	if list == nil {
		return nil, notFound("list")
	}

	s.logger.WithFields(logrus.Fields{
		"list_id":  listID,
		"owner_id": callerID,
	}).Info("List updated")

	return list, nil
}

// Delete removes a list owned by the caller together with its memberships.
func (s *ListService) Delete(ctx context.Context, callerID, listID string) (err error) {
	defer func() { s.metrics.observe("list_delete", err) }()

	if err := s.guard.AuthorizeList(ctx, callerID, listID); err != nil {
		return err
	}

	deleted, err := s.lists.Delete(ctx, listID, callerID)
	if err != nil {
		s.logger.WithError(err).WithField("list_id", listID).Error("Failed to delete list")
		return internal(err)
	}
	if deleted == 0 {
		return notFound("list")
	}

	s.logger.WithFields(logrus.Fields{
		"list_id":  listID,
		"owner_id": callerID,
	}).Info("List deleted")

	return nil
}

// Get returns a list owned by the caller.
func (s *ListService) Get(ctx context.Context, callerID, listID string) (list *models.List, err error) {
	defer func() { s.metrics.observe("list_get", err) }()

	if err := s.guard.AuthorizeList(ctx, callerID, listID); err != nil {
		return nil, err
	}

	list, err = s.lists.GetByIDAndOwner(ctx, listID, callerID)
	if err != nil {
		return nil, internal(err)
	}
	if list == nil {
		return nil, notFound("list")
	}

	return list, nil
}

// ListAll returns every list owned by the caller in creation order.
func (s *ListService) ListAll(ctx context.Context, callerID string) (lists []*models.List, err error) {
	defer func() { s.metrics.observe("list_all", err) }()

	if callerID == "" {
		return nil, unauthenticated()
	}

	lists, err = s.lists.GetByOwner(ctx, callerID)
	if err != nil {
		return nil, internal(err)
	}
	if lists == nil {
		lists = []*models.List{}
	}

	return lists, nil
}

// checkParent verifies the caller owns parentID and that attaching listID
// under it does not close a loop.
func (s *ListService) checkParent(ctx context.Context, callerID, listID, parentID string) error {
	if parentID == listID {
		return invalidArgument(MsgListOwnParent)
	}
	if err := s.guard.AuthorizeList(ctx, callerID, parentID); err != nil {
		return err
	}

	seen := map[string]bool{listID: true}
	next := parentID
	for next != "" {
		if seen[next] {
			return invalidArgument(MsgListParentCycle)
		}
		seen[next] = true

		ancestor, err := s.lists.GetByID(ctx, next)
		if err != nil {
			return internal(err)
		}
		if ancestor == nil || ancestor.ParentID == nil {
			break
		}
		next = *ancestor.ParentID
	}

	return nil
}

func validateName(name string) error {
	if name == "" {
		return invalidArgument(MsgListNameRequired)
	}
	if utf8.RuneCountInString(name) > MaxListNameLength {
		return invalidArgument(fmt.Sprintf("list name exceeds %d characters", MaxListNameLength))
	}
	return nil
}
