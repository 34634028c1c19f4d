package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/ListboT/internal/models"
	"github.com/Kerhoff/ListboT/internal/repository"
)

// MembershipService manages which bookmarks belong to which manual lists
type MembershipService struct {
	lists       repository.ListRepository
	memberships repository.MembershipRepository
	guard       *OwnershipGuard
	bookmarks   BookmarkAuthorizer
	logger      *logrus.Logger
	metrics     *Metrics
}

// NewMembershipService creates a MembershipService
func NewMembershipService(
	lists repository.ListRepository,
	memberships repository.MembershipRepository,
	guard *OwnershipGuard,
	bookmarks BookmarkAuthorizer,
	logger *logrus.Logger,
	metrics *Metrics,
) *MembershipService {
	return &MembershipService{
		lists:       lists,
		memberships: memberships,
		guard:       guard,
		bookmarks:   bookmarks,
		logger:      logger,
		metrics:     metrics,
	}
}

// authorize runs the list guard and then the bookmark guard; the first
// failure is returned as is.
func (s *MembershipService) authorize(ctx context.Context, callerID, listID, bookmarkID string) error {
	if err := s.guard.AuthorizeList(ctx, callerID, listID); err != nil {
		return err
	}
	return s.bookmarks.AuthorizeBookmark(ctx, callerID, bookmarkID)
}

// manualList re-reads the list and rejects smart lists with message.
func (s *MembershipService) manualList(ctx context.Context, callerID, listID, message string) error {
	list, err := s.lists.GetByIDAndOwner(ctx, listID, callerID)
	if err != nil {
		return internal(err)
	}
	if list == nil {
		return notFound("list")
	}
	if list.IsSmart() {
		return invalidArgument(message)
	}
	return nil
}

// Add puts a bookmark into a manual list. Adding a pair that already exists
// is a client error, not an internal one.
func (s *MembershipService) Add(ctx context.Context, callerID, listID, bookmarkID string) (err error) {
	defer func() { s.metrics.observe("membership_add", err) }()

	if err := s.authorize(ctx, callerID, listID, bookmarkID); err != nil {
		return err
	}
	if err := s.manualList(ctx, callerID, listID, MsgSmartListAdd); err != nil {
		return err
	}

	err = s.memberships.Add(ctx, &models.Membership{ListID: listID, BookmarkID: bookmarkID})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return invalidArgument(MsgAlreadyInList)
		}
		s.logger.WithError(err).WithFields(logrus.Fields{
			"list_id":     listID,
			"bookmark_id": bookmarkID,
		}).Error("Failed to add bookmark to list")
		return internal(err)
	}

	s.logger.WithFields(logrus.Fields{
		"list_id":     listID,
		"bookmark_id": bookmarkID,
		"owner_id":    callerID,
	}).Info("Bookmark added to list")

	return nil
}

// Remove takes a bookmark out of a manual list. Removing a pair that does
// not exist is reported as an invalid argument.
func (s *MembershipService) Remove(ctx context.Context, callerID, listID, bookmarkID string) (err error) {
	defer func() { s.metrics.observe("membership_remove", err) }()

	if err := s.authorize(ctx, callerID, listID, bookmarkID); err != nil {
		return err
	}
	if err := s.manualList(ctx, callerID, listID, MsgSmartListRemove); err != nil {
		return err
	}

	removed, err := s.memberships.Remove(ctx, listID, bookmarkID)
	if err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"list_id":     listID,
			"bookmark_id": bookmarkID,
		}).Error("Failed to remove bookmark from list")
		return internal(err)
	}
	if removed == 0 {
		return invalidArgument(MsgAlreadyNotInList)
	}

	s.logger.WithFields(logrus.Fields{
		"list_id":     listID,
		"bookmark_id": bookmarkID,
		"owner_id":    callerID,
	}).Info("Bookmark removed from list")

	return nil
}

// ListsOfBookmark returns the manual lists holding the bookmark. A list
// owned by anyone but the caller means the join crossed an ownership
// boundary; the request fails instead of filtering it out.
func (s *MembershipService) ListsOfBookmark(ctx context.Context, callerID, bookmarkID string) (lists []*models.List, err error) {
	defer func() { s.metrics.observe("membership_lists", err) }()

	if err := s.bookmarks.AuthorizeBookmark(ctx, callerID, bookmarkID); err != nil {
		return nil, err
	}

	lists, err = s.memberships.GetListsByBookmark(ctx, bookmarkID)
	if err != nil {
		return nil, internal(err)
	}

	for _, list := range lists {
		if list.OwnerID != callerID {
			s.logger.WithFields(logrus.Fields{
				"bookmark_id":   bookmarkID,
				"list_id":       list.ID,
				"caller_id":     callerID,
				"list_owner_id": list.OwnerID,
			}).Error("Membership crosses ownership boundary")
			return nil, internal(fmt.Errorf("list %s in membership of bookmark %s is not owned by %s",
				list.ID, bookmarkID, callerID))
		}
	}
	if lists == nil {
		lists = []*models.List{}
	}

	return lists, nil
}

// Stats returns the bookmark count of every manual list owned by the caller.
func (s *MembershipService) Stats(ctx context.Context, callerID string) (counts map[string]int, err error) {
	defer func() { s.metrics.observe("membership_stats", err) }()

	if callerID == "" {
		return nil, unauthenticated()
	}

	counts, err = s.memberships.CountByOwner(ctx, callerID)
	if err != nil {
		return nil, internal(err)
	}

	return counts, nil
}
