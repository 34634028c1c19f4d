package service

import (
	"context"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/ListboT/internal/models"
	"github.com/Kerhoff/ListboT/internal/repository"
)

// BookmarkService creates bookmarks and answers ownership questions about them
type BookmarkService struct {
	bookmarks repository.BookmarkRepository
	logger    *logrus.Logger
	metrics   *Metrics
}

// NewBookmarkService creates a BookmarkService
func NewBookmarkService(bookmarks repository.BookmarkRepository, logger *logrus.Logger, metrics *Metrics) *BookmarkService {
	return &BookmarkService{bookmarks: bookmarks, logger: logger, metrics: metrics}
}

// Create saves a bookmark for the caller
func (s *BookmarkService) Create(ctx context.Context, callerID, rawURL, title string) (bookmark *models.Bookmark, err error) {
	defer func() { s.metrics.observe("bookmark_create", err) }()

	if callerID == "" {
		return nil, unauthenticated()
	}

	rawURL = strings.TrimSpace(rawURL)
	u, err := url.Parse(rawURL)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, invalidArgument(MsgInvalidBookmarkURL)
	}

	bookmark, err = s.bookmarks.Create(ctx, &models.Bookmark{
		OwnerID: callerID,
		URL:     u.String(),
		Title:   strings.TrimSpace(title),
	})
	if err != nil {
		s.logger.WithError(err).WithField("owner_id", callerID).Error("Failed to create bookmark")
		return nil, internal(err)
	}

	s.logger.WithFields(logrus.Fields{
		"bookmark_id": bookmark.ID,
		"owner_id":    callerID,
	}).Info("Bookmark created")

	return bookmark, nil
}

// AuthorizeBookmark implements BookmarkAuthorizer
func (s *BookmarkService) AuthorizeBookmark(ctx context.Context, callerID, bookmarkID string) error {
	if callerID == "" {
		return unauthenticated()
	}
	if !validID(bookmarkID) {
		return invalidArgument("invalid bookmark ID")
	}

	bookmark, err := s.bookmarks.GetByID(ctx, bookmarkID)
	if err != nil {
		return internal(err)
	}
	if bookmark == nil {
		return notFound("bookmark")
	}
	if bookmark.OwnerID != callerID {
		return forbidden("bookmark")
	}

	return nil
}
