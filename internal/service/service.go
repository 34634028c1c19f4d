package service

import (
	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/ListboT/internal/repository"
)

// Repositories groups the store adapters the services depend on
type Repositories struct {
	Users       repository.UserRepository
	Bookmarks   repository.BookmarkRepository
	Lists       repository.ListRepository
	Memberships repository.MembershipRepository
}

// Service is the central business logic layer shared by the HTTP API and the
// Telegram bot. The sub-services hold no mutable state and are safe for
// concurrent use.
type Service struct {
	logger  *logrus.Logger
	metrics *Metrics
	lists   repository.ListRepository

	Guard       *OwnershipGuard
	Lists       *ListService
	Memberships *MembershipService
	Bookmarks   *BookmarkService
	Users       *UserService
}

// New wires all services over the given repositories. metrics may be nil.
func New(repos Repositories, logger *logrus.Logger, metrics *Metrics) *Service {
	guard := NewOwnershipGuard(repos.Lists)
	bookmarks := NewBookmarkService(repos.Bookmarks, logger, metrics)

	return &Service{
		logger:      logger,
		metrics:     metrics,
		lists:       repos.Lists,
		Guard:       guard,
		Lists:       NewListService(repos.Lists, guard, logger, metrics),
		Memberships: NewMembershipService(repos.Lists, repos.Memberships, guard, bookmarks, logger, metrics),
		Bookmarks:   bookmarks,
		Users:       NewUserService(repos.Users, logger),
	}
}
