package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/ListboT/internal/models"
	"github.com/Kerhoff/ListboT/internal/repository"
)

// UserService maps Telegram accounts onto internal users
type UserService struct {
	users  repository.UserRepository
	logger *logrus.Logger
}

// NewUserService creates a UserService
func NewUserService(users repository.UserRepository, logger *logrus.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

// EnsureUser retrieves an existing user by Telegram ID, or creates a new one
// if not found. If the user already exists but their profile information has
// changed (username, first name, last name), it updates the record.
func (s *UserService) EnsureUser(ctx context.Context, telegramID int64, username, firstName, lastName string) (*models.User, error) {
	username = strings.TrimSpace(username)
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)

	user, err := s.users.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("failed to lookup user (telegram_id=%d): %w", telegramID, err)
	}
	if user == nil {
		user, err = s.users.Create(ctx, &models.User{
			TelegramID:       telegramID,
			TelegramUsername: username,
			FirstName:        firstName,
			LastName:         lastName,
		})
		if errors.Is(err, repository.ErrDuplicate) {
			// a concurrent update from the same account created it first
			user, err = s.users.GetByTelegramID(ctx, telegramID)
			if err == nil && user == nil {
				err = errors.New("user vanished after duplicate insert")
			}
			if err != nil {
				return nil, fmt.Errorf("failed to lookup user (telegram_id=%d): %w", telegramID, err)
			}
			return user, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create user (telegram_id=%d): %w", telegramID, err)
		}
		s.logger.WithFields(logrus.Fields{
			"user_id":     user.ID,
			"telegram_id": telegramID,
		}).Infof("Created new user: %s", user.DisplayName())
		return user, nil
	}

	if user.SameProfile(username, firstName, lastName) {
		return user, nil
	}

	user.TelegramUsername = username
	user.FirstName = firstName
	user.LastName = lastName
	user, err = s.users.Update(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to update user (telegram_id=%d): %w", telegramID, err)
	}
	s.logger.Infof("Updated user profile: %s (telegram_id=%d)", user.DisplayName(), telegramID)

	return user, nil
}
