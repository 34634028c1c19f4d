package handlers

import (
	"context"
	"errors"
	"io"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kerhoff/ListboT/internal/models"
	"github.com/Kerhoff/ListboT/internal/repository/memory"
	"github.com/Kerhoff/ListboT/internal/service"
)

// fakeSender records every message the handlers try to send
type fakeSender struct {
	sent []tgbotapi.MessageConfig
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, msg)
	}
	return tgbotapi.Message{}, nil
}

func (f *fakeSender) Request(tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeSender) last(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, f.sent)
	return f.sent[len(f.sent)-1].Text
}

func newService(t *testing.T) (*service.Service, *logrus.Logger) {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	store := memory.New()
	svc := service.New(service.Repositories{
		Users:       store.Users(),
		Bookmarks:   store.Bookmarks(),
		Lists:       store.Lists(),
		Memberships: store.Memberships(),
	}, logger, nil)
	return svc, logger
}

func messageFrom(telegramID int64) *tgbotapi.Message {
	return &tgbotapi.Message{
		MessageID: 1,
		From:      &tgbotapi.User{ID: telegramID, FirstName: "Test", UserName: "tester"},
		Chat:      &tgbotapi.Chat{ID: 1000 + telegramID},
	}
}

func userID(t *testing.T, svc *service.Service, telegramID int64) string {
	t.Helper()
	user, err := svc.Users.EnsureUser(context.Background(), telegramID, "tester", "Test", "")
	require.NoError(t, err)
	return user.ID
}

func TestCreateListHandler(t *testing.T) {
	t.Parallel()
	svc, logger := newService(t)
	bot := &fakeSender{}
	h := NewCreateListHandler(svc, logger)

	require.NoError(t, h.Handle(bot, messageFrom(1), []string{"📚", "Reading", "list"}))
	assert.Contains(t, bot.last(t), "List created")

	lists, err := svc.Lists.ListAll(context.Background(), userID(t, svc, 1))
	require.NoError(t, err)
	require.Len(t, lists, 1)
	assert.Equal(t, "Reading list", lists[0].Name)
	assert.Equal(t, models.ListTypeManual, lists[0].Type)

	require.NoError(t, h.Handle(bot, messageFrom(1), []string{"📚"}))
	assert.Contains(t, bot.last(t), "Usage")
}

func TestCreateSmartListHandler(t *testing.T) {
	t.Parallel()
	svc, logger := newService(t)
	bot := &fakeSender{}
	h := NewCreateSmartListHandler(svc, logger)

	require.NoError(t, h.Handle(bot, messageFrom(1), []string{"🔎", "Go", "posts", "|", "tag:golang"}))

	lists, err := svc.Lists.ListAll(context.Background(), userID(t, svc, 1))
	require.NoError(t, err)
	require.Len(t, lists, 1)
	assert.Equal(t, "Go posts", lists[0].Name)
	require.NotNil(t, lists[0].Query)
	assert.Equal(t, "tag:golang", *lists[0].Query)

	require.NoError(t, h.Handle(bot, messageFrom(1), []string{"🔎", "Go"}))
	assert.Contains(t, bot.last(t), "Usage")
}

func TestMembershipHandlers(t *testing.T) {
	t.Parallel()
	svc, logger := newService(t)
	bot := &fakeSender{}
	ctx := context.Background()
	owner := userID(t, svc, 1)

	list, err := svc.Lists.Create(ctx, owner, models.NewList{Name: "Reading", Icon: "📚"})
	require.NoError(t, err)
	bookmark, err := svc.Bookmarks.Create(ctx, owner, "https://go.dev", "Go")
	require.NoError(t, err)

	add := NewAddToListHandler(svc, logger)
	require.NoError(t, add.Handle(bot, messageFrom(1), []string{list.ID, bookmark.ID}))
	assert.Contains(t, bot.last(t), "added")

	require.NoError(t, add.Handle(bot, messageFrom(1), []string{list.ID, bookmark.ID}))
	assert.Contains(t, bot.last(t), service.MsgAlreadyInList)

	inLists := NewInListsHandler(svc, logger)
	require.NoError(t, inLists.Handle(bot, messageFrom(1), []string{bookmark.ID}))
	assert.Contains(t, bot.last(t), "Reading")

	// another Telegram account may not touch the list
	require.NoError(t, add.Handle(bot, messageFrom(2), []string{list.ID, bookmark.ID}))
	assert.Contains(t, bot.last(t), "⛔")

	remove := NewRemoveFromListHandler(svc, logger)
	require.NoError(t, remove.Handle(bot, messageFrom(1), []string{list.ID, bookmark.ID}))
	assert.Contains(t, bot.last(t), "removed")

	require.NoError(t, remove.Handle(bot, messageFrom(1), []string{list.ID, bookmark.ID}))
	assert.Contains(t, bot.last(t), service.MsgAlreadyNotInList)
}

func TestReplyServiceError_InternalIsReturned(t *testing.T) {
	t.Parallel()
	bot := &fakeSender{}
	cause := errors.New("db down")

	err := replyServiceError(bot, messageFrom(1), cause)

	assert.ErrorIs(t, err, cause)
	assert.Empty(t, bot.sent)
}
