package handlers

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/ListboT/internal/service"
	"github.com/Kerhoff/ListboT/internal/telegram"
)

// ---------------------------------------------------------------------------
// BookmarkHandler – /bookmark <url> [title]
// ---------------------------------------------------------------------------

// BookmarkHandler saves a bookmark for the sender
type BookmarkHandler struct {
	base
}

// NewBookmarkHandler creates a new BookmarkHandler.
func NewBookmarkHandler(svc *service.Service, logger *logrus.Logger) *BookmarkHandler {
	return &BookmarkHandler{base{svc: svc, logger: logger}}
}

// Handle processes the /bookmark command.
func (h *BookmarkHandler) Handle(bot telegram.Sender, message *tgbotapi.Message, args []string) error {
	if len(args) == 0 {
		return usage(bot, message, "Please provide a URL.\nUsage: `/bookmark https://go.dev Go`")
	}

	ctx := context.Background()

	callerID, err := h.callerID(ctx, message)
	if err != nil {
		return err
	}

	bookmark, err := h.svc.Bookmarks.Create(ctx, callerID, args[0], strings.Join(args[1:], " "))
	if err != nil {
		return replyServiceError(bot, message, err)
	}

	h.logger.WithFields(logrus.Fields{
		"chat_id":     message.Chat.ID,
		"bookmark_id": bookmark.ID,
	}).Info("Bookmark saved via bot")

	text := fmt.Sprintf("🔖 *Saved!*\n\n%s\n`%s`", escape(bookmark.DisplayTitle()), bookmark.ID)
	return reply(bot, message, text)
}
