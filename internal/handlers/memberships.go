package handlers

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/ListboT/internal/service"
	"github.com/Kerhoff/ListboT/internal/telegram"
)

// ---------------------------------------------------------------------------
// AddToListHandler – /addto <list> <bookmark>
// ---------------------------------------------------------------------------

// AddToListHandler adds a bookmark to a manual list
type AddToListHandler struct {
	base
}

// NewAddToListHandler creates a new AddToListHandler.
func NewAddToListHandler(svc *service.Service, logger *logrus.Logger) *AddToListHandler {
	return &AddToListHandler{base{svc: svc, logger: logger}}
}

// Handle processes the /addto command.
func (h *AddToListHandler) Handle(bot telegram.Sender, message *tgbotapi.Message, args []string) error {
	if len(args) != 2 {
		return usage(bot, message, "Please provide a list ID and a bookmark ID.\nUsage: `/addto <list> <bookmark>`")
	}

	ctx := context.Background()

	callerID, err := h.callerID(ctx, message)
	if err != nil {
		return err
	}

	if err := h.svc.Memberships.Add(ctx, callerID, args[0], args[1]); err != nil {
		return replyServiceError(bot, message, err)
	}

	return reply(bot, message, "📥 Bookmark added to list.")
}

// ---------------------------------------------------------------------------
// RemoveFromListHandler – /removefrom <list> <bookmark>
// ---------------------------------------------------------------------------

// RemoveFromListHandler removes a bookmark from a manual list
type RemoveFromListHandler struct {
	base
}

// NewRemoveFromListHandler creates a new RemoveFromListHandler.
func NewRemoveFromListHandler(svc *service.Service, logger *logrus.Logger) *RemoveFromListHandler {
	return &RemoveFromListHandler{base{svc: svc, logger: logger}}
}

// Handle processes the /removefrom command.
func (h *RemoveFromListHandler) Handle(bot telegram.Sender, message *tgbotapi.Message, args []string) error {
	if len(args) != 2 {
		return usage(bot, message, "Please provide a list ID and a bookmark ID.\nUsage: `/removefrom <list> <bookmark>`")
	}

	ctx := context.Background()

	callerID, err := h.callerID(ctx, message)
	if err != nil {
		return err
	}

	if err := h.svc.Memberships.Remove(ctx, callerID, args[0], args[1]); err != nil {
		return replyServiceError(bot, message, err)
	}

	return reply(bot, message, "📤 Bookmark removed from list.")
}

// ---------------------------------------------------------------------------
// InListsHandler – /inlists <bookmark>
// ---------------------------------------------------------------------------

// InListsHandler shows which lists hold a bookmark
type InListsHandler struct {
	base
}

// NewInListsHandler creates a new InListsHandler.
func NewInListsHandler(svc *service.Service, logger *logrus.Logger) *InListsHandler {
	return &InListsHandler{base{svc: svc, logger: logger}}
}

// Handle processes the /inlists command.
func (h *InListsHandler) Handle(bot telegram.Sender, message *tgbotapi.Message, args []string) error {
	if len(args) != 1 {
		return usage(bot, message, "Please provide a bookmark ID.\nUsage: `/inlists <bookmark>`")
	}

	ctx := context.Background()

	callerID, err := h.callerID(ctx, message)
	if err != nil {
		return err
	}

	lists, err := h.svc.Memberships.ListsOfBookmark(ctx, callerID, args[0])
	if err != nil {
		return replyServiceError(bot, message, err)
	}

	if len(lists) == 0 {
		return reply(bot, message, "📭 This bookmark is not in any list.")
	}

	var sb strings.Builder
	sb.WriteString("📂 *In lists*\n")
	for _, list := range lists {
		sb.WriteString("\n")
		sb.WriteString(formatList(list))
		sb.WriteString("\n")
	}

	h.logger.WithFields(logrus.Fields{
		"chat_id": message.Chat.ID,
		"count":   len(lists),
	}).Debug("Listed memberships via bot")

	return reply(bot, message, sb.String())
}
