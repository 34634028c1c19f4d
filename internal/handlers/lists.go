package handlers

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/ListboT/internal/models"
	"github.com/Kerhoff/ListboT/internal/service"
	"github.com/Kerhoff/ListboT/internal/telegram"
)

func formatList(list *models.List) string {
	line := fmt.Sprintf("%s *%s* _(%s)_\n`%s`", list.Icon, escape(list.Name), list.Type, list.ID)
	if list.Query != nil {
		line += "\n  query: `" + *list.Query + "`"
	}
	return line
}

// ---------------------------------------------------------------------------
// ListsHandler – /lists
// ---------------------------------------------------------------------------

// ListsHandler shows every list the sender owns
type ListsHandler struct {
	base
}

// NewListsHandler creates a new ListsHandler.
func NewListsHandler(svc *service.Service, logger *logrus.Logger) *ListsHandler {
	return &ListsHandler{base{svc: svc, logger: logger}}
}

// Handle processes the /lists command.
func (h *ListsHandler) Handle(bot telegram.Sender, message *tgbotapi.Message, args []string) error {
	ctx := context.Background()

	callerID, err := h.callerID(ctx, message)
	if err != nil {
		return err
	}

	lists, err := h.svc.Lists.ListAll(ctx, callerID)
	if err != nil {
		return replyServiceError(bot, message, err)
	}

	if len(lists) == 0 {
		return reply(bot, message, "📭 You have no lists yet. Create one with `/newlist 📚 Reading`")
	}

	var sb strings.Builder
	sb.WriteString("📋 *Your lists*\n")
	for _, list := range lists {
		sb.WriteString("\n")
		sb.WriteString(formatList(list))
		sb.WriteString("\n")
	}

	return reply(bot, message, sb.String())
}

// ---------------------------------------------------------------------------
// CreateListHandler – /newlist <icon> <name>
// ---------------------------------------------------------------------------

// CreateListHandler creates a manual list
type CreateListHandler struct {
	base
}

// NewCreateListHandler creates a new CreateListHandler.
func NewCreateListHandler(svc *service.Service, logger *logrus.Logger) *CreateListHandler {
	return &CreateListHandler{base{svc: svc, logger: logger}}
}

// Handle processes the /newlist command.
func (h *CreateListHandler) Handle(bot telegram.Sender, message *tgbotapi.Message, args []string) error {
	if len(args) < 2 {
		return usage(bot, message, "Please provide an icon and a name.\nUsage: `/newlist 📚 Reading`")
	}

	ctx := context.Background()

	callerID, err := h.callerID(ctx, message)
	if err != nil {
		return err
	}

	list, err := h.svc.Lists.Create(ctx, callerID, models.NewList{
		Icon: args[0],
		Name: strings.Join(args[1:], " "),
		Type: models.ListTypeManual,
	})
	if err != nil {
		return replyServiceError(bot, message, err)
	}

	h.logger.WithFields(logrus.Fields{
		"chat_id": message.Chat.ID,
		"list_id": list.ID,
	}).Info("List created via bot")

	return reply(bot, message, "✅ *List created!*\n\n"+formatList(list))
}

// ---------------------------------------------------------------------------
// CreateSmartListHandler – /smartlist <icon> <name> | <query>
// ---------------------------------------------------------------------------

// CreateSmartListHandler creates a list backed by a saved query
type CreateSmartListHandler struct {
	base
}

// NewCreateSmartListHandler creates a new CreateSmartListHandler.
func NewCreateSmartListHandler(svc *service.Service, logger *logrus.Logger) *CreateSmartListHandler {
	return &CreateSmartListHandler{base{svc: svc, logger: logger}}
}

// Handle processes the /smartlist command.
func (h *CreateSmartListHandler) Handle(bot telegram.Sender, message *tgbotapi.Message, args []string) error {
	const hint = "Usage: `/smartlist 🔎 Go posts | tag:golang`"

	head, query, found := strings.Cut(strings.Join(args, " "), "|")
	fields := strings.Fields(head)
	query = strings.TrimSpace(query)
	if !found || len(fields) < 2 || query == "" {
		return usage(bot, message, "Please provide an icon, a name and a query.\n"+hint)
	}

	ctx := context.Background()

	callerID, err := h.callerID(ctx, message)
	if err != nil {
		return err
	}

	list, err := h.svc.Lists.Create(ctx, callerID, models.NewList{
		Icon:  fields[0],
		Name:  strings.Join(fields[1:], " "),
		Type:  models.ListTypeSmart,
		Query: &query,
	})
	if err != nil {
		return replyServiceError(bot, message, err)
	}

	return reply(bot, message, "✅ *Smart list created!*\n\n"+formatList(list))
}

// ---------------------------------------------------------------------------
// RenameListHandler – /rename <list> <name>
// ---------------------------------------------------------------------------

// RenameListHandler renames a list
type RenameListHandler struct {
	base
}

// NewRenameListHandler creates a new RenameListHandler.
func NewRenameListHandler(svc *service.Service, logger *logrus.Logger) *RenameListHandler {
	return &RenameListHandler{base{svc: svc, logger: logger}}
}

// Handle processes the /rename command.
func (h *RenameListHandler) Handle(bot telegram.Sender, message *tgbotapi.Message, args []string) error {
	if len(args) < 2 {
		return usage(bot, message, "Please provide a list ID and a new name.\nUsage: `/rename <list> Later`")
	}

	ctx := context.Background()

	callerID, err := h.callerID(ctx, message)
	if err != nil {
		return err
	}

	name := strings.Join(args[1:], " ")
	list, err := h.svc.Lists.Edit(ctx, callerID, args[0], models.ListPatch{Name: &name})
	if err != nil {
		return replyServiceError(bot, message, err)
	}

	return reply(bot, message, "✏️ *List renamed!*\n\n"+formatList(list))
}

// ---------------------------------------------------------------------------
// DeleteListHandler – /dellist <list>
// ---------------------------------------------------------------------------

// DeleteListHandler deletes a list and its memberships
type DeleteListHandler struct {
	base
}

// NewDeleteListHandler creates a new DeleteListHandler.
func NewDeleteListHandler(svc *service.Service, logger *logrus.Logger) *DeleteListHandler {
	return &DeleteListHandler{base{svc: svc, logger: logger}}
}

// Handle processes the /dellist command.
func (h *DeleteListHandler) Handle(bot telegram.Sender, message *tgbotapi.Message, args []string) error {
	if len(args) != 1 {
		return usage(bot, message, "Please provide a list ID.\nUsage: `/dellist <list>`")
	}

	ctx := context.Background()

	callerID, err := h.callerID(ctx, message)
	if err != nil {
		return err
	}

	if err := h.svc.Lists.Delete(ctx, callerID, args[0]); err != nil {
		return replyServiceError(bot, message, err)
	}

	return reply(bot, message, "🗑 List deleted.")
}
