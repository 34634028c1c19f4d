package handlers

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/ListboT/internal/service"
	"github.com/Kerhoff/ListboT/internal/telegram"
)

// StartHandler handles the /start command
type StartHandler struct {
	base
}

// NewStartHandler creates a new start command handler
func NewStartHandler(svc *service.Service, logger *logrus.Logger) *StartHandler {
	return &StartHandler{base{svc: svc, logger: logger}}
}

// Handle registers the sender and greets them
func (h *StartHandler) Handle(bot telegram.Sender, message *tgbotapi.Message, args []string) error {
	if _, err := h.callerID(context.Background(), message); err != nil {
		return err
	}

	welcomeText := `🎯 *Welcome to ListboT!*

I keep your bookmarks organised in lists.

• /bookmark <url> [title] - Save a bookmark
• /newlist <icon> <name> - Create a list
• /addto <list> <bookmark> - Put a bookmark in a list
• /lists - Show your lists
• /help - Show all commands`

	if err := reply(bot, message, welcomeText); err != nil {
		return fmt.Errorf("failed to send start message: %w", err)
	}

	h.logger.WithFields(logrus.Fields{
		"chat_id": message.Chat.ID,
		"user_id": message.From.ID,
	}).Info("Sent start message")

	return nil
}
