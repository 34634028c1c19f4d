package handlers

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/ListboT/internal/telegram"
)

// HelpHandler handles the /help command
type HelpHandler struct {
	logger *logrus.Logger
}

func NewHelpHandler(logger *logrus.Logger) *HelpHandler {
	return &HelpHandler{logger: logger}
}

func (h *HelpHandler) Handle(bot telegram.Sender, message *tgbotapi.Message, args []string) error {
	helpText := `📚 *ListboT Help*

*Lists:*
• /lists - Show your lists
• /newlist <icon> <name> - Create a manual list
• /smartlist <icon> <name> | <query> - Create a smart list
• /rename <list> <name> - Rename a list
• /dellist <list> - Delete a list

*Bookmarks:*
• /bookmark <url> [title] - Save a bookmark
• /addto <list> <bookmark> - Add a bookmark to a list
• /removefrom <list> <bookmark> - Remove a bookmark from a list
• /inlists <bookmark> - Show the lists holding a bookmark

_Smart lists are filled by their query and cannot be edited by hand._`

	if err := reply(bot, message, helpText); err != nil {
		return fmt.Errorf("failed to send help message: %w", err)
	}

	h.logger.WithFields(logrus.Fields{
		"chat_id": message.Chat.ID,
		"user_id": message.From.ID,
	}).Info("Sent help message")

	return nil
}
