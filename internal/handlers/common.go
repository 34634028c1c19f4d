package handlers

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/ListboT/internal/service"
	"github.com/Kerhoff/ListboT/internal/telegram"
)

// base carries the dependencies shared by all command handlers
type base struct {
	svc    *service.Service
	logger *logrus.Logger
}

// callerID resolves the Telegram sender to an internal user ID
func (b *base) callerID(ctx context.Context, message *tgbotapi.Message) (string, error) {
	from := message.From
	user, err := b.svc.Users.EnsureUser(ctx, from.ID, from.UserName, from.FirstName, from.LastName)
	if err != nil {
		return "", fmt.Errorf("ensure user: %w", err)
	}
	return user.ID, nil
}

// reply sends a Markdown message to the chat the command came from
func reply(bot telegram.Sender, message *tgbotapi.Message, text string) error {
	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

// replyPlain sends a message without any parse mode
func replyPlain(bot telegram.Sender, message *tgbotapi.Message, text string) error {
	if _, err := bot.Send(tgbotapi.NewMessage(message.Chat.ID, text)); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

// replyServiceError turns a client-side service failure into a chat reply.
// Internal failures are returned so the router logs them and answers with
// its generic message.
func replyServiceError(bot telegram.Sender, message *tgbotapi.Message, err error) error {
	var svcErr *service.Error
	if !errors.As(err, &svcErr) || svcErr.Kind == service.KindInternal {
		return err
	}

	var icon string
	switch svcErr.Kind {
	case service.KindNotFound:
		icon = "❓"
	case service.KindForbidden, service.KindUnauthenticated:
		icon = "⛔"
	default:
		icon = "⚠️"
	}
	return replyPlain(bot, message, icon+" "+svcErr.Message)
}

// usage replies with a usage hint for a command
func usage(bot telegram.Sender, message *tgbotapi.Message, text string) error {
	return reply(bot, message, "❌ "+text)
}

func escape(text string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdown, text)
}
