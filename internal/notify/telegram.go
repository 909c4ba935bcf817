package notify

import (
	"context"
	"fmt"
	"html"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"newsbot/internal/news"
)

// TelegramSender is the subset of the bot API used for sending. Satisfied
// by *tgbotapi.BotAPI.
type TelegramSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramChannel pushes articles to one chat through the Telegram bot API.
type TelegramChannel struct {
	bot    TelegramSender
	chatID int64
}

// NewTelegramChannel authenticates with the bot token and targets the given
// chat.
func NewTelegramChannel(token string, chatID int64) (*TelegramChannel, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	return &TelegramChannel{bot: bot, chatID: chatID}, nil
}

// NewTelegramChannelWithSender wires a custom sender (useful for testing).
func NewTelegramChannelWithSender(sender TelegramSender, chatID int64) *TelegramChannel {
	return &TelegramChannel{bot: sender, chatID: chatID}
}

// Name implements Channel.
func (c *TelegramChannel) Name() string {
	return "telegram"
}

// SendArticle formats the article as an HTML message and sends it.
func (c *TelegramChannel) SendArticle(_ context.Context, a *news.Article) error {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s</b>\n", html.EscapeString(a.Title))
	fmt.Fprintf(&b, "%s | %s\n\n", html.EscapeString(a.Source), a.PubDateText())
	if a.Description != "" {
		b.WriteString(html.EscapeString(a.Description))
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "%s\n", a.Link)
	fmt.Fprintf(&b, "Keywords: %s", html.EscapeString(strings.Join(a.Keywords(), ", ")))

	msg := tgbotapi.NewMessage(c.chatID, b.String())
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = false
	if _, err := c.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}

// SendMessage sends a plain status message.
func (c *TelegramChannel) SendMessage(_ context.Context, message string) error {
	if _, err := c.bot.Send(tgbotapi.NewMessage(c.chatID, message)); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}
