package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/coursekart/settlement/internal/config"
	"github.com/go-telegram/bot"
	"github.com/google/uuid"
)

// TelegramAlerter pushes ops alerts to a Telegram chat.
type TelegramAlerter struct {
	bot    *bot.Bot
	chatID int64
}

func NewTelegramAlerter(b *bot.Bot, chatID int64) *TelegramAlerter {
	return &TelegramAlerter{bot: b, chatID: chatID}
}

func (a *TelegramAlerter) EnrollmentStalled(orderID uuid.UUID, err error) {
	a.send(fmt.Sprintf("⚠️ *Enrollment stalled*\n\n*Order:* `%s`\n*Error:* `%s`\n*Time:* %s",
		orderID, err.Error(), time.Now().Format("2006-01-02 15:04:05")))
}

func (a *TelegramAlerter) OrdersOutOfSync(count int) {
	a.send(fmt.Sprintf("🔍 *Reconciliation*\n\n%d confirmed order(s) missing enrollment, repairing", count))
}

func (a *TelegramAlerter) send(message string) {
	if a.chatID == 0 {
		return
	}

	if len([]rune(message)) > config.MaxAlertMessageLen {
		message = string([]rune(message)[:config.MaxAlertMessageLen-20]) + "\n\n... (truncated)"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := a.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    a.chatID,
		Text:      message,
		ParseMode: "Markdown",
	})
	if err != nil {
		slog.Error("failed to send telegram alert", "error", err)
	}
}
