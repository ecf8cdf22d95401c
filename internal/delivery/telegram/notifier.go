package telegram

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/studyplanner/internal/domain/entities"
	"github.com/aliskhannn/studyplanner/internal/service"
)

// SendReminder delivers the daily plan and deletes the previous reminder
// so only the latest one stays in the chat.
func (h *Handler) SendReminder(userID, chatID int64, payload entities.ReminderPayload) error {
	msg := newHTMLMessage(chatID, renderReminder(payload))
	if len(payload.Plan.Sessions) > 0 {
		msg.ReplyMarkup = buildReminderKeyboard()
	}

	sent, err := h.bot.Send(msg)
	if err != nil {
		var tgErr *tgbotapi.Error
		if errors.As(err, &tgErr) && tgErr.Code == http.StatusForbidden {
			return fmt.Errorf("%w: %s", service.ErrRecipientUnavailable, tgErr.Message)
		}
		return fmt.Errorf("send reminder: %w", err)
	}

	prev, hadPrev := h.reminders.UpsertAndGetPrev(userID, chatID, sent.MessageID)
	if hadPrev && prev.Deletable(time.Now()) {
		if _, err := h.bot.Request(tgbotapi.NewDeleteMessage(prev.ChatID, prev.MessageID)); err != nil {
			h.logger.Debug("failed to delete previous reminder",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
		}
	}

	return nil
}
