package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	defer h.answerCallback(cb.ID)

	if cb.Message == nil {
		return
	}

	userID := cb.From.ID
	chatID := cb.Message.Chat.ID
	messageID := cb.Message.MessageID
	data := decodeCallback(cb.Data)

	var (
		text string
		kb   *tgbotapi.InlineKeyboardMarkup
		err  error
	)

	switch data.Action {
	case actionReview:
		cardID, quality, hasQuality, ok := data.idAndQuality()
		if !ok || !hasQuality {
			return
		}
		text, err = h.reviewCard(ctx, userID, cardID, quality)

	case actionDone:
		sessionID, quality, hasQuality, ok := data.idAndQuality()
		if !ok {
			return
		}
		if !hasQuality {
			grade := buildDoneGradeKeyboard(sessionID)
			text, kb = msgChooseSessionGrade, &grade
			break
		}
		text, err = h.completeSession(ctx, userID, sessionID, quality)

	case actionPlan:
		if len(data.Params) == 1 && data.Params[0] == planSave {
			// The plan message stays; the result goes in a new message.
			h.send(newHTMLMessage(chatID, h.saveToday(ctx, userID)))
			h.removeKeyboard(chatID, messageID)
		}
		return

	case actionReminder:
		if len(data.Params) == 1 && data.Params[0] == reminderToggle {
			h.send(newHTMLMessage(chatID, h.toggleReminder(ctx, userID)))
			h.removeKeyboard(chatID, messageID)
		}
		return

	case actionReset:
		if len(data.Params) != 1 {
			return
		}
		switch data.Params[0] {
		case resetConfirm:
			text = msgResetDone
			err = h.svc.Reset.ResetUser(ctx, userID)
		case resetCancel:
			text = msgResetCancelled
		default:
			return
		}

	default:
		return
	}

	if err != nil {
		var ok bool
		if text, ok = errorMessage(err); !ok {
			h.logger.Error("callback failed",
				zap.Int64("user_id", userID),
				zap.String("data", cb.Data),
				zap.Error(err),
			)
			text = msgInternalError
		}
	}

	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = tgbotapi.ModeHTML
	if kb != nil {
		edit.ReplyMarkup = kb
	}
	h.send(edit)
}

func (h *Handler) removeKeyboard(chatID int64, messageID int) {
	h.send(tgbotapi.NewEditMessageReplyMarkup(chatID, messageID, tgbotapi.InlineKeyboardMarkup{
		InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{},
	}))
}

// answerCallback removes the loading indicator on the button.
func (h *Handler) answerCallback(id string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(id, "")); err != nil {
		h.logger.Debug("callback answer error", zap.Error(err))
	}
}
