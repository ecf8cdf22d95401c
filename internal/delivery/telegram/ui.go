package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/studyplanner/internal/domain/entities"
)

// buildGradeRow builds a 0-5 rating row for the given callback builder.
func buildGradeRow(callback func(q int) string) []tgbotapi.InlineKeyboardButton {
	row := make([]tgbotapi.InlineKeyboardButton, 0, entities.MaxQuality+1)
	for q := entities.MinQuality; q <= entities.MaxQuality; q++ {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(fmt.Sprint(q), callback(q)))
	}
	return row
}

// buildReviewKeyboard builds the rating keyboard under a flashcard.
func buildReviewKeyboard(cardID string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(buildGradeRow(func(q int) string {
		return buildReviewCallback(cardID, q)
	}))
}

// buildDoneGradeKeyboard builds the rating keyboard for finishing a session.
func buildDoneGradeKeyboard(sessionID string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(buildGradeRow(func(q int) string {
		return buildDoneCallback(sessionID, q)
	}))
}

// buildSessionsKeyboard has one "done" button per planned session.
func buildSessionsKeyboard(sessions []*entities.StudySession) *tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, s := range sessions {
		if s.Status != entities.SessionPlanned {
			continue
		}
		label := fmt.Sprintf("✅ %s %s", sessionIcon(s.Type), s.SubjectTopic)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, buildDoneCallback(s.ID)),
		))
	}
	if len(rows) == 0 {
		return nil
	}
	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &kb
}

func buildPlanKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💾 Save today's plan", buildPlanSaveCallback()),
		),
	)
}

func buildReminderKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💾 Save plan", buildPlanSaveCallback()),
			tgbotapi.NewInlineKeyboardButtonData("🔕 Turn off", buildReminderToggleCallback()),
		),
	)
}

func buildResetKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Yes, reset", buildResetConfirmCallback()),
			tgbotapi.NewInlineKeyboardButtonData("Cancel", buildResetCancelCallback()),
		),
	)
}
