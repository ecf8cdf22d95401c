package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/aliskhannn/studyplanner/internal/domain/entities"
	"github.com/aliskhannn/studyplanner/internal/domain/schedule"
)

const dueCardsPerMessage = 5

func (h *Handler) handleText(text string) HandlerFunc {
	return func(_ context.Context, chatID int64) error {
		h.send(newHTMLMessage(chatID, text))
		return nil
	}
}

// handlePlan shows the plan for the next days, one day by default.
func (h *Handler) handlePlan(userID int64, args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		days, ok, err := parseOptionalInt(args)
		if err != nil || (ok && (days < 1 || days > schedule.MaxHorizonDays)) {
			h.send(newHTMLMessage(chatID, msgUsePlan))
			return nil
		}
		if !ok {
			days = 1
		}

		plans, err := h.svc.Schedule.GenerateSchedule(ctx, userID, days)
		if err != nil {
			return err
		}

		if len(plans) == 1 && len(plans[0].Sessions) == 0 {
			h.send(newHTMLMessage(chatID, msgNothingPlanned))
			return nil
		}

		msg := newHTMLMessage(chatID, renderSchedule(plans))
		if len(plans[0].Sessions) > 0 {
			msg.ReplyMarkup = buildPlanKeyboard()
		}
		h.send(msg)
		return nil
	}
}

func (h *Handler) handleSave(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		h.send(newHTMLMessage(chatID, h.saveToday(ctx, userID)))
		return nil
	}
}

func (h *Handler) saveToday(ctx context.Context, userID int64) string {
	saved, err := h.svc.Schedule.SaveToday(ctx, userID)
	if err != nil {
		if text, ok := errorMessage(err); ok {
			return text
		}
		h.logger.Sugar().Errorw("save plan", "user_id", userID, "error", err)
		return msgInternalError
	}
	if len(saved) == 0 {
		return msgNothingPlanned
	}
	return fmt.Sprintf(msgPlanSaved, len(saved))
}

func (h *Handler) handleToday(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		sessions, err := h.svc.Schedule.SessionsToday(ctx, userID)
		if err != nil {
			return err
		}
		if len(sessions) == 0 {
			h.send(newHTMLMessage(chatID, msgNoSessions))
			return nil
		}

		msg := newHTMLMessage(chatID, renderSessions(sessions))
		if kb := buildSessionsKeyboard(sessions); kb != nil {
			msg.ReplyMarkup = *kb
		}
		h.send(msg)
		return nil
	}
}

func (h *Handler) handleDone(userID int64, args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		sessionID, quality, ok := parseIDAndQuality(args)
		if !ok {
			h.send(newHTMLMessage(chatID, msgUseDone))
			return nil
		}

		text, err := h.completeSession(ctx, userID, sessionID, quality)
		if err != nil {
			return err
		}
		h.send(newHTMLMessage(chatID, text))
		return nil
	}
}

func (h *Handler) completeSession(ctx context.Context, userID int64, sessionID string, quality int) (string, error) {
	session, err := h.svc.Reviews.CompleteSession(ctx, userID, sessionID, quality)
	if err != nil {
		return "", err
	}

	settings, err := h.svc.Settings.GetOrCreate(ctx, userID)
	if err != nil {
		return "", err
	}

	next := session.NextReviewAt.In(settings.Location()).Format(dateLayout)
	return fmt.Sprintf(msgSessionDone, next), nil
}

// handleDue sends the oldest due flashcards, each with a rating keyboard.
func (h *Handler) handleDue(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		cards, err := h.svc.Flashcards.ListDue(ctx, userID, dueCardsPerMessage)
		if err != nil {
			return err
		}
		if len(cards) == 0 {
			h.send(newHTMLMessage(chatID, msgNothingDue))
			return nil
		}

		for _, c := range cards {
			msg := newHTMLMessage(chatID, renderCard(c))
			msg.ReplyMarkup = buildReviewKeyboard(c.ID)
			h.send(msg)
		}
		return nil
	}
}

func (h *Handler) handleReview(userID int64, args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		cardID, quality, ok := parseIDAndQuality(args)
		if !ok {
			h.send(newHTMLMessage(chatID, msgUseReview))
			return nil
		}

		text, err := h.reviewCard(ctx, userID, cardID, quality)
		if err != nil {
			return err
		}
		h.send(newHTMLMessage(chatID, text))
		return nil
	}
}

func (h *Handler) reviewCard(ctx context.Context, userID int64, cardID string, quality int) (string, error) {
	card, err := h.svc.Reviews.ReviewFlashcard(ctx, userID, cardID, quality)
	if err != nil {
		return "", err
	}

	settings, err := h.svc.Settings.GetOrCreate(ctx, userID)
	if err != nil {
		return "", err
	}

	return renderReviewed(card, settings.Location()), nil
}

func (h *Handler) handleStreak(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		streak, err := h.svc.Progress.GetStreak(ctx, userID)
		if err != nil {
			return err
		}
		h.send(newHTMLMessage(chatID, renderStreak(streak)))
		return nil
	}
}

func (h *Handler) handleProgress(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		settings, err := h.svc.Settings.GetOrCreate(ctx, userID)
		if err != nil {
			return err
		}

		summary, err := h.svc.Progress.GetSummary(ctx, userID)
		if err != nil {
			return err
		}

		h.send(newHTMLMessage(chatID, renderSummary(summary, settings)))
		return nil
	}
}

func (h *Handler) handleBudget(userID int64, args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		minutes, ok, err := parseOptionalInt(args)
		if err != nil || !ok {
			h.send(newHTMLMessage(chatID, msgUseBudget))
			return nil
		}

		if err := h.svc.Settings.UpdateDailyMinutes(ctx, userID, minutes); err != nil {
			return err
		}

		h.send(newHTMLMessage(chatID, fmt.Sprintf(msgBudgetUpdated, minutes)))
		return nil
	}
}

func (h *Handler) handleTimezone(userID int64, args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if args == "" {
			h.send(newHTMLMessage(chatID, msgUseTimezone))
			return nil
		}

		if err := h.svc.Settings.UpdateTimezone(ctx, userID, args); err != nil {
			return err
		}

		h.send(newHTMLMessage(chatID, fmt.Sprintf(msgTimezoneUpdated, esc(args))))
		return nil
	}
}

// handleReminder toggles the reminder, or sets its hour, or turns it off.
func (h *Handler) handleReminder(userID int64, args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		switch {
		case args == "":
			h.send(newHTMLMessage(chatID, h.toggleReminder(ctx, userID)))
			return nil

		case strings.EqualFold(args, "off"):
			settings, err := h.svc.Settings.GetOrCreate(ctx, userID)
			if err != nil {
				return err
			}
			if settings.RemindersEnabled {
				if _, err := h.svc.Settings.ToggleReminder(ctx, userID); err != nil {
					return err
				}
			}
			h.send(newHTMLMessage(chatID, msgReminderOff))
			return nil
		}

		hour, err := strconv.Atoi(args)
		if err != nil {
			h.send(newHTMLMessage(chatID, msgUseReminder))
			return nil
		}
		if err := h.svc.Settings.SetReminderHour(ctx, userID, hour); err != nil {
			return err
		}
		h.send(newHTMLMessage(chatID, fmt.Sprintf(msgReminderOn, hour)))
		return nil
	}
}

func (h *Handler) toggleReminder(ctx context.Context, userID int64) string {
	settings, err := h.svc.Settings.ToggleReminder(ctx, userID)
	if err != nil {
		h.logger.Sugar().Errorw("toggle reminder", "user_id", userID, "error", err)
		return msgInternalError
	}
	if settings.RemindersEnabled {
		return fmt.Sprintf(msgReminderOn, settings.ReminderHour)
	}
	return msgReminderOff
}

func (h *Handler) handleMaterials(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		materials, err := h.svc.Materials.List(ctx, userID)
		if err != nil {
			return err
		}
		if len(materials) == 0 {
			h.send(newHTMLMessage(chatID, msgNoMaterials))
			return nil
		}
		h.send(newHTMLMessage(chatID, renderMaterials(materials)))
		return nil
	}
}

// handleAddMaterial parses "subject; topic; title; minutes". Only the
// subject is required.
func (h *Handler) handleAddMaterial(userID int64, args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		fields := splitFields(args)
		if len(fields) == 0 || len(fields) > 4 {
			h.send(newHTMLMessage(chatID, msgUseAddMaterial))
			return nil
		}
		fields = append(fields, make([]string, 4-len(fields))...)

		minutes := 0
		if fields[3] != "" {
			n, err := strconv.Atoi(fields[3])
			if err != nil {
				h.send(newHTMLMessage(chatID, msgUseAddMaterial))
				return nil
			}
			minutes = n
		}

		m, err := h.svc.Materials.Add(ctx, userID, fields[0], fields[1], fields[2], minutes)
		if err != nil {
			return err
		}

		h.send(newHTMLMessage(chatID, fmt.Sprintf(msgMaterialAdded, m.ID)))
		return nil
	}
}

func (h *Handler) handleAddCard(userID int64, args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		fields := splitFields(args)
		if len(fields) != 3 {
			h.send(newHTMLMessage(chatID, msgUseAddCard))
			return nil
		}

		card, err := h.svc.Flashcards.Add(ctx, userID, fields[0], fields[1], fields[2])
		if err != nil {
			return err
		}

		h.send(newHTMLMessage(chatID, fmt.Sprintf(msgCardAdded, card.ID)))
		return nil
	}
}

// handleQuiz records "<material> <score> [minutes]".
func (h *Handler) handleQuiz(userID int64, args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		fields := strings.Fields(args)
		if len(fields) < 2 || len(fields) > 3 {
			h.send(newHTMLMessage(chatID, msgUseQuiz))
			return nil
		}

		score, err := strconv.ParseFloat(strings.TrimSuffix(fields[1], "%"), 64)
		if err != nil {
			h.send(newHTMLMessage(chatID, msgUseQuiz))
			return nil
		}

		minutes := 0
		if len(fields) == 3 {
			if minutes, err = strconv.Atoi(fields[2]); err != nil {
				h.send(newHTMLMessage(chatID, msgUseQuiz))
				return nil
			}
		}

		attempt, err := h.svc.Materials.RecordQuiz(ctx, userID, fields[0], score, minutes)
		if err != nil {
			return err
		}

		label := esc(entities.SubjectTopic(attempt.Subject, attempt.Topic))
		h.send(newHTMLMessage(chatID, fmt.Sprintf(msgQuizRecorded, attempt.Score, label)))
		return nil
	}
}

func (h *Handler) handleReset() HandlerFunc {
	return func(_ context.Context, chatID int64) error {
		msg := newHTMLMessage(chatID, msgResetConfirm)
		msg.ReplyMarkup = buildResetKeyboard()
		h.send(msg)
		return nil
	}
}
