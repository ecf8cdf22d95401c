package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Services groups the use cases the bot talks to.
type Services struct {
	Users      UserService
	Schedule   ScheduleService
	Reviews    ReviewService
	Progress   ProgressService
	Settings   SettingsService
	Materials  MaterialService
	Flashcards FlashcardService
	Reset      ResetService
}

type Handler struct {
	bot       *tgbotapi.BotAPI
	logger    *zap.Logger
	svc       Services
	reminders ReminderStorage
}

func NewHandler(bot *tgbotapi.BotAPI, logger *zap.Logger, svc Services, reminders ReminderStorage) *Handler {
	return &Handler{
		bot:       bot,
		logger:    logger,
		svc:       svc,
		reminders: reminders,
	}
}

// Commands is the menu registered with Telegram.
func Commands() []tgbotapi.BotCommand {
	return []tgbotapi.BotCommand{
		{Command: "plan", Description: "Study plan for the next days"},
		{Command: "today", Description: "Today's saved sessions"},
		{Command: "save", Description: "Save today's plan"},
		{Command: "due", Description: "Flashcards due now"},
		{Command: "materials", Description: "Your materials"},
		{Command: "progress", Description: "Progress and streak"},
		{Command: "budget", Description: "Daily study minutes"},
		{Command: "timezone", Description: "Your timezone"},
		{Command: "reminder", Description: "Daily plan reminder"},
		{Command: "help", Description: "Help"},
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)
	defer h.bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update := <-updates:
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil || update.Message.From == nil {
		return
	}

	from := update.Message.From
	chatID := update.Message.Chat.ID

	h.logger.Debug("update received",
		zap.Int64("chat_id", chatID),
		zap.String("text", update.Message.Text),
	)

	if _, err := h.svc.Users.EnsureUser(ctx, from.ID, chatID); err != nil {
		h.logger.Error("failed to ensure user",
			zap.Int64("user_id", from.ID),
			zap.Error(err),
		)
	}

	if !update.Message.IsCommand() {
		h.send(newHTMLMessage(chatID, msgUnknownCommand))
		return
	}

	args := strings.TrimSpace(update.Message.CommandArguments())
	userID := from.ID

	var fn HandlerFunc
	switch update.Message.Command() {
	case "start":
		fn = h.handleText(msgWelcome)
	case "help":
		fn = h.handleText(msgHelp)
	case "plan":
		fn = h.handlePlan(userID, args)
	case "save":
		fn = h.handleSave(userID)
	case "today":
		fn = h.handleToday(userID)
	case "done":
		fn = h.handleDone(userID, args)
	case "due":
		fn = h.handleDue(userID)
	case "review":
		fn = h.handleReview(userID, args)
	case "streak":
		fn = h.handleStreak(userID)
	case "progress":
		fn = h.handleProgress(userID)
	case "budget":
		fn = h.handleBudget(userID, args)
	case "timezone":
		fn = h.handleTimezone(userID, args)
	case "reminder":
		fn = h.handleReminder(userID, args)
	case "materials":
		fn = h.handleMaterials(userID)
	case "addmaterial":
		fn = h.handleAddMaterial(userID, args)
	case "addcard":
		fn = h.handleAddCard(userID, args)
	case "quiz":
		fn = h.handleQuiz(userID, args)
	case "reset":
		fn = h.handleReset()
	default:
		fn = h.handleText(msgUnknownCommand)
	}

	_ = h.withErrorHandling(fn)(ctx, chatID)
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
	}
}
