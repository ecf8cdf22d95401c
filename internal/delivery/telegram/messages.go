// messages.go contains message templates and the mapping from errors to replies.

package telegram

import (
	"errors"

	"github.com/aliskhannn/studyplanner/internal/infra/postgres/repository"
	"github.com/aliskhannn/studyplanner/internal/service"
)

const (
	msgWelcome = "👋 <b>Welcome to Study Planner!</b>\n\n" +
		"Add your materials and flashcards and I will plan each day for you: " +
		"due reviews first, then weak topics, then regular reading.\n\n" + msgHelp

	msgHelp = "<b>Commands</b>\n" +
		"/plan [days] - study plan for the next days\n" +
		"/save - save today's plan\n" +
		"/today - today's saved sessions\n" +
		"/done &lt;session&gt; &lt;0-5&gt; - finish a session\n" +
		"/due - flashcards due now\n" +
		"/review &lt;card&gt; &lt;0-5&gt; - grade a flashcard\n" +
		"/materials - your materials\n" +
		"/addmaterial subject; topic; title; minutes\n" +
		"/addcard material; front; back\n" +
		"/quiz &lt;material&gt; &lt;score&gt; [minutes] - record a quiz score\n" +
		"/streak, /progress - your statistics\n" +
		"/budget &lt;minutes&gt; - daily study time\n" +
		"/timezone &lt;zone&gt; - e.g. Europe/Berlin or UTC+3\n" +
		"/reminder [hour|off] - daily plan reminder\n" +
		"/reset - clear study history"
)

// Error and usage messages.
const (
	msgInternalError      = "Something went wrong. Please try again later."
	msgUnknownCommand     = "Unknown command. Send /help for the list of commands."
	msgUsePlan            = "Usage: /plan [days], e.g. /plan 3."
	msgUseDone            = "Usage: /done &lt;session&gt; &lt;0-5&gt;."
	msgUseReview          = "Usage: /review &lt;card&gt; &lt;0-5&gt;."
	msgUseBudget          = "Usage: /budget &lt;minutes&gt;, e.g. /budget 90."
	msgUseTimezone        = "Usage: /timezone &lt;zone&gt;, e.g. /timezone Europe/Berlin or /timezone UTC+3."
	msgUseReminder        = "Usage: /reminder, /reminder &lt;hour 0-23&gt; or /reminder off."
	msgUseAddMaterial     = "Usage: /addmaterial subject; topic; title; minutes."
	msgUseAddCard         = "Usage: /addcard material; front; back."
	msgUseQuiz            = "Usage: /quiz &lt;material&gt; &lt;score 0-100&gt; [minutes]."
	msgInvalidQuality     = "Quality must be a number from 0 (blackout) to 5 (perfect)."
	msgInvalidBudget      = "The daily budget must be between 0 and 960 minutes."
	msgInvalidTimezone    = "Unknown timezone. Try an IANA name like Europe/Berlin or an offset like UTC+3."
	msgInvalidHour        = "The reminder hour must be between 0 and 23."
	msgInvalidScore       = "The score must be a percentage between 0 and 100."
	msgEmptyField         = "Some required fields are empty."
	msgCardNotFound       = "Flashcard not found."
	msgSessionNotFound    = "Session not found."
	msgMaterialNotFound   = "Material not found. Send /materials to see IDs."
	msgSessionCompleted   = "This session is already completed."
	msgNothingPlanned     = "Nothing to plan for today. Add materials with /addmaterial or raise your /budget."
	msgNothingDue         = "🎉 No flashcards are due. Well done!"
	msgNoSessions         = "No sessions saved for today. Use /plan and /save."
	msgNoMaterials        = "You have no materials yet. Add one with /addmaterial."
	msgResetConfirm       = "This deletes your sessions and quiz scores and resets your flashcards. Continue?"
	msgResetDone          = "Your study history has been reset."
	msgResetCancelled     = "Reset cancelled."
	msgPlanSaved          = "💾 Saved %d session(s) for today. See /today."
	msgBudgetUpdated      = "⏱ Daily budget set to %d minutes."
	msgTimezoneUpdated    = "🌍 Timezone set to %s."
	msgReminderOn         = "🔔 Daily plan reminder at %02d:00."
	msgReminderOff        = "🔕 Daily plan reminder disabled."
	msgMaterialAdded      = "📚 Material added.\nID: <code>%s</code>"
	msgCardAdded          = "🗂 Flashcard added.\nID: <code>%s</code>"
	msgQuizRecorded       = "📝 Recorded %.0f%% for %s."
	msgCardReviewed       = "✅ Next review in %d day(s), on %s."
	msgSessionDone        = "✅ Session completed. Review it again on %s."
	msgChooseSessionGrade = "How well did it go? 0 = blackout, 5 = perfect."
)

// errorMessage maps known errors to a user-facing reply.
func errorMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, service.ErrInvalidQuality):
		return msgInvalidQuality, true
	case errors.Is(err, service.ErrInvalidBudget):
		return msgInvalidBudget, true
	case errors.Is(err, service.ErrInvalidTimezone):
		return msgInvalidTimezone, true
	case errors.Is(err, service.ErrInvalidReminderHour):
		return msgInvalidHour, true
	case errors.Is(err, service.ErrInvalidScore):
		return msgInvalidScore, true
	case errors.Is(err, service.ErrEmptyField):
		return msgEmptyField, true
	case errors.Is(err, service.ErrSessionAlreadyCompleted):
		return msgSessionCompleted, true
	case errors.Is(err, repository.ErrFlashcardNotFound):
		return msgCardNotFound, true
	case errors.Is(err, repository.ErrSessionNotFound):
		return msgSessionNotFound, true
	case errors.Is(err, repository.ErrMaterialNotFound):
		return msgMaterialNotFound, true
	}
	return "", false
}
