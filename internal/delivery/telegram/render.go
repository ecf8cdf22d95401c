package telegram

import (
	"fmt"
	"strings"
	"time"

	"github.com/aliskhannn/studyplanner/internal/domain/entities"
)

const dateLayout = "Mon, 02 Jan"

func sessionIcon(t entities.SessionType) string {
	switch t {
	case entities.SessionFlashcards:
		return "🗂"
	case entities.SessionPractice:
		return "🎯"
	case entities.SessionReading:
		return "📖"
	default:
		return "•"
	}
}

func renderProposal(p entities.SessionProposal) string {
	line := fmt.Sprintf("%s <b>%d min</b> %s: %s", sessionIcon(p.Type), p.DurationMinutes, p.Type, esc(p.SubjectTopic))
	if p.Priority == entities.PriorityHigh {
		line += " ❗"
	}
	return line + "\n   <i>" + esc(p.Reason) + "</i>"
}

// renderDay renders one day's plan.
func renderDay(plan entities.DailyPlan) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>📅 %s</b> · %d min\n", plan.Date.Format(dateLayout), plan.TotalMinutes())
	if len(plan.Sessions) == 0 {
		b.WriteString("   nothing planned\n")
		return b.String()
	}
	for _, p := range plan.Sessions {
		b.WriteString(renderProposal(p))
		b.WriteString("\n")
	}
	return b.String()
}

// renderSchedule renders a multi-day plan.
func renderSchedule(plans []entities.DailyPlan) string {
	days := make([]string, 0, len(plans))
	for _, p := range plans {
		days = append(days, renderDay(p))
	}
	return "<b>🗓 Study plan</b>\n\n" + strings.Join(days, "\n")
}

func renderSessions(sessions []*entities.StudySession) string {
	var b strings.Builder
	b.WriteString("<b>📋 Today's sessions</b>\n\n")
	for _, s := range sessions {
		status := "⏳"
		if s.Status == entities.SessionCompleted {
			status = "✅"
		}
		fmt.Fprintf(&b, "%s %s %s · %d min %s: %s\n   <code>%s</code>\n",
			status,
			s.ScheduledAt.Format("15:04"),
			sessionIcon(s.Type),
			s.DurationMinutes,
			s.Type,
			esc(s.SubjectTopic),
			s.ID,
		)
	}
	return b.String()
}

func renderStreak(s entities.Streak) string {
	if s.Current == 0 {
		return fmt.Sprintf("🔥 No active streak. Longest: %d day(s).", s.Longest)
	}
	return fmt.Sprintf("🔥 Streak: <b>%d</b> day(s). Longest: %d day(s).", s.Current, s.Longest)
}

func renderSummary(sum *entities.ProgressSummary, settings *entities.UserSettings) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>📊 Progress for %s</b>\n\n", sum.Date.Format(dateLayout))
	fmt.Fprintf(&b, "%s\n\n", renderStreak(sum.Streak))
	fmt.Fprintf(&b, "✅ Completed today: %d session(s), %d min\n", sum.CompletedToday, sum.CompletedMinutes)
	fmt.Fprintf(&b, "⏳ Planned: %d min\n", sum.PlannedMinutes)
	fmt.Fprintf(&b, "⏱ Budget left: %d of %d min\n", sum.Remaining(settings.DailyStudyMinutes), settings.DailyStudyMinutes)
	fmt.Fprintf(&b, "🗂 Flashcards due: %d\n", sum.DueFlashcards)
	fmt.Fprintf(&b, "📚 Materials: %d\n", sum.Materials)

	if len(sum.WeakTopics) > 0 {
		b.WriteString("\n<b>Weak topics</b>\n")
		for _, t := range sum.WeakTopics {
			fmt.Fprintf(&b, "🎯 %s - %.0f%%\n", esc(entities.SubjectTopic(t.Subject, t.Topic)), t.AvgAccuracy)
		}
	}

	reminder := "off"
	if settings.RemindersEnabled {
		reminder = fmt.Sprintf("%02d:00", settings.ReminderHour)
	}
	fmt.Fprintf(&b, "\n🌍 %s · 🔔 %s", esc(settings.Timezone), reminder)

	return b.String()
}

func renderMaterials(materials []entities.MaterialRef) string {
	var b strings.Builder
	b.WriteString("<b>📚 Materials</b>\n\n")
	for _, m := range materials {
		title := m.Title
		if title == "" {
			title = m.SubjectTopic()
		}
		studied := "never studied"
		if m.LastStudiedAt != nil {
			studied = "studied " + m.LastStudiedAt.Format(dateLayout)
		}
		fmt.Fprintf(&b, "• <b>%s</b> (%s)\n   %s · %d due card(s)\n   <code>%s</code>\n",
			esc(title), esc(m.SubjectTopic()), studied, m.DueFlashcards, m.ID)
	}
	return b.String()
}

func renderCard(c *entities.Flashcard) string {
	return fmt.Sprintf("❓ %s\n\n<tg-spoiler>%s</tg-spoiler>\n\n<code>%s</code>", esc(c.Front), esc(c.Back), c.ID)
}

func renderReviewed(c *entities.Flashcard, loc *time.Location) string {
	next := "now"
	if c.NextReviewAt != nil {
		next = c.NextReviewAt.In(loc).Format(dateLayout)
	}
	return fmt.Sprintf(msgCardReviewed, c.Review.IntervalDays, next)
}

func renderReminder(p entities.ReminderPayload) string {
	var b strings.Builder
	b.WriteString("☀️ <b>Good morning! Here is your plan.</b>\n\n")
	b.WriteString(renderDay(p.Plan))
	if p.DueCards > 0 {
		fmt.Fprintf(&b, "\n🗂 %d flashcard(s) due. Send /due to review them.", p.DueCards)
	}
	if p.Streak.Current > 0 {
		fmt.Fprintf(&b, "\n%s", renderStreak(p.Streak))
	}
	return b.String()
}
