package telegram

import (
	"html"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func newHTMLMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	return msg
}

func esc(s string) string {
	return html.EscapeString(s)
}

// splitFields splits "a; b; c" into trimmed fields.
func splitFields(args string) []string {
	if strings.TrimSpace(args) == "" {
		return nil
	}
	parts := strings.Split(args, ";")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// parseIDAndQuality parses "<id> <quality>" command arguments.
func parseIDAndQuality(args string) (string, int, bool) {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		return "", 0, false
	}
	q, err := strconv.Atoi(fields[1])
	if err != nil {
		return "", 0, false
	}
	return fields[0], q, true
}

// parseOptionalInt parses an optional single integer argument.
func parseOptionalInt(args string) (int, bool, error) {
	args = strings.TrimSpace(args)
	if args == "" {
		return 0, false, nil
	}
	n, err := strconv.Atoi(args)
	if err != nil {
		return 0, false, err
	}
	return n, true, nil
}
