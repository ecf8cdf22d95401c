package telegram

import (
	"strconv"
	"strings"
)

// Callback action constants.
const (
	actionReview   = "review"
	actionDone     = "done"
	actionPlan     = "plan"
	actionReminder = "reminder"
	actionReset    = "reset"
)

const (
	planSave       = "save"
	reminderToggle = "toggle"
	resetConfirm   = "confirm"
	resetCancel    = "cancel"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// idAndQuality reads the "<id>:<quality>" params of review and done callbacks.
// A missing quality is reported as hasQuality=false.
func (cd callbackData) idAndQuality() (id string, quality int, hasQuality bool, ok bool) {
	switch len(cd.Params) {
	case 1:
		return cd.Params[0], 0, false, cd.Params[0] != ""
	case 2:
		q, err := strconv.Atoi(cd.Params[1])
		if err != nil {
			return "", 0, false, false
		}
		return cd.Params[0], q, true, cd.Params[0] != ""
	default:
		return "", 0, false, false
	}
}

func buildReviewCallback(cardID string, quality int) string {
	return callbackData{
		Action: actionReview,
		Params: []string{cardID, strconv.Itoa(quality)},
	}.encode()
}

func buildDoneCallback(sessionID string, quality ...int) string {
	params := []string{sessionID}
	for _, q := range quality {
		params = append(params, strconv.Itoa(q))
	}
	return callbackData{Action: actionDone, Params: params}.encode()
}

func buildPlanSaveCallback() string {
	return callbackData{Action: actionPlan, Params: []string{planSave}}.encode()
}

func buildReminderToggleCallback() string {
	return callbackData{Action: actionReminder, Params: []string{reminderToggle}}.encode()
}

func buildResetConfirmCallback() string {
	return callbackData{Action: actionReset, Params: []string{resetConfirm}}.encode()
}

func buildResetCancelCallback() string {
	return callbackData{Action: actionReset, Params: []string{resetCancel}}.encode()
}
