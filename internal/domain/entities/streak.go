package entities

// Streak counts consecutive calendar days with at least one completed session.
type Streak struct {
	Current int `json:"current_streak"`
	Longest int `json:"longest_streak"`
}
