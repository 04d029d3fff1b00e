package models

import "github.com/dmitrijs2005/fittrack/internal/timex"

// Workout is stored as received; notes are already escaped by the client.
type Workout struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	Date      timex.Date `json:"date"`
	Duration  string     `json:"duration"`
	Activity  string     `json:"activity"`
	Intensity string     `json:"intensity"`
	Notes     string     `json:"notes,omitempty"`
}
