package models

import "github.com/dmitrijs2005/fittrack/internal/timex"

type Goal struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	Description string     `json:"description"`
	TargetValue string     `json:"targetValue"`
	Deadline    timex.Date `json:"deadline"`
}
