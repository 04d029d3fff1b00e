package models

import (
	"strings"

	"github.com/dmitrijs2005/fittrack/internal/common"
	"github.com/dmitrijs2005/fittrack/internal/timex"
)

// Goal is a user-defined target. TargetValue stays text so inputs such as
// "10k", "5.5" or "30 min" are all accepted.
type Goal struct {
	ID          string     `json:"id,omitempty"`
	Description string     `json:"description"`
	TargetValue string     `json:"targetValue"`
	Deadline    timex.Date `json:"deadline"`
	UserID      string     `json:"userId,omitempty"`
}

func (g Goal) Key() string { return g.ID }

// Validate checks the fields the user must fill in.
func (g Goal) Validate() error {
	if strings.TrimSpace(g.Description) == "" {
		return common.NewValidationError("description", "description is required")
	}
	if strings.TrimSpace(g.TargetValue) == "" {
		return common.NewValidationError("targetValue", "target value is required")
	}
	if g.Deadline.IsZero() {
		return common.NewValidationError("deadline", "deadline is required")
	}
	return nil
}
