package models

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/fittrack/internal/common"
	"github.com/dmitrijs2005/fittrack/internal/timex"
)

// Activity is the workout category.
type Activity string

const (
	ActivityCardio      Activity = "Cardio"
	ActivityStrength    Activity = "Strength"
	ActivityFlexibility Activity = "Flexibility"
	ActivityBalance     Activity = "Balance"
	ActivitySports      Activity = "Sports"
	ActivityOther       Activity = "Other"
)

var Activities = []Activity{ActivityCardio, ActivityStrength, ActivityFlexibility, ActivityBalance, ActivitySports, ActivityOther}

func (a Activity) Valid() bool {
	for _, v := range Activities {
		if v == a {
			return true
		}
	}
	return false
}

// Intensity is the perceived effort of a workout.
type Intensity string

const (
	IntensityLow    Intensity = "Low"
	IntensityMedium Intensity = "Medium"
	IntensityHigh   Intensity = "High"
)

var Intensities = []Intensity{IntensityLow, IntensityMedium, IntensityHigh}

func (i Intensity) Valid() bool {
	for _, v := range Intensities {
		if v == i {
			return true
		}
	}
	return false
}

// Workout is a logged training session. Duration holds minutes as text.
type Workout struct {
	ID        string     `json:"id,omitempty"`
	Date      timex.Date `json:"date"`
	Duration  string     `json:"duration"`
	Activity  Activity   `json:"activity"`
	Intensity Intensity  `json:"intensity"`
	Notes     string     `json:"notes,omitempty"`
	UserID    string     `json:"userId,omitempty"`
}

func (w Workout) Key() string { return w.ID }

// Minutes parses Duration.
func (w Workout) Minutes() (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(w.Duration))
	if err != nil || n <= 0 {
		return 0, common.NewValidationError("duration", "duration must be a positive number of minutes")
	}
	return n, nil
}

// Validate checks required fields and enumerations.
func (w Workout) Validate() error {
	if w.Date.IsZero() {
		return common.NewValidationError("date", "date is required")
	}
	if strings.TrimSpace(w.Duration) == "" {
		return common.NewValidationError("duration", "duration is required")
	}
	if _, err := w.Minutes(); err != nil {
		return err
	}
	if !w.Activity.Valid() {
		return common.NewValidationError("activity", fmt.Sprintf("unknown activity %q", w.Activity))
	}
	if !w.Intensity.Valid() {
		return common.NewValidationError("intensity", fmt.Sprintf("unknown intensity %q", w.Intensity))
	}
	return nil
}

var markupEscaper = strings.NewReplacer("<", "&lt;", ">", "&gt;")

// SanitizeNotes rejects notes longer than MaxNotesLength characters and
// escapes markup brackets. Applying it twice yields the same result.
func SanitizeNotes(notes string) (string, error) {
	if utf8.RuneCountInString(notes) > common.MaxNotesLength {
		return "", common.NewValidationError("notes", "notes exceed 255 characters")
	}
	return markupEscaper.Replace(notes), nil
}

// Prepare validates w and returns a copy with sanitized notes, ready to be
// sent to the API.
func (w Workout) Prepare() (Workout, error) {
	if err := w.Validate(); err != nil {
		return Workout{}, err
	}
	notes, err := SanitizeNotes(w.Notes)
	if err != nil {
		return Workout{}, err
	}
	w.Notes = notes
	w.Duration = strings.TrimSpace(w.Duration)
	return w, nil
}
