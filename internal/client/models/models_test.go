package models

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/fittrack/internal/common"
	"github.com/dmitrijs2005/fittrack/internal/timex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEmail(t *testing.T) {
	for _, ok := range []string{"a@b.com", "first.last@sub.example.org", " user@example.io "} {
		assert.NoError(t, ValidateEmail(ok), ok)
	}
	for _, bad := range []string{"", "plain", "no-domain@", "a@b", "@b.com", "a b@c.com", "a@@b.com"} {
		err := ValidateEmail(bad)
		require.Error(t, err, bad)
		assert.True(t, errors.Is(err, common.ErrValidation))
	}
}

func TestRegistration_Validate(t *testing.T) {
	tests := []struct {
		name  string
		reg   Registration
		field string
	}{
		{"ok", Registration{Email: "a@b.com", Password: "password123"}, ""},
		{"ok with confirm", Registration{Email: "a@b.com", Password: "password123", Confirm: "password123"}, ""},
		{"bad email", Registration{Email: "a.com", Password: "password123"}, "email"},
		{"short password", Registration{Email: "a@b.com", Password: "1234567"}, "password"},
		{"mismatch", Registration{Email: "a@b.com", Password: "password123", Confirm: "password124"}, "confirm"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.reg.Validate()
			if tt.field == "" {
				require.NoError(t, err)
				return
			}
			var ve *common.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestSession_Authenticated(t *testing.T) {
	assert.False(t, Anonymous().Authenticated())
	assert.Equal(t, "", Anonymous().UserID())

	s := Session{Phase: PhaseAuthenticated, Token: "tok", User: &User{ID: "u1"}}
	assert.True(t, s.Authenticated())
	assert.Equal(t, "u1", s.UserID())

	assert.False(t, Session{Phase: PhaseAuthenticating, Token: "tok", User: &User{ID: "u1"}}.Authenticated())
	assert.False(t, Session{Phase: PhaseAuthenticated, User: &User{ID: "u1"}}.Authenticated())
}

func TestGoal_Validate(t *testing.T) {
	g := Goal{Description: "Run a marathon", TargetValue: "42.2", Deadline: timex.NewDate(2025, time.May, 1)}
	require.NoError(t, g.Validate())

	noDesc := g
	noDesc.Description = "  "
	assert.ErrorIs(t, noDesc.Validate(), common.ErrValidation)

	noTarget := g
	noTarget.TargetValue = ""
	assert.ErrorIs(t, noTarget.Validate(), common.ErrValidation)

	noDeadline := g
	noDeadline.Deadline = timex.Date{}
	assert.ErrorIs(t, noDeadline.Validate(), common.ErrValidation)
}

func TestGoal_JSONShape(t *testing.T) {
	g := Goal{ID: "g1", Description: "d", TargetValue: "10", Deadline: timex.NewDate(2024, 2, 29), UserID: "u1"}
	b, err := json.Marshal(g)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"g1","description":"d","targetValue":"10","deadline":"2024-02-29","userId":"u1"}`, string(b))
}

func TestSanitizeNotes(t *testing.T) {
	got, err := SanitizeNotes("<b>great</b>")
	require.NoError(t, err)
	assert.Equal(t, "&lt;b&gt;great&lt;/b&gt;", got)

	again, err := SanitizeNotes(got)
	require.NoError(t, err)
	assert.Equal(t, got, again)

	_, err = SanitizeNotes(strings.Repeat("x", 255))
	assert.NoError(t, err)

	_, err = SanitizeNotes(strings.Repeat("x", 256))
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = SanitizeNotes(strings.Repeat("ё", 255))
	assert.NoError(t, err, "limit counts characters, not bytes")
}

func validWorkout() Workout {
	return Workout{
		Date:      timex.NewDate(2024, time.January, 5),
		Duration:  "30",
		Activity:  ActivityCardio,
		Intensity: IntensityMedium,
		Notes:     "<b>great</b>",
	}
}

func TestWorkout_Prepare(t *testing.T) {
	w, err := validWorkout().Prepare()
	require.NoError(t, err)
	assert.Equal(t, "&lt;b&gt;great&lt;/b&gt;", w.Notes)

	m, err := w.Minutes()
	require.NoError(t, err)
	assert.Equal(t, 30, m)
}

func TestWorkout_ValidateRejects(t *testing.T) {
	mutate := map[string]func(*Workout){
		"date":      func(w *Workout) { w.Date = timex.Date{} },
		"duration":  func(w *Workout) { w.Duration = "" },
		"numeric":   func(w *Workout) { w.Duration = "half an hour" },
		"positive":  func(w *Workout) { w.Duration = "0" },
		"activity":  func(w *Workout) { w.Activity = "Knitting" },
		"intensity": func(w *Workout) { w.Intensity = "Extreme" },
		"notes":     func(w *Workout) { w.Notes = strings.Repeat("n", 300) },
	}
	for name, fn := range mutate {
		t.Run(name, func(t *testing.T) {
			w := validWorkout()
			fn(&w)
			_, err := w.Prepare()
			assert.ErrorIs(t, err, common.ErrValidation)
		})
	}
}

func TestEnumerations(t *testing.T) {
	for _, a := range Activities {
		assert.True(t, a.Valid())
	}
	for _, i := range Intensities {
		assert.True(t, i.Valid())
	}
	assert.False(t, Activity("cardio").Valid())
	assert.False(t, Intensity("").Valid())
}
