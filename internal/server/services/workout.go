package services

import (
	"context"
	"database/sql"
	"slices"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/fittrack/internal/common"
	"github.com/dmitrijs2005/fittrack/internal/server/models"
	"github.com/dmitrijs2005/fittrack/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

var (
	activities  = []string{"Cardio", "Strength", "Flexibility", "Balance", "Sports", "Other"}
	intensities = []string{"Low", "Medium", "High"}
)

// maxStoredNotes bounds escaped notes: every bracket may grow to four bytes.
const maxStoredNotes = 4 * common.MaxNotesLength

type WorkoutService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewWorkoutService(db *sql.DB, m repomanager.RepositoryManager) *WorkoutService {
	return &WorkoutService{db: db, repomanager: m}
}

func validateWorkout(w models.Workout) error {
	if w.Date.IsZero() {
		return common.NewValidationError("date", "date is required")
	}
	n, err := strconv.Atoi(strings.TrimSpace(w.Duration))
	if err != nil || n <= 0 {
		return common.NewValidationError("duration", "duration must be a positive number of minutes")
	}
	if !slices.Contains(activities, w.Activity) {
		return common.NewValidationError("activity", "unknown activity")
	}
	if !slices.Contains(intensities, w.Intensity) {
		return common.NewValidationError("intensity", "unknown intensity")
	}
	if len(w.Notes) > maxStoredNotes {
		return common.NewValidationError("notes", "notes are too long")
	}
	return nil
}

func (s *WorkoutService) List(ctx context.Context, userID string) ([]models.Workout, error) {
	return s.repomanager.Workouts(s.db).List(ctx, userID)
}

func (s *WorkoutService) Create(ctx context.Context, userID string, w models.Workout) (*models.Workout, error) {
	if err := validateWorkout(w); err != nil {
		return nil, err
	}
	w.ID = uuid.NewString()
	w.UserID = userID
	w.Duration = strings.TrimSpace(w.Duration)

	if err := s.repomanager.Workouts(s.db).Create(ctx, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

func (s *WorkoutService) Update(ctx context.Context, userID, id string, w models.Workout) (*models.Workout, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	if err := validateWorkout(w); err != nil {
		return nil, err
	}
	w.ID = id
	w.UserID = userID
	w.Duration = strings.TrimSpace(w.Duration)

	if err := s.repomanager.Workouts(s.db).Update(ctx, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

func (s *WorkoutService) Delete(ctx context.Context, userID, id string) error {
	if err := validID(id); err != nil {
		return err
	}
	return s.repomanager.Workouts(s.db).Delete(ctx, userID, id)
}
