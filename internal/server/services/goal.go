package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/dmitrijs2005/fittrack/internal/common"
	"github.com/dmitrijs2005/fittrack/internal/server/models"
	"github.com/dmitrijs2005/fittrack/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

type GoalService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewGoalService(db *sql.DB, m repomanager.RepositoryManager) *GoalService {
	return &GoalService{db: db, repomanager: m}
}

func validateGoal(g models.Goal) error {
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

// validID maps ids that can never exist to common.ErrNotFound before they
// reach a UUID column.
func validID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return common.ErrNotFound
	}
	return nil
}

func (s *GoalService) List(ctx context.Context, userID string) ([]models.Goal, error) {
	return s.repomanager.Goals(s.db).List(ctx, userID)
}

// Create stores g for userID under a fresh id; client-supplied ids and
// owners are ignored.
func (s *GoalService) Create(ctx context.Context, userID string, g models.Goal) (*models.Goal, error) {
	if err := validateGoal(g); err != nil {
		return nil, err
	}
	g.ID = uuid.NewString()
	g.UserID = userID

	if err := s.repomanager.Goals(s.db).Create(ctx, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *GoalService) Update(ctx context.Context, userID, id string, g models.Goal) (*models.Goal, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	if err := validateGoal(g); err != nil {
		return nil, err
	}
	g.ID = id
	g.UserID = userID

	if err := s.repomanager.Goals(s.db).Update(ctx, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *GoalService) Delete(ctx context.Context, userID, id string) error {
	if err := validID(id); err != nil {
		return err
	}
	return s.repomanager.Goals(s.db).Delete(ctx, userID, id)
}
