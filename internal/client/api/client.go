package api

import (
	"context"

	"github.com/dmitrijs2005/fittrack/internal/client/models"
)

type AuthClient interface {
	Register(ctx context.Context, email, password, name string) error
	// Login exchanges credentials for a token.
	Login(ctx context.Context, email, password string) (string, error)
	// Profile returns the account the token belongs to.
	Profile(ctx context.Context, token string) (*models.User, error)
}

type GoalClient interface {
	ListGoals(ctx context.Context, token string) ([]models.Goal, error)
	CreateGoal(ctx context.Context, token string, g models.Goal) (models.Goal, error)
	UpdateGoal(ctx context.Context, token string, g models.Goal) (models.Goal, error)
	DeleteGoal(ctx context.Context, token string, id string) error
}

type WorkoutClient interface {
	ListWorkouts(ctx context.Context, token string, userID string) ([]models.Workout, error)
	CreateWorkout(ctx context.Context, token string, w models.Workout) (models.Workout, error)
	UpdateWorkout(ctx context.Context, token string, w models.Workout) (models.Workout, error)
	DeleteWorkout(ctx context.Context, token string, id string) error
}

type Client interface {
	AuthClient
	GoalClient
	WorkoutClient
}
