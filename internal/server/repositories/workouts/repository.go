// Package workouts stores logged workouts, scoped to their owner like goals.
package workouts

import (
	"context"

	"github.com/dmitrijs2005/fittrack/internal/server/models"
)

type Repository interface {
	List(ctx context.Context, userID string) ([]models.Workout, error)
	Create(ctx context.Context, workout *models.Workout) error
	Update(ctx context.Context, workout *models.Workout) error
	Delete(ctx context.Context, userID, id string) error
}
