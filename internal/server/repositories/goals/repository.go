// Package goals stores user goals. Every method is scoped to a user id; a
// goal owned by somebody else is reported as common.ErrNotFound.
package goals

import (
	"context"

	"github.com/dmitrijs2005/fittrack/internal/server/models"
)

type Repository interface {
	List(ctx context.Context, userID string) ([]models.Goal, error)
	Create(ctx context.Context, goal *models.Goal) error
	Update(ctx context.Context, goal *models.Goal) error
	Delete(ctx context.Context, userID, id string) error
}
