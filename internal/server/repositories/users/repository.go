// Package users stores API accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/fittrack/internal/server/models"
)

// Repository persists users. Lookups of unknown users return
// common.ErrNotFound; Create with a taken email returns
// common.ErrAlreadyExists.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}
