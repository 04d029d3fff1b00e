package workouts

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/fittrack/internal/common"
	"github.com/dmitrijs2005/fittrack/internal/server/models"
	"github.com/dmitrijs2005/fittrack/internal/timex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_NewestFirstAndScoped(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()

	require.NoError(t, r.Create(ctx, &models.Workout{ID: "old", UserID: "u1", Date: timex.NewDate(2024, 1, 1)}))
	require.NoError(t, r.Create(ctx, &models.Workout{ID: "new", UserID: "u1", Date: timex.NewDate(2024, 2, 1)}))
	require.NoError(t, r.Create(ctx, &models.Workout{ID: "other", UserID: "u2", Date: timex.NewDate(2024, 3, 1)}))
	assert.ErrorIs(t, r.Create(ctx, &models.Workout{ID: "old", UserID: "u1"}), common.ErrAlreadyExists)

	list, err := r.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "new", list[0].ID)

	assert.ErrorIs(t, r.Delete(ctx, "u1", "other"), common.ErrNotFound)
	assert.ErrorIs(t, r.Update(ctx, &models.Workout{ID: "other", UserID: "u1"}), common.ErrNotFound)
	require.NoError(t, r.Delete(ctx, "u2", "other"))
}
