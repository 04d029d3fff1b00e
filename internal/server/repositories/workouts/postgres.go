package workouts

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/fittrack/internal/common"
	"github.com/dmitrijs2005/fittrack/internal/dbx"
	"github.com/dmitrijs2005/fittrack/internal/server/models"
	"github.com/dmitrijs2005/fittrack/internal/timex"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context, userID string) ([]models.Workout, error) {
	query :=
		`SELECT id, user_id, date, duration, activity, intensity, notes FROM workouts
		 WHERE user_id = $1
		 ORDER BY date DESC, id
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.Workout{}
	for rows.Next() {
		var w models.Workout
		if err := rows.Scan(&w.ID, &w.UserID, &w.Date.Time, &w.Duration, &w.Activity, &w.Intensity, &w.Notes); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		w.Date = timex.DateOf(w.Date.Time)
		result = append(result, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Create(ctx context.Context, w *models.Workout) error {
	query :=
		`INSERT INTO workouts (id, user_id, date, duration, activity, intensity, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 `

	_, err := r.db.ExecContext(ctx, query, w.ID, w.UserID, w.Date.Time, w.Duration, w.Activity, w.Intensity, w.Notes)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Update(ctx context.Context, w *models.Workout) error {
	query :=
		`UPDATE workouts SET date = $3, duration = $4, activity = $5, intensity = $6, notes = $7
		 WHERE id = $1 AND user_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, w.ID, w.UserID, w.Date.Time, w.Duration, w.Activity, w.Intensity, w.Notes)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return affectedOne(res.RowsAffected())
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	query :=
		`DELETE FROM workouts
		 WHERE id = $1 AND user_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return affectedOne(res.RowsAffected())
}

func affectedOne(n int64, err error) error {
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}
