package goals

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

func (r *PostgresRepository) List(ctx context.Context, userID string) ([]models.Goal, error) {
	query :=
		`SELECT id, user_id, description, target_value, deadline FROM goals
		 WHERE user_id = $1
		 ORDER BY deadline, id
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.Goal{}
	for rows.Next() {
		var g models.Goal
		if err := rows.Scan(&g.ID, &g.UserID, &g.Description, &g.TargetValue, &g.Deadline.Time); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		g.Deadline = timex.DateOf(g.Deadline.Time)
		result = append(result, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Create(ctx context.Context, goal *models.Goal) error {
	query :=
		`INSERT INTO goals (id, user_id, description, target_value, deadline)
		 VALUES ($1, $2, $3, $4, $5)
		 `

	_, err := r.db.ExecContext(ctx, query, goal.ID, goal.UserID, goal.Description, goal.TargetValue, goal.Deadline.Time)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Update(ctx context.Context, goal *models.Goal) error {
	query :=
		`UPDATE goals SET description = $3, target_value = $4, deadline = $5
		 WHERE id = $1 AND user_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, goal.ID, goal.UserID, goal.Description, goal.TargetValue, goal.Deadline.Time)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return affectedOne(res.RowsAffected())
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	query :=
		`DELETE FROM goals
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
