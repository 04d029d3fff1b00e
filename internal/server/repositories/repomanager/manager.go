package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/fittrack/internal/dbx"
	"github.com/dmitrijs2005/fittrack/internal/server/repositories/goals"
	"github.com/dmitrijs2005/fittrack/internal/server/repositories/users"
	"github.com/dmitrijs2005/fittrack/internal/server/repositories/workouts"
)

// RepositoryManager vends repositories bound to a connection or transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Goals(db dbx.DBTX) goals.Repository
	Workouts(db dbx.DBTX) workouts.Repository
}
