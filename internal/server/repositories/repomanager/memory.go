package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/fittrack/internal/dbx"
	"github.com/dmitrijs2005/fittrack/internal/server/repositories/goals"
	"github.com/dmitrijs2005/fittrack/internal/server/repositories/users"
	"github.com/dmitrijs2005/fittrack/internal/server/repositories/workouts"
)

// InMemoryRepositoryManager ignores the connection argument and always
// returns the same process-local repositories.
type InMemoryRepositoryManager struct {
	users    *users.MemoryRepository
	goals    *goals.MemoryRepository
	workouts *workouts.MemoryRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{
		users:    users.NewMemoryRepository(),
		goals:    goals.NewMemoryRepository(),
		workouts: workouts.NewMemoryRepository(),
	}
}

func (m *InMemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *InMemoryRepositoryManager) Users(dbx.DBTX) users.Repository       { return m.users }
func (m *InMemoryRepositoryManager) Goals(dbx.DBTX) goals.Repository       { return m.goals }
func (m *InMemoryRepositoryManager) Workouts(dbx.DBTX) workouts.Repository { return m.workouts }
