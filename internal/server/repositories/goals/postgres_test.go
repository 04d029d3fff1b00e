package goals

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/fittrack/internal/common"
	"github.com/dmitrijs2005/fittrack/internal/server/models"
	"github.com/dmitrijs2005/fittrack/internal/timex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

func TestList(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	deadline := time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`(?s)^SELECT\s+id,\s*user_id,\s*description,\s*target_value,\s*deadline\s+FROM\s+goals\s+WHERE\s+user_id\s*=\s*\$1\s+ORDER\s+BY\s+deadline,\s*id\s*$`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "description", "target_value", "deadline"}).
			AddRow("g1", "u1", "Run", "10k", deadline))

	got, err := repo.List(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "g1", got[0].ID)
	assert.Equal(t, "2030-05-01", got[0].Deadline.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_EmptyIsNotNil(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`SELECT`).WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "description", "target_value", "deadline"}))

	got, err := repo.List(context.Background(), "u1")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	g := &models.Goal{ID: "g1", UserID: "u1", Description: "Run", TargetValue: "10k", Deadline: timex.NewDate(2030, 5, 1)}

	mock.ExpectExec(`(?s)^INSERT\s+INTO\s+goals`).
		WithArgs("g1", "u1", "Run", "10k", g.Deadline.Time).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), g))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_ForeignOrMissing(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`(?s)^UPDATE\s+goals\s+SET.*WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &models.Goal{ID: "g1", UserID: "u2"})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestDelete(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`(?s)^DELETE\s+FROM\s+goals`).WithArgs("g1", "u1").WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), "u1", "g1"))

	mock.ExpectExec(`(?s)^DELETE\s+FROM\s+goals`).WithArgs("g1", "u1").WillReturnError(errors.New("db down"))
	err := repo.Delete(context.Background(), "u1", "g1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error")
}
