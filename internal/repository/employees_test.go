package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"cardvault/internal/common"
)

func newEmployeeRepoWithMock(t *testing.T) (EmployeeRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewEmployeeRepository(db, nil), mock
}

func TestEmployeeCreate(t *testing.T) {
	repo, mock := newEmployeeRepoWithMock(t)

	mock.ExpectExec("INSERT INTO employees").
		WithArgs(sqlmock.AnyArg(), "Tanaka", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	e, err := repo.Create(context.Background(), "Tanaka")
	require.NoError(t, err)
	require.Equal(t, "Tanaka", e.Name)
	require.NotEqual(t, uuid.Nil, e.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeList(t *testing.T) {
	repo, mock := newEmployeeRepoWithMock(t)

	id := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "name", "created_at"}).
		AddRow(id.String(), "Suzuki", time.Now().UTC())
	mock.ExpectQuery("SELECT id, name, created_at FROM employees").WillReturnRows(rows)

	out, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, id, out[0].ID)
	require.Equal(t, "Suzuki", out[0].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeDeleteNullifiesCardReferences(t *testing.T) {
	repo, mock := newEmployeeRepoWithMock(t)
	id := uuid.New()

	// Card references are nullified and the row deleted inside one transaction.
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE business_cards SET employee_id = NULL").
		WithArgs(id.String()).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("DELETE FROM employees").
		WithArgs(id.String()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), id))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeDeleteMissingReturnsNotFound(t *testing.T) {
	repo, mock := newEmployeeRepoWithMock(t)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE business_cards SET employee_id = NULL").
		WithArgs(id.String()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM employees").
		WithArgs(id.String()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), id)
	require.ErrorIs(t, err, common.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
