package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"cardvault/internal/entity"
)

func newCardRepoWithMock(t *testing.T) (CardRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewCardRepository(db, nil), mock
}

var cardRowColumns = []string{
	"id", "image_path", "organization", "department", "name", "address",
	"telephone", "phone", "fax", "email", "website", "employee_id", "created_at",
	"employee_name",
}

func TestCardInsertPersistsAllFields(t *testing.T) {
	repo, mock := newCardRepoWithMock(t)
	eid := uuid.New()

	mock.ExpectExec("INSERT INTO business_cards").
		WithArgs(
			sqlmock.AnyArg(), "card.jpg", "Acme Corp", "", "John Doe", "",
			"03-1234-5678", "", "", "", "", eid.String(), sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	card := &entity.BusinessCard{
		ImagePath:    "card.jpg",
		Organization: "Acme Corp",
		Name:         "John Doe",
		Telephone:    "03-1234-5678",
		EmployeeID:   &eid,
	}
	id, err := repo.Insert(context.Background(), card)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, id)
	require.Equal(t, id, card.ID)
	require.False(t, card.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCardInsertNilEmployeeStoresNull(t *testing.T) {
	repo, mock := newCardRepoWithMock(t)

	mock.ExpectExec("INSERT INTO business_cards").
		WithArgs(
			sqlmock.AnyArg(), "card.jpg", "", "", "", "",
			"", "", "", "", "", nil, sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	_, err := repo.Insert(context.Background(), &entity.BusinessCard{ImagePath: "card.jpg"})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCardListWithUploaderJoinsEmployeeName(t *testing.T) {
	repo, mock := newCardRepoWithMock(t)
	cardID, eid := uuid.New(), uuid.New()

	rows := sqlmock.NewRows(cardRowColumns).
		AddRow(cardID.String(), "card.jpg", "Acme", "", "John", "", "03-1", "", "", "", "",
			eid.String(), time.Now().UTC(), "Tanaka").
		AddRow(uuid.NewString(), "other.png", "", "", "", "", "", "", "", "", "",
			nil, time.Now().UTC(), nil)
	mock.ExpectQuery("SELECT (.+) FROM business_cards\\s+LEFT JOIN employees").WillReturnRows(rows)

	out, err := repo.ListWithUploader(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Equal(t, cardID, out[0].ID)
	require.Equal(t, "Tanaka", out[0].EmployeeName)
	require.Equal(t, &eid, out[0].EmployeeID)
	// A card whose employee was deleted keeps a nil reference and no name.
	require.Nil(t, out[1].EmployeeID)
	require.Equal(t, "", out[1].EmployeeName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCardGetByIDsEmptyInputShortCircuits(t *testing.T) {
	repo, mock := newCardRepoWithMock(t)

	out, err := repo.GetByIDs(context.Background(), nil)
	require.NoError(t, err)
	require.Nil(t, out)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCardGetByIDs(t *testing.T) {
	repo, mock := newCardRepoWithMock(t)
	id1, id2 := uuid.New(), uuid.New()

	rows := sqlmock.NewRows(cardRowColumns).
		AddRow(id1.String(), "a.jpg", "", "", "", "", "", "", "", "", "", nil, time.Now().UTC(), nil)
	mock.ExpectQuery("WHERE business_cards.id IN").
		WithArgs(id1.String(), id2.String()).
		WillReturnRows(rows)

	out, err := repo.GetByIDs(context.Background(), []uuid.UUID{id1, id2})
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, id1, out[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}
