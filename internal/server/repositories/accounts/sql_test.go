package accounts

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/playerprofile/internal/common"
	"github.com/dmitrijs2005/playerprofile/internal/dbx"
	"github.com/dmitrijs2005/playerprofile/internal/server/models"
	"github.com/dmitrijs2005/playerprofile/internal/server/repositories/repotest"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*SQLRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewSQLRepository(db, dbx.Postgres), mock, db
}

func sampleAccount() *models.Account {
	return &models.Account{
		ID:          "a-1",
		Username:    "alice",
		FirstName:   "Alice",
		LastName:    "Liddell",
		DateOfBirth: "1999-04-01",
		Club:        "FK Riga",
		City:        "Riga",
		Country:     "Latvia",
		Email:       "alice@example.com",
		SecretSalt:  []byte("salt"),
		SecretHash:  []byte("hash"),
		CreatedAt:   time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

const insertQ = `(?s)^INSERT\s+INTO\s+accounts\s*\(id,\s*username,.*created_at\)\s*VALUES\s*\(\$1,.*\$16\)$`

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	a := sampleAccount()
	mock.ExpectExec(insertQ).
		WithArgs(a.ID, a.Username, a.FirstName, a.LastName, a.DateOfBirth, a.Club, a.School,
			a.Address1, a.Address2, a.City, a.Country, a.Telephone, a.Email,
			a.SecretSalt, a.SecretHash, a.CreatedAt.UnixMilli()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), a))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_UniqueViolation(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(insertQ).WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), sampleAccount())
	require.ErrorIs(t, err, common.ErrDuplicateUsername)
}

func TestCreate_ValueTooLong(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(insertQ).WillReturnError(&pgconn.PgError{Code: "22001"})

	err := repo.Create(context.Background(), sampleAccount())
	require.ErrorIs(t, err, common.ErrInvalidInput)
	require.NotErrorIs(t, err, common.ErrDuplicateUsername)
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(insertQ).WillReturnError(errors.New("db down"))

	err := repo.Create(context.Background(), sampleAccount())
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetByUsername_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,\s*username,.*FROM\s+accounts\s+WHERE\s+username\s*=\s*\$1$`
	mock.ExpectQuery(q).WithArgs("ghost").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByUsername(context.Background(), "ghost")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGetByID_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,\s*username,.*FROM\s+accounts\s+WHERE\s+id\s*=\s*\$1$`
	mock.ExpectQuery(q).WithArgs("a-1").WillReturnError(errors.New("db err"))

	_, err := repo.GetByID(context.Background(), "a-1")
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestSQLite_CreateAndLookup(t *testing.T) {
	db := repotest.NewSQLite(t)
	repo := NewSQLRepository(db, dbx.SQLite)
	ctx := context.Background()

	a := sampleAccount()
	require.NoError(t, repo.Create(ctx, a))

	byName, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, a, byName)

	byID, err := repo.GetByID(ctx, "a-1")
	require.NoError(t, err)
	assert.Equal(t, a, byID)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSQLite_DuplicateUsername(t *testing.T) {
	db := repotest.NewSQLite(t)
	repo := NewSQLRepository(db, dbx.SQLite)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, sampleAccount()))

	dup := sampleAccount()
	dup.ID = "a-2"
	err := repo.Create(ctx, dup)
	require.ErrorIs(t, err, common.ErrDuplicateUsername)
}
