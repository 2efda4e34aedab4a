package sessions

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

var base = time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+sessions\s*\(id,\s*account_id,\s*expires_at,\s*created_at\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\)$`
	mock.ExpectExec(q).
		WithArgs("sid", "a-1", base.Add(time.Hour).UnixMilli(), base.UnixMilli()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), &models.Session{ID: "sid", AccountID: "a-1", ExpiresAt: base.Add(time.Hour), CreatedAt: base})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^INSERT\s+INTO\s+sessions\b`).WillReturnError(errors.New("db down"))

	err := repo.Create(context.Background(), &models.Session{ID: "sid"})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestFind_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,\s*account_id,\s*expires_at,\s*created_at\s+FROM\s+sessions\s+WHERE\s+id\s*=\s*\$1$`
	rows := sqlmock.NewRows([]string{"id", "account_id", "expires_at", "created_at"}).
		AddRow("sid", "a-1", base.Add(time.Hour).UnixMilli(), base.UnixMilli())
	mock.ExpectQuery(q).WithArgs("sid").WillReturnRows(rows)

	got, err := repo.Find(context.Background(), "sid")
	require.NoError(t, err)
	assert.Equal(t, "a-1", got.AccountID)
	assert.Equal(t, base.Add(time.Hour), got.ExpiresAt)
	assert.Equal(t, base, got.CreatedAt)
}

func TestFind_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT\s+id`).WithArgs("missing").WillReturnError(sql.ErrNoRows)

	_, err := repo.Find(context.Background(), "missing")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestDelete_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^DELETE\s+FROM\s+sessions\s+WHERE\s+id\s*=\s*\$1$`
	mock.ExpectExec(q).WithArgs("sid").WillReturnError(errors.New("db err"))

	err := repo.Delete(context.Background(), "sid")
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestDeleteExpired_ReportsRows(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^DELETE\s+FROM\s+sessions\s+WHERE\s+expires_at\s*<=\s*\$1$`
	mock.ExpectExec(q).WithArgs(base.UnixMilli()).WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.DeleteExpired(context.Background(), base)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestSQLite_Lifecycle(t *testing.T) {
	db := repotest.NewSQLite(t)
	repotest.InsertAccount(t, db, "a-1", "alice")
	repo := NewSQLRepository(db, dbx.SQLite)
	ctx := context.Background()

	live := &models.Session{ID: "live", AccountID: "a-1", ExpiresAt: base.Add(time.Hour), CreatedAt: base}
	dead := &models.Session{ID: "dead", AccountID: "a-1", ExpiresAt: base.Add(-time.Minute), CreatedAt: base.Add(-time.Hour)}
	require.NoError(t, repo.Create(ctx, live))
	require.NoError(t, repo.Create(ctx, dead))

	got, err := repo.Find(ctx, "live")
	require.NoError(t, err)
	assert.Equal(t, live, got)

	n, err := repo.DeleteExpired(ctx, base)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = repo.Find(ctx, "dead")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	require.NoError(t, repo.Delete(ctx, "live"))
	require.NoError(t, repo.Delete(ctx, "live"), "deleting twice is fine")

	_, err = repo.Find(ctx, "live")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSQLite_CreateForUnknownAccount(t *testing.T) {
	db := repotest.NewSQLite(t)
	repo := NewSQLRepository(db, dbx.SQLite)

	err := repo.Create(context.Background(), &models.Session{ID: "x", AccountID: "nobody", ExpiresAt: base, CreatedAt: base})
	require.ErrorIs(t, err, common.ErrReferentialViolation)
}
