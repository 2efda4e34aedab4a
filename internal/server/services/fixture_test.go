package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/playerprofile/internal/clock"
	"github.com/dmitrijs2005/playerprofile/internal/dbx"
	"github.com/dmitrijs2005/playerprofile/internal/logging"
	"github.com/dmitrijs2005/playerprofile/internal/server/gateway"
	"github.com/dmitrijs2005/playerprofile/internal/server/models"
	"github.com/dmitrijs2005/playerprofile/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/playerprofile/internal/server/repositories/repotest"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

const (
	testSecretKey = "test-secret"
	testValidity  = 24 * time.Hour
)

type fixture struct {
	db       *sql.DB
	gw       *gateway.Gateway
	rm       repomanager.RepositoryManager
	clock    *clock.MockClock
	accounts *AccountService
	sessions *SessionService
	profiles *ProfileService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := repotest.NewSQLite(t)
	gw := gateway.New(db, 5*time.Second)
	rm := repomanager.NewSQLRepositoryManager(dbx.SQLite)
	c := clock.NewMock(base)
	log := logging.Nop()

	accounts := NewAccountService(gw, rm, c, log)
	return &fixture{
		db:       db,
		gw:       gw,
		rm:       rm,
		clock:    c,
		accounts: accounts,
		sessions: NewSessionService(accounts, NewSQLSessionStore(gw, rm), testSecretKey, testValidity, c, log),
		profiles: NewProfileService(gw, rm, c, log),
	}
}

func validAccountInput(username string) models.AccountInput {
	return models.AccountInput{
		Username:    username,
		Secret:      "correct horse battery staple",
		FirstName:   "Alex",
		LastName:    "Morgan",
		DateOfBirth: "1999-07-02",
		Club:        "Riga FC",
		City:        "Riga",
		Country:     "Latvia",
		Email:       username + "@example.com",
	}
}

func (f *fixture) register(t *testing.T, username string) *models.Account {
	t.Helper()
	a, err := f.accounts.Register(context.Background(), validAccountInput(username))
	require.NoError(t, err)
	return a
}

func (f *fixture) countSessions(t *testing.T) int {
	t.Helper()
	var n int
	require.NoError(t, f.db.QueryRow(`SELECT COUNT(*) FROM sessions`).Scan(&n))
	return n
}

func intp(v int) *int { return &v }

func strp(v string) *string { return &v }
