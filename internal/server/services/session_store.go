package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/playerprofile/internal/dbx"
	"github.com/dmitrijs2005/playerprofile/internal/server/gateway"
	"github.com/dmitrijs2005/playerprofile/internal/server/models"
	"github.com/dmitrijs2005/playerprofile/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/playerprofile/internal/server/repositories/sessions"
)

// SessionStore is where SessionService keeps session records. Errors are
// already translated by the gateway.
type SessionStore interface {
	Create(ctx context.Context, s *models.Session) error
	Find(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// sqlSessionStore keeps sessions in the relational store, one unit of work
// per call.
type sqlSessionStore struct {
	gw          *gateway.Gateway
	repomanager repomanager.RepositoryManager
}

func NewSQLSessionStore(gw *gateway.Gateway, rm repomanager.RepositoryManager) SessionStore {
	return &sqlSessionStore{gw: gw, repomanager: rm}
}

func (s *sqlSessionStore) Create(ctx context.Context, sess *models.Session) error {
	return s.gw.Write(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repomanager.Sessions(tx).Create(ctx, sess)
	})
}

func (s *sqlSessionStore) Find(ctx context.Context, id string) (*models.Session, error) {
	var sess *models.Session
	err := s.gw.Read(ctx, func(ctx context.Context, db dbx.DBTX) error {
		var err error
		sess, err = s.repomanager.Sessions(db).Find(ctx, id)
		return err
	})
	return sess, err
}

func (s *sqlSessionStore) Delete(ctx context.Context, id string) error {
	return s.gw.Write(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repomanager.Sessions(tx).Delete(ctx, id)
	})
}

func (s *sqlSessionStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	var n int64
	err := s.gw.Write(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		n, err = s.repomanager.Sessions(tx).DeleteExpired(ctx, now)
		return err
	})
	return n, err
}

// repoSessionStore adapts a non-SQL sessions.Repository (Redis) to the
// gateway's timeout and error translation.
type repoSessionStore struct {
	gw   *gateway.Gateway
	repo sessions.Repository
}

func NewRedisSessionStore(gw *gateway.Gateway, repo sessions.Repository) SessionStore {
	return &repoSessionStore{gw: gw, repo: repo}
}

func (s *repoSessionStore) Create(ctx context.Context, sess *models.Session) error {
	return s.gw.Do(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, sess)
	})
}

func (s *repoSessionStore) Find(ctx context.Context, id string) (*models.Session, error) {
	var sess *models.Session
	err := s.gw.Do(ctx, func(ctx context.Context) error {
		var err error
		sess, err = s.repo.Find(ctx, id)
		return err
	})
	return sess, err
}

func (s *repoSessionStore) Delete(ctx context.Context, id string) error {
	return s.gw.Do(ctx, func(ctx context.Context) error {
		return s.repo.Delete(ctx, id)
	})
}

func (s *repoSessionStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	var n int64
	err := s.gw.Do(ctx, func(ctx context.Context) error {
		var err error
		n, err = s.repo.DeleteExpired(ctx, now)
		return err
	})
	return n, err
}
