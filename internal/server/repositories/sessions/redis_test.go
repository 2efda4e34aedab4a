package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/dmitrijs2005/playerprofile/internal/clock"
	"github.com/dmitrijs2005/playerprofile/internal/common"
	"github.com/dmitrijs2005/playerprofile/internal/server/models"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisRepositorySuite struct {
	suite.Suite
	mini  *miniredis.Miniredis
	clock *clock.MockClock
	repo  *RedisRepository
	ctx   context.Context
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, new(RedisRepositorySuite))
}

func (s *RedisRepositorySuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())
	s.clock = clock.NewMock(base)

	client := redis.NewClient(&redis.Options{Addr: s.mini.Addr()})
	s.repo = NewRedisRepository(client, s.clock.Now)
	s.ctx = context.Background()
}

func (s *RedisRepositorySuite) TearDownTest() {
	if s.repo != nil {
		_ = s.repo.Close()
	}
}

func (s *RedisRepositorySuite) TestCreateAndFind() {
	sess := &models.Session{ID: "sid", AccountID: "a-1", ExpiresAt: base.Add(time.Hour), CreatedAt: base}
	s.Require().NoError(s.repo.Create(s.ctx, sess))

	got, err := s.repo.Find(s.ctx, "sid")
	s.Require().NoError(err)
	s.Equal(sess, got)

	s.True(s.mini.Exists("playerprofile:session:sid"))
	s.Equal(time.Hour, s.mini.TTL("playerprofile:session:sid"))
}

func (s *RedisRepositorySuite) TestKeyExpiresWithSession() {
	sess := &models.Session{ID: "sid", AccountID: "a-1", ExpiresAt: base.Add(time.Minute), CreatedAt: base}
	s.Require().NoError(s.repo.Create(s.ctx, sess))

	s.mini.FastForward(2 * time.Minute)

	_, err := s.repo.Find(s.ctx, "sid")
	s.ErrorIs(err, common.ErrorNotFound)
}

func (s *RedisRepositorySuite) TestCreateAlreadyExpiredFails() {
	for _, expiresAt := range []time.Time{base.Add(-time.Second), base} {
		sess := &models.Session{ID: "old", AccountID: "a-1", ExpiresAt: expiresAt, CreatedAt: base}
		s.ErrorIs(s.repo.Create(s.ctx, sess), ErrSessionExpired)
	}
	s.False(s.mini.Exists("playerprofile:session:old"))
}

func (s *RedisRepositorySuite) TestDeleteIsIdempotent() {
	sess := &models.Session{ID: "sid", AccountID: "a-1", ExpiresAt: base.Add(time.Hour), CreatedAt: base}
	s.Require().NoError(s.repo.Create(s.ctx, sess))

	s.Require().NoError(s.repo.Delete(s.ctx, "sid"))
	s.Require().NoError(s.repo.Delete(s.ctx, "sid"))

	_, err := s.repo.Find(s.ctx, "sid")
	s.ErrorIs(err, common.ErrorNotFound)
}

func (s *RedisRepositorySuite) TestDeleteExpiredIsNoop() {
	n, err := s.repo.DeleteExpired(s.ctx, base)
	s.NoError(err)
	s.Zero(n)
}

func (s *RedisRepositorySuite) TestUnavailable() {
	s.mini.Close()

	_, err := s.repo.Find(s.ctx, "sid")
	s.Error(err)
	s.NotErrorIs(err, common.ErrorNotFound)
}

func TestNewRedisClient_BadURL(t *testing.T) {
	_, err := NewRedisClient(context.Background(), RedisConfig{URL: "not-a-url"})
	if err == nil {
		t.Fatal("expected error for malformed URL")
	}
}

func TestNewRedisClient_Ping(t *testing.T) {
	mini := miniredis.RunT(t)
	cfg := DefaultRedisConfig()
	cfg.URL = "redis://" + mini.Addr() + "/0"

	client, err := NewRedisClient(context.Background(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_ = client.Close()
}
