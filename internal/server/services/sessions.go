package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/playerprofile/internal/clock"
	"github.com/dmitrijs2005/playerprofile/internal/common"
	"github.com/dmitrijs2005/playerprofile/internal/cryptox"
	"github.com/dmitrijs2005/playerprofile/internal/logging"
	"github.com/dmitrijs2005/playerprofile/internal/server/auth"
	"github.com/dmitrijs2005/playerprofile/internal/server/models"
)

// sessionIDSize is the number of random bytes in a session id.
const sessionIDSize = 32

// SessionToken is what a successful login hands back to the caller.
type SessionToken struct {
	Token     string
	AccountID string
	ExpiresAt time.Time
}

var (
	dummyOnce sync.Once
	dummySalt []byte
	dummyHash []byte
)

// dummyVerifier is checked against when the username is unknown, so a failed
// login costs the same whether or not the account exists.
func dummyVerifier() ([]byte, []byte) {
	dummyOnce.Do(func() {
		dummySalt, dummyHash = cryptox.HashSecret(common.GenerateRandByteArray(cryptox.KeySize))
	})
	return dummySalt, dummyHash
}

// SessionService opens, resolves and revokes sessions.
type SessionService struct {
	accounts  *AccountService
	store     SessionStore
	jwtSecret []byte
	validity  time.Duration
	clock     clock.Clock
	log       logging.Logger
}

func NewSessionService(accounts *AccountService, store SessionStore, secretKey string, validity time.Duration,
	c clock.Clock, log logging.Logger) *SessionService {
	return &SessionService{
		accounts:  accounts,
		store:     store,
		jwtSecret: []byte(secretKey),
		validity:  validity,
		clock:     c,
		log:       log,
	}
}

// Login checks the credentials and opens a session. Unknown usernames and
// wrong secrets both yield common.ErrInvalidCredentials.
func (s *SessionService) Login(ctx context.Context, username, secret string) (*SessionToken, error) {
	username = strings.TrimSpace(username)
	candidate := []byte(secret)
	defer common.WipeByteArray(candidate)

	account, err := s.accounts.credentials(ctx, username)
	if err != nil {
		return nil, err
	}

	if account == nil {
		salt, hash := dummyVerifier()
		cryptox.VerifySecret(candidate, salt, hash)
		s.log.Info(ctx, "login failed", "username", username)
		return nil, common.ErrInvalidCredentials
	}

	if !cryptox.VerifySecret(candidate, account.SecretSalt, account.SecretHash) {
		s.log.Info(ctx, "login failed", "username", username)
		return nil, common.ErrInvalidCredentials
	}

	id, err := common.MakeRandHexString(sessionIDSize)
	if err != nil {
		return nil, fmt.Errorf("error generating session id: %w", err)
	}

	now := s.clock.Now().UTC()
	session := &models.Session{
		ID:        id,
		AccountID: account.ID,
		ExpiresAt: now.Add(s.validity),
		CreatedAt: now,
	}

	if err := s.store.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("error creating session: %w", err)
	}

	token, err := auth.GenerateToken(session.ID, account.ID, s.jwtSecret, now, session.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("error signing session token: %w", err)
	}

	s.log.Info(ctx, "session opened", "username", account.Username, "account_id", account.ID)
	return &SessionToken{Token: token, AccountID: account.ID, ExpiresAt: session.ExpiresAt}, nil
}

// Resolve maps a token to its account id. Unknown, forged, expired and
// revoked tokens resolve to ("", false, nil); only store failures return an
// error. Expired session records met along the way are deleted.
func (s *SessionService) Resolve(ctx context.Context, token string) (string, bool, error) {
	now := s.clock.Now()

	claims, err := auth.ParseToken(token, s.jwtSecret, now)
	if err != nil {
		if errors.Is(err, auth.ErrTokenExpired) {
			if expired, perr := auth.ParseTokenAllowExpired(token, s.jwtSecret); perr == nil {
				s.discard(ctx, expired.SessionID)
			}
		}
		return "", false, nil
	}

	session, err := s.store.Find(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", false, nil
		}
		return "", false, err
	}

	if session.Expired(now) {
		s.discard(ctx, session.ID)
		return "", false, nil
	}
	if session.AccountID != claims.Subject {
		return "", false, nil
	}

	return session.AccountID, true, nil
}

// discard deletes an expired session. Failure only delays the cleanup.
func (s *SessionService) discard(ctx context.Context, id string) {
	if err := s.store.Delete(ctx, id); err != nil {
		s.log.Warn(ctx, "could not delete expired session", "error", err)
	}
}

// Authorize is Resolve for guarded operations: absence becomes
// common.ErrUnauthenticated.
func (s *SessionService) Authorize(ctx context.Context, token string) (string, error) {
	accountID, ok, err := s.Resolve(ctx, token)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", common.ErrUnauthenticated
	}
	return accountID, nil
}

// Logout revokes the session behind token. It is idempotent, and tokens that
// are malformed or already invalid are not an error.
func (s *SessionService) Logout(ctx context.Context, token string) error {
	claims, err := auth.ParseTokenAllowExpired(token, s.jwtSecret)
	if err != nil {
		return nil
	}
	if err := s.store.Delete(ctx, claims.SessionID); err != nil {
		return err
	}
	s.log.Info(ctx, "session closed", "account_id", claims.Subject)
	return nil
}

// SweepExpired removes session records that are past their expiry.
func (s *SessionService) SweepExpired(ctx context.Context) (int64, error) {
	return s.store.DeleteExpired(ctx, s.clock.Now())
}
