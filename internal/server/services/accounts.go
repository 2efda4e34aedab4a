// Package services holds the core operations of the player profile service:
// registration, session authentication and profile persistence. Every
// operation runs its store access through a gateway.Gateway so that failures
// surface as the sentinels in internal/common.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/playerprofile/internal/clock"
	"github.com/dmitrijs2005/playerprofile/internal/common"
	"github.com/dmitrijs2005/playerprofile/internal/cryptox"
	"github.com/dmitrijs2005/playerprofile/internal/dbx"
	"github.com/dmitrijs2005/playerprofile/internal/logging"
	"github.com/dmitrijs2005/playerprofile/internal/server/gateway"
	"github.com/dmitrijs2005/playerprofile/internal/server/models"
	"github.com/dmitrijs2005/playerprofile/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// AccountService registers accounts and looks them up.
type AccountService struct {
	gw          *gateway.Gateway
	repomanager repomanager.RepositoryManager
	clock       clock.Clock
	log         logging.Logger
}

func NewAccountService(gw *gateway.Gateway, rm repomanager.RepositoryManager, c clock.Clock, log logging.Logger) *AccountService {
	return &AccountService{gw: gw, repomanager: rm, clock: c, log: log}
}

// Register validates in, hashes the secret and stores a new account.
// A taken username yields common.ErrDuplicateUsername; bad input yields a
// *common.ValidationError.
func (s *AccountService) Register(ctx context.Context, in models.AccountInput) (*models.Account, error) {
	now := s.clock.Now()
	if err := validateAccountInput(&in, now); err != nil {
		return nil, err
	}

	secret := []byte(in.Secret)
	salt, hash := cryptox.HashSecret(secret)
	common.WipeByteArray(secret)

	account := &models.Account{
		ID:          uuid.New().String(),
		Username:    in.Username,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		DateOfBirth: in.DateOfBirth,
		Club:        in.Club,
		School:      in.School,
		Address1:    in.Address1,
		Address2:    in.Address2,
		City:        in.City,
		Country:     in.Country,
		Telephone:   in.Telephone,
		Email:       in.Email,
		SecretSalt:  salt,
		SecretHash:  hash,
		CreatedAt:   now.UTC(),
	}

	err := s.gw.Write(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repomanager.Accounts(tx).Create(ctx, account)
	})
	if err != nil {
		if errors.Is(err, common.ErrDuplicateUsername) {
			s.log.Info(ctx, "registration rejected", "username", in.Username, "reason", "duplicate")
			return nil, err
		}
		return nil, fmt.Errorf("error creating account: %w", err)
	}

	s.log.Info(ctx, "account registered", "username", account.Username, "account_id", account.ID)
	return account.Sanitized(), nil
}

// FindByUsername returns the account or (nil, nil) when there is none.
func (s *AccountService) FindByUsername(ctx context.Context, username string) (*models.Account, error) {
	a, err := s.lookup(ctx, func(ctx context.Context, db dbx.DBTX) (*models.Account, error) {
		return s.repomanager.Accounts(db).GetByUsername(ctx, username)
	})
	return a.Sanitized(), err
}

// FindByID returns the account or (nil, nil) when there is none.
func (s *AccountService) FindByID(ctx context.Context, id string) (*models.Account, error) {
	a, err := s.lookup(ctx, func(ctx context.Context, db dbx.DBTX) (*models.Account, error) {
		return s.repomanager.Accounts(db).GetByID(ctx, id)
	})
	return a.Sanitized(), err
}

// credentials returns the full account including secret material.
func (s *AccountService) credentials(ctx context.Context, username string) (*models.Account, error) {
	return s.lookup(ctx, func(ctx context.Context, db dbx.DBTX) (*models.Account, error) {
		return s.repomanager.Accounts(db).GetByUsername(ctx, username)
	})
}

func (s *AccountService) lookup(ctx context.Context, get func(context.Context, dbx.DBTX) (*models.Account, error)) (*models.Account, error) {
	var account *models.Account
	err := s.gw.Read(ctx, func(ctx context.Context, db dbx.DBTX) error {
		var err error
		account, err = get(ctx, db)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return account, nil
}
