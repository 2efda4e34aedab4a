package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/playerprofile/internal/clock"
	"github.com/dmitrijs2005/playerprofile/internal/common"
	"github.com/dmitrijs2005/playerprofile/internal/dbx"
	"github.com/dmitrijs2005/playerprofile/internal/logging"
	"github.com/dmitrijs2005/playerprofile/internal/server/gateway"
	"github.com/dmitrijs2005/playerprofile/internal/server/models"
	"github.com/dmitrijs2005/playerprofile/internal/server/repositories/repomanager"
)

// ProfileService reads and writes the general profile and career history of
// an already resolved account.
type ProfileService struct {
	gw          *gateway.Gateway
	repomanager repomanager.RepositoryManager
	clock       clock.Clock
	log         logging.Logger
}

func NewProfileService(gw *gateway.Gateway, rm repomanager.RepositoryManager, c clock.Clock, log logging.Logger) *ProfileService {
	return &ProfileService{gw: gw, repomanager: rm, clock: c, log: log}
}

// ownerUsername resolves accountID inside the caller's unit of work. A
// missing account means the caller holds a session for an account that no
// longer exists.
func (s *ProfileService) ownerUsername(ctx context.Context, db dbx.DBTX, accountID string) (string, error) {
	account, err := s.repomanager.Accounts(db).GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrReferentialViolation
		}
		return "", err
	}
	return account.Username, nil
}

// ValidateGeneralProfile normalizes in and checks it without touching the
// store. UpsertGeneralProfile runs the same checks.
func (s *ProfileService) ValidateGeneralProfile(in *models.GeneralProfileInput) error {
	return validateGeneralProfileInput(in)
}

// UpsertGeneralProfile stores the account's general profile, replacing any
// previous one. A nil or empty headshotRef keeps the stored reference.
// It returns the stored profile and the reference it replaced, if any.
func (s *ProfileService) UpsertGeneralProfile(ctx context.Context, accountID string, in models.GeneralProfileInput,
	headshotRef *string) (*models.GeneralProfile, string, error) {
	if accountID == "" {
		return nil, "", common.ErrUnauthenticated
	}
	if err := validateGeneralProfileInput(&in); err != nil {
		return nil, "", err
	}

	var (
		stored   *models.GeneralProfile
		previous string
	)

	err := s.gw.Write(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		username, err := s.ownerUsername(ctx, tx, accountID)
		if err != nil {
			return err
		}

		repo := s.repomanager.Profiles(tx)

		existing, err := repo.GetByUsername(ctx, username)
		switch {
		case err == nil:
			previous = existing.HeadshotRef
		case !errors.Is(err, common.ErrorNotFound):
			return err
		}

		p := &models.GeneralProfile{
			Username:        username,
			BirthCountry:    in.BirthCountry,
			PassportCountry: in.PassportCountry,
			HeightCm:        *in.HeightCm,
			WeightKg:        *in.WeightKg,
			PreferredFoot:   in.PreferredFoot,
			Position:        in.Position,
			UpdatedAt:       s.clock.Now().UTC(),
		}
		if headshotRef != nil {
			p.HeadshotRef = *headshotRef
		}

		if err := repo.Upsert(ctx, p); err != nil {
			return err
		}

		stored, err = repo.GetByUsername(ctx, username)
		return err
	})
	if err != nil {
		return nil, "", fmt.Errorf("error saving general profile: %w", err)
	}

	if previous == stored.HeadshotRef {
		previous = ""
	}

	s.log.Info(ctx, "general profile saved", "account_id", accountID, "username", stored.Username)
	return stored, previous, nil
}

// AppendCareerEntry adds one entry to the account's career history.
func (s *ProfileService) AppendCareerEntry(ctx context.Context, accountID string, in models.CareerEntryInput) (*models.CareerEntry, error) {
	if accountID == "" {
		return nil, common.ErrUnauthenticated
	}
	if err := validateCareerEntryInput(&in); err != nil {
		return nil, err
	}

	entry := &models.CareerEntry{
		Season:                in.Season,
		Team:                  in.Team,
		Competition:           in.Competition,
		Appearances:           *in.Appearances,
		Starts:                *in.Starts,
		SubstituteAppearances: *in.SubstituteAppearances,
		YellowCards:           *in.YellowCards,
		RedCards:              *in.RedCards,
		Assists:               *in.Assists,
		Goals:                 *in.Goals,
		Saves:                 *in.Saves,
		CreatedAt:             s.clock.Now().UTC(),
	}

	err := s.gw.Write(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		username, err := s.ownerUsername(ctx, tx, accountID)
		if err != nil {
			return err
		}
		entry.Username = username

		entry.ID, err = s.repomanager.Careers(tx).Create(ctx, entry)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("error appending career entry: %w", err)
	}

	s.log.Info(ctx, "career entry added", "account_id", accountID, "username", entry.Username, "season", entry.Season)
	return entry, nil
}

// ListCareerEntries returns the account's entries in the order they were
// added. An account without entries gets an empty slice.
func (s *ProfileService) ListCareerEntries(ctx context.Context, accountID string) ([]*models.CareerEntry, error) {
	if accountID == "" {
		return nil, common.ErrUnauthenticated
	}

	var entries []*models.CareerEntry
	err := s.gw.Read(ctx, func(ctx context.Context, db dbx.DBTX) error {
		var err error
		entries, err = s.repomanager.Careers(db).ListByAccountID(ctx, accountID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []*models.CareerEntry{}
	}
	return entries, nil
}

// GetGeneralProfile returns the account's profile or (nil, nil) when none
// has been saved.
func (s *ProfileService) GetGeneralProfile(ctx context.Context, accountID string) (*models.GeneralProfile, error) {
	if accountID == "" {
		return nil, common.ErrUnauthenticated
	}

	var profile *models.GeneralProfile
	err := s.gw.Read(ctx, func(ctx context.Context, db dbx.DBTX) error {
		var err error
		profile, err = s.repomanager.Profiles(db).GetByAccountID(ctx, accountID)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return profile, nil
}
