// Package portal is the boundary a web layer talks to. Every profile
// operation is addressed by session token only; the account it touches is
// always the one the token resolves to.
package portal

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/playerprofile/internal/common"
	"github.com/dmitrijs2005/playerprofile/internal/logging"
	"github.com/dmitrijs2005/playerprofile/internal/server/blobstore"
	"github.com/dmitrijs2005/playerprofile/internal/server/gateway"
	"github.com/dmitrijs2005/playerprofile/internal/server/models"
	"github.com/dmitrijs2005/playerprofile/internal/server/services"
	"github.com/gabriel-vasile/mimetype"
)

// headshotTypes are the accepted image types.
var headshotTypes = []string{"image/png", "image/jpeg", "image/gif", "image/webp"}

type Portal struct {
	accounts         *services.AccountService
	sessions         *services.SessionService
	profiles         *services.ProfileService
	blobs            blobstore.Store
	gw               *gateway.Gateway
	maxHeadshotBytes int64
	log              logging.Logger
}

// New builds a Portal. Blob store calls run through gw.Do, so they share the
// store timeout and error translation of every other unit of work.
func New(accounts *services.AccountService, sessions *services.SessionService, profiles *services.ProfileService,
	blobs blobstore.Store, gw *gateway.Gateway, maxHeadshotBytes int64, log logging.Logger) *Portal {
	return &Portal{
		accounts:         accounts,
		sessions:         sessions,
		profiles:         profiles,
		blobs:            blobs,
		gw:               gw,
		maxHeadshotBytes: maxHeadshotBytes,
		log:              log,
	}
}

func (p *Portal) Register(ctx context.Context, in models.AccountInput) (*models.Account, error) {
	return p.accounts.Register(ctx, in)
}

func (p *Portal) Login(ctx context.Context, username, secret string) (*services.SessionToken, error) {
	return p.sessions.Login(ctx, username, secret)
}

func (p *Portal) Logout(ctx context.Context, token string) error {
	return p.sessions.Logout(ctx, token)
}

func (p *Portal) Resolve(ctx context.Context, token string) (string, bool, error) {
	return p.sessions.Resolve(ctx, token)
}

// Account returns the caller's own account.
func (p *Portal) Account(ctx context.Context, token string) (*models.Account, error) {
	accountID, err := p.sessions.Authorize(ctx, token)
	if err != nil {
		return nil, err
	}
	a, err := p.accounts.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, common.ErrUnauthenticated
	}
	return a, nil
}

// SaveGeneralProfile stores the caller's general profile. A non-empty
// headshot replaces the stored image; an empty one keeps it.
func (p *Portal) SaveGeneralProfile(ctx context.Context, token string, in models.GeneralProfileInput, headshot []byte) (*models.GeneralProfile, error) {
	accountID, err := p.sessions.Authorize(ctx, token)
	if err != nil {
		return nil, err
	}

	// Reject a bad form before anything is uploaded.
	if err := p.profiles.ValidateGeneralProfile(&in); err != nil {
		return nil, err
	}

	var ref *string
	if len(headshot) > 0 {
		r, err := p.storeHeadshot(ctx, accountID, headshot)
		if err != nil {
			return nil, err
		}
		ref = &r
	}

	profile, previous, err := p.profiles.UpsertGeneralProfile(ctx, accountID, in, ref)
	if err != nil {
		if ref != nil {
			p.dropBlob(ctx, *ref)
		}
		return nil, err
	}

	if previous != "" {
		p.dropBlob(ctx, previous)
	}
	return profile, nil
}

func (p *Portal) storeHeadshot(ctx context.Context, accountID string, data []byte) (string, error) {
	if p.maxHeadshotBytes > 0 && int64(len(data)) > p.maxHeadshotBytes {
		return "", common.NewValidationError(common.FieldError{
			Field:  "headshot",
			Reason: fmt.Sprintf("must be at most %d bytes", p.maxHeadshotBytes),
		})
	}

	mtype := mimetype.Detect(data)
	if !mimetype.EqualsAny(mtype.String(), headshotTypes...) {
		return "", common.NewValidationError(common.FieldError{
			Field:  "headshot",
			Reason: "must be a PNG, JPEG, GIF or WebP image",
		})
	}

	key := blobstore.HeadshotKey(accountID, mtype.Extension())
	var ref string
	err := p.gw.Do(ctx, func(ctx context.Context) error {
		var err error
		ref, err = p.blobs.Put(ctx, key, data, mtype.String())
		return err
	})
	if err != nil {
		return "", err
	}
	return ref, nil
}

// dropBlob deletes a blob nothing refers to any more. A failure leaves an
// orphan behind and is only logged.
func (p *Portal) dropBlob(ctx context.Context, ref string) {
	err := p.gw.Do(ctx, func(ctx context.Context) error {
		return p.blobs.Delete(ctx, ref)
	})
	if err != nil {
		p.log.Warn(ctx, "could not delete headshot", "ref", ref, "error", err)
	}
}

func (p *Portal) AddCareerEntry(ctx context.Context, token string, in models.CareerEntryInput) (*models.CareerEntry, error) {
	accountID, err := p.sessions.Authorize(ctx, token)
	if err != nil {
		return nil, err
	}
	return p.profiles.AppendCareerEntry(ctx, accountID, in)
}

// GeneralProfile returns the caller's profile, or nil when none was saved.
func (p *Portal) GeneralProfile(ctx context.Context, token string) (*models.GeneralProfile, error) {
	accountID, err := p.sessions.Authorize(ctx, token)
	if err != nil {
		return nil, err
	}
	return p.profiles.GetGeneralProfile(ctx, accountID)
}

func (p *Portal) CareerEntries(ctx context.Context, token string) ([]*models.CareerEntry, error) {
	accountID, err := p.sessions.Authorize(ctx, token)
	if err != nil {
		return nil, err
	}
	return p.profiles.ListCareerEntries(ctx, accountID)
}

// HeadshotURL returns where the caller's headshot can be fetched, or "" when
// there is none.
func (p *Portal) HeadshotURL(ctx context.Context, token string) (string, error) {
	profile, err := p.GeneralProfile(ctx, token)
	if err != nil {
		return "", err
	}
	if profile == nil || profile.HeadshotRef == "" {
		return "", nil
	}
	var url string
	err = p.gw.Do(ctx, func(ctx context.Context) error {
		var err error
		url, err = p.blobs.URL(ctx, profile.HeadshotRef)
		return err
	})
	if err != nil {
		return "", err
	}
	return url, nil
}
