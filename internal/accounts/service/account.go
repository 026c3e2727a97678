package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openreel/openreel/internal/accounts/domain"
	"github.com/openreel/openreel/internal/accounts/store"
	"github.com/openreel/openreel/pkg/cryptox"
	"github.com/openreel/openreel/pkg/idx"
	"github.com/openreel/openreel/pkg/slogx"
)

// AccountService owns account creation and profile mutations. Token
// issuance lives in SessionService.
type AccountService struct {
	Store store.Store
}

// RegisterParams are the inputs to Register. AvatarURL and CoverImageURL
// point at assets already staged on the media host by the boundary layer.
type RegisterParams struct {
	Username      string
	Email         string
	FullName      string
	Password      string
	AvatarURL     string
	CoverImageURL string
}

// Register creates a new account. The plaintext password is hashed here
// and never stored; username and email are normalized before the
// uniqueness check so collisions are case-insensitive.
func (s *AccountService) Register(ctx context.Context, p RegisterParams) (domain.Account, error) {
	username := normalize(p.Username)
	email := normalize(p.Email)
	fullName := strings.TrimSpace(p.FullName)

	if username == "" || email == "" || fullName == "" || strings.TrimSpace(p.Password) == "" {
		return domain.Account{}, fmt.Errorf("%w: all fields are required", ErrValidation)
	}
	if strings.TrimSpace(p.AvatarURL) == "" {
		return domain.Account{}, fmt.Errorf("%w: avatar image is required", ErrValidation)
	}

	hash, err := cryptox.HashPassword(p.Password)
	if err != nil {
		return domain.Account{}, fmt.Errorf("hash password: %w", err)
	}

	acct := domain.Account{
		ID:            idx.New().String(),
		Username:      username,
		Email:         email,
		FullName:      fullName,
		AvatarURL:     strings.TrimSpace(p.AvatarURL),
		CoverImageURL: strings.TrimSpace(p.CoverImageURL),
		PasswordHash:  hash,
	}

	if err := s.Store.Accounts().Create(ctx, acct); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Account{}, fmt.Errorf(
				"%w: an account with that username or email already exists", ErrConflict)
		}
		return domain.Account{}, err
	}

	slogx.FromContext(ctx).Info("account registered", "account_id", acct.ID, "username", username)

	// Re-read so timestamps come from the store.
	return s.GetByID(ctx, acct.ID)
}

// GetByID fetches an account by id.
func (s *AccountService) GetByID(ctx context.Context, id string) (domain.Account, error) {
	acct, err := s.Store.Accounts().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Account{}, fmt.Errorf("%w: account does not exist", ErrNotFound)
		}
		return domain.Account{}, err
	}
	return acct, nil
}

// UpdateProfile sets the display name and email. Both are required; the
// password hash is untouched by this save path.
func (s *AccountService) UpdateProfile(ctx context.Context, id, fullName, email string) (domain.Account, error) {
	fullName = strings.TrimSpace(fullName)
	email = normalize(email)
	if fullName == "" || email == "" {
		return domain.Account{}, fmt.Errorf("%w: full name and email are required", ErrValidation)
	}

	if err := s.Store.Accounts().UpdateProfile(ctx, id, fullName, email); err != nil {
		switch {
		case errors.Is(err, store.ErrAlreadyExists):
			return domain.Account{}, fmt.Errorf("%w: email already in use", ErrConflict)
		case errors.Is(err, store.ErrNotFound):
			return domain.Account{}, fmt.Errorf("%w: account does not exist", ErrNotFound)
		}
		return domain.Account{}, err
	}
	return s.GetByID(ctx, id)
}

// UpdateAvatar replaces the avatar media reference.
func (s *AccountService) UpdateAvatar(ctx context.Context, id, url string) (domain.Account, error) {
	return s.updateMediaRef(ctx, id, url, s.Store.Accounts().UpdateAvatarURL)
}

// UpdateCoverImage replaces the cover image media reference.
func (s *AccountService) UpdateCoverImage(ctx context.Context, id, url string) (domain.Account, error) {
	return s.updateMediaRef(ctx, id, url, s.Store.Accounts().UpdateCoverImageURL)
}

func (s *AccountService) updateMediaRef(
	ctx context.Context,
	id, url string,
	update func(context.Context, string, string) error,
) (domain.Account, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return domain.Account{}, fmt.Errorf("%w: media url is required", ErrValidation)
	}

	if err := update(ctx, id, url); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Account{}, fmt.Errorf("%w: account does not exist", ErrNotFound)
		}
		return domain.Account{}, err
	}
	return s.GetByID(ctx, id)
}

// normalize lowercases and trims identifier fields so uniqueness and
// lookups are case-insensitive.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
