package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openreel/openreel/internal/accounts/domain"
	"github.com/openreel/openreel/internal/accounts/store"
	"github.com/openreel/openreel/pkg/cryptox"
	"github.com/openreel/openreel/pkg/jwtx"
	"github.com/openreel/openreel/pkg/slogx"
)

// TokenConfig carries the externally supplied signing material. The two
// secrets must differ so an access token can never pass refresh
// verification or vice versa.
type TokenConfig struct {
	AccessSecret  string
	AccessExpiry  time.Duration
	RefreshSecret string
	RefreshExpiry time.Duration
	Issuer        string
}

// SessionService is the token lifecycle manager: it issues, verifies, and
// rotates the access/refresh pair, enforcing one live refresh token per
// account.
type SessionService struct {
	store store.Store

	accessSigner    jwtx.Signer
	accessVerifier  jwtx.Verifier
	refreshSigner   jwtx.Signer
	refreshVerifier jwtx.Verifier

	accessTTL  time.Duration
	refreshTTL time.Duration
	issuer     string
}

func NewSessionService(st store.Store, cfg TokenConfig) *SessionService {
	return &SessionService{
		store:           st,
		accessSigner:    jwtx.NewSignerHS256([]byte(cfg.AccessSecret)),
		accessVerifier:  jwtx.NewVerifierHS256([]byte(cfg.AccessSecret), cfg.Issuer),
		refreshSigner:   jwtx.NewSignerHS256([]byte(cfg.RefreshSecret)),
		refreshVerifier: jwtx.NewVerifierHS256([]byte(cfg.RefreshSecret), cfg.Issuer),
		accessTTL:       cfg.AccessExpiry,
		refreshTTL:      cfg.RefreshExpiry,
		issuer:          cfg.Issuer,
	}
}

// Login verifies the credential and issues a fresh token pair. The new
// refresh token unconditionally replaces whatever the account had stored,
// which makes login a rotation point: any previously issued refresh token
// stops working.
func (s *SessionService) Login(ctx context.Context, identifier, password string) (domain.TokenPair, domain.Account, error) {
	identifier = strings.ToLower(strings.TrimSpace(identifier))
	if identifier == "" {
		return domain.TokenPair{}, domain.Account{}, fmt.Errorf(
			"%w: username or email is required", ErrValidation)
	}
	if password == "" {
		return domain.TokenPair{}, domain.Account{}, fmt.Errorf(
			"%w: password is required", ErrValidation)
	}

	acct, err := s.store.Accounts().GetByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TokenPair{}, domain.Account{}, fmt.Errorf(
				"%w: account does not exist", ErrNotFound)
		}
		return domain.TokenPair{}, domain.Account{}, err
	}

	if err := cryptox.VerifyPassword(password, acct.PasswordHash); err != nil {
		slogx.FromContext(ctx).Info("login rejected", "account_id", acct.ID)
		return domain.TokenPair{}, domain.Account{}, fmt.Errorf(
			"%w: invalid credentials", ErrUnauthorized)
	}

	pair, err := s.issuePair(ctx, acct)
	if err != nil {
		return domain.TokenPair{}, domain.Account{}, err
	}
	return pair, acct, nil
}

// Refresh validates a presented refresh token and rotates it. A token is
// good for exactly one refresh: the stored fingerprint is swapped with a
// compare-and-set, so of two concurrent calls presenting the same token at
// most one observes a match and wins; the loser, like any replayed or
// superseded token, is rejected as unauthorized.
func (s *SessionService) Refresh(ctx context.Context, presented string) (domain.TokenPair, error) {
	log := slogx.FromContext(ctx)

	if presented == "" {
		return domain.TokenPair{}, fmt.Errorf("%w: no refresh token provided", ErrUnauthorized)
	}

	claims, err := s.refreshVerifier.Verify(presented)
	if err != nil {
		// Any verification failure downgrades to unauthorized; the cause
		// shapes the message only.
		return domain.TokenPair{}, fmt.Errorf("%w: invalid refresh token: %v", ErrUnauthorized, err)
	}

	acct, err := s.store.Accounts().GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TokenPair{}, fmt.Errorf("%w: invalid refresh token", ErrUnauthorized)
		}
		return domain.TokenPair{}, err
	}

	now := time.Now().UTC()
	accessToken, refreshToken, err := s.mintTokens(acct, now)
	if err != nil {
		return domain.TokenPair{}, err
	}

	presentedFP := cryptox.FingerprintToken(presented)
	newFP := cryptox.FingerprintToken(refreshToken)

	swapped, err := s.store.Accounts().SwapRefreshTokenHash(ctx, acct.ID, presentedFP, newFP)
	if err != nil {
		return domain.TokenPair{}, err
	}
	if !swapped {
		log.Warn("refresh token replay detected", "account_id", acct.ID)
		return domain.TokenPair{}, fmt.Errorf(
			"%w: refresh token is expired or used", ErrUnauthorized)
	}

	return domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    s.accessTTL,
	}, nil
}

// Logout clears the stored refresh token unconditionally. The caller is
// already authenticated by the boundary layer; this method does not verify
// the access token itself.
func (s *SessionService) Logout(ctx context.Context, accountID string) error {
	if err := s.store.Accounts().UpdateRefreshTokenHash(ctx, accountID, ""); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: account does not exist", ErrNotFound)
		}
		return err
	}
	slogx.FromContext(ctx).Info("session revoked", "account_id", accountID)
	return nil
}

// ChangePassword verifies the old password and stores a hash of the new
// one. A failed old-password check leaves the stored hash untouched.
func (s *SessionService) ChangePassword(ctx context.Context, accountID, oldPassword, newPassword string) error {
	if strings.TrimSpace(newPassword) == "" {
		return fmt.Errorf("%w: new password is required", ErrValidation)
	}

	acct, err := s.store.Accounts().GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: account does not exist", ErrNotFound)
		}
		return err
	}

	if err := cryptox.VerifyPassword(oldPassword, acct.PasswordHash); err != nil {
		return fmt.Errorf("%w: invalid old password", ErrUnauthorized)
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.store.Accounts().UpdatePasswordHash(ctx, accountID, hash)
}

// VerifyAccessToken checks signature and expiry only and returns the
// account id the token was issued for. The boundary layer uses this to
// authenticate requests.
func (s *SessionService) VerifyAccessToken(token string) (string, error) {
	claims, err := s.accessVerifier.Verify(token)
	if err != nil {
		return "", fmt.Errorf("%w: invalid access token: %v", ErrUnauthorized, err)
	}
	return claims.Subject, nil
}

// AccessVerifier exposes the access-token verifier for the HTTP authn
// middleware.
func (s *SessionService) AccessVerifier() jwtx.Verifier {
	return s.accessVerifier
}

// issuePair mints both tokens and persists the refresh fingerprint,
// overwriting any previous one.
func (s *SessionService) issuePair(ctx context.Context, acct domain.Account) (domain.TokenPair, error) {
	now := time.Now().UTC()
	accessToken, refreshToken, err := s.mintTokens(acct, now)
	if err != nil {
		return domain.TokenPair{}, err
	}

	fp := cryptox.FingerprintToken(refreshToken)
	if err := s.store.Accounts().UpdateRefreshTokenHash(ctx, acct.ID, fp); err != nil {
		return domain.TokenPair{}, err
	}

	return domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    s.accessTTL,
	}, nil
}

func (s *SessionService) mintTokens(acct domain.Account, now time.Time) (access, refresh string, err error) {
	access, err = s.accessSigner.Sign(jwtx.NewAccessClaims(
		acct.ID, acct.Username, acct.Email, acct.FullName,
		s.accessTTL, s.issuer, now,
	))
	if err != nil {
		return "", "", fmt.Errorf("sign access token: %w", err)
	}

	refresh, err = s.refreshSigner.Sign(jwtx.NewRefreshClaims(
		acct.ID, s.refreshTTL, s.issuer, now,
	))
	if err != nil {
		return "", "", fmt.Errorf("sign refresh token: %w", err)
	}
	return access, refresh, nil
}
