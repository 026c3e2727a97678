package service

import (
	"context"
	"testing"
	"time"

	"github.com/openreel/openreel/internal/accounts/domain"
	"github.com/openreel/openreel/internal/accounts/store/drivers/sqlite"
	"github.com/openreel/openreel/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func newTestServices(t *testing.T) (*AccountService, *SessionService) {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())

	accounts := &AccountService{Store: st}
	sessions := NewSessionService(st, TokenConfig{
		AccessSecret:  "access-secret-for-tests",
		AccessExpiry:  time.Minute,
		RefreshSecret: "refresh-secret-for-tests",
		RefreshExpiry: time.Hour,
		Issuer:        "test-issuer",
	})
	return accounts, sessions
}

func registerAlice(t *testing.T, accounts *AccountService) domain.Account {
	t.Helper()

	acct, err := accounts.Register(context.Background(), RegisterParams{
		Username:  "alice",
		Email:     "alice@example.com",
		FullName:  "Alice Example",
		Password:  "correct-horse",
		AvatarURL: "https://media.example/avatar.png",
	})
	require.NoError(t, err)
	return acct
}

func TestLoginIssuesPairAndStoresFingerprint(t *testing.T) {
	ctx := context.Background()
	accounts, sessions := newTestServices(t)
	acct := registerAlice(t, accounts)

	pair, got, err := sessions.Login(ctx, "alice", "correct-horse")
	require.NoError(t, err)
	require.Equal(t, acct.ID, got.ID)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.Equal(t, time.Minute, pair.ExpiresIn)

	stored, err := accounts.GetByID(ctx, acct.ID)
	require.NoError(t, err)
	require.Equal(t, cryptox.FingerprintToken(pair.RefreshToken), stored.RefreshTokenHash)

	t.Run("identifier is case-insensitive", func(t *testing.T) {
		_, got, err := sessions.Login(ctx, "  ALICE  ", "correct-horse")
		require.NoError(t, err)
		require.Equal(t, acct.ID, got.ID)
	})

	t.Run("email works as identifier", func(t *testing.T) {
		_, got, err := sessions.Login(ctx, "alice@example.com", "correct-horse")
		require.NoError(t, err)
		require.Equal(t, acct.ID, got.ID)
	})
}

func TestLoginRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	accounts, sessions := newTestServices(t)
	registerAlice(t, accounts)

	t.Run("unknown account", func(t *testing.T) {
		_, _, err := sessions.Login(ctx, "bob", "whatever")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := sessions.Login(ctx, "alice", "battery-staple")
		require.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("missing identifier", func(t *testing.T) {
		_, _, err := sessions.Login(ctx, "", "whatever")
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("missing password", func(t *testing.T) {
		_, _, err := sessions.Login(ctx, "alice", "")
		require.ErrorIs(t, err, ErrValidation)
	})
}

func TestLoginSupersedesPreviousRefreshToken(t *testing.T) {
	ctx := context.Background()
	accounts, sessions := newTestServices(t)
	registerAlice(t, accounts)

	first, _, err := sessions.Login(ctx, "alice", "correct-horse")
	require.NoError(t, err)

	_, _, err = sessions.Login(ctx, "alice", "correct-horse")
	require.NoError(t, err)

	// The first session's refresh token no longer matches the stored
	// fingerprint.
	_, err = sessions.Refresh(ctx, first.RefreshToken)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestRefreshRotatesToken(t *testing.T) {
	ctx := context.Background()
	accounts, sessions := newTestServices(t)
	acct := registerAlice(t, accounts)

	pair, _, err := sessions.Login(ctx, "alice", "correct-horse")
	require.NoError(t, err)

	rotated, err := sessions.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, rotated.AccessToken)
	require.NotEqual(t, pair.RefreshToken, rotated.RefreshToken,
		"rotation must mint a new refresh token")

	stored, err := accounts.GetByID(ctx, acct.ID)
	require.NoError(t, err)
	require.Equal(t, cryptox.FingerprintToken(rotated.RefreshToken), stored.RefreshTokenHash)

	t.Run("spent token is rejected on replay", func(t *testing.T) {
		_, err := sessions.Refresh(ctx, pair.RefreshToken)
		require.ErrorIs(t, err, ErrUnauthorized)
		require.ErrorContains(t, err, "expired or used")
	})

	t.Run("rotated token keeps working", func(t *testing.T) {
		again, err := sessions.Refresh(ctx, rotated.RefreshToken)
		require.NoError(t, err)
		require.NotEqual(t, rotated.RefreshToken, again.RefreshToken)
	})
}

func TestRefreshRejectsBadTokens(t *testing.T) {
	ctx := context.Background()
	accounts, sessions := newTestServices(t)
	registerAlice(t, accounts)

	t.Run("empty token", func(t *testing.T) {
		_, err := sessions.Refresh(ctx, "")
		require.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := sessions.Refresh(ctx, "not-a-jwt")
		require.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("access token is not a refresh token", func(t *testing.T) {
		pair, _, err := sessions.Login(ctx, "alice", "correct-horse")
		require.NoError(t, err)

		_, err = sessions.Refresh(ctx, pair.AccessToken)
		require.ErrorIs(t, err, ErrUnauthorized)
	})
}

func TestConcurrentRefreshSingleWinner(t *testing.T) {
	ctx := context.Background()
	accounts, sessions := newTestServices(t)
	registerAlice(t, accounts)

	pair, _, err := sessions.Login(ctx, "alice", "correct-horse")
	require.NoError(t, err)

	const racers = 8
	errs := make(chan error, racers)
	for range racers {
		go func() {
			_, err := sessions.Refresh(ctx, pair.RefreshToken)
			errs <- err
		}()
	}

	var wins int
	for range racers {
		if err := <-errs; err == nil {
			wins++
		} else {
			require.ErrorIs(t, err, ErrUnauthorized)
		}
	}
	require.Equal(t, 1, wins, "exactly one concurrent refresh should win")
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	ctx := context.Background()
	accounts, sessions := newTestServices(t)
	acct := registerAlice(t, accounts)

	pair, _, err := sessions.Login(ctx, "alice", "correct-horse")
	require.NoError(t, err)

	require.NoError(t, sessions.Logout(ctx, acct.ID))

	stored, err := accounts.GetByID(ctx, acct.ID)
	require.NoError(t, err)
	require.Empty(t, stored.RefreshTokenHash)

	_, err = sessions.Refresh(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, ErrUnauthorized)

	t.Run("logout is idempotent", func(t *testing.T) {
		require.NoError(t, sessions.Logout(ctx, acct.ID))
	})
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	accounts, sessions := newTestServices(t)
	acct := registerAlice(t, accounts)

	t.Run("wrong old password leaves hash untouched", func(t *testing.T) {
		err := sessions.ChangePassword(ctx, acct.ID, "battery-staple", "new-password")
		require.ErrorIs(t, err, ErrUnauthorized)

		// Original credential still works.
		_, _, err = sessions.Login(ctx, "alice", "correct-horse")
		require.NoError(t, err)
	})

	t.Run("empty new password rejected", func(t *testing.T) {
		err := sessions.ChangePassword(ctx, acct.ID, "correct-horse", "   ")
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("success swaps the credential", func(t *testing.T) {
		require.NoError(t, sessions.ChangePassword(ctx, acct.ID, "correct-horse", "new-password"))

		_, _, err := sessions.Login(ctx, "alice", "correct-horse")
		require.ErrorIs(t, err, ErrUnauthorized)

		_, _, err = sessions.Login(ctx, "alice", "new-password")
		require.NoError(t, err)
	})
}

func TestVerifyAccessToken(t *testing.T) {
	ctx := context.Background()
	accounts, sessions := newTestServices(t)
	acct := registerAlice(t, accounts)

	pair, _, err := sessions.Login(ctx, "alice", "correct-horse")
	require.NoError(t, err)

	subject, err := sessions.VerifyAccessToken(pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, acct.ID, subject)

	t.Run("refresh token does not verify as access", func(t *testing.T) {
		_, err := sessions.VerifyAccessToken(pair.RefreshToken)
		require.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("expired access token rejected", func(t *testing.T) {
		expired := NewSessionService(sessions.store, TokenConfig{
			AccessSecret:  "access-secret-for-tests",
			AccessExpiry:  -time.Minute,
			RefreshSecret: "refresh-secret-for-tests",
			RefreshExpiry: time.Hour,
			Issuer:        "test-issuer",
		})

		pair, _, err := expired.Login(ctx, "alice", "correct-horse")
		require.NoError(t, err)

		_, err = expired.VerifyAccessToken(pair.AccessToken)
		require.ErrorIs(t, err, ErrUnauthorized)
	})
}
