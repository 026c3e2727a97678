package store

import (
	"context"
	"errors"

	"github.com/openreel/openreel/internal/accounts/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for
// now) implement this. Sub-repositories keep concerns tidy and give us a
// single place to stop accidental transactions within transactions.
type Store interface {
	Accounts() Accounts

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, committing when fn returns
	// nil and rolling back otherwise. Prefer this over Tx directly.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Accounts interface {
	// GetByID returns an account by id.
	GetByID(ctx context.Context, id string) (domain.Account, error)

	// GetByIdentifier matches either the username or email column. The
	// caller normalizes (lowercase, trim) before lookup.
	GetByIdentifier(ctx context.Context, identifier string) (domain.Account, error)

	// Create inserts a new account (id is provided by the app via ULID).
	// Returns ErrAlreadyExists when the username or email is taken.
	Create(ctx context.Context, a domain.Account) error

	// UpdateRefreshTokenHash sets (or clears, with "") the stored refresh
	// token fingerprint and bumps updated_at. Touches nothing else; in
	// particular it never re-derives the password hash.
	UpdateRefreshTokenHash(ctx context.Context, id, hash string) error

	// SwapRefreshTokenHash replaces the stored fingerprint only when it
	// still equals old. Returns false when the row no longer matches,
	// which is how concurrent refreshes of the same token lose the race.
	SwapRefreshTokenHash(ctx context.Context, id, old, new string) (bool, error)

	// UpdatePasswordHash sets the password hash and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, id, newHash string) error

	// UpdateProfile sets full_name and email. Returns ErrAlreadyExists
	// when the new email collides with another account.
	UpdateProfile(ctx context.Context, id, fullName, email string) error

	// UpdateAvatarURL replaces the avatar media reference.
	UpdateAvatarURL(ctx context.Context, id, url string) error

	// UpdateCoverImageURL replaces the cover image media reference.
	UpdateCoverImageURL(ctx context.Context, id, url string) error
}
