package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/openreel/openreel/internal/accounts/domain"
)

type accountsRepo struct {
	db dbtx
}

const accountColumns = `id, username, email, full_name, avatar_url,
	cover_image_url, password_hash, refresh_token_hash, created_at, updated_at`

func (r *accountsRepo) GetByID(ctx context.Context, id string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id)
	return scanAccount(row)
}

func (r *accountsRepo) GetByIdentifier(ctx context.Context, identifier string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE username = ? OR email = ?`,
		identifier, identifier)
	return scanAccount(row)
}

func (r *accountsRepo) Create(ctx context.Context, a domain.Account) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO accounts (
			id, username, email, full_name, avatar_url, cover_image_url,
			password_hash, refresh_token_hash, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Username, a.Email, a.FullName, a.AvatarURL,
		nullable(a.CoverImageURL), a.PasswordHash, nullable(a.RefreshTokenHash),
		now, now,
	)
	return mapConflict(err)
}

func (r *accountsRepo) UpdateRefreshTokenHash(ctx context.Context, id, hash string) error {
	return r.exec(ctx,
		`UPDATE accounts SET refresh_token_hash = ?, updated_at = ? WHERE id = ?`,
		nullable(hash), time.Now().UTC(), id)
}

func (r *accountsRepo) SwapRefreshTokenHash(ctx context.Context, id, old, new string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET refresh_token_hash = ?, updated_at = ?
		 WHERE id = ? AND refresh_token_hash = ?`,
		nullable(new), time.Now().UTC(), id, old)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *accountsRepo) UpdatePasswordHash(ctx context.Context, id, newHash string) error {
	return r.exec(ctx,
		`UPDATE accounts SET password_hash = ?, updated_at = ? WHERE id = ?`,
		newHash, time.Now().UTC(), id)
}

func (r *accountsRepo) UpdateProfile(ctx context.Context, id, fullName, email string) error {
	err := r.exec(ctx,
		`UPDATE accounts SET full_name = ?, email = ?, updated_at = ? WHERE id = ?`,
		fullName, email, time.Now().UTC(), id)
	return mapConflict(err)
}

func (r *accountsRepo) UpdateAvatarURL(ctx context.Context, id, url string) error {
	return r.exec(ctx,
		`UPDATE accounts SET avatar_url = ?, updated_at = ? WHERE id = ?`,
		url, time.Now().UTC(), id)
}

func (r *accountsRepo) UpdateCoverImageURL(ctx context.Context, id, url string) error {
	return r.exec(ctx,
		`UPDATE accounts SET cover_image_url = ?, updated_at = ? WHERE id = ?`,
		url, time.Now().UTC(), id)
}

func (r *accountsRepo) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return mapNotFound(sql.ErrNoRows)
	}
	return nil
}

func scanAccount(row *sql.Row) (domain.Account, error) {
	var a domain.Account
	var coverURL, refreshHash sql.NullString
	err := row.Scan(
		&a.ID, &a.Username, &a.Email, &a.FullName, &a.AvatarURL,
		&coverURL, &a.PasswordHash, &refreshHash, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	a.CoverImageURL = coverURL.String
	a.RefreshTokenHash = refreshHash.String
	return a, nil
}

func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
