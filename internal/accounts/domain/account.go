package domain

import "time"

// Account is the single persisted entity: credentials, profile fields, and
// the fingerprint of the currently valid refresh token.
type Account struct {
	ID            string
	Username      string // lowercased, trimmed, unique
	Email         string // lowercased, trimmed, unique
	FullName      string
	AvatarURL     string
	CoverImageURL string // optional
	PasswordHash  string // argon2id PHC string, never empty once created

	// RefreshTokenHash is the SHA-256 fingerprint of the one refresh token
	// that is currently valid for this account, or empty when logged out.
	// Overwritten on login and refresh, cleared on logout.
	RefreshTokenHash string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// View is the public representation of an account. The password hash and
// refresh token fingerprint never leave the service.
type View struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	FullName      string    `json:"fullName"`
	AvatarURL     string    `json:"avatar"`
	CoverImageURL string    `json:"coverImage,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// View strips the secret-bearing fields.
func (a Account) View() View {
	return View{
		ID:            a.ID,
		Username:      a.Username,
		Email:         a.Email,
		FullName:      a.FullName,
		AvatarURL:     a.AvatarURL,
		CoverImageURL: a.CoverImageURL,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}
