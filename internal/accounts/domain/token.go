package domain

import "time"

// TokenPair is what login and refresh return: a short-lived access token
// and the longer-lived refresh token that replaces the previous one.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    time.Duration // time until the access token expires
}
