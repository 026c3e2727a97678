package http

import (
	"net/http"

	"github.com/openreel/openreel/internal/accounts/domain"
	"github.com/openreel/openreel/pkg/httpx"
)

const refreshTokenCookie = "refreshToken"

// setTokenCookies mirrors the token pair into httpOnly cookies for browser
// clients. API clients can ignore the cookies and use the JSON body.
func setTokenCookies(w http.ResponseWriter, pair domain.TokenPair, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     httpx.AccessTokenCookie,
		Value:    pair.AccessToken,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     refreshTokenCookie,
		Value:    pair.RefreshToken,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearTokenCookies(w http.ResponseWriter, secure bool) {
	for _, name := range []string{httpx.AccessTokenCookie, refreshTokenCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
}
