package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/openreel/openreel/internal/accounts/service"
	"github.com/openreel/openreel/pkg/httpx"
	"github.com/openreel/openreel/pkg/slogx"
)

// RefreshHandler serves POST /v1/sessions/refresh. The presented refresh
// token comes from the cookie or the request body; a successful rotation
// resets both cookies.
type RefreshHandler struct {
	SessionService *service.SessionService
	CookieSecure   bool
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type refreshResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int    `json:"expires_in"`
}

func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	presented := h.presentedToken(r)

	pair, err := h.SessionService.Refresh(ctx, presented)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	setTokenCookies(w, pair, h.CookieSecure)
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, refreshResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    int(pair.ExpiresIn.Seconds()),
	})
}

func (h *RefreshHandler) presentedToken(r *http.Request) string {
	if c, err := r.Cookie(refreshTokenCookie); err == nil && c.Value != "" {
		return c.Value
	}

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req refreshRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
			return req.RefreshToken
		}
		return ""
	}

	if err := r.ParseForm(); err != nil {
		return ""
	}
	return r.FormValue("refreshToken")
}
