package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/openreel/openreel/internal/accounts/domain"
	"github.com/openreel/openreel/internal/accounts/service"
	"github.com/openreel/openreel/pkg/httpx"
	"github.com/openreel/openreel/pkg/slogx"
)

// LoginHandler serves POST /v1/sessions/login. Accepts JSON or form
// bodies; either `username` or `email` identifies the account.
type LoginHandler struct {
	SessionService *service.SessionService
	CookieSecure   bool
}

type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Account      domain.View `json:"account"`
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	ExpiresIn    int         `json:"expires_in"`
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	req, ok := decodeLoginRequest(w, r)
	if !ok {
		return
	}

	identifier := req.Username
	if identifier == "" {
		identifier = req.Email
	}

	pair, acct, err := h.SessionService.Login(ctx, identifier, req.Password)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	setTokenCookies(w, pair, h.CookieSecure)
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, loginResponse{
		Account:      acct.View(),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    int(pair.ExpiresIn.Seconds()),
	})
}

func decodeLoginRequest(w http.ResponseWriter, r *http.Request) (loginRequest, bool) {
	var req loginRequest

	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
			return loginRequest{}, false
		}
		return req, true
	}

	if err := r.ParseForm(); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid form body")
		return loginRequest{}, false
	}
	req.Username = r.FormValue("username")
	req.Email = r.FormValue("email")
	req.Password = r.FormValue("password")
	return req, true
}
