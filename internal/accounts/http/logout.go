package http

import (
	"net/http"

	"github.com/openreel/openreel/internal/accounts/service"
	"github.com/openreel/openreel/pkg/httpx"
	"github.com/openreel/openreel/pkg/slogx"
)

// LogoutHandler serves POST /v1/sessions/logout. Runs behind the authn
// middleware; clears the stored refresh token and both cookies.
type LogoutHandler struct {
	SessionService *service.SessionService
	CookieSecure   bool
}

func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	accountID := httpx.AccountIDFromContext(ctx)
	if err := h.SessionService.Logout(ctx, accountID); err != nil {
		writeServiceError(w, log, err)
		return
	}

	clearTokenCookies(w, h.CookieSecure)
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}
