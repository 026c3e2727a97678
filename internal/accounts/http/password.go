package http

import (
	"encoding/json"
	"net/http"

	"github.com/openreel/openreel/internal/accounts/service"
	"github.com/openreel/openreel/pkg/httpx"
	"github.com/openreel/openreel/pkg/slogx"
)

// ChangePasswordHandler serves POST /v1/accounts/password for the
// authenticated account.
type ChangePasswordHandler struct {
	SessionService *service.SessionService
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

func (h *ChangePasswordHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	accountID := httpx.AccountIDFromContext(ctx)
	if err := h.SessionService.ChangePassword(ctx, accountID, req.OldPassword, req.NewPassword); err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "password changed"})
}
