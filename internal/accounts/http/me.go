package http

import (
	"encoding/json"
	"net/http"

	"github.com/openreel/openreel/internal/accounts/service"
	"github.com/openreel/openreel/pkg/httpx"
	"github.com/openreel/openreel/pkg/slogx"
)

// MeHandler serves the authenticated account's own resource:
// GET /v1/accounts/me returns the public view, PATCH updates profile
// fields (full name and email).
type MeHandler struct {
	AccountService *service.AccountService
}

type updateProfileRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

func (h *MeHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	acct, err := h.AccountService.GetByID(ctx, httpx.AccountIDFromContext(ctx))
	if err != nil {
		writeServiceError(w, log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, acct.View())
}

func (h *MeHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	acct, err := h.AccountService.UpdateProfile(ctx,
		httpx.AccountIDFromContext(ctx), req.FullName, req.Email)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, acct.View())
}
