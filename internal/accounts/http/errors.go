package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/openreel/openreel/internal/accounts/media"
	"github.com/openreel/openreel/internal/accounts/service"
	"github.com/openreel/openreel/pkg/httpx"
)

// writeServiceError maps the service failure taxonomy onto HTTP status
// codes. Anything outside the taxonomy is an internal error and only the
// log sees the details.
func writeServiceError(w http.ResponseWriter, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, service.ErrUnauthorized):
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", err.Error())
	case errors.Is(err, service.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, service.ErrConflict):
		httpx.WriteError(w, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, media.ErrUploadFailed):
		httpx.WriteError(w, http.StatusBadGateway, "upload_failed", "media upload failed")
	default:
		log.Error("request failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error",
			"something went wrong")
	}
}
