package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/openreel/openreel/internal/accounts/domain"
	"github.com/openreel/openreel/internal/accounts/media"
	"github.com/openreel/openreel/internal/accounts/service"
	"github.com/openreel/openreel/pkg/httpx"
	"github.com/openreel/openreel/pkg/slogx"
)

// MediaHandler serves PUT /v1/accounts/me/avatar and
// PUT /v1/accounts/me/cover: upload the multipart file to the media host,
// then persist the returned URL on the account.
type MediaHandler struct {
	AccountService *service.AccountService
	Uploader       media.Uploader
}

func (h *MediaHandler) HandleAvatar(w http.ResponseWriter, r *http.Request) {
	h.replaceMedia(w, r, "avatar", h.AccountService.UpdateAvatar)
}

func (h *MediaHandler) HandleCover(w http.ResponseWriter, r *http.Request) {
	h.replaceMedia(w, r, "coverImage", h.AccountService.UpdateCoverImage)
}

func (h *MediaHandler) replaceMedia(
	w http.ResponseWriter,
	r *http.Request,
	field string,
	persist func(ctx context.Context, id, url string) (domain.Account, error),
) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request",
			"expected multipart form data")
		return
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request",
				field+" file is missing")
			return
		}
		writeServiceError(w, log, err)
		return
	}
	defer func() { _ = file.Close() }()

	url, err := h.Uploader.Upload(ctx, header.Filename, file)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	acct, err := persist(ctx, httpx.AccountIDFromContext(ctx), url)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, acct.View())
}
