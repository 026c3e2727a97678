package http

import (
	"errors"
	"net/http"

	"github.com/openreel/openreel/internal/accounts/media"
	"github.com/openreel/openreel/internal/accounts/service"
	"github.com/openreel/openreel/pkg/httpx"
	"github.com/openreel/openreel/pkg/slogx"
)

// maxUploadBytes bounds the multipart body held in memory per register or
// media-update request.
const maxUploadBytes = 32 << 20

// RegisterHandler serves POST /v1/accounts/register. The request is
// multipart: profile fields plus an avatar file (required) and a cover
// image file (optional). Files are staged on the media host first; the
// account is created with the returned durable URLs.
type RegisterHandler struct {
	AccountService *service.AccountService
	Uploader       media.Uploader
}

func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request",
			"expected multipart form data")
		return
	}

	avatarURL, err := h.uploadFormFile(r, "avatar")
	if err != nil {
		writeServiceError(w, log, err)
		return
	}
	if avatarURL == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request",
			"avatar image is required")
		return
	}

	// The cover image is optional; absence is not an error.
	coverURL, err := h.uploadFormFile(r, "coverImage")
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	acct, err := h.AccountService.Register(ctx, service.RegisterParams{
		Username:      r.FormValue("username"),
		Email:         r.FormValue("email"),
		FullName:      r.FormValue("fullName"),
		Password:      r.FormValue("password"),
		AvatarURL:     avatarURL,
		CoverImageURL: coverURL,
	})
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, acct.View())
}

// uploadFormFile stages the named multipart file on the media host and
// returns its URL, or "" when the field is absent.
func (h *RegisterHandler) uploadFormFile(r *http.Request, field string) (string, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil
		}
		return "", err
	}
	defer func() { _ = file.Close() }()

	return h.Uploader.Upload(r.Context(), header.Filename, file)
}
