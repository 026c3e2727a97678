package media

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

type HostConfig struct {
	BaseURL string
	APIKey  string // optional bearer credential for the media host
	Timeout time.Duration
}

// HostClient uploads files to an HTTP media host. One multipart POST per
// file; the host answers with the durable URL of the stored asset.
type HostClient struct {
	client *resty.Client
}

type uploadResponse struct {
	URL string `json:"url"`
}

func NewHostClient(cfg HostConfig) *HostClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)
	if cfg.APIKey != "" {
		cli.SetAuthToken(cfg.APIKey)
	}

	return &HostClient{client: cli}
}

func (h *HostClient) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	var out uploadResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetFileReader("file", filename, r).
		SetResult(&out).
		Post("/v1/files")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("%w: media host returned %s", ErrUploadFailed, resp.Status())
	}
	if out.URL == "" {
		return "", fmt.Errorf("%w: media host returned no url", ErrUploadFailed)
	}
	return out.URL, nil
}
