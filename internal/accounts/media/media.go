// Package media talks to the external media host that stores avatar and
// cover images. The host accepts a file upload and returns a durable URL;
// everything else about it (retries, CDN, transcoding) is its problem.
package media

import (
	"context"
	"errors"
	"io"
)

// ErrUploadFailed reports that the media host rejected or failed an
// upload. Callers surface it as "upload failed"; no retries happen here.
var ErrUploadFailed = errors.New("media: upload failed")

// Uploader stages a file on the media host and returns its durable URL.
type Uploader interface {
	Upload(ctx context.Context, filename string, r io.Reader) (string, error)
}
