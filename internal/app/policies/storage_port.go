package policies

import (
	"context"
	"io"
)

// ImageStorage stores binary content and returns a public URL.
type ImageStorage interface {
	Upload(ctx context.Context, key string, reader io.Reader, contentType string) (publicURL string, err error)
}
