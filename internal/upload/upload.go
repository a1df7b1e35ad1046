package upload

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/slok/rombot/internal/log"
)

// Uploader pushes a local file to a file-hosting backend and returns its
// public URL. When the backend response has no extractable identifier the
// implementations return model.ErrUploadFailed so callers can degrade (omit
// the link) instead of aborting.
type Uploader interface {
	Upload(ctx context.Context, filePath string) (url string, err error)
}

const (
	// BackendPixeldrain is the pixeldrain.com backend.
	BackendPixeldrain = "pixeldrain"
	// BackendGofile is the gofile.io backend.
	BackendGofile = "gofile"

	defaultTimeout = 15 * time.Minute
)

// BackendConfig is the shared configuration for hosting backends.
type BackendConfig struct {
	// HTTPClient is the HTTP client for upload requests.
	HTTPClient *http.Client
	// PixeldrainAPIKey authenticates pixeldrain uploads (optional).
	PixeldrainAPIKey string
	// Logger for logging.
	Logger log.Logger
}

func (c *BackendConfig) defaults() error {
	if c.HTTPClient == nil {
		// Artifact zips are big, the client timeout has to cover a full upload.
		c.HTTPClient = &http.Client{Timeout: defaultTimeout}
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	return nil
}

// NewUploader returns the uploader for a backend name.
func NewUploader(backend string, cfg BackendConfig) (Uploader, error) {
	switch backend {
	case BackendPixeldrain:
		return NewPixeldrain(cfg)
	case BackendGofile:
		return NewGofile(cfg)
	}
	return nil, fmt.Errorf("unknown upload backend %q", backend)
}

// KnownBackends returns the selectable backend names.
func KnownBackends() []string {
	return []string{BackendPixeldrain, BackendGofile}
}
