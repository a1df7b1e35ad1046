package upload

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/slok/rombot/internal/log"
	"github.com/slok/rombot/internal/model"
)

const defaultPixeldrainAPIBase = "https://pixeldrain.com"

// Pixeldrain uploads files to pixeldrain.com.
type Pixeldrain struct {
	apiKey     string
	httpClient *http.Client
	logger     log.Logger

	// Base URL (overridable for testing).
	apiBaseURL string
}

// NewPixeldrain creates a new pixeldrain uploader.
func NewPixeldrain(cfg BackendConfig) (*Pixeldrain, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Pixeldrain{
		apiKey:     cfg.PixeldrainAPIKey,
		httpClient: cfg.HTTPClient,
		logger:     cfg.Logger.WithValues(log.Kv{"svc": "upload.Pixeldrain"}),
		apiBaseURL: defaultPixeldrainAPIBase,
	}, nil
}

// NewPixeldrainWithBaseURL creates an uploader with a custom base URL (for testing).
func NewPixeldrainWithBaseURL(cfg BackendConfig, apiBaseURL string) (*Pixeldrain, error) {
	u, err := NewPixeldrain(cfg)
	if err != nil {
		return nil, err
	}
	u.apiBaseURL = apiBaseURL
	return u, nil
}

type pixeldrainUploadJSON struct {
	ID string `json:"id"`
}

// Upload streams the file to pixeldrain and returns the public page URL.
func (p *Pixeldrain) Upload(ctx context.Context, filePath string) (string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("could not open file: %w", err)
	}
	defer f.Close()

	url := fmt.Sprintf("%s/api/file/%s", p.apiBaseURL, filepath.Base(filePath))
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, f)
	if err != nil {
		return "", fmt.Errorf("could not create request: %w", err)
	}
	if p.apiKey != "" {
		req.SetBasicAuth("", p.apiKey)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("could not read upload response: %w", err)
	}

	var result pixeldrainUploadJSON
	if err := json.Unmarshal(data, &result); err != nil || result.ID == "" {
		p.logger.Debugf("Pixeldrain response had no file id: %s", data)
		return "", fmt.Errorf("no file id in pixeldrain response: %w", model.ErrUploadFailed)
	}

	return fmt.Sprintf("%s/u/%s", p.apiBaseURL, result.ID), nil
}
