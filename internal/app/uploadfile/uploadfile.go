package uploadfile

import (
	"context"
	"fmt"
	"os"

	"github.com/slok/rombot/internal/log"
	"github.com/slok/rombot/internal/upload"
)

// ServiceConfig is the configuration for the upload service.
type ServiceConfig struct {
	Uploader upload.Uploader
	Logger   log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Uploader == nil {
		return fmt.Errorf("uploader is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.UploadFile"})
	return nil
}

// Service handles one-shot file uploads to a hosting backend.
type Service struct {
	uploader upload.Uploader
	logger   log.Logger
}

// NewService creates a new upload service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Service{uploader: cfg.Uploader, logger: cfg.Logger}, nil
}

// Request is the upload request parameters.
type Request struct {
	FilePath string
}

// Run uploads a file and returns its public URL.
func (s *Service) Run(ctx context.Context, req Request) (string, error) {
	if req.FilePath == "" {
		return "", fmt.Errorf("file path is required")
	}
	if _, err := os.Stat(req.FilePath); err != nil {
		return "", fmt.Errorf("could not access file: %w", err)
	}

	s.logger.Infof("Uploading %s", req.FilePath)

	url, err := s.uploader.Upload(ctx, req.FilePath)
	if err != nil {
		return "", fmt.Errorf("uploading %s: %w", req.FilePath, err)
	}

	return url, nil
}
