package progress

import (
	"context"
	"fmt"

	"github.com/slok/rombot/internal/log"
	"github.com/slok/rombot/internal/logtail"
	"github.com/slok/rombot/internal/model"
)

// ServiceConfig is the configuration for the progress service.
type ServiceConfig struct {
	Tailer logtail.Tailer
	Logger log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Tailer == nil {
		return fmt.Errorf("tailer is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Progress"})
	return nil
}

// Service handles one-shot build progress reads.
type Service struct {
	tailer logtail.Tailer
	logger log.Logger
}

// NewService creates a new progress service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Service{tailer: cfg.Tailer, logger: cfg.Logger}, nil
}

// Request is the progress read parameters.
type Request struct {
	LogPath string
}

// Run reads the current build progress from a log file.
func (s *Service) Run(ctx context.Context, req Request) (model.ProgressSnapshot, error) {
	if req.LogPath == "" {
		return model.ProgressSnapshot{}, fmt.Errorf("log path is required")
	}

	return s.tailer.FetchProgress(req.LogPath), nil
}
