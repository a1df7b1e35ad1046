package monitor

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/slok/rombot/internal/log"
	"github.com/slok/rombot/internal/logtail"
	"github.com/slok/rombot/internal/model"
	"github.com/slok/rombot/internal/notify"
)

const (
	// DefaultPollInterval is how often the build log is polled for progress.
	DefaultPollInterval = 120 * time.Second

	// defaultEditTimeout bounds the best-effort status card edit so a stalled
	// network call can never block the next poll indefinitely.
	defaultEditTimeout = 30 * time.Second
)

// defaultFlavorMessages is the pool of rotating humans-are-watching lines
// embedded in progress captions.
var defaultFlavorMessages = []string{
	"Cooking in progress, grab some coffee...",
	"Compiling all the things...",
	"The jenkins gods demand patience...",
	"Still going, the clang furnace is hot...",
	"Linking the universe together...",
	"Somewhere a CPU fan is crying...",
}

// Monitor supervises a running build task until it exits, reporting progress
// along the way.
type Monitor interface {
	Run(ctx context.Context, session model.BuildSession, buildDone <-chan error) error
}

// ServiceConfig is the configuration for the build monitor.
type ServiceConfig struct {
	Tailer   logtail.Tailer
	Notifier notify.Notifier
	// LogPath is the build log file polled for progress markers.
	LogPath string
	// PollInterval is the fixed sleep between progress polls.
	PollInterval time.Duration
	// EditTimeout bounds every status card edit call.
	EditTimeout time.Duration
	// FlavorMessages overrides the caption flavor pool.
	FlavorMessages []string
	Logger         log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Tailer == nil {
		return fmt.Errorf("tailer is required")
	}
	if c.Notifier == nil {
		return fmt.Errorf("notifier is required")
	}
	if c.LogPath == "" {
		return fmt.Errorf("build log path is required")
	}
	if c.PollInterval <= 0 {
		c.PollInterval = DefaultPollInterval
	}
	if c.EditTimeout <= 0 {
		c.EditTimeout = defaultEditTimeout
	}
	if len(c.FlavorMessages) == 0 {
		c.FlavorMessages = defaultFlavorMessages
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "monitor.Service"})
	return nil
}

// Service bridges the running build task and the notification channel without
// blocking the build: it polls the build log on a fixed interval and edits the
// session's status card when progress changes.
type Service struct {
	tailer         logtail.Tailer
	notifier       notify.Notifier
	logPath        string
	pollInterval   time.Duration
	editTimeout    time.Duration
	flavorMessages []string
	logger         log.Logger
}

// NewService creates a new build monitor.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Service{
		tailer:         cfg.Tailer,
		notifier:       cfg.Notifier,
		logPath:        cfg.LogPath,
		pollInterval:   cfg.PollInterval,
		editTimeout:    cfg.EditTimeout,
		flavorMessages: cfg.FlavorMessages,
		logger:         cfg.Logger,
	}, nil
}

// Run polls the build log until the build task exits and returns the build's
// exit result. Progress edits are best-effort: a failed edit is logged and the
// loop keeps polling. Edits always target the session's single status card and
// are emitted in snapshot-detection order.
func (s *Service) Run(ctx context.Context, session model.BuildSession, buildDone <-chan error) error {
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	lastReported := model.InitializingSnapshot()

	for {
		select {
		case err := <-buildDone:
			// The build task terminated, its exit status is the caller's
			// business now.
			return err

		case <-ctx.Done():
			return ctx.Err()

		case <-ticker.C:
			snapshot := s.tailer.FetchProgress(s.logPath)

			// The local mirror is independent of the network throttle.
			s.logger.Infof("Build progress: %s", snapshot)

			if snapshot == lastReported || snapshot.Initializing() {
				continue
			}

			// No status card to edit, keep the local mirror only.
			if session.MessageID == "" {
				lastReported = snapshot
				continue
			}

			caption := s.progressCaption(session, snapshot)
			editCtx, cancel := context.WithTimeout(ctx, s.editTimeout)
			err := s.notifier.EditCaption(editCtx, session.MessageID, caption)
			cancel()
			if err != nil {
				s.logger.Warningf("Could not edit status card: %s", err)
			}

			// Not retried on edit failure, the next change will refresh the
			// card anyway.
			lastReported = snapshot
		}
	}
}

func (s *Service) progressCaption(session model.BuildSession, snapshot model.ProgressSnapshot) string {
	flavor := s.flavorMessages[rand.Intn(len(s.flavorMessages))]

	return fmt.Sprintf(
		"%s\n\n<b>%s</b> | %s\nAndroid %s | %s\nBy %s\n\nProgress: <code>%s</code>",
		flavor,
		session.ROMName, session.Device,
		session.AndroidVersion, session.BuildType,
		session.Maintainer,
		snapshot,
	)
}
