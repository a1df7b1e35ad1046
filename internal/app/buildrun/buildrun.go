package buildrun

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/slok/rombot/internal/buildtool"
	"github.com/slok/rombot/internal/log"
	"github.com/slok/rombot/internal/model"
	"github.com/slok/rombot/internal/monitor"
	"github.com/slok/rombot/internal/notify"
	"github.com/slok/rombot/internal/printer"
	"github.com/slok/rombot/internal/upload"
)

// NamedUploader pairs a hosting backend name with its uploader.
type NamedUploader struct {
	Name     string
	Uploader upload.Uploader
}

// ServiceConfig is the configuration for the build run service.
type ServiceConfig struct {
	Config    model.BuildConfig
	Toolchain buildtool.Toolchain
	Monitor   monitor.Monitor
	Notifier  notify.Notifier
	Uploaders []NamedUploader
	Logger    log.Logger
}

func (c *ServiceConfig) defaults() error {
	if err := c.Config.Validate(); err != nil {
		return fmt.Errorf("invalid build config: %w", err)
	}
	if c.Toolchain == nil {
		return fmt.Errorf("toolchain is required")
	}
	if c.Monitor == nil {
		return fmt.Errorf("monitor is required")
	}
	if c.Notifier == nil {
		return fmt.Errorf("notifier is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.BuildRun"})
	return nil
}

// Service runs the whole build pipeline: sync, build with progress
// monitoring, outcome classification, artifact upload and the final report.
type Service struct {
	config    model.BuildConfig
	toolchain buildtool.Toolchain
	monitor   monitor.Monitor
	notifier  notify.Notifier
	uploaders []NamedUploader
	logger    log.Logger
}

// NewService creates a new build run service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Service{
		config:    cfg.Config,
		toolchain: cfg.Toolchain,
		monitor:   cfg.Monitor,
		notifier:  cfg.Notifier,
		uploaders: cfg.Uploaders,
		logger:    cfg.Logger,
	}, nil
}

// Request contains the parameters for a build run.
type Request struct {
	// SkipSync skips the source-sync step.
	SkipSync bool
}

// Run executes the build pipeline and returns the final result. Notification
// and upload failures degrade the report but never fail the run; build-tool
// failure and a missing artifact do.
func (s *Service) Run(ctx context.Context, req Request) (*model.BuildResult, error) {
	session := model.BuildSession{
		ID:             ulid.Make().String(),
		ROMName:        s.config.ROMName,
		Device:         s.config.Device,
		AndroidVersion: s.config.AndroidVersion,
		BuildType:      s.config.BuildType,
		Maintainer:     s.config.Maintainer,
		StartedAt:      time.Now(),
	}

	// Create the status card. From here on every status change edits this
	// single message.
	messageID, err := s.notifier.SendPhoto(ctx, s.config.BannerPath, s.caption(session, model.InitializingProgress))
	if err != nil {
		// Best-effort: a channel that is down must not stop a build.
		s.logger.Warningf("Could not post status card: %s", err)
	}
	session.MessageID = messageID

	// Sync failure degrades to building from whatever sources are present.
	if !req.SkipSync {
		if err := s.toolchain.Sync(ctx); err != nil {
			s.logger.Warningf("Source sync failed, building anyway: %s", err)
			s.editCard(ctx, session, s.caption(session, "Source sync failed, building with current sources..."))
		}
	}

	buildDone, err := s.toolchain.StartBuild(ctx)
	if err != nil {
		s.terminal(ctx, session, "Could not start the build tool.")
		return nil, fmt.Errorf("could not start build: %w", err)
	}

	buildErr := s.monitor.Run(ctx, session, buildDone)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if buildErr != nil {
		s.logger.Errorf("Build task exited with error: %s", buildErr)
	}

	// Success is a textual contract with the build tool, the log marker
	// decides, not the exit code.
	if !buildtool.CompletedSuccessfully(s.config.LogPath) {
		s.terminal(ctx, session, "Build failed. Check the build log.")
		s.sendFailureSticker(ctx)
		return nil, fmt.Errorf("success marker missing in %s: %w", s.config.LogPath, model.ErrBuildFailed)
	}

	artifact, err := buildtool.FindArtifact(s.config.OutputDir)
	if err != nil {
		// Distinct terminal state: the compile "succeeded" but there is
		// nothing to ship.
		s.terminal(ctx, session, "Build completed but no flashable zip was produced.")
		return nil, fmt.Errorf("could not find artifact: %w", err)
	}

	links := s.uploadArtifact(ctx, artifact)

	result := &model.BuildResult{
		Session:  session,
		Artifact: artifact,
		Links:    links,
		Duration: time.Since(session.StartedAt),
	}

	s.logger.Infof("Build completed successfully in %s", result.Duration)
	s.editCard(ctx, session, successCaption(*result))

	return result, nil
}

// uploadArtifact pushes the artifact through every configured backend. A
// backend that degrades is logged and omitted from the links.
func (s *Service) uploadArtifact(ctx context.Context, artifact *model.Artifact) []model.UploadLink {
	var links []model.UploadLink
	for _, u := range s.uploaders {
		url, err := u.Uploader.Upload(ctx, artifact.Path)
		if err != nil {
			s.logger.Warningf("Upload to %s failed, omitting link: %s", u.Name, err)
			continue
		}
		s.logger.Infof("Uploaded artifact to %s: %s", u.Name, url)
		links = append(links, model.UploadLink{Backend: u.Name, URL: url})
	}
	return links
}

// terminal reports a terminal state on both the console and the channel. When
// the status card was never created it falls back to a plain message, a
// terminal state is never silent on the channel.
func (s *Service) terminal(ctx context.Context, session model.BuildSession, msg string) {
	s.logger.Errorf("%s", msg)

	if session.MessageID == "" {
		if _, err := s.notifier.SendMessage(ctx, s.caption(session, msg)); err != nil {
			s.logger.Warningf("Could not send terminal notice: %s", err)
		}
		return
	}

	s.editCard(ctx, session, s.caption(session, msg))
}

func (s *Service) editCard(ctx context.Context, session model.BuildSession, caption string) {
	if session.MessageID == "" {
		return
	}
	if err := s.notifier.EditCaption(ctx, session.MessageID, caption); err != nil {
		s.logger.Warningf("Could not edit status card: %s", err)
	}
}

func (s *Service) sendFailureSticker(ctx context.Context) {
	if s.config.FailureSticker == "" {
		return
	}
	if err := s.notifier.SendSticker(ctx, s.config.FailureSticker); err != nil {
		s.logger.Warningf("Could not send failure sticker: %s", err)
	}
}

func (s *Service) caption(session model.BuildSession, status string) string {
	return fmt.Sprintf(
		"<b>%s</b> | %s\nAndroid %s | %s\nBy %s\n\n%s",
		session.ROMName, session.Device,
		session.AndroidVersion, session.BuildType,
		session.Maintainer,
		status,
	)
}

func successCaption(result model.BuildResult) string {
	s := result.Session

	caption := fmt.Sprintf(
		"<b>%s</b> | %s\nAndroid %s | %s\nBy %s\n\nBuild completed successfully in %s.\nSize: <code>%s</code>\nSHA-256: <code>%s</code>",
		s.ROMName, s.Device,
		s.AndroidVersion, s.BuildType,
		s.Maintainer,
		printer.FormatDuration(result.Duration),
		printer.FormatBytes(result.Artifact.SizeBytes),
		result.Artifact.SHA256,
	)

	for _, link := range result.Links {
		caption += fmt.Sprintf("\n%s: %s", link.Backend, link.URL)
	}

	return caption
}
