package model

import (
	"fmt"
	"time"
)

// BuildType represents the release flavor of a build.
type BuildType string

const (
	// BuildTypeOfficial indicates a build signed off by the ROM project.
	BuildTypeOfficial BuildType = "Official"
	// BuildTypeUnofficial indicates a maintainer's own build.
	BuildTypeUnofficial BuildType = "Unofficial"
)

// BuildSession represents one build run from launch to final report.
//
// It is owned exclusively by the orchestrator and the monitor for the
// session's duration, there are no concurrent writers.
type BuildSession struct {
	ID             string
	ROMName        string
	Device         string
	AndroidVersion string
	BuildType      BuildType
	Maintainer     string
	StartedAt      time.Time

	// MessageID is the opaque handle of the remote status card. All progress
	// edits target this single card.
	MessageID string
}

// BuildConfig is the immutable build profile loaded once at startup.
type BuildConfig struct {
	ROMName        string
	Device         string
	AndroidVersion string
	BuildType      BuildType
	Maintainer     string

	// Telegram reporting settings.
	TelegramToken  string
	TelegramChatID string
	BannerPath     string
	FailureSticker string

	// Build tool settings.
	SourceDir    string
	SyncCommand  []string
	BuildCommand []string
	LogPath      string
	OutputDir    string
	PollInterval time.Duration

	// Upload settings.
	UploadBackends   []string
	PixeldrainAPIKey string
}

// Validate validates the build configuration.
func (c *BuildConfig) Validate() error {
	if c.ROMName == "" {
		return fmt.Errorf("rom name is required: %w", ErrNotValid)
	}
	if c.Device == "" {
		return fmt.Errorf("device is required: %w", ErrNotValid)
	}
	if c.AndroidVersion == "" {
		return fmt.Errorf("android version is required: %w", ErrNotValid)
	}

	switch c.BuildType {
	case BuildTypeOfficial, BuildTypeUnofficial:
	default:
		return fmt.Errorf("build type %q is unknown: %w", c.BuildType, ErrNotValid)
	}

	if c.TelegramToken == "" {
		return fmt.Errorf("telegram token is required: %w", ErrNotValid)
	}
	if c.TelegramChatID == "" {
		return fmt.Errorf("telegram chat id is required: %w", ErrNotValid)
	}

	if len(c.BuildCommand) == 0 {
		return fmt.Errorf("build command is required: %w", ErrNotValid)
	}
	if c.LogPath == "" {
		return fmt.Errorf("build log path is required: %w", ErrNotValid)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output dir is required: %w", ErrNotValid)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive: %w", ErrNotValid)
	}

	return nil
}

// Artifact is a flashable zip produced by a successful build.
type Artifact struct {
	Path      string
	SizeBytes int64
	SHA256    string
}
