package io

import (
	"context"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/slok/rombot/internal/model"
)

// ConfigYAMLRepository loads build profiles from YAML files.
type ConfigYAMLRepository struct {
	fs fs.FS
}

// NewConfigYAMLRepository creates a new YAML config repository.
func NewConfigYAMLRepository(filesystem fs.FS) *ConfigYAMLRepository {
	return &ConfigYAMLRepository{fs: filesystem}
}

// GetConfig loads a build profile from a YAML file and returns a validated
// domain model. Missing mandatory settings fail here, before any build or
// network action happens.
func (r *ConfigYAMLRepository) GetConfig(ctx context.Context, path string) (model.BuildConfig, error) {
	data, err := fs.ReadFile(r.fs, path)
	if err != nil {
		return model.BuildConfig{}, fmt.Errorf("reading config file: %w", err)
	}

	if ctx.Err() != nil {
		return model.BuildConfig{}, ctx.Err()
	}

	var cfg BuildProfile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return model.BuildConfig{}, fmt.Errorf("parsing YAML: %w", err)
	}

	m, err := cfg.toModel()
	if err != nil {
		return model.BuildConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := m.Validate(); err != nil {
		return model.BuildConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return m, nil
}

// BuildProfile represents the YAML structure of a build profile.
type BuildProfile struct {
	ROM      ROMConfig      `yaml:"rom"`
	Telegram TelegramConfig `yaml:"telegram"`
	Build    BuildConfig    `yaml:"build"`
	Upload   UploadConfig   `yaml:"upload"`
}

// ROMConfig represents the YAML structure for ROM identity settings.
type ROMConfig struct {
	Name           string `yaml:"name"`
	Device         string `yaml:"device"`
	AndroidVersion string `yaml:"android_version"`
	BuildType      string `yaml:"build_type"`
	Maintainer     string `yaml:"maintainer"`
}

// TelegramConfig represents the YAML structure for reporting settings.
type TelegramConfig struct {
	Token          string `yaml:"token"`
	ChatID         string `yaml:"chat_id"`
	Banner         string `yaml:"banner"`
	FailureSticker string `yaml:"failure_sticker"`
}

// BuildConfig represents the YAML structure for build tool settings.
type BuildConfig struct {
	SourceDir    string   `yaml:"source_dir"`
	SyncCommand  []string `yaml:"sync_command"`
	BuildCommand []string `yaml:"build_command"`
	LogPath      string   `yaml:"log_path"`
	OutputDir    string   `yaml:"output_dir"`
	PollInterval string   `yaml:"poll_interval"`
}

// UploadConfig represents the YAML structure for artifact hosting settings.
type UploadConfig struct {
	Backends         []string `yaml:"backends"`
	PixeldrainAPIKey string   `yaml:"pixeldrain_api_key"`
}

func (c BuildProfile) toModel() (model.BuildConfig, error) {
	var buildType model.BuildType
	switch strings.ToLower(c.ROM.BuildType) {
	case "official":
		buildType = model.BuildTypeOfficial
	case "unofficial", "":
		// Maintainers' own builds are the common case.
		buildType = model.BuildTypeUnofficial
	default:
		return model.BuildConfig{}, fmt.Errorf("unknown build type %q", c.ROM.BuildType)
	}

	pollInterval := 2 * time.Minute
	if c.Build.PollInterval != "" {
		var err error
		pollInterval, err = time.ParseDuration(c.Build.PollInterval)
		if err != nil {
			return model.BuildConfig{}, fmt.Errorf("invalid poll interval: %w", err)
		}
	}

	return model.BuildConfig{
		ROMName:        c.ROM.Name,
		Device:         c.ROM.Device,
		AndroidVersion: c.ROM.AndroidVersion,
		BuildType:      buildType,
		Maintainer:     c.ROM.Maintainer,

		TelegramToken:  c.Telegram.Token,
		TelegramChatID: c.Telegram.ChatID,
		BannerPath:     c.Telegram.Banner,
		FailureSticker: c.Telegram.FailureSticker,

		SourceDir:    c.Build.SourceDir,
		SyncCommand:  c.Build.SyncCommand,
		BuildCommand: c.Build.BuildCommand,
		LogPath:      c.Build.LogPath,
		OutputDir:    c.Build.OutputDir,
		PollInterval: pollInterval,

		UploadBackends:   c.Upload.Backends,
		PixeldrainAPIKey: c.Upload.PixeldrainAPIKey,
	}, nil
}
