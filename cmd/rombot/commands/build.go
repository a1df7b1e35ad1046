package commands

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/rombot/internal/app/buildrun"
	"github.com/slok/rombot/internal/buildtool/shell"
	"github.com/slok/rombot/internal/log"
	"github.com/slok/rombot/internal/logtail"
	"github.com/slok/rombot/internal/model"
	"github.com/slok/rombot/internal/monitor"
	"github.com/slok/rombot/internal/notify/telegram"
	"github.com/slok/rombot/internal/printer"
	storageio "github.com/slok/rombot/internal/storage/io"
	"github.com/slok/rombot/internal/upload"
	"github.com/slok/rombot/internal/utils/env"
)

type BuildCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	skipSync bool
	poweroff bool
	envSpecs []string
	format   string
}

// NewBuildCommand returns the build command.
func NewBuildCommand(rootCmd *RootCommand, app *kingpin.Application) *BuildCommand {
	c := &BuildCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("build", "Run the full ROM build pipeline (sync, build, upload, report).")
	c.Cmd.Flag("skip-sync", "Skip the source sync step.").BoolVar(&c.skipSync)
	c.Cmd.Flag("poweroff", "Power off the machine after the final report (best effort).").BoolVar(&c.poweroff)
	c.Cmd.Flag("env", "Extra build environment variable (KEY=VALUE, or KEY to inherit from the host). Repeatable.").Short('e').StringsVar(&c.envSpecs)
	c.Cmd.Flag("format", "Output format (text, json).").Default("text").EnumVar(&c.format, "text", "json")

	return c
}

func (c BuildCommand) Name() string { return c.Cmd.FullCommand() }

func (c BuildCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	// Load the build profile.
	config, err := loadBuildConfig(ctx, c.rootCmd.ConfigPath)
	if err != nil {
		return fmt.Errorf("could not load build profile: %w", err)
	}

	// Parse extra build environment.
	extraEnv, err := env.ParseSpecs(c.envSpecs)
	if err != nil {
		return fmt.Errorf("invalid --env flag: %w", err)
	}

	// Telegram notifier.
	notifier, err := telegram.NewClient(telegram.ClientConfig{
		Token:  config.TelegramToken,
		ChatID: config.TelegramChatID,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("could not create telegram client: %w", err)
	}

	// Shell toolchain for sync and build.
	toolchain, err := newShellToolchain(config, extraEnv, c.rootCmd)
	if err != nil {
		return fmt.Errorf("could not create toolchain: %w", err)
	}

	// Log tailer and progress monitor.
	tailer, err := logtail.NewFileTailer(logtail.FileTailerConfig{Logger: logger})
	if err != nil {
		return fmt.Errorf("could not create log tailer: %w", err)
	}

	mon, err := monitor.NewService(monitor.ServiceConfig{
		Tailer:       tailer,
		Notifier:     notifier,
		LogPath:      config.LogPath,
		PollInterval: config.PollInterval,
		Logger:       logger,
	})
	if err != nil {
		return fmt.Errorf("could not create build monitor: %w", err)
	}

	// Hosting backends from the profile.
	uploaders, err := newUploaders(config, logger)
	if err != nil {
		return fmt.Errorf("could not create uploaders: %w", err)
	}

	// Create build run service.
	svc, err := buildrun.NewService(buildrun.ServiceConfig{
		Config:    config,
		Toolchain: toolchain,
		Monitor:   mon,
		Notifier:  notifier,
		Uploaders: uploaders,
		Logger:    logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	// Execute build.
	result, err := svc.Run(ctx, buildrun.Request{
		SkipSync: c.skipSync,
	})
	if err != nil {
		return fmt.Errorf("build run failed: %w", err)
	}

	// Print output.
	var p printer.Printer
	switch c.format {
	case "json":
		p = printer.NewJSONPrinter(c.rootCmd.Stdout)
	default: // text
		p = printer.NewTextPrinter(c.rootCmd.Stdout)
	}
	if err := p.PrintResult(*result); err != nil {
		return fmt.Errorf("could not print result: %w", err)
	}

	// The report has been delivered, a power off failure only gets a warning.
	if c.poweroff {
		logger.Infof("Powering off the machine")
		if err := exec.CommandContext(ctx, "poweroff").Run(); err != nil {
			logger.Warningf("Could not power off: %s", err)
		}
	}

	return nil
}

// loadBuildConfig loads and validates the YAML build profile.
func loadBuildConfig(ctx context.Context, path string) (model.BuildConfig, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return model.BuildConfig{}, fmt.Errorf("could not resolve config path: %w", err)
	}

	repo := storageio.NewConfigYAMLRepository(os.DirFS(filepath.Dir(abs)))
	return repo.GetConfig(ctx, filepath.Base(abs))
}

// newShellToolchain wires the profile's sync and build invocations into a
// host shell toolchain. Sync output goes to the terminal, build output goes
// to the profile's log file.
func newShellToolchain(config model.BuildConfig, extraEnv map[string]string, rootCmd *RootCommand) (*shell.Toolchain, error) {
	return shell.NewToolchain(shell.ToolchainConfig{
		SourceDir:    config.SourceDir,
		SyncCommand:  config.SyncCommand,
		BuildCommand: config.BuildCommand,
		LogPath:      config.LogPath,
		Env:          extraEnv,
		SyncOutput:   rootCmd.Stdout,
		Logger:       rootCmd.Logger,
	})
}

// newUploaders builds one uploader per backend listed in the profile.
func newUploaders(config model.BuildConfig, logger log.Logger) ([]buildrun.NamedUploader, error) {
	uploaders := make([]buildrun.NamedUploader, 0, len(config.UploadBackends))
	for _, backend := range config.UploadBackends {
		u, err := upload.NewUploader(backend, upload.BackendConfig{
			PixeldrainAPIKey: config.PixeldrainAPIKey,
			Logger:           logger,
		})
		if err != nil {
			return nil, fmt.Errorf("backend %q: %w", backend, err)
		}
		uploaders = append(uploaders, buildrun.NamedUploader{Name: backend, Uploader: u})
	}
	return uploaders, nil
}
