package shell

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/slok/rombot/internal/log"
)

// ToolchainConfig is the configuration for the shell toolchain.
type ToolchainConfig struct {
	// SourceDir is the working directory for all tool invocations.
	SourceDir string
	// SyncCommand is the source-sync tool invocation (e.g. repo sync ...).
	SyncCommand []string
	// BuildCommand is the build tool invocation.
	BuildCommand []string
	// LogPath receives the build tool's combined output.
	LogPath string
	// Env is extra environment injected into tool invocations on top of the
	// current process environment.
	Env map[string]string
	// SyncOutput receives the sync tool's combined output.
	SyncOutput io.Writer
	// Logger for logging.
	Logger log.Logger
}

func (c *ToolchainConfig) defaults() error {
	if len(c.BuildCommand) == 0 {
		return fmt.Errorf("build command is required")
	}
	if c.LogPath == "" {
		return fmt.Errorf("build log path is required")
	}
	if c.SyncOutput == nil {
		c.SyncOutput = os.Stdout
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "shell.Toolchain"})
	return nil
}

// Toolchain runs the sync and build tools as host shell-outs.
type Toolchain struct {
	sourceDir    string
	syncCommand  []string
	buildCommand []string
	logPath      string
	env          []string
	syncOutput   io.Writer
	logger       log.Logger
}

// NewToolchain creates a new shell toolchain.
func NewToolchain(cfg ToolchainConfig) (*Toolchain, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	env := os.Environ()
	for k, v := range cfg.Env {
		env = append(env, fmt.Sprintf("%s=%s", k, v))
	}

	return &Toolchain{
		sourceDir:    cfg.SourceDir,
		syncCommand:  cfg.SyncCommand,
		buildCommand: cfg.BuildCommand,
		logPath:      cfg.LogPath,
		env:          env,
		syncOutput:   cfg.SyncOutput,
		logger:       cfg.Logger,
	}, nil
}

// Sync runs the source-sync tool and blocks until it exits.
func (t *Toolchain) Sync(ctx context.Context) error {
	if len(t.syncCommand) == 0 {
		t.logger.Debugf("No sync command configured, skipping")
		return nil
	}

	t.logger.Infof("Syncing sources: %v", t.syncCommand)

	cmd := exec.CommandContext(ctx, t.syncCommand[0], t.syncCommand[1:]...)
	cmd.Dir = t.sourceDir
	cmd.Env = t.env
	cmd.Stdout = t.syncOutput
	cmd.Stderr = t.syncOutput

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("sync tool failed: %w", err)
	}

	return nil
}

// StartBuild launches the build tool detached, redirecting its combined output
// to the build log file. The build's exit result is delivered once on the
// returned channel.
func (t *Toolchain) StartBuild(ctx context.Context) (<-chan error, error) {
	logFile, err := os.Create(t.logPath)
	if err != nil {
		return nil, fmt.Errorf("could not create build log: %w", err)
	}

	cmd := exec.CommandContext(ctx, t.buildCommand[0], t.buildCommand[1:]...)
	cmd.Dir = t.sourceDir
	cmd.Env = t.env
	cmd.Stdout = logFile
	cmd.Stderr = logFile

	if err := cmd.Start(); err != nil {
		logFile.Close()
		return nil, fmt.Errorf("could not start build tool: %w", err)
	}

	t.logger.Infof("Build started (pid %d), logging to %s", cmd.Process.Pid, t.logPath)

	done := make(chan error, 1)
	go func() {
		defer close(done)
		defer logFile.Close()

		err := cmd.Wait()
		if err != nil {
			done <- fmt.Errorf("build tool failed: %w", err)
		}
	}()

	return done, nil
}
