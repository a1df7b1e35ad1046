package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/rombot/internal/utils/env"
)

type SyncCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	envSpecs []string
}

// NewSyncCommand returns the sync command.
func NewSyncCommand(rootCmd *RootCommand, app *kingpin.Application) *SyncCommand {
	c := &SyncCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("sync", "Run only the source sync step of the build profile.")
	c.Cmd.Flag("env", "Extra sync environment variable (KEY=VALUE, or KEY to inherit from the host). Repeatable.").Short('e').StringsVar(&c.envSpecs)

	return c
}

func (c SyncCommand) Name() string { return c.Cmd.FullCommand() }

func (c SyncCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	// Load the build profile.
	config, err := loadBuildConfig(ctx, c.rootCmd.ConfigPath)
	if err != nil {
		return fmt.Errorf("could not load build profile: %w", err)
	}

	// Parse extra sync environment.
	extraEnv, err := env.ParseSpecs(c.envSpecs)
	if err != nil {
		return fmt.Errorf("invalid --env flag: %w", err)
	}

	toolchain, err := newShellToolchain(config, extraEnv, c.rootCmd)
	if err != nil {
		return fmt.Errorf("could not create toolchain: %w", err)
	}

	logger.Infof("Syncing sources in %s", config.SourceDir)
	if err := toolchain.Sync(ctx); err != nil {
		return fmt.Errorf("source sync failed: %w", err)
	}

	fmt.Fprintf(c.rootCmd.Stdout, "Sources synced successfully.\n")

	return nil
}
