package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/rombot/internal/app/progress"
	"github.com/slok/rombot/internal/logtail"
	"github.com/slok/rombot/internal/printer"
)

type ProgressCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	logPath string
	format  string
}

// NewProgressCommand returns the progress command.
func NewProgressCommand(rootCmd *RootCommand, app *kingpin.Application) *ProgressCommand {
	c := &ProgressCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("progress", "Read the current build progress from a build log.")
	c.Cmd.Arg("logfile", "Path of the build log file.").Required().StringVar(&c.logPath)
	c.Cmd.Flag("format", "Output format (text, json).").Default("text").EnumVar(&c.format, "text", "json")

	return c
}

func (c ProgressCommand) Name() string { return c.Cmd.FullCommand() }

func (c ProgressCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	tailer, err := logtail.NewFileTailer(logtail.FileTailerConfig{Logger: logger})
	if err != nil {
		return fmt.Errorf("could not create log tailer: %w", err)
	}

	svc, err := progress.NewService(progress.ServiceConfig{
		Tailer: tailer,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	snapshot, err := svc.Run(ctx, progress.Request{
		LogPath: c.logPath,
	})
	if err != nil {
		return fmt.Errorf("could not read progress: %w", err)
	}

	// Print output.
	var p printer.Printer
	switch c.format {
	case "json":
		p = printer.NewJSONPrinter(c.rootCmd.Stdout)
	default: // text
		p = printer.NewTextPrinter(c.rootCmd.Stdout)
	}
	if err := p.PrintProgress(snapshot); err != nil {
		return fmt.Errorf("could not print progress: %w", err)
	}

	return nil
}
