package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/rombot/internal/app/uploadfile"
	"github.com/slok/rombot/internal/printer"
	"github.com/slok/rombot/internal/upload"
)

type UploadCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	filePath         string
	backend          string
	pixeldrainAPIKey string
	format           string
}

// NewUploadCommand returns the upload command.
func NewUploadCommand(rootCmd *RootCommand, app *kingpin.Application) *UploadCommand {
	c := &UploadCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("upload", "Upload a single file to a hosting backend and print its public URL.")
	c.Cmd.Arg("file", "Path of the file to upload.").Required().StringVar(&c.filePath)
	c.Cmd.Flag("backend", fmt.Sprintf("Hosting backend (%s).", strings.Join(upload.KnownBackends(), ", "))).Default(upload.BackendPixeldrain).EnumVar(&c.backend, upload.KnownBackends()...)
	c.Cmd.Flag("pixeldrain-api-key", "API key for the pixeldrain backend.").StringVar(&c.pixeldrainAPIKey)
	c.Cmd.Flag("format", "Output format (text, json).").Default("text").EnumVar(&c.format, "text", "json")

	return c
}

func (c UploadCommand) Name() string { return c.Cmd.FullCommand() }

func (c UploadCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	uploader, err := upload.NewUploader(c.backend, upload.BackendConfig{
		PixeldrainAPIKey: c.pixeldrainAPIKey,
		Logger:           logger,
	})
	if err != nil {
		return fmt.Errorf("could not create uploader: %w", err)
	}

	svc, err := uploadfile.NewService(uploadfile.ServiceConfig{
		Uploader: uploader,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	url, err := svc.Run(ctx, uploadfile.Request{
		FilePath: c.filePath,
	})
	if err != nil {
		return fmt.Errorf("could not upload file: %w", err)
	}

	// Print output.
	var p printer.Printer
	switch c.format {
	case "json":
		p = printer.NewJSONPrinter(c.rootCmd.Stdout)
	default: // text
		p = printer.NewTextPrinter(c.rootCmd.Stdout)
	}
	if err := p.PrintMessage(url); err != nil {
		return fmt.Errorf("could not print url: %w", err)
	}

	return nil
}
