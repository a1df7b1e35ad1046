package printer

import (
	"fmt"
	"io"

	"github.com/slok/rombot/internal/model"
)

// TextPrinter prints build information as plain text.
type TextPrinter struct {
	writer io.Writer
}

// NewTextPrinter creates a new text printer.
func NewTextPrinter(w io.Writer) *TextPrinter {
	return &TextPrinter{writer: w}
}

// PrintProgress prints a one-shot progress snapshot.
func (t *TextPrinter) PrintProgress(snapshot model.ProgressSnapshot) error {
	fmt.Fprintf(t.writer, "%s\n", snapshot)
	return nil
}

// PrintResult prints the final build summary.
func (t *TextPrinter) PrintResult(result model.BuildResult) error {
	s := result.Session

	fmt.Fprintf(t.writer, "ROM:        %s\n", s.ROMName)
	fmt.Fprintf(t.writer, "Device:     %s\n", s.Device)
	fmt.Fprintf(t.writer, "Android:    %s\n", s.AndroidVersion)
	fmt.Fprintf(t.writer, "Type:       %s\n", s.BuildType)
	fmt.Fprintf(t.writer, "Maintainer: %s\n", s.Maintainer)
	fmt.Fprintf(t.writer, "Started:    %s\n", FormatTimestamp(s.StartedAt))
	fmt.Fprintf(t.writer, "Duration:   %s\n", FormatDuration(result.Duration))

	if result.Artifact != nil {
		fmt.Fprintf(t.writer, "Artifact:   %s\n", result.Artifact.Path)
		fmt.Fprintf(t.writer, "Size:       %s\n", FormatBytes(result.Artifact.SizeBytes))
		fmt.Fprintf(t.writer, "SHA-256:    %s\n", result.Artifact.SHA256)
	}

	for _, link := range result.Links {
		fmt.Fprintf(t.writer, "Download:   %s (%s)\n", link.URL, link.Backend)
	}

	return nil
}

// PrintMessage prints a simple message.
func (t *TextPrinter) PrintMessage(msg string) error {
	fmt.Fprintf(t.writer, "%s\n", msg)
	return nil
}
