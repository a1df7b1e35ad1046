package printer

import "github.com/slok/rombot/internal/model"

// Printer knows how to print build information in different formats.
type Printer interface {
	PrintProgress(snapshot model.ProgressSnapshot) error
	PrintResult(result model.BuildResult) error
	PrintMessage(msg string) error
}
