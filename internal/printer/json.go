package printer

import (
	"encoding/json"
	"io"
	"time"

	"github.com/slok/rombot/internal/model"
)

// JSONPrinter prints build information in JSON format.
type JSONPrinter struct {
	writer io.Writer
}

// NewJSONPrinter creates a new JSON printer.
func NewJSONPrinter(w io.Writer) *JSONPrinter {
	return &JSONPrinter{writer: w}
}

// progressOutput represents a one-shot progress snapshot output.
type progressOutput struct {
	Progress     string `json:"progress"`
	Initializing bool   `json:"initializing"`
}

// resultOutput represents the final build summary output.
type resultOutput struct {
	ROM            string          `json:"rom"`
	Device         string          `json:"device"`
	AndroidVersion string          `json:"android_version"`
	BuildType      string          `json:"build_type"`
	Maintainer     string          `json:"maintainer"`
	StartedAt      time.Time       `json:"started_at"`
	Duration       string          `json:"duration"`
	Artifact       *artifactOutput `json:"artifact,omitempty"`
	Links          []linkOutput    `json:"links"`
}

// artifactOutput represents the produced artifact output.
type artifactOutput struct {
	Path      string `json:"path"`
	SizeBytes int64  `json:"size_bytes"`
	SHA256    string `json:"sha256"`
}

// linkOutput represents an upload link output.
type linkOutput struct {
	Backend string `json:"backend"`
	URL     string `json:"url"`
}

// messageOutput represents a simple message output.
type messageOutput struct {
	Message string `json:"message"`
}

// PrintProgress prints a progress snapshot in JSON format.
func (j *JSONPrinter) PrintProgress(snapshot model.ProgressSnapshot) error {
	return j.encode(progressOutput{
		Progress:     snapshot.String(),
		Initializing: snapshot.Initializing(),
	})
}

// PrintResult prints the final build summary in JSON format.
func (j *JSONPrinter) PrintResult(result model.BuildResult) error {
	s := result.Session

	out := resultOutput{
		ROM:            s.ROMName,
		Device:         s.Device,
		AndroidVersion: s.AndroidVersion,
		BuildType:      string(s.BuildType),
		Maintainer:     s.Maintainer,
		StartedAt:      s.StartedAt,
		Duration:       FormatDuration(result.Duration),
		Links:          []linkOutput{},
	}

	if result.Artifact != nil {
		out.Artifact = &artifactOutput{
			Path:      result.Artifact.Path,
			SizeBytes: result.Artifact.SizeBytes,
			SHA256:    result.Artifact.SHA256,
		}
	}
	for _, link := range result.Links {
		out.Links = append(out.Links, linkOutput{Backend: link.Backend, URL: link.URL})
	}

	return j.encode(out)
}

// PrintMessage prints a simple message in JSON format.
func (j *JSONPrinter) PrintMessage(msg string) error {
	return j.encode(messageOutput{Message: msg})
}

func (j *JSONPrinter) encode(v interface{}) error {
	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
