package logtail

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/slok/rombot/internal/log"
	"github.com/slok/rombot/internal/model"
)

const (
	// tailLines is how many lines from the end of the log are scanned for a
	// progress marker.
	tailLines = 30
	// tailWindowBytes bounds the read from the file end so a huge build log is
	// never rescanned whole on every poll.
	tailWindowBytes = 64 * 1024
)

// Build tools print markers like "46% 122/260", often nested between other
// output. The last complete match in the window wins.
var progressMarkerRegexp = regexp.MustCompile(`(\d+)% (\d+)/(\d+)`)

// Tailer extracts the most recent progress marker from a build log.
type Tailer interface {
	FetchProgress(logPath string) model.ProgressSnapshot
}

// FileTailerConfig is the configuration for the file tailer.
type FileTailerConfig struct {
	Logger log.Logger
}

func (c *FileTailerConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "logtail.FileTailer"})
	return nil
}

// FileTailer reads the tail of a growing build log file.
type FileTailer struct {
	logger log.Logger
}

// NewFileTailer creates a new file tailer.
func NewFileTailer(cfg FileTailerConfig) (*FileTailer, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &FileTailer{logger: cfg.Logger}, nil
}

// FetchProgress returns the last progress marker in the final lines of the log,
// or the initializing sentinel when there is none yet. It never fails: the log
// may not exist at the first polls, and a partially written final line simply
// doesn't match until the next poll.
func (t *FileTailer) FetchProgress(logPath string) model.ProgressSnapshot {
	window, err := readTail(logPath, tailWindowBytes)
	if err != nil {
		t.logger.Debugf("Could not read build log %s: %s", logPath, err)
		return model.InitializingSnapshot()
	}

	lines := strings.Split(window, "\n")
	if len(lines) > tailLines {
		lines = lines[len(lines)-tailLines:]
	}

	var last []string
	for _, line := range lines {
		matches := progressMarkerRegexp.FindAllStringSubmatch(line, -1)
		if len(matches) > 0 {
			last = matches[len(matches)-1]
		}
	}
	if last == nil {
		return model.InitializingSnapshot()
	}

	// The regexp only matches digits, Atoi can't fail here.
	percent, _ := strconv.Atoi(last[1])
	done, _ := strconv.Atoi(last[2])
	total, _ := strconv.Atoi(last[3])

	return model.NewProgressSnapshot(percent, done, total)
}

// readTail returns at most the last maxBytes of the file as a string.
func readTail(path string, maxBytes int64) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("could not open log: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("could not stat log: %w", err)
	}

	offset := info.Size() - maxBytes
	if offset < 0 {
		offset = 0
	}
	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		return "", fmt.Errorf("could not seek log: %w", err)
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("could not read log: %w", err)
	}

	window := string(data)

	// The window start can land mid-line and a cut marker would parse with a
	// wrong percent, drop the partial first line.
	if offset > 0 {
		if i := strings.IndexByte(window, '\n'); i >= 0 {
			window = window[i+1:]
		}
	}

	return window, nil
}
