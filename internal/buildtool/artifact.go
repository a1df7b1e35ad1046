package buildtool

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/slok/rombot/internal/model"
)

// FindArtifact returns the newest flashable zip in the build output directory
// with its size and SHA-256 checksum. When there is no zip it returns
// model.ErrNoArtifact: the build may have "succeeded" by the log marker and
// still not have packaged anything.
func FindArtifact(outputDir string) (*model.Artifact, error) {
	matches, err := filepath.Glob(filepath.Join(outputDir, "*.zip"))
	if err != nil {
		return nil, fmt.Errorf("could not glob output dir: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no zip in %s: %w", outputDir, model.ErrNoArtifact)
	}

	// Intermediate zips (e.g. ota tools) can match too, take the newest one.
	var newest string
	var newestMod int64
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			continue
		}
		if newest == "" || info.ModTime().UnixNano() > newestMod {
			newest = m
			newestMod = info.ModTime().UnixNano()
		}
	}
	if newest == "" {
		return nil, fmt.Errorf("no readable zip in %s: %w", outputDir, model.ErrNoArtifact)
	}

	info, err := os.Stat(newest)
	if err != nil {
		return nil, fmt.Errorf("could not stat artifact: %w", err)
	}

	sum, err := checksumFile(newest)
	if err != nil {
		return nil, fmt.Errorf("could not checksum artifact: %w", err)
	}

	return &model.Artifact{
		Path:      newest,
		SizeBytes: info.Size(),
		SHA256:    sum,
	}, nil
}

func checksumFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
