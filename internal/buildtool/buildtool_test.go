package buildtool_test

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/rombot/internal/buildtool"
	"github.com/slok/rombot/internal/model"
)

func TestCompletedSuccessfully(t *testing.T) {
	tests := map[string]struct {
		log    string
		noFile bool
		exp    bool
	}{
		"A log with the success marker should classify as success": {
			log: "[100% 260/260] target Package\n#### build completed successfully (01:02:03 (hh:mm:ss)) ####\n",
			exp: true,
		},

		"The marker position should not matter": {
			log: "#### build completed successfully ####\ntrailing noise\n",
			exp: true,
		},

		"A log without the marker should classify as failure even at high progress": {
			log: "[ 99% 259/260] target C++: libfoo\nninja: build stopped: subcommand failed.\n",
			exp: false,
		},

		"A missing log should classify as failure": {
			noFile: true,
			exp:    false,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			logPath := filepath.Join(t.TempDir(), "build.log")
			if !tc.noFile {
				require.NoError(t, os.WriteFile(logPath, []byte(tc.log), 0o644))
			}

			assert.Equal(t, tc.exp, buildtool.CompletedSuccessfully(logPath))
		})
	}
}

func TestFindArtifact(t *testing.T) {
	tests := map[string]struct {
		files       map[string]string
		expName     string
		expSize     int64
		expNotFound bool
	}{
		"An empty output dir should return the no artifact sentinel": {
			files:       map[string]string{},
			expNotFound: true,
		},

		"Non zip files should not count as artifacts": {
			files:       map[string]string{"boot.img": "img-bytes", "build.prop": "props"},
			expNotFound: true,
		},

		"A single zip should be returned with size and checksum": {
			files:   map[string]string{"rom-vayu-20260831.zip": "zip-bytes"},
			expName: "rom-vayu-20260831.zip",
			expSize: 9,
		},

		"The newest of several zips should win": {
			files: map[string]string{
				"rom-vayu-20260830.zip": "old-build",
				"rom-vayu-20260831.zip": "new-build!",
			},
			expName: "rom-vayu-20260831.zip",
			expSize: 10,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			// Write in lexical order with increasing mtimes so "newest" is
			// deterministic.
			names := make([]string, 0, len(tc.files))
			for f := range tc.files {
				names = append(names, f)
			}
			sort.Strings(names)
			now := time.Now().Add(-time.Hour)
			for i, f := range names {
				path := filepath.Join(dir, f)
				require.NoError(t, os.WriteFile(path, []byte(tc.files[f]), 0o644))
				mtime := now.Add(time.Duration(i) * time.Minute)
				require.NoError(t, os.Chtimes(path, mtime, mtime))
			}

			artifact, err := buildtool.FindArtifact(dir)
			if tc.expNotFound {
				require.Error(t, err)
				assert.True(t, errors.Is(err, model.ErrNoArtifact))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, tc.expName), artifact.Path)
			assert.Equal(t, tc.expSize, artifact.SizeBytes)
			assert.Len(t, artifact.SHA256, 64)
		})
	}
}
