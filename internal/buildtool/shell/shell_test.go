package shell_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/rombot/internal/buildtool/shell"
)

func waitDone(t *testing.T, done <-chan error) error {
	t.Helper()

	select {
	case err := <-done:
		return err
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for the build task to exit")
		return nil
	}
}

func TestToolchainStartBuild(t *testing.T) {
	tests := map[string]struct {
		command   []string
		expLog    string
		expRunErr bool
	}{
		"The build output should be redirected to the log file": {
			command: []string{"sh", "-c", "echo '[ 46% 122/260] compiling' && echo '#### build completed successfully ####'"},
			expLog:  "[ 46% 122/260] compiling\n#### build completed successfully ####\n",
		},

		"Stderr should land in the same log file": {
			command: []string{"sh", "-c", "echo out && echo err 1>&2"},
			expLog:  "out\nerr\n",
		},

		"A non zero exit should be delivered on the done channel": {
			command:   []string{"sh", "-c", "echo boom && exit 3"},
			expLog:    "boom\n",
			expRunErr: true,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			logPath := filepath.Join(t.TempDir(), "build.log")

			toolchain, err := shell.NewToolchain(shell.ToolchainConfig{
				BuildCommand: tc.command,
				LogPath:      logPath,
			})
			require.NoError(t, err)

			done, err := toolchain.StartBuild(context.Background())
			require.NoError(t, err)

			runErr := waitDone(t, done)
			if tc.expRunErr {
				assert.Error(t, runErr)
			} else {
				assert.NoError(t, runErr)
			}

			data, err := os.ReadFile(logPath)
			require.NoError(t, err)
			assert.Equal(t, tc.expLog, string(data))
		})
	}
}

func TestToolchainSync(t *testing.T) {
	tests := map[string]struct {
		command   []string
		env       map[string]string
		expOutput string
		expErr    bool
	}{
		"A successful sync should stream its output": {
			command:   []string{"sh", "-c", "echo syncing"},
			expOutput: "syncing\n",
		},

		"Extra env should reach the tool": {
			command:   []string{"sh", "-c", "echo $ROMBOT_TEST_VAR"},
			env:       map[string]string{"ROMBOT_TEST_VAR": "hello"},
			expOutput: "hello\n",
		},

		"A failing sync should return an error": {
			command: []string{"sh", "-c", "exit 1"},
			expErr:  true,
		},

		"No sync command should be a no-op": {
			command:   nil,
			expOutput: "",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer

			toolchain, err := shell.NewToolchain(shell.ToolchainConfig{
				SyncCommand:  tc.command,
				BuildCommand: []string{"true"},
				LogPath:      filepath.Join(t.TempDir(), "build.log"),
				Env:          tc.env,
				SyncOutput:   &out,
			})
			require.NoError(t, err)

			err = toolchain.Sync(context.Background())
			if tc.expErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expOutput, out.String())
		})
	}
}
