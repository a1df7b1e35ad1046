package uploadfile_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/slok/rombot/internal/app/uploadfile"
	"github.com/slok/rombot/internal/model"
	"github.com/slok/rombot/internal/upload/uploadmock"
)

func TestServiceRun(t *testing.T) {
	tests := map[string]struct {
		missingFile    bool
		mockURL        string
		mockErr        error
		expURL         string
		expErr         bool
		expUploadError bool
	}{
		"A successful upload should return the URL.": {
			mockURL: "https://pixeldrain.com/u/abCD12ef",
			expURL:  "https://pixeldrain.com/u/abCD12ef",
		},

		"A missing file should fail without calling the backend.": {
			missingFile: true,
			expErr:      true,
		},

		"A degraded backend should propagate the upload failed sentinel.": {
			mockErr:        fmt.Errorf("no id: %w", model.ErrUploadFailed),
			expErr:         true,
			expUploadError: true,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			filePath := filepath.Join(t.TempDir(), "rom.zip")
			if !tc.missingFile {
				require.NoError(t, os.WriteFile(filePath, []byte("zip-bytes"), 0o644))
			}

			uploader := uploadmock.NewMockUploader(t)
			if !tc.missingFile {
				uploader.On("Upload", mock.Anything, filePath).Once().Return(tc.mockURL, tc.mockErr)
			}

			svc, err := uploadfile.NewService(uploadfile.ServiceConfig{Uploader: uploader})
			require.NoError(t, err)

			url, err := svc.Run(context.Background(), uploadfile.Request{FilePath: filePath})
			if tc.expErr {
				require.Error(t, err)
				assert.Equal(t, tc.expUploadError, errors.Is(err, model.ErrUploadFailed))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expURL, url)
		})
	}
}
