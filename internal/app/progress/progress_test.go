package progress_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/rombot/internal/app/progress"
	"github.com/slok/rombot/internal/logtail/logtailmock"
	"github.com/slok/rombot/internal/model"
)

func TestServiceRun(t *testing.T) {
	tests := map[string]struct {
		req     progress.Request
		mockRet model.ProgressSnapshot
		expRaw  string
		expErr  bool
	}{
		"A log with progress should return the snapshot.": {
			req:     progress.Request{LogPath: "/tmp/build.log"},
			mockRet: model.NewProgressSnapshot(46, 122, 260),
			expRaw:  "46% (122/260)",
		},

		"A log without progress should return the sentinel.": {
			req:     progress.Request{LogPath: "/tmp/build.log"},
			mockRet: model.InitializingSnapshot(),
			expRaw:  "Initializing...",
		},

		"A missing log path should fail.": {
			req:    progress.Request{},
			expErr: true,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			tailer := logtailmock.NewMockTailer(t)
			if tc.req.LogPath != "" {
				tailer.On("FetchProgress", tc.req.LogPath).Once().Return(tc.mockRet)
			}

			svc, err := progress.NewService(progress.ServiceConfig{Tailer: tailer})
			require.NoError(t, err)

			got, err := svc.Run(context.Background(), tc.req)
			if tc.expErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expRaw, got.String())
		})
	}
}
