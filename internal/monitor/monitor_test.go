package monitor_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/slok/rombot/internal/logtail/logtailmock"
	"github.com/slok/rombot/internal/model"
	"github.com/slok/rombot/internal/monitor"
	"github.com/slok/rombot/internal/notify/notifymock"
)

const testLogPath = "/tmp/rombot-test-build.log"

func testSession() model.BuildSession {
	return model.BuildSession{
		ID:             "01JX3Y",
		ROMName:        "crDroid",
		Device:         "vayu",
		AndroidVersion: "14",
		BuildType:      model.BuildTypeUnofficial,
		Maintainer:     "slok",
		StartedAt:      time.Now(),
		MessageID:      "42",
	}
}

func captionWith(progress string) interface{} {
	return mock.MatchedBy(func(caption string) bool {
		return strings.Contains(caption, progress)
	})
}

func newTestService(t *testing.T, tailer *logtailmock.MockTailer, notifier *notifymock.MockNotifier) *monitor.Service {
	t.Helper()

	svc, err := monitor.NewService(monitor.ServiceConfig{
		Tailer:       tailer,
		Notifier:     notifier,
		LogPath:      testLogPath,
		PollInterval: 5 * time.Millisecond,
	})
	require.NoError(t, err)

	return svc
}

// finishAfter closes the build done channel once the given number of polls
// happened, so tests end deterministically.
func finishAfter(tailer *logtailmock.MockTailer, snapshots []model.ProgressSnapshot, buildErr error) <-chan error {
	done := make(chan error, 1)

	for i, s := range snapshots {
		call := tailer.On("FetchProgress", testLogPath).Once().Return(s)
		if i == len(snapshots)-1 {
			call.Run(func(mock.Arguments) {
				if buildErr != nil {
					done <- buildErr
				}
				close(done)
			})
		}
	}

	// The ticker can race the done channel for one extra poll, repeating the
	// last snapshot keeps that poll edit-free.
	tailer.On("FetchProgress", testLogPath).Maybe().Return(snapshots[len(snapshots)-1])

	return done
}

func TestServiceRun(t *testing.T) {
	tests := map[string]struct {
		snapshots []model.ProgressSnapshot
		mockEdits func(m *notifymock.MockNotifier)
		buildErr  error
		expRunErr bool
	}{
		"Polls stuck on the initializing sentinel should make no network call": {
			snapshots: []model.ProgressSnapshot{
				model.InitializingSnapshot(),
				model.InitializingSnapshot(),
				model.InitializingSnapshot(),
			},
			mockEdits: func(m *notifymock.MockNotifier) {},
		},

		"A transition from initializing to a real marker should emit exactly one edit": {
			snapshots: []model.ProgressSnapshot{
				model.InitializingSnapshot(),
				model.NewProgressSnapshot(46, 122, 260),
				model.NewProgressSnapshot(46, 122, 260),
			},
			mockEdits: func(m *notifymock.MockNotifier) {
				m.On("EditCaption", mock.Anything, "42", captionWith("46% (122/260)")).Once().Return(nil)
			},
		},

		"Each transition between real markers should emit exactly one edit": {
			snapshots: []model.ProgressSnapshot{
				model.NewProgressSnapshot(45, 120, 260),
				model.NewProgressSnapshot(45, 120, 260),
				model.NewProgressSnapshot(46, 122, 260),
				model.NewProgressSnapshot(46, 122, 260),
			},
			mockEdits: func(m *notifymock.MockNotifier) {
				m.On("EditCaption", mock.Anything, "42", captionWith("45% (120/260)")).Once().Return(nil)
				m.On("EditCaption", mock.Anything, "42", captionWith("46% (122/260)")).Once().Return(nil)
			},
		},

		"A failed edit should not stop the loop nor be retried for the same snapshot": {
			snapshots: []model.ProgressSnapshot{
				model.NewProgressSnapshot(45, 120, 260),
				model.NewProgressSnapshot(45, 120, 260),
				model.NewProgressSnapshot(46, 122, 260),
			},
			mockEdits: func(m *notifymock.MockNotifier) {
				m.On("EditCaption", mock.Anything, "42", captionWith("45% (120/260)")).Once().Return(fmt.Errorf("flood control"))
				m.On("EditCaption", mock.Anything, "42", captionWith("46% (122/260)")).Once().Return(nil)
			},
		},

		"The build task's failure should be returned to the caller": {
			snapshots: []model.ProgressSnapshot{
				model.InitializingSnapshot(),
			},
			mockEdits: func(m *notifymock.MockNotifier) {},
			buildErr:  fmt.Errorf("build tool failed: exit status 1"),
			expRunErr: true,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			tailer := logtailmock.NewMockTailer(t)
			notifier := notifymock.NewMockNotifier(t)
			tc.mockEdits(notifier)

			done := finishAfter(tailer, tc.snapshots, tc.buildErr)

			svc := newTestService(t, tailer, notifier)

			err := svc.Run(context.Background(), testSession(), done)
			if tc.expRunErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestServiceRunCancellation(t *testing.T) {
	t.Run("A cancelled context should stop the loop with its error", func(t *testing.T) {
		tailer := logtailmock.NewMockTailer(t)
		tailer.On("FetchProgress", testLogPath).Maybe().Return(model.InitializingSnapshot())
		notifier := notifymock.NewMockNotifier(t)

		svc := newTestService(t, tailer, notifier)

		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			time.Sleep(20 * time.Millisecond)
			cancel()
		}()

		err := svc.Run(ctx, testSession(), make(chan error))
		assert.ErrorIs(t, err, context.Canceled)
	})
}
