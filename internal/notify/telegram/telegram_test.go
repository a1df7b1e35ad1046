package telegram_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/rombot/internal/notify/telegram"
)

func newTestClient(t *testing.T, handler http.Handler) *telegram.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := telegram.NewClientWithBaseURL(telegram.ClientConfig{
		Token:  "123:abc",
		ChatID: "-1000",
	}, server.URL)
	require.NoError(t, err)

	return client
}

func TestClientSendPhoto(t *testing.T) {
	tests := map[string]struct {
		handler http.HandlerFunc
		expID   string
		expErr  bool
	}{
		"A successful send should return the message id of the new card": {
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/bot123:abc/sendPhoto", r.URL.Path)

				require.NoError(t, r.ParseMultipartForm(1<<20))
				assert.Equal(t, "-1000", r.FormValue("chat_id"))
				assert.Equal(t, "Initializing...", r.FormValue("caption"))
				_, _, err := r.FormFile("photo")
				assert.NoError(t, err)

				fmt.Fprint(w, `{"ok":true,"result":{"message_id":42}}`)
			},
			expID: "42",
		},

		"An API rejection should fail": {
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"ok":false,"description":"chat not found"}`)
			},
			expErr: true,
		},

		"A garbage response should fail": {
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `<html>gateway error</html>`)
			},
			expErr: true,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			photoPath := filepath.Join(t.TempDir(), "banner.png")
			require.NoError(t, os.WriteFile(photoPath, []byte("png-bytes"), 0o644))

			client := newTestClient(t, tc.handler)

			id, err := client.SendPhoto(context.Background(), photoPath, "Initializing...")
			if tc.expErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expID, id)
		})
	}
}

func TestClientEditCaption(t *testing.T) {
	tests := map[string]struct {
		handler http.HandlerFunc
		expErr  bool
	}{
		"A successful edit should not fail": {
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/bot123:abc/editMessageCaption", r.URL.Path)

				require.NoError(t, r.ParseForm())
				assert.Equal(t, "-1000", r.FormValue("chat_id"))
				assert.Equal(t, "42", r.FormValue("message_id"))
				assert.Equal(t, "46% (122/260)", r.FormValue("caption"))

				fmt.Fprint(w, `{"ok":true,"result":true}`)
			},
		},

		"An API rejection should fail": {
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"ok":false,"description":"message is not modified"}`)
			},
			expErr: true,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			client := newTestClient(t, tc.handler)

			err := client.EditCaption(context.Background(), "42", "46% (122/260)")
			if tc.expErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestClientSendSticker(t *testing.T) {
	t.Run("The sticker should be fetched from its URL and uploaded", func(t *testing.T) {
		var uploaded string

		mux := http.NewServeMux()
		mux.HandleFunc("/sticker.webp", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "webp-bytes")
		})
		mux.HandleFunc("/bot123:abc/sendSticker", func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseMultipartForm(1<<20))
			f, _, err := r.FormFile("sticker")
			require.NoError(t, err)
			defer f.Close()

			data, err := io.ReadAll(f)
			require.NoError(t, err)
			uploaded = string(data)

			fmt.Fprint(w, `{"ok":true,"result":{"message_id":43}}`)
		})

		server := httptest.NewServer(mux)
		t.Cleanup(server.Close)

		client, err := telegram.NewClientWithBaseURL(telegram.ClientConfig{
			Token:  "123:abc",
			ChatID: "-1000",
		}, server.URL)
		require.NoError(t, err)

		err = client.SendSticker(context.Background(), server.URL+"/sticker.webp")
		require.NoError(t, err)
		assert.Equal(t, "webp-bytes", uploaded)
	})

	t.Run("A failing sticker download should fail without uploading", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))

		err := client.SendSticker(context.Background(), "http://127.0.0.1:1/sticker.webp")
		assert.Error(t, err)
	})
}
