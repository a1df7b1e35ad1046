package upload

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/slok/rombot/internal/log"
	"github.com/slok/rombot/internal/model"
)

const defaultGofileAPIBase = "https://api.gofile.io"

// Gofile uploads files to gofile.io. The API picks a storage server first and
// the file is uploaded there.
type Gofile struct {
	httpClient *http.Client
	logger     log.Logger

	// Base URLs (overridable for testing). When uploadBaseURL is empty the
	// upload goes to the server name returned by the API.
	apiBaseURL    string
	uploadBaseURL string
}

// NewGofile creates a new gofile uploader.
func NewGofile(cfg BackendConfig) (*Gofile, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Gofile{
		httpClient: cfg.HTTPClient,
		logger:     cfg.Logger.WithValues(log.Kv{"svc": "upload.Gofile"}),
		apiBaseURL: defaultGofileAPIBase,
	}, nil
}

// NewGofileWithBaseURL creates an uploader with custom base URLs (for testing).
func NewGofileWithBaseURL(cfg BackendConfig, apiBaseURL, uploadBaseURL string) (*Gofile, error) {
	u, err := NewGofile(cfg)
	if err != nil {
		return nil, err
	}
	u.apiBaseURL = apiBaseURL
	u.uploadBaseURL = uploadBaseURL
	return u, nil
}

// --- JSON wire types (private, gofile API responses) ---

type gofileServersJSON struct {
	Status string `json:"status"`
	Data   struct {
		Servers []struct {
			Name string `json:"name"`
		} `json:"servers"`
	} `json:"data"`
}

type gofileUploadJSON struct {
	Status string `json:"status"`
	Data   struct {
		DownloadPage string `json:"downloadPage"`
	} `json:"data"`
}

// Upload streams the file to gofile and returns the download page URL.
func (g *Gofile) Upload(ctx context.Context, filePath string) (string, error) {
	server, err := g.pickServer(ctx)
	if err != nil {
		return "", err
	}

	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("could not open file: %w", err)
	}
	defer f.Close()

	// Artifact zips do not fit in memory, the multipart body is streamed
	// through a pipe while the request reads it.
	pr, pw := io.Pipe()
	w := multipart.NewWriter(pw)
	go func() {
		fw, err := w.CreateFormFile("file", filepath.Base(filePath))
		if err != nil {
			pw.CloseWithError(fmt.Errorf("could not create multipart file: %w", err))
			return
		}
		if _, err := io.Copy(fw, f); err != nil {
			pw.CloseWithError(fmt.Errorf("could not copy file into request: %w", err))
			return
		}
		pw.CloseWithError(w.Close())
	}()

	url := fmt.Sprintf("https://%s.gofile.io/contents/uploadfile", server)
	if g.uploadBaseURL != "" {
		url = fmt.Sprintf("%s/contents/uploadfile", g.uploadBaseURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, pr)
	if err != nil {
		return "", fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("could not read upload response: %w", err)
	}

	var result gofileUploadJSON
	if err := json.Unmarshal(data, &result); err != nil || result.Status != "ok" || result.Data.DownloadPage == "" {
		g.logger.Debugf("Gofile response had no download page: %s", data)
		return "", fmt.Errorf("no download page in gofile response: %w", model.ErrUploadFailed)
	}

	return result.Data.DownloadPage, nil
}

func (g *Gofile) pickServer(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.apiBaseURL+"/servers", nil)
	if err != nil {
		return "", fmt.Errorf("could not create request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("server pick request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("could not read server pick response: %w", err)
	}

	var result gofileServersJSON
	if err := json.Unmarshal(data, &result); err != nil || result.Status != "ok" || len(result.Data.Servers) == 0 {
		return "", fmt.Errorf("no storage server in gofile response: %w", model.ErrUploadFailed)
	}

	return result.Data.Servers[0].Name, nil
}
