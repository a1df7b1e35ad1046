package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/slok/rombot/internal/log"
)

const (
	defaultAPIBase = "https://api.telegram.org"

	defaultTimeout = 30 * time.Second
)

// ClientConfig configures the Telegram Bot API client.
type ClientConfig struct {
	// Token is the bot token.
	Token string
	// ChatID is the channel or group that receives the status card.
	ChatID string
	// HTTPClient is the HTTP client for API requests.
	HTTPClient *http.Client
	// Logger for logging.
	Logger log.Logger
}

func (c *ClientConfig) defaults() error {
	if c.Token == "" {
		return fmt.Errorf("telegram token is required")
	}
	if c.ChatID == "" {
		return fmt.Errorf("telegram chat id is required")
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: defaultTimeout}
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "telegram.Client"})
	return nil
}

// Client implements notify.Notifier on top of the Telegram Bot API.
type Client struct {
	token      string
	chatID     string
	httpClient *http.Client
	logger     log.Logger

	// Base URL (overridable for testing).
	apiBaseURL string
}

// NewClient creates a new Telegram client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Client{
		token:      cfg.Token,
		chatID:     cfg.ChatID,
		httpClient: cfg.HTTPClient,
		logger:     cfg.Logger,
		apiBaseURL: defaultAPIBase,
	}, nil
}

// NewClientWithBaseURL creates a client with a custom API base URL (for testing).
func NewClientWithBaseURL(cfg ClientConfig, apiBaseURL string) (*Client, error) {
	c, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}
	c.apiBaseURL = apiBaseURL
	return c, nil
}

// --- JSON wire types (private, Bot API responses) ---

type apiResponse struct {
	OK          bool            `json:"ok"`
	Description string          `json:"description"`
	Result      json.RawMessage `json:"result"`
}

type messageResult struct {
	MessageID int64 `json:"message_id"`
}

// SendPhoto uploads a local photo with a caption and returns the message ID of
// the created status card.
func (c *Client) SendPhoto(ctx context.Context, photoPath, caption string) (string, error) {
	f, err := os.Open(photoPath)
	if err != nil {
		return "", fmt.Errorf("could not open photo: %w", err)
	}
	defer f.Close()

	fields := map[string]string{
		"chat_id":    c.chatID,
		"caption":    caption,
		"parse_mode": "HTML",
	}

	res, err := c.postMultipart(ctx, "sendPhoto", fields, "photo", filepath.Base(photoPath), f)
	if err != nil {
		return "", err
	}

	var msg messageResult
	if err := json.Unmarshal(res, &msg); err != nil {
		return "", fmt.Errorf("could not parse sendPhoto result: %w", err)
	}

	return strconv.FormatInt(msg.MessageID, 10), nil
}

// EditCaption replaces the caption of the status card.
func (c *Client) EditCaption(ctx context.Context, messageID, caption string) error {
	form := url.Values{}
	form.Set("chat_id", c.chatID)
	form.Set("message_id", messageID)
	form.Set("caption", caption)
	form.Set("parse_mode", "HTML")

	_, err := c.postForm(ctx, "editMessageCaption", form)
	if err != nil {
		return err
	}
	return nil
}

// SendMessage sends a plain text message.
func (c *Client) SendMessage(ctx context.Context, text string) (string, error) {
	form := url.Values{}
	form.Set("chat_id", c.chatID)
	form.Set("text", text)
	form.Set("parse_mode", "HTML")

	res, err := c.postForm(ctx, "sendMessage", form)
	if err != nil {
		return "", err
	}

	var msg messageResult
	if err := json.Unmarshal(res, &msg); err != nil {
		return "", fmt.Errorf("could not parse sendMessage result: %w", err)
	}

	return strconv.FormatInt(msg.MessageID, 10), nil
}

// SendSticker downloads the sticker resource to a temporary file, uploads it
// and removes the temporary file, also when the upload fails.
func (c *Client) SendSticker(ctx context.Context, stickerURL string) error {
	tmpPath, err := c.downloadToTemp(ctx, stickerURL)
	if err != nil {
		return fmt.Errorf("could not fetch sticker: %w", err)
	}
	defer os.Remove(tmpPath)

	f, err := os.Open(tmpPath)
	if err != nil {
		return fmt.Errorf("could not open sticker: %w", err)
	}
	defer f.Close()

	fields := map[string]string{"chat_id": c.chatID}
	_, err = c.postMultipart(ctx, "sendSticker", fields, "sticker", filepath.Base(tmpPath), f)
	if err != nil {
		return err
	}

	return nil
}

func (c *Client) methodURL(method string) string {
	return fmt.Sprintf("%s/bot%s/%s", c.apiBaseURL, c.token, method)
}

func (c *Client) postForm(ctx context.Context, method string, form url.Values) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.methodURL(method), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.do(req, method)
}

func (c *Client) postMultipart(ctx context.Context, method string, fields map[string]string, fileField, fileName string, file io.Reader) (json.RawMessage, error) {
	var body strings.Builder
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("could not write multipart field: %w", err)
		}
	}
	fw, err := w.CreateFormFile(fileField, fileName)
	if err != nil {
		return nil, fmt.Errorf("could not create multipart file: %w", err)
	}
	if _, err := io.Copy(fw, file); err != nil {
		return nil, fmt.Errorf("could not copy file into request: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("could not finish multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.methodURL(method), strings.NewReader(body.String()))
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	return c.do(req, method)
}

func (c *Client) do(req *http.Request, method string) (json.RawMessage, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", method, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read %s response: %w", method, err)
	}

	var apiResp apiResponse
	if err := json.Unmarshal(data, &apiResp); err != nil {
		return nil, fmt.Errorf("could not parse %s response: %w", method, err)
	}
	if !apiResp.OK {
		return nil, fmt.Errorf("%s rejected by API: %s", method, apiResp.Description)
	}

	return apiResp.Result, nil
}

// downloadToTemp fetches a remote resource into a temporary file and returns
// its path. The caller owns the file.
func (c *Client) downloadToTemp(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("could not create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download failed with status %d", resp.StatusCode)
	}

	tmp, err := os.CreateTemp("", "rombot-sticker-*"+filepath.Ext(rawURL))
	if err != nil {
		return "", fmt.Errorf("could not create temp file: %w", err)
	}
	defer tmp.Close()

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("could not write temp file: %w", err)
	}

	return tmp.Name(), nil
}
