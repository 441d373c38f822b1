package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
)

type Config struct {
	BaseURL string
	Bucket  string
	APIKey  string
}

// Client talks to the external object store over its REST API.
type Client struct {
	client *http.Client
	config Config
	nowFn  func() time.Time
}

func NewClient(cfg Config) *Client {
	return &Client{
		client: &http.Client{
			Transport: &AuthTransport{
				APIKey: cfg.APIKey,
				Base:   http.DefaultTransport,
			},
			Timeout: 30 * time.Second,
		},
		config: cfg,
		nowFn:  time.Now,
	}
}

// AuthTransport adds Bearer auth headers
type AuthTransport struct {
	APIKey string
	Base   http.RoundTripper
}

func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("Authorization", "Bearer "+t.APIKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "br")
	return t.Base.RoundTrip(req)
}

// Upload stores the file under a timestamped object name and returns the
// public URL.
func (c *Client) Upload(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	object := c.objectName(filename)
	uploadURL := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.config.BaseURL, c.config.Bucket, object)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}

	if resp.Header.Get("Content-Encoding") == "br" {
		resp.Body = &readCloserWrapper{Reader: brotli.NewReader(resp.Body), Closer: resp.Body}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		var apiErr ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Message != "" {
			return "", &apiErr
		}
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, string(body))
	}

	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.config.BaseURL, c.config.Bucket, object), nil
}

// objectName builds "items/<unix_ts>_<basename>" with spaces replaced by
// underscores so the URL stays unescaped-safe.
func (c *Client) objectName(filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	name = strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
	if name == "" || name == "." || name == "/" {
		name = "upload"
	}
	return fmt.Sprintf("items/%d_%s", c.nowFn().Unix(), url.PathEscape(name))
}

type readCloserWrapper struct {
	io.Reader
	io.Closer
}

func (r *readCloserWrapper) Read(p []byte) (n int, err error) {
	return r.Reader.Read(p)
}

func (r *readCloserWrapper) Close() error {
	return r.Closer.Close()
}
